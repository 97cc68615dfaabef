package postgres

import "time"

type shipmentModel struct {
	ShipmentID         string     `gorm:"column:shipment_id;primaryKey"`
	TrackingNumber     string     `gorm:"column:tracking_number;uniqueIndex"`
	Status             string     `gorm:"column:status"`
	Origin             string     `gorm:"column:origin"`
	Destination        string     `gorm:"column:destination"`
	SenderInfo         string     `gorm:"column:sender_info"`
	ReceiverInfo       string     `gorm:"column:receiver_info"`
	CustomerEmail      string     `gorm:"column:customer_email"`
	ProductDescription string     `gorm:"column:product_description"`
	ImageURLs          string     `gorm:"column:image_urls;type:jsonb"`
	EstimatedDelivery  *time.Time `gorm:"column:estimated_delivery"`
	AdminID            string     `gorm:"column:admin_id"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (shipmentModel) TableName() string { return "shipments" }

type shipmentEventModel struct {
	EventID     string    `gorm:"column:event_id;primaryKey"`
	ShipmentID  string    `gorm:"column:shipment_id"`
	Status      string    `gorm:"column:status"`
	Location    string    `gorm:"column:location"`
	Description string    `gorm:"column:description"`
	Timestamp   time.Time `gorm:"column:event_timestamp"`
	Latitude    *float64  `gorm:"column:latitude"`
	Longitude   *float64  `gorm:"column:longitude"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (shipmentEventModel) TableName() string { return "shipment_events" }

type messageModel struct {
	MessageID  string    `gorm:"column:message_id;primaryKey"`
	ShipmentID string    `gorm:"column:shipment_id"`
	Sender     string    `gorm:"column:sender"`
	Content    string    `gorm:"column:content"`
	IsRead     bool      `gorm:"column:is_read"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (messageModel) TableName() string { return "messages" }

type auditLogModel struct {
	AuditID   string    `gorm:"column:audit_id;primaryKey"`
	AdminID   string    `gorm:"column:admin_id"`
	Action    string    `gorm:"column:action"`
	EntityID  string    `gorm:"column:entity_id"`
	Details   string    `gorm:"column:details;type:jsonb"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (auditLogModel) TableName() string { return "audit_logs" }

type adminModel struct {
	AdminID      string    `gorm:"column:admin_id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Name         string    `gorm:"column:name"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (adminModel) TableName() string { return "admins" }

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      string     `gorm:"column:payload;type:jsonb"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
	RetryCount   int        `gorm:"column:retry_count"`
	LastError    *string    `gorm:"column:last_error"`
	LastErrorAt  *time.Time `gorm:"column:last_error_at"`
}

func (outboxModel) TableName() string { return "shipment_outbox" }
