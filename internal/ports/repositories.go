package ports

import (
	"context"
	"time"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
)

// OutboxRecord is a status-change event staged in the same transaction as
// the write that produced it, then published by the outbox worker.
type OutboxRecord struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type ShipmentRepository interface {
	// Create persists the shipment, its seed event, and the outbox record
	// as one atomic unit.
	Create(ctx context.Context, shipment domain.Shipment, seed domain.ShipmentEvent, outbox OutboxRecord) error
	GetByID(ctx context.Context, shipmentID string) (domain.Shipment, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (domain.Shipment, error)
	Update(ctx context.Context, shipment domain.Shipment) error
	// UpdateStatus overwrites the denormalized status. A non-nil outbox
	// record is staged atomically with the overwrite.
	UpdateStatus(ctx context.Context, shipmentID string, status domain.ShipmentStatus, at time.Time, outbox *OutboxRecord) error
	// Delete cascades to the shipment's events and messages.
	Delete(ctx context.Context, shipmentID string) error
	ListByAdmin(ctx context.Context, adminID string) ([]domain.Shipment, error)
	CountByAdmin(ctx context.Context, adminID string, status domain.ShipmentStatus) (int64, error)
}

type ShipmentEventRepository interface {
	// AppendWithStatus inserts the event and overwrites the owning
	// shipment's status in one transaction, staging the outbox record
	// alongside when non-nil.
	AppendWithStatus(ctx context.Context, event domain.ShipmentEvent, status domain.ShipmentStatus, outbox *OutboxRecord) error
	GetByID(ctx context.Context, shipmentID, eventID string) (domain.ShipmentEvent, error)
	Update(ctx context.Context, event domain.ShipmentEvent) error
	// ListByShipment returns events newest-created first. Display order
	// only; status synchronization compares Timestamp, never CreatedAt.
	ListByShipment(ctx context.Context, shipmentID string) ([]domain.ShipmentEvent, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message domain.Message) error
	// ListByShipment returns messages oldest first.
	ListByShipment(ctx context.Context, shipmentID string) ([]domain.Message, error)
	// MarkClientRead flags every unread CLIENT message on the shipment as
	// read and reports how many rows changed.
	MarkClientRead(ctx context.Context, shipmentID string) (int64, error)
	// ListUnreadClient returns all unread CLIENT messages, newest first.
	ListUnreadClient(ctx context.Context) ([]domain.Message, error)
}

type AuditLogRepository interface {
	Append(ctx context.Context, entry domain.AuditLog) error
}

type AdminRepository interface {
	Create(ctx context.Context, admin domain.Admin) error
	GetByEmail(ctx context.Context, email string) (domain.Admin, error)
	GetByID(ctx context.Context, adminID string) (domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
}

type OutboxRepository interface {
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID string, at time.Time) error
	MarkFailed(ctx context.Context, outboxID, reason string, at time.Time) error
}
