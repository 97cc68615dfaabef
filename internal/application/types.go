package application

import (
	"time"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
)

// Actor is the resolved principal for a request. A zero Actor is an
// unauthenticated caller, which is valid on the public endpoints.
type Actor struct {
	AdminID   string
	Email     string
	Name      string
	Role      domain.AdminRole
	RequestID string
}

func (a Actor) IsAuthenticated() bool {
	return a.AdminID != ""
}

func (a Actor) IsAdmin() bool {
	return a.AdminID != "" && (a.Role == domain.RoleAdmin || a.Role == domain.RoleSuperAdmin)
}

func (a Actor) IsSuperAdmin() bool {
	return a.AdminID != "" && a.Role == domain.RoleSuperAdmin
}

type CreateShipmentInput struct {
	SenderInfo         string
	ReceiverInfo       string
	Origin             string
	Destination        string
	CustomerEmail      string
	ProductDescription string
	ImageURLs          []string
	EstimatedDelivery  *time.Time
	CreatedAt          *time.Time
}

// UpdateShipmentInput carries a partial update: nil fields keep their
// prior value, a non-nil ImageURLs replaces the whole sequence.
type UpdateShipmentInput struct {
	Origin             *string
	Destination        *string
	SenderInfo         *string
	ReceiverInfo       *string
	CustomerEmail      *string
	ProductDescription *string
	TrackingNumber     *string
	Status             *domain.ShipmentStatus
	ImageURLs          *[]string
	EstimatedDelivery  *time.Time
	CreatedAt          *time.Time
}

// CreateEventInput takes latitude/longitude as strings so malformed
// coordinates fail validation instead of being stored as garbage.
type CreateEventInput struct {
	Status      domain.ShipmentStatus
	Location    string
	Description string
	Timestamp   *time.Time
	Latitude    string
	Longitude   string
}

type EditEventInput struct {
	Status      *domain.ShipmentStatus
	Location    *string
	Description *string
	Timestamp   *time.Time
	Latitude    *string
	Longitude   *string
}

type PostMessageInput struct {
	Content string
}

type TrackingView struct {
	Shipment domain.Shipment        `json:"shipment"`
	Events   []domain.ShipmentEvent `json:"events"`
	Progress int                    `json:"progress"`
}

type DashboardStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	InTransit int64 `json:"in_transit"`
	Delivered int64 `json:"delivered"`
}

// Inquiry is a shipment with pending unread CLIENT chat messages,
// surfaced on the admin dashboard.
type Inquiry struct {
	ShipmentID     string         `json:"shipment_id"`
	TrackingNumber string         `json:"tracking_number"`
	LatestMessage  domain.Message `json:"latest_message"`
	UnreadCount    int            `json:"unread_count"`
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string       `json:"token"`
	Admin domain.Admin `json:"admin"`
}

type CreateAdminInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.AdminRole
}
