package domain

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

type ShipmentStatus string

const (
	StatusPending        ShipmentStatus = "PENDING"
	StatusCreated        ShipmentStatus = "CREATED"
	StatusInTransit      ShipmentStatus = "IN_TRANSIT"
	StatusPaused         ShipmentStatus = "PAUSED"
	StatusOutForDelivery ShipmentStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      ShipmentStatus = "DELIVERED"
	StatusReturned       ShipmentStatus = "RETURNED"
)

func IsValidStatus(s ShipmentStatus) bool {
	switch s {
	case StatusPending, StatusCreated, StatusInTransit, StatusPaused,
		StatusOutForDelivery, StatusDelivered, StatusReturned:
		return true
	default:
		return false
	}
}

type Shipment struct {
	ShipmentID         string         `json:"shipment_id"`
	TrackingNumber     string         `json:"tracking_number"`
	Status             ShipmentStatus `json:"status"`
	Origin             string         `json:"origin"`
	Destination        string         `json:"destination"`
	SenderInfo         string         `json:"sender_info"`
	ReceiverInfo       string         `json:"receiver_info"`
	CustomerEmail      string         `json:"customer_email,omitempty"`
	ProductDescription string         `json:"product_description,omitempty"`
	ImageURLs          []string       `json:"image_urls"`
	EstimatedDelivery  *time.Time     `json:"estimated_delivery,omitempty"`
	AdminID            string         `json:"admin_id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type ShipmentEvent struct {
	EventID     string         `json:"event_id"`
	ShipmentID  string         `json:"shipment_id"`
	Status      ShipmentStatus `json:"status"`
	Location    string         `json:"location"`
	Description string         `json:"description,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	Latitude    *float64       `json:"latitude,omitempty"`
	Longitude   *float64       `json:"longitude,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// DefaultLocation is recorded when an event carries no location,
// matching the seed event of a shipment created without an origin.
const DefaultLocation = "System"

func NewShipmentID() string { return "shp_" + uuid.NewString() }
func NewEventID() string    { return "evt_" + uuid.NewString() }

// NewTrackingNumber returns the public identifier in TRK-######## form.
// The 8-digit suffix is random, not unique; callers that insert under a
// uniqueness constraint retry on conflict.
func NewTrackingNumber() string {
	return fmt.Sprintf("TRK-%08d", 10000000+rand.Intn(90000000))
}

// LatestEvent selects the event with the maximum Timestamp. On an exact
// tie the first one encountered wins, in the order events were given.
// Returns false when the slice is empty.
func LatestEvent(events []ShipmentEvent) (ShipmentEvent, bool) {
	if len(events) == 0 {
		return ShipmentEvent{}, false
	}
	latest := events[0]
	for _, e := range events[1:] {
		if e.Timestamp.After(latest.Timestamp) {
			latest = e
		}
	}
	return latest, true
}

// StatusProgress maps a status to the percentage shown on the public
// tracking page.
func StatusProgress(s ShipmentStatus) int {
	switch s {
	case StatusPending, StatusCreated:
		return 10
	case StatusInTransit:
		return 50
	case StatusOutForDelivery:
		return 80
	case StatusDelivered, StatusReturned:
		return 100
	default:
		return 0
	}
}
