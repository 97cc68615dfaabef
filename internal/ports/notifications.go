package ports

import (
	"context"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
)

type StatusNotification struct {
	To             string
	TrackingNumber string
	Status         domain.ShipmentStatus
	Location       string
	Description    string
}

// NotificationSender delivers customer-facing status emails. Callers treat
// it as fire-and-forget: a returned error is logged, never propagated.
type NotificationSender interface {
	SendStatusUpdate(ctx context.Context, n StatusNotification) error
}
