package email

import (
	"context"
	"log/slog"

	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

// NoopSender is installed when no Resend API key is configured. It logs
// the skipped delivery so local runs still show what would have gone out.
type NoopSender struct {
	logger *slog.Logger
}

func NewNoopSender(logger *slog.Logger) *NoopSender {
	return &NoopSender{logger: logger}
}

func (s *NoopSender) SendStatusUpdate(ctx context.Context, n ports.StatusNotification) error {
	s.logger.InfoContext(ctx, "status email skipped, no sender configured",
		"module", "email",
		"layer", "adapter",
		"operation", "send_status_update",
		"outcome", "skipped",
		"tracking_number", n.TrackingNumber,
		"status", n.Status,
	)
	return nil
}
