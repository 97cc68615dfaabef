package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
)

// PostMessage appends a chat message. The sender side is derived from the
// resolved principal, never from the request payload: an authenticated
// admin is ADMIN, anyone else is CLIENT. The endpoint is deliberately open
// to unauthenticated callers; the unguessable shipment id is the only
// protection, as on the public tracking page.
func (s *Service) PostMessage(ctx context.Context, actor Actor, shipmentID string, in PostMessageInput) (domain.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return domain.Message{}, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	if _, err := s.shipments.GetByID(ctx, shipmentID); err != nil {
		return domain.Message{}, err
	}

	sender := domain.SenderClient
	if actor.IsAdmin() {
		sender = domain.SenderAdmin
	}
	message := domain.Message{
		MessageID:  domain.NewMessageID(),
		ShipmentID: shipmentID,
		Sender:     sender,
		Content:    content,
		CreatedAt:  s.nowFn(),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return domain.Message{}, err
	}
	return message, nil
}

// ListMessages is public: anyone who knows the shipment's internal id can
// read the conversation, oldest first.
func (s *Service) ListMessages(ctx context.Context, shipmentID string) ([]domain.Message, error) {
	if _, err := s.shipments.GetByID(ctx, shipmentID); err != nil {
		return nil, err
	}
	return s.messages.ListByShipment(ctx, shipmentID)
}

// MarkClientMessagesRead bulk-flags unread CLIENT messages and reports how
// many were flagged. Idempotent: a second call finds nothing unread and
// succeeds with zero.
func (s *Service) MarkClientMessagesRead(ctx context.Context, actor Actor, shipmentID string) (int64, error) {
	shipment, err := s.authorizeShipment(ctx, actor, shipmentID)
	if err != nil {
		return 0, err
	}
	marked, err := s.messages.MarkClientRead(ctx, shipmentID)
	if err != nil {
		return 0, err
	}
	if marked > 0 {
		s.audit(ctx, actor.AdminID, domain.AuditMarkMessagesRead, shipment.ShipmentID, map[string]any{
			"marked": marked,
		})
	}
	return marked, nil
}
