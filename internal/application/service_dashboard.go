package application

import (
	"context"
	"errors"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
)

func (s *Service) DashboardStats(ctx context.Context, actor Actor, viewAs string) (DashboardStats, error) {
	if !actor.IsAdmin() {
		return DashboardStats{}, domain.ErrUnauthorized
	}
	adminID := s.scopeAdminID(actor, viewAs)

	total, err := s.shipments.CountByAdmin(ctx, adminID, "")
	if err != nil {
		return DashboardStats{}, err
	}
	pending, err := s.shipments.CountByAdmin(ctx, adminID, domain.StatusPending)
	if err != nil {
		return DashboardStats{}, err
	}
	inTransit, err := s.shipments.CountByAdmin(ctx, adminID, domain.StatusInTransit)
	if err != nil {
		return DashboardStats{}, err
	}
	delivered, err := s.shipments.CountByAdmin(ctx, adminID, domain.StatusDelivered)
	if err != nil {
		return DashboardStats{}, err
	}
	return DashboardStats{Total: total, Pending: pending, InTransit: inTransit, Delivered: delivered}, nil
}

// UnreadInquiries lists shipments with pending unread CLIENT messages,
// scoped to shipments the caller may see: everything for SUPER_ADMIN,
// their own otherwise.
func (s *Service) UnreadInquiries(ctx context.Context, actor Actor) ([]Inquiry, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	unread, err := s.messages.ListUnreadClient(ctx)
	if err != nil {
		return nil, err
	}

	const skipped = -1
	inquiries := make([]Inquiry, 0)
	seen := map[string]int{}
	for _, msg := range unread {
		if idx, ok := seen[msg.ShipmentID]; ok {
			if idx != skipped {
				inquiries[idx].UnreadCount++
			}
			continue
		}
		shipment, err := s.shipments.GetByID(ctx, msg.ShipmentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				seen[msg.ShipmentID] = skipped
				continue
			}
			return nil, err
		}
		if !actor.IsSuperAdmin() && shipment.AdminID != actor.AdminID {
			seen[msg.ShipmentID] = skipped
			continue
		}
		seen[msg.ShipmentID] = len(inquiries)
		inquiries = append(inquiries, Inquiry{
			ShipmentID:     shipment.ShipmentID,
			TrackingNumber: shipment.TrackingNumber,
			LatestMessage:  msg,
			UnreadCount:    1,
		})
	}
	return inquiries, nil
}
