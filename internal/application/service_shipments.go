package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

// trackingNumberAttempts bounds the retry loop on a tracking-number
// uniqueness collision. The 8-digit suffix makes collisions rare enough
// that exhausting the loop means something else is wrong.
const trackingNumberAttempts = 3

func (s *Service) CreateShipment(ctx context.Context, actor Actor, in CreateShipmentInput) (domain.Shipment, error) {
	if !actor.IsAdmin() {
		return domain.Shipment{}, domain.ErrUnauthorized
	}

	now := s.nowFn()
	createdAt := now
	if in.CreatedAt != nil {
		createdAt = in.CreatedAt.UTC()
	}
	imageURLs := in.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}

	shipment := domain.Shipment{
		ShipmentID:         domain.NewShipmentID(),
		Status:             domain.StatusPending,
		Origin:             strings.TrimSpace(in.Origin),
		Destination:        strings.TrimSpace(in.Destination),
		SenderInfo:         strings.TrimSpace(in.SenderInfo),
		ReceiverInfo:       strings.TrimSpace(in.ReceiverInfo),
		CustomerEmail:      strings.TrimSpace(in.CustomerEmail),
		ProductDescription: strings.TrimSpace(in.ProductDescription),
		ImageURLs:          imageURLs,
		EstimatedDelivery:  in.EstimatedDelivery,
		AdminID:            actor.AdminID,
		CreatedAt:          createdAt,
		UpdatedAt:          now,
	}

	seedLocation := shipment.Origin
	if seedLocation == "" {
		seedLocation = domain.DefaultLocation
	}
	seed := domain.ShipmentEvent{
		EventID:     domain.NewEventID(),
		ShipmentID:  shipment.ShipmentID,
		Status:      domain.StatusCreated,
		Location:    seedLocation,
		Description: "Shipment created",
		Timestamp:   createdAt,
		CreatedAt:   now,
	}

	var err error
	for attempt := 0; attempt < trackingNumberAttempts; attempt++ {
		shipment.TrackingNumber = domain.NewTrackingNumber()
		err = s.shipments.Create(ctx, shipment, seed, s.statusChangeRecord(shipment, shipment.Status, now))
		if !errors.Is(err, domain.ErrConflict) {
			break
		}
	}
	if err != nil {
		return domain.Shipment{}, err
	}

	s.audit(ctx, actor.AdminID, domain.AuditCreateShipment, shipment.ShipmentID, map[string]any{
		"tracking_number": shipment.TrackingNumber,
		"origin":          shipment.Origin,
		"destination":     shipment.Destination,
	})
	if shipment.CustomerEmail != "" {
		s.notify(ports.StatusNotification{
			To:             shipment.CustomerEmail,
			TrackingNumber: shipment.TrackingNumber,
			Status:         seed.Status,
			Location:       seed.Location,
			Description:    seed.Description,
		})
	}
	return shipment, nil
}

func (s *Service) ListShipments(ctx context.Context, actor Actor, viewAs string) ([]domain.Shipment, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	return s.shipments.ListByAdmin(ctx, s.scopeAdminID(actor, viewAs))
}

func (s *Service) GetShipment(ctx context.Context, actor Actor, shipmentID string) (domain.Shipment, []domain.ShipmentEvent, error) {
	shipment, err := s.authorizeShipment(ctx, actor, shipmentID)
	if err != nil {
		return domain.Shipment{}, nil, err
	}
	events, err := s.events.ListByShipment(ctx, shipmentID)
	if err != nil {
		return domain.Shipment{}, nil, err
	}
	return shipment, events, nil
}

func (s *Service) UpdateShipment(ctx context.Context, actor Actor, shipmentID string, in UpdateShipmentInput) (domain.Shipment, error) {
	shipment, err := s.authorizeShipment(ctx, actor, shipmentID)
	if err != nil {
		return domain.Shipment{}, err
	}

	previousTracking := shipment.TrackingNumber
	if in.Status != nil {
		if !domain.IsValidStatus(*in.Status) {
			return domain.Shipment{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *in.Status)
		}
		shipment.Status = *in.Status
	}
	if in.Origin != nil {
		shipment.Origin = strings.TrimSpace(*in.Origin)
	}
	if in.Destination != nil {
		shipment.Destination = strings.TrimSpace(*in.Destination)
	}
	if in.SenderInfo != nil {
		shipment.SenderInfo = strings.TrimSpace(*in.SenderInfo)
	}
	if in.ReceiverInfo != nil {
		shipment.ReceiverInfo = strings.TrimSpace(*in.ReceiverInfo)
	}
	if in.CustomerEmail != nil {
		shipment.CustomerEmail = strings.TrimSpace(*in.CustomerEmail)
	}
	if in.ProductDescription != nil {
		shipment.ProductDescription = strings.TrimSpace(*in.ProductDescription)
	}
	if in.TrackingNumber != nil && strings.TrimSpace(*in.TrackingNumber) != "" {
		shipment.TrackingNumber = strings.TrimSpace(*in.TrackingNumber)
	}
	if in.ImageURLs != nil {
		shipment.ImageURLs = append([]string{}, (*in.ImageURLs)...)
	}
	if in.EstimatedDelivery != nil {
		shipment.EstimatedDelivery = in.EstimatedDelivery
	}
	if in.CreatedAt != nil {
		shipment.CreatedAt = in.CreatedAt.UTC()
	}
	shipment.UpdatedAt = s.nowFn()

	if err := s.shipments.Update(ctx, shipment); err != nil {
		return domain.Shipment{}, err
	}

	s.audit(ctx, actor.AdminID, domain.AuditUpdateShipment, shipment.ShipmentID, map[string]any{
		"tracking_number": shipment.TrackingNumber,
	})
	s.invalidateTracking(ctx, previousTracking)
	if shipment.TrackingNumber != previousTracking {
		s.invalidateTracking(ctx, shipment.TrackingNumber)
	}
	return shipment, nil
}

func (s *Service) DeleteShipment(ctx context.Context, actor Actor, shipmentID string) error {
	shipment, err := s.authorizeShipment(ctx, actor, shipmentID)
	if err != nil {
		return err
	}
	if err := s.shipments.Delete(ctx, shipmentID); err != nil {
		return err
	}
	s.audit(ctx, actor.AdminID, domain.AuditDeleteShipment, shipmentID, map[string]any{
		"tracking_number": shipment.TrackingNumber,
	})
	s.invalidateTracking(ctx, shipment.TrackingNumber)
	return nil
}

// PublicTracking serves the customer-facing tracking page. No principal is
// required: the tracking number is the capability.
func (s *Service) PublicTracking(ctx context.Context, trackingNumber string) (TrackingView, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return TrackingView{}, fmt.Errorf("%w: tracking number is required", domain.ErrInvalidInput)
	}

	if s.cache != nil {
		raw, ok, err := s.cache.Get(ctx, trackingNumber)
		if err != nil {
			s.logger.WarnContext(ctx, "tracking cache read failed",
				"operation", "public_tracking",
				"outcome", "failure",
				"tracking_number", trackingNumber,
				"error", err,
			)
		} else if ok {
			var view TrackingView
			if json.Unmarshal(raw, &view) == nil {
				return view, nil
			}
		}
	}

	shipment, err := s.shipments.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return TrackingView{}, err
	}
	events, err := s.events.ListByShipment(ctx, shipment.ShipmentID)
	if err != nil {
		return TrackingView{}, err
	}
	view := TrackingView{
		Shipment: shipment,
		Events:   events,
		Progress: domain.StatusProgress(shipment.Status),
	}

	if s.cache != nil {
		if raw, err := json.Marshal(view); err == nil {
			if err := s.cache.Set(ctx, trackingNumber, raw, s.cfg.TrackingCacheTTL); err != nil {
				s.logger.WarnContext(ctx, "tracking cache write failed",
					"operation", "public_tracking",
					"outcome", "failure",
					"tracking_number", trackingNumber,
					"error", err,
				)
			}
		}
	}
	return view, nil
}
