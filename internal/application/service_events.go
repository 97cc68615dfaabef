package application

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

// CreateEvent appends a status checkpoint and propagates its status to the
// shipment in one transaction. The new event's status is trusted directly:
// at creation time it is definitionally the latest action, assuming events
// arrive in non-decreasing timestamp order.
func (s *Service) CreateEvent(ctx context.Context, actor Actor, shipmentID string, in CreateEventInput) (domain.ShipmentEvent, error) {
	shipment, err := s.authorizeShipment(ctx, actor, shipmentID)
	if err != nil {
		return domain.ShipmentEvent{}, err
	}
	if !domain.IsValidStatus(in.Status) {
		return domain.ShipmentEvent{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, in.Status)
	}
	lat, err := parseCoordinate("latitude", in.Latitude)
	if err != nil {
		return domain.ShipmentEvent{}, err
	}
	lng, err := parseCoordinate("longitude", in.Longitude)
	if err != nil {
		return domain.ShipmentEvent{}, err
	}

	now := s.nowFn()
	timestamp := now
	if in.Timestamp != nil {
		timestamp = in.Timestamp.UTC()
	}
	location := strings.TrimSpace(in.Location)
	if location == "" {
		location = domain.DefaultLocation
	}

	event := domain.ShipmentEvent{
		EventID:     domain.NewEventID(),
		ShipmentID:  shipment.ShipmentID,
		Status:      in.Status,
		Location:    location,
		Description: strings.TrimSpace(in.Description),
		Timestamp:   timestamp,
		Latitude:    lat,
		Longitude:   lng,
		CreatedAt:   now,
	}

	outbox := s.statusChangeRecord(shipment, event.Status, now)
	if err := s.events.AppendWithStatus(ctx, event, event.Status, &outbox); err != nil {
		return domain.ShipmentEvent{}, err
	}

	s.audit(ctx, actor.AdminID, domain.AuditCreateEvent, event.EventID, map[string]any{
		"shipment_id": shipment.ShipmentID,
		"status":      event.Status,
		"location":    event.Location,
	})
	if shipment.CustomerEmail != "" {
		s.notify(ports.StatusNotification{
			To:             shipment.CustomerEmail,
			TrackingNumber: shipment.TrackingNumber,
			Status:         event.Status,
			Location:       event.Location,
			Description:    event.Description,
		})
	}
	s.invalidateTracking(ctx, shipment.TrackingNumber)
	return event, nil
}

// EditEvent applies a partial update to an existing event and then
// re-derives the shipment status from the full event log, because the edit
// may have moved which event carries the latest timestamp.
func (s *Service) EditEvent(ctx context.Context, actor Actor, shipmentID, eventID string, in EditEventInput) (domain.ShipmentEvent, error) {
	shipment, err := s.authorizeShipment(ctx, actor, shipmentID)
	if err != nil {
		return domain.ShipmentEvent{}, err
	}
	event, err := s.events.GetByID(ctx, shipmentID, eventID)
	if err != nil {
		return domain.ShipmentEvent{}, err
	}

	if in.Status != nil {
		if !domain.IsValidStatus(*in.Status) {
			return domain.ShipmentEvent{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *in.Status)
		}
		event.Status = *in.Status
	}
	if in.Location != nil {
		location := strings.TrimSpace(*in.Location)
		if location == "" {
			location = domain.DefaultLocation
		}
		event.Location = location
	}
	if in.Description != nil {
		event.Description = strings.TrimSpace(*in.Description)
	}
	if in.Timestamp != nil {
		event.Timestamp = in.Timestamp.UTC()
	}
	if in.Latitude != nil {
		lat, err := parseCoordinate("latitude", *in.Latitude)
		if err != nil {
			return domain.ShipmentEvent{}, err
		}
		event.Latitude = lat
	}
	if in.Longitude != nil {
		lng, err := parseCoordinate("longitude", *in.Longitude)
		if err != nil {
			return domain.ShipmentEvent{}, err
		}
		event.Longitude = lng
	}

	if err := s.events.Update(ctx, event); err != nil {
		return domain.ShipmentEvent{}, err
	}
	if err := s.resyncStatus(ctx, shipment); err != nil {
		return domain.ShipmentEvent{}, err
	}

	s.audit(ctx, actor.AdminID, domain.AuditUpdateEvent, event.EventID, map[string]any{
		"shipment_id": shipment.ShipmentID,
		"status":      event.Status,
	})
	s.invalidateTracking(ctx, shipment.TrackingNumber)
	return event, nil
}

func (s *Service) ListEvents(ctx context.Context, actor Actor, shipmentID string) ([]domain.ShipmentEvent, error) {
	if _, err := s.authorizeShipment(ctx, actor, shipmentID); err != nil {
		return nil, err
	}
	return s.events.ListByShipment(ctx, shipmentID)
}

// resyncStatus is the edit-path half of the synchronizer: latest event by
// Timestamp wins, ties resolved first-found in repository order.
func (s *Service) resyncStatus(ctx context.Context, shipment domain.Shipment) error {
	events, err := s.events.ListByShipment(ctx, shipment.ShipmentID)
	if err != nil {
		return err
	}
	latest, ok := domain.LatestEvent(events)
	if !ok {
		return nil
	}
	now := s.nowFn()
	var outbox *ports.OutboxRecord
	if latest.Status != shipment.Status {
		record := s.statusChangeRecord(shipment, latest.Status, now)
		outbox = &record
	}
	return s.shipments.UpdateStatus(ctx, shipment.ShipmentID, latest.Status, now, outbox)
}

func parseCoordinate(field, value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %s must be numeric", domain.ErrInvalidInput, field)
	}
	return &f, nil
}
