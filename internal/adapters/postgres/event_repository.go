package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

type shipmentEventRepository struct {
	db *gorm.DB
}

func (r *shipmentEventRepository) AppendWithStatus(ctx context.Context, event domain.ShipmentEvent, status domain.ShipmentStatus, outbox *ports.OutboxRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := toEventModel(event)
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		res := tx.Model(&shipmentModel{}).
			Where("shipment_id = ?", event.ShipmentID).
			Updates(map[string]any{
				"status":     string(status),
				"updated_at": event.CreatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		if outbox == nil {
			return nil
		}
		staged := toOutboxModel(*outbox)
		return tx.Create(&staged).Error
	})
}

func (r *shipmentEventRepository) GetByID(ctx context.Context, shipmentID, eventID string) (domain.ShipmentEvent, error) {
	var rec shipmentEventModel
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Where("event_id = ?", eventID).
		Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShipmentEvent{}, domain.ErrNotFound
		}
		return domain.ShipmentEvent{}, err
	}
	return toDomainEvent(rec), nil
}

func (r *shipmentEventRepository) Update(ctx context.Context, event domain.ShipmentEvent) error {
	rec := toEventModel(event)
	res := r.db.WithContext(ctx).
		Model(&shipmentEventModel{}).
		Where("event_id = ?", rec.EventID).
		Where("shipment_id = ?", rec.ShipmentID).
		Updates(map[string]any{
			"status":          rec.Status,
			"location":        rec.Location,
			"description":     rec.Description,
			"event_timestamp": rec.Timestamp,
			"latitude":        rec.Latitude,
			"longitude":       rec.Longitude,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *shipmentEventRepository) ListByShipment(ctx context.Context, shipmentID string) ([]domain.ShipmentEvent, error) {
	var rows []shipmentEventModel
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.ShipmentEvent, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainEvent(row))
	}
	return result, nil
}
