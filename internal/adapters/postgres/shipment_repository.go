package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

type shipmentRepository struct {
	db *gorm.DB
}

func (r *shipmentRepository) Create(ctx context.Context, shipment domain.Shipment, seed domain.ShipmentEvent, outbox ports.OutboxRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := toShipmentModel(shipment)
		if err := tx.Create(&rec).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrConflict
			}
			return err
		}
		event := toEventModel(seed)
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		staged := toOutboxModel(outbox)
		return tx.Create(&staged).Error
	})
}

func (r *shipmentRepository) GetByID(ctx context.Context, shipmentID string) (domain.Shipment, error) {
	var rec shipmentModel
	if err := r.db.WithContext(ctx).Where("shipment_id = ?", shipmentID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Shipment{}, domain.ErrNotFound
		}
		return domain.Shipment{}, err
	}
	return toDomainShipment(rec), nil
}

func (r *shipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (domain.Shipment, error) {
	var rec shipmentModel
	if err := r.db.WithContext(ctx).Where("tracking_number = ?", trackingNumber).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Shipment{}, domain.ErrNotFound
		}
		return domain.Shipment{}, err
	}
	return toDomainShipment(rec), nil
}

func (r *shipmentRepository) Update(ctx context.Context, shipment domain.Shipment) error {
	rec := toShipmentModel(shipment)
	res := r.db.WithContext(ctx).
		Model(&shipmentModel{}).
		Where("shipment_id = ?", rec.ShipmentID).
		Updates(map[string]any{
			"tracking_number":     rec.TrackingNumber,
			"status":              rec.Status,
			"origin":              rec.Origin,
			"destination":         rec.Destination,
			"sender_info":         rec.SenderInfo,
			"receiver_info":       rec.ReceiverInfo,
			"customer_email":      rec.CustomerEmail,
			"product_description": rec.ProductDescription,
			"image_urls":          rec.ImageURLs,
			"estimated_delivery":  rec.EstimatedDelivery,
			"created_at":          rec.CreatedAt,
			"updated_at":          rec.UpdatedAt,
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return domain.ErrConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *shipmentRepository) UpdateStatus(ctx context.Context, shipmentID string, status domain.ShipmentStatus, at time.Time, outbox *ports.OutboxRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&shipmentModel{}).
			Where("shipment_id = ?", shipmentID).
			Updates(map[string]any{
				"status":     string(status),
				"updated_at": at,
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

func (r *shipmentRepository) Delete(ctx context.Context, shipmentID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shipment_id = ?", shipmentID).Delete(&shipmentEventModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shipment_id = ?", shipmentID).Delete(&messageModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("shipment_id = ?", shipmentID).Delete(&shipmentModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *shipmentRepository) ListByAdmin(ctx context.Context, adminID string) ([]domain.Shipment, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if adminID != "" {
		query = query.Where("admin_id = ?", adminID)
	}
	var rows []shipmentModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Shipment, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainShipment(row))
	}
	return result, nil
}

func (r *shipmentRepository) CountByAdmin(ctx context.Context, adminID string, status domain.ShipmentStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&shipmentModel{})
	if adminID != "" {
		query = query.Where("admin_id = ?", adminID)
	}
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
