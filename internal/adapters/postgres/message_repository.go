package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
)

type messageRepository struct {
	db *gorm.DB
}

func (r *messageRepository) Create(ctx context.Context, message domain.Message) error {
	rec := toMessageModel(message)
	return r.db.WithContext(ctx).Create(&rec).Error
}

func (r *messageRepository) ListByShipment(ctx context.Context, shipmentID string) ([]domain.Message, error) {
	var rows []messageModel
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Message, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainMessage(row))
	}
	return result, nil
}

func (r *messageRepository) MarkClientRead(ctx context.Context, shipmentID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&messageModel{}).
		Where("shipment_id = ?", shipmentID).
		Where("sender = ?", string(domain.SenderClient)).
		Where("is_read = FALSE").
		Update("is_read", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *messageRepository) ListUnreadClient(ctx context.Context) ([]domain.Message, error) {
	var rows []messageModel
	if err := r.db.WithContext(ctx).
		Where("sender = ?", string(domain.SenderClient)).
		Where("is_read = FALSE").
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Message, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainMessage(row))
	}
	return result, nil
}
