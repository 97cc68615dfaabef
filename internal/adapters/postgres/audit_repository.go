package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
)

type auditLogRepository struct {
	db *gorm.DB
}

func (r *auditLogRepository) Append(ctx context.Context, entry domain.AuditLog) error {
	details := entry.Details
	if details == "" {
		details = "{}"
	}
	rec := auditLogModel{
		AuditID:   entry.AuditID,
		AdminID:   entry.AdminID,
		Action:    entry.Action,
		EntityID:  entry.EntityID,
		Details:   details,
		CreatedAt: entry.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&rec).Error
}
