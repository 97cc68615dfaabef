package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
)

type adminRepository struct {
	db *gorm.DB
}

func (r *adminRepository) Create(ctx context.Context, admin domain.Admin) error {
	rec := adminModel{
		AdminID:      admin.AdminID,
		Email:        admin.Email,
		Name:         admin.Name,
		PasswordHash: admin.PasswordHash,
		Role:         string(admin.Role),
		CreatedAt:    admin.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (domain.Admin, error) {
	var rec adminModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Admin{}, domain.ErrNotFound
		}
		return domain.Admin{}, err
	}
	return toDomainAdmin(rec), nil
}

func (r *adminRepository) GetByID(ctx context.Context, adminID string) (domain.Admin, error) {
	var rec adminModel
	if err := r.db.WithContext(ctx).Where("admin_id = ?", adminID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Admin{}, domain.ErrNotFound
		}
		return domain.Admin{}, err
	}
	return toDomainAdmin(rec), nil
}

func (r *adminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	var rows []adminModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Admin, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainAdmin(row))
	}
	return result, nil
}
