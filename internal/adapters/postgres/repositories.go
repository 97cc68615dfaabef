package postgres

import (
	"gorm.io/gorm"

	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

type Repositories struct {
	Shipments ports.ShipmentRepository
	Events    ports.ShipmentEventRepository
	Messages  ports.MessageRepository
	Audit     ports.AuditLogRepository
	Admins    ports.AdminRepository
	Outbox    ports.OutboxRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Shipments: &shipmentRepository{db: db},
		Events:    &shipmentEventRepository{db: db},
		Messages:  &messageRepository{db: db},
		Audit:     &auditLogRepository{db: db},
		Admins:    &adminRepository{db: db},
		Outbox:    &outboxRepository{db: db},
	}
}
