package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records who did what. Writes are best-effort: a failed append
// is logged and swallowed, never surfaced to the triggering operation.
type AuditLog struct {
	AuditID   string    `json:"audit_id"`
	AdminID   string    `json:"admin_id"`
	Action    string    `json:"action"`
	EntityID  string    `json:"entity_id"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	AuditCreateShipment   = "CREATE_SHIPMENT"
	AuditUpdateShipment   = "UPDATE_SHIPMENT"
	AuditDeleteShipment   = "DELETE_SHIPMENT"
	AuditCreateEvent      = "CREATE_EVENT"
	AuditUpdateEvent      = "UPDATE_EVENT"
	AuditCreateAdmin      = "CREATE_ADMIN"
	AuditMarkMessagesRead = "MARK_MESSAGES_READ"
)

func NewAuditID() string { return "aud_" + uuid.NewString() }
