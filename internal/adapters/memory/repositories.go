// Package memory provides map-backed implementations of the repository
// ports. They serve local development without a database and the
// application test suite.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

type Repositories struct {
	Shipments *ShipmentRepository
	Events    *ShipmentEventRepository
	Messages  *MessageRepository
	Audit     *AuditLogRepository
	Admins    *AdminRepository
	Outbox    *OutboxRepository
}

func NewRepositories() Repositories {
	store := newStore()
	return Repositories{
		Shipments: &ShipmentRepository{store: store},
		Events:    &ShipmentEventRepository{store: store},
		Messages:  &MessageRepository{store: store},
		Audit:     &AuditLogRepository{store: store},
		Admins:    &AdminRepository{store: store},
		Outbox:    &OutboxRepository{store: store},
	}
}

// store is shared across the repositories so cross-entity transactions
// (create shipment with seed event, cascade delete) stay consistent
// under one lock.
type store struct {
	mu        sync.Mutex
	shipments map[string]domain.Shipment
	events    map[string]domain.ShipmentEvent
	messages  map[string]domain.Message
	audits    []domain.AuditLog
	admins    map[string]domain.Admin
	outbox    map[string]outboxEntry
}

type outboxEntry struct {
	record      ports.OutboxRecord
	publishedAt *time.Time
	retryCount  int
	lastError   string
}

func newStore() *store {
	return &store{
		shipments: make(map[string]domain.Shipment),
		events:    make(map[string]domain.ShipmentEvent),
		messages:  make(map[string]domain.Message),
		admins:    make(map[string]domain.Admin),
		outbox:    make(map[string]outboxEntry),
	}
}

type ShipmentRepository struct {
	store *store
}

func (r *ShipmentRepository) Create(_ context.Context, shipment domain.Shipment, seed domain.ShipmentEvent, outbox ports.OutboxRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.shipments {
		if existing.TrackingNumber == shipment.TrackingNumber {
			return domain.ErrConflict
		}
	}
	r.store.shipments[shipment.ShipmentID] = shipment
	r.store.events[seed.EventID] = seed
	r.store.outbox[outbox.OutboxID] = outboxEntry{record: outbox}
	return nil
}

func (r *ShipmentRepository) GetByID(_ context.Context, shipmentID string) (domain.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	shipment, ok := r.store.shipments[shipmentID]
	if !ok {
		return domain.Shipment{}, domain.ErrNotFound
	}
	return shipment, nil
}

func (r *ShipmentRepository) GetByTrackingNumber(_ context.Context, trackingNumber string) (domain.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, shipment := range r.store.shipments {
		if shipment.TrackingNumber == trackingNumber {
			return shipment, nil
		}
	}
	return domain.Shipment{}, domain.ErrNotFound
}

func (r *ShipmentRepository) Update(_ context.Context, shipment domain.Shipment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.shipments[shipment.ShipmentID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.store.shipments {
		if id != shipment.ShipmentID && existing.TrackingNumber == shipment.TrackingNumber {
			return domain.ErrConflict
		}
	}
	r.store.shipments[shipment.ShipmentID] = shipment
	return nil
}

func (r *ShipmentRepository) UpdateStatus(_ context.Context, shipmentID string, status domain.ShipmentStatus, at time.Time, outbox *ports.OutboxRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	shipment, ok := r.store.shipments[shipmentID]
	if !ok {
		return domain.ErrNotFound
	}
	shipment.Status = status
	shipment.UpdatedAt = at
	r.store.shipments[shipmentID] = shipment
	if outbox != nil {
		r.store.outbox[outbox.OutboxID] = outboxEntry{record: *outbox}
	}
	return nil
}

func (r *ShipmentRepository) Delete(_ context.Context, shipmentID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.shipments[shipmentID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.shipments, shipmentID)
	for id, event := range r.store.events {
		if event.ShipmentID == shipmentID {
			delete(r.store.events, id)
		}
	}
	for id, message := range r.store.messages {
		if message.ShipmentID == shipmentID {
			delete(r.store.messages, id)
		}
	}
	return nil
}

func (r *ShipmentRepository) ListByAdmin(_ context.Context, adminID string) ([]domain.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]domain.Shipment, 0)
	for _, shipment := range r.store.shipments {
		if adminID != "" && shipment.AdminID != adminID {
			continue
		}
		result = append(result, shipment)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *ShipmentRepository) CountByAdmin(_ context.Context, adminID string, status domain.ShipmentStatus) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, shipment := range r.store.shipments {
		if adminID != "" && shipment.AdminID != adminID {
			continue
		}
		if status != "" && shipment.Status != status {
			continue
		}
		count++
	}
	return count, nil
}

type ShipmentEventRepository struct {
	store *store
}

func (r *ShipmentEventRepository) AppendWithStatus(_ context.Context, event domain.ShipmentEvent, status domain.ShipmentStatus, outbox *ports.OutboxRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	shipment, ok := r.store.shipments[event.ShipmentID]
	if !ok {
		return domain.ErrNotFound
	}
	r.store.events[event.EventID] = event
	shipment.Status = status
	shipment.UpdatedAt = event.CreatedAt
	r.store.shipments[event.ShipmentID] = shipment
	if outbox != nil {
		r.store.outbox[outbox.OutboxID] = outboxEntry{record: *outbox}
	}
	return nil
}

func (r *ShipmentEventRepository) GetByID(_ context.Context, shipmentID, eventID string) (domain.ShipmentEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	event, ok := r.store.events[eventID]
	if !ok || event.ShipmentID != shipmentID {
		return domain.ShipmentEvent{}, domain.ErrNotFound
	}
	return event, nil
}

func (r *ShipmentEventRepository) Update(_ context.Context, event domain.ShipmentEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.events[event.EventID]
	if !ok || existing.ShipmentID != event.ShipmentID {
		return domain.ErrNotFound
	}
	r.store.events[event.EventID] = event
	return nil
}

func (r *ShipmentEventRepository) ListByShipment(_ context.Context, shipmentID string) ([]domain.ShipmentEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]domain.ShipmentEvent, 0)
	for _, event := range r.store.events {
		if event.ShipmentID == shipmentID {
			result = append(result, event)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type MessageRepository struct {
	store *store
}

func (r *MessageRepository) Create(_ context.Context, message domain.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.messages[message.MessageID] = message
	return nil
}

func (r *MessageRepository) ListByShipment(_ context.Context, shipmentID string) ([]domain.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]domain.Message, 0)
	for _, message := range r.store.messages {
		if message.ShipmentID == shipmentID {
			result = append(result, message)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MessageRepository) MarkClientRead(_ context.Context, shipmentID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var marked int64
	for id, message := range r.store.messages {
		if message.ShipmentID != shipmentID || message.Sender != domain.SenderClient || message.IsRead {
			continue
		}
		message.IsRead = true
		r.store.messages[id] = message
		marked++
	}
	return marked, nil
}

func (r *MessageRepository) ListUnreadClient(_ context.Context) ([]domain.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]domain.Message, 0)
	for _, message := range r.store.messages {
		if message.Sender == domain.SenderClient && !message.IsRead {
			result = append(result, message)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type AuditLogRepository struct {
	store *store
}

func (r *AuditLogRepository) Append(_ context.Context, entry domain.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.audits = append(r.store.audits, entry)
	return nil
}

// Entries returns a snapshot of the appended audit log, oldest first.
func (r *AuditLogRepository) Entries() []domain.AuditLog {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]domain.AuditLog, len(r.store.audits))
	copy(out, r.store.audits)
	return out
}

type AdminRepository struct {
	store *store
}

func (r *AdminRepository) Create(_ context.Context, admin domain.Admin) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.admins {
		if existing.Email == admin.Email {
			return domain.ErrConflict
		}
	}
	r.store.admins[admin.AdminID] = admin
	return nil
}

func (r *AdminRepository) GetByEmail(_ context.Context, email string) (domain.Admin, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, admin := range r.store.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return domain.Admin{}, domain.ErrNotFound
}

func (r *AdminRepository) GetByID(_ context.Context, adminID string) (domain.Admin, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	admin, ok := r.store.admins[adminID]
	if !ok {
		return domain.Admin{}, domain.ErrNotFound
	}
	return admin, nil
}

func (r *AdminRepository) List(_ context.Context) ([]domain.Admin, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]domain.Admin, 0, len(r.store.admins))
	for _, admin := range r.store.admins {
		result = append(result, admin)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

type OutboxRepository struct {
	store *store
}

func (r *OutboxRepository) FetchUnpublished(_ context.Context, limit int) ([]ports.OutboxRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]ports.OutboxRecord, 0)
	for _, entry := range r.store.outbox {
		if entry.publishedAt == nil {
			result = append(result, entry.record)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *OutboxRepository) MarkPublished(_ context.Context, outboxID string, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	entry, ok := r.store.outbox[outboxID]
	if !ok {
		return domain.ErrNotFound
	}
	entry.publishedAt = &at
	r.store.outbox[outboxID] = entry
	return nil
}

func (r *OutboxRepository) MarkFailed(_ context.Context, outboxID, reason string, _ time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	entry, ok := r.store.outbox[outboxID]
	if !ok {
		return domain.ErrNotFound
	}
	entry.retryCount++
	entry.lastError = reason
	r.store.outbox[outboxID] = entry
	return nil
}
