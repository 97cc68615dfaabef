package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/atlaslogistics/shipment-tracking/internal/domain"
	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

const statusChangedEventType = "shipment.status_changed"

type Config struct {
	TokenTTL         time.Duration
	TrackingCacheTTL time.Duration
	NotifyTimeout    time.Duration
}

type Dependencies struct {
	Config    Config
	Logger    *slog.Logger
	Shipments ports.ShipmentRepository
	Events    ports.ShipmentEventRepository
	Messages  ports.MessageRepository
	AuditLogs ports.AuditLogRepository
	Admins    ports.AdminRepository
	Hasher    ports.PasswordHasher
	Signer    ports.TokenSigner
	Notifier  ports.NotificationSender
	Cache     ports.TrackingCache
}

// Service implements the shipment-tracking use-cases. Authorization and
// validation run before any mutation; audit, email, and cache side effects
// run after and never fail the primary operation.
type Service struct {
	cfg       Config
	logger    *slog.Logger
	shipments ports.ShipmentRepository
	events    ports.ShipmentEventRepository
	messages  ports.MessageRepository
	auditLogs ports.AuditLogRepository
	admins    ports.AdminRepository
	hasher    ports.PasswordHasher
	signer    ports.TokenSigner
	notifier  ports.NotificationSender
	cache     ports.TrackingCache
	nowFn     func() time.Time
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	if cfg.TrackingCacheTTL <= 0 {
		cfg.TrackingCacheTTL = 30 * time.Second
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 10 * time.Second
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:       cfg,
		logger:    logger.With("module", "application", "layer", "service"),
		shipments: deps.Shipments,
		events:    deps.Events,
		messages:  deps.Messages,
		auditLogs: deps.AuditLogs,
		admins:    deps.Admins,
		hasher:    deps.Hasher,
		signer:    deps.Signer,
		notifier:  deps.Notifier,
		cache:     deps.Cache,
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(nowFn func() time.Time) *Service {
	s.nowFn = nowFn
	return s
}

// authorizeShipment resolves the gate shared by every per-shipment
// operation: the caller must be an admin, the shipment must exist, and the
// caller must own it unless SUPER_ADMIN. Role and ownership mismatches
// return the same unauthorized signal; unknown ids stay NotFound.
func (s *Service) authorizeShipment(ctx context.Context, actor Actor, shipmentID string) (domain.Shipment, error) {
	if !actor.IsAdmin() {
		return domain.Shipment{}, domain.ErrUnauthorized
	}
	shipment, err := s.shipments.GetByID(ctx, shipmentID)
	if err != nil {
		return domain.Shipment{}, err
	}
	if !actor.IsSuperAdmin() && shipment.AdminID != actor.AdminID {
		return domain.Shipment{}, domain.ErrUnauthorized
	}
	return shipment, nil
}

// scopeAdminID resolves the "view as" override: only SUPER_ADMIN may query
// another admin's data, everyone else is pinned to their own id.
func (s *Service) scopeAdminID(actor Actor, viewAs string) string {
	if viewAs != "" && actor.IsSuperAdmin() {
		return viewAs
	}
	return actor.AdminID
}

// audit appends a best-effort audit entry. Failures are logged, never
// returned.
func (s *Service) audit(ctx context.Context, adminID, action, entityID string, details map[string]any) {
	if s.auditLogs == nil {
		return
	}
	var serialized string
	if details != nil {
		raw, err := json.Marshal(details)
		if err == nil {
			serialized = string(raw)
		}
	}
	entry := domain.AuditLog{
		AuditID:   domain.NewAuditID(),
		AdminID:   adminID,
		Action:    action,
		EntityID:  entityID,
		Details:   serialized,
		CreatedAt: s.nowFn(),
	}
	if err := s.auditLogs.Append(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "audit append failed",
			"operation", "audit",
			"outcome", "failure",
			"action", action,
			"entity_id", entityID,
			"error", err,
		)
	}
}

// notify dispatches a customer status email on a detached context so a
// slow or failing sink never blocks or fails the triggering request.
func (s *Service) notify(n ports.StatusNotification) {
	if s.notifier == nil || n.To == "" {
		return
	}
	logger := s.logger
	timeout := s.cfg.NotifyTimeout
	notifier := s.notifier
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := notifier.SendStatusUpdate(ctx, n); err != nil {
			logger.ErrorContext(ctx, "status notification failed",
				"operation", "notify",
				"outcome", "failure",
				"tracking_number", n.TrackingNumber,
				"error", err,
			)
		}
	}()
}

func (s *Service) invalidateTracking(ctx context.Context, trackingNumber string) {
	if s.cache == nil || trackingNumber == "" {
		return
	}
	if err := s.cache.Invalidate(ctx, trackingNumber); err != nil {
		s.logger.WarnContext(ctx, "tracking cache invalidation failed",
			"operation", "invalidate_tracking",
			"outcome", "failure",
			"tracking_number", trackingNumber,
			"error", err,
		)
	}
}

func (s *Service) statusChangeRecord(shipment domain.Shipment, status domain.ShipmentStatus, at time.Time) ports.OutboxRecord {
	payload, _ := json.Marshal(map[string]any{
		"shipment_id":     shipment.ShipmentID,
		"tracking_number": shipment.TrackingNumber,
		"admin_id":        shipment.AdminID,
		"status":          status,
		"changed_at":      at.UTC().Format(time.RFC3339),
	})
	return ports.OutboxRecord{
		OutboxID:     uuid.NewString(),
		EventType:    statusChangedEventType,
		PartitionKey: shipment.ShipmentID,
		Payload:      payload,
		CreatedAt:    at,
	}
}
