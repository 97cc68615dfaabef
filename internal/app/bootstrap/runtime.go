package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cacheadapter "github.com/atlaslogistics/shipment-tracking/internal/adapters/cache"
	"github.com/atlaslogistics/shipment-tracking/internal/adapters/email"
	eventadapter "github.com/atlaslogistics/shipment-tracking/internal/adapters/events"
	httpadapter "github.com/atlaslogistics/shipment-tracking/internal/adapters/http"
	"github.com/atlaslogistics/shipment-tracking/internal/adapters/memory"
	"github.com/atlaslogistics/shipment-tracking/internal/adapters/postgres"
	"github.com/atlaslogistics/shipment-tracking/internal/adapters/security"
	"github.com/atlaslogistics/shipment-tracking/internal/application"
	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	outbox     *eventadapter.OutboxWorker
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	logger.Info("bootstrapping shipment tracking service", "http_port", cfg.HTTPPort)

	cleanup := func(context.Context) {}

	var (
		shipments ports.ShipmentRepository
		events    ports.ShipmentEventRepository
		messages  ports.MessageRepository
		auditLogs ports.AuditLogRepository
		admins    ports.AdminRepository
		outboxTbl ports.OutboxRepository
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		sqlDB, err := pool.DB()
		if err != nil {
			return nil, fmt.Errorf("gorm sql db: %w", err)
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		repos := postgres.NewRepositories(pool)
		shipments, events, messages = repos.Shipments, repos.Events, repos.Messages
		auditLogs, admins, outboxTbl = repos.Audit, repos.Admins, repos.Outbox
		prev := cleanup
		cleanup = func(ctx context.Context) {
			prev(ctx)
			_ = sqlDB.Close()
		}
	} else {
		logger.Warn("no DATABASE_URL configured, using in-memory storage")
		repos := memory.NewRepositories()
		shipments, events, messages = repos.Shipments, repos.Events, repos.Messages
		auditLogs, admins, outboxTbl = repos.Audit, repos.Admins, repos.Outbox
	}

	var trackingCache ports.TrackingCache
	if cfg.RedisURL != "" {
		redisClient, err := cacheadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			cleanup(ctx)
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			cleanup(ctx)
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		trackingCache = cacheadapter.NewRedisTrackingCache(redisClient)
		prev := cleanup
		cleanup = func(ctx context.Context) {
			prev(ctx)
			_ = redisClient.Close()
		}
	} else {
		trackingCache = cacheadapter.NewLocalTrackingCache()
	}

	tokenSigner, err := security.NewJWTSigner(cfg.JWTKeyID, cfg.JWTPrivateKeyPEM, cfg.JWTPublicKeyPEM)
	if err != nil {
		if !cfg.AllowEphemeralJWT {
			cleanup(ctx)
			return nil, fmt.Errorf("init jwt signer: %w", err)
		}
		logger.Warn("using ephemeral JWT keys for local/dev runtime")
		tokenSigner, err = security.NewEphemeralJWTSigner(cfg.JWTKeyID)
		if err != nil {
			cleanup(ctx)
			return nil, fmt.Errorf("init ephemeral jwt signer: %w", err)
		}
	}

	var notifier ports.NotificationSender
	if cfg.ResendAPIKey != "" {
		notifier = email.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.PublicBaseURL)
	} else {
		notifier = email.NewNoopSender(logger)
	}

	var publisher ports.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, map[string]string{
			"shipment.status_changed": cfg.KafkaTopic,
		})
		if err != nil {
			cleanup(ctx)
			return nil, fmt.Errorf("init kafka publisher: %w", err)
		}
		publisher = kafkaPublisher
		prev := cleanup
		cleanup = func(ctx context.Context) {
			prev(ctx)
			_ = kafkaPublisher.Close()
		}
	} else {
		publisher = eventadapter.NewLoggingPublisher(logger)
	}

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			TokenTTL:         cfg.TokenTTL,
			TrackingCacheTTL: cfg.TrackingCacheTTL,
			NotifyTimeout:    cfg.NotifyTimeout,
		},
		Logger:    logger,
		Shipments: shipments,
		Events:    events,
		Messages:  messages,
		AuditLogs: auditLogs,
		Admins:    admins,
		Hasher:    security.NewBcryptHasher(cfg.BcryptCost),
		Signer:    tokenSigner,
		Notifier:  notifier,
		Cache:     trackingCache,
	})

	handler := httpadapter.NewHandler(svc, tokenSigner)
	router := httpadapter.NewRouter(handler)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	outbox := eventadapter.NewOutboxWorker(
		logger,
		outboxTbl,
		publisher,
		cfg.OutboxPollInterval,
		cfg.OutboxBatchSize,
	)

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		outbox:     outbox,
		cleanupFn:  cleanup,
	}, nil
}

// Run serves HTTP and drains the outbox until a shutdown signal arrives.
func (r *Runtime) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()
	go func() {
		r.logger.Info("outbox worker started")
		if err := r.outbox.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Error("outbox worker stopped", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case err := <-errCh:
		r.logger.Error("server failure", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	cancelWorker()
	r.cleanupFn(shutdownCtx)
	return nil
}
