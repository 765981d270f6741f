package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"profilecard/internal/app"
	"profilecard/internal/config"
	"profilecard/internal/repositories"
	"profilecard/internal/services"
	"profilecard/internal/validation"
	"profilecard/pkg/rabbitmq"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
	logger.Info("server gracefully stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	zcfg.Level = lvl
	return zcfg.Build()
}

// run serves until ctx is canceled, then shuts the server and its backends down.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	store, err := repositories.Open(ctx, cfg.DatabaseURL, cfg.DatabaseName, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Warn("error closing store", zap.Error(err))
		}
	}()

	deps := app.Deps{
		Store:     store,
		Validator: validation.New(cfg.MaxImageBytes),
		Clock:     services.NewClock(nil),
		Logger:    logger,
		BaseURL:   cfg.PublicBaseURL,
		BodyLimit: cfg.BodyLimit,
	}

	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()
		deps.Publisher = mqClient

		if err := mqClient.ConsumeProfileEvents(auditEvent(logger)); err != nil {
			logger.Warn("failed to start RabbitMQ consumer", zap.Error(err))
		}
	} else {
		logger.Info("RABBITMQ_URL not set, profile events disabled")
	}

	server := app.New(deps)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Addr()), zap.String("store", store.Driver))
		errCh <- server.Listen(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	return nil
}

// auditEvent logs every profile event consumed from the queue.
func auditEvent(logger *zap.Logger) func(rabbitmq.ProfileEvent) error {
	return func(event rabbitmq.ProfileEvent) error {
		logger.Info("profile event",
			zap.String("type", event.Type),
			zap.String("kind", event.Kind),
			zap.String("id", event.ID),
			zap.Time("createdAt", event.CreatedAt))
		return nil
	}
}
