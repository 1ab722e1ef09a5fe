package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logger"
	"storefront/internal/metrics"
	"storefront/internal/services"
	"storefront/pkg/payment"
	"storefront/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: "storefront",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	if err := run(cfg, zl); err != nil {
		zl.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	// --- Database ---
	db, err := database.Open(cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("Error closing database", zap.Error(err))
		}
	}()
	if err := database.Migrate(db); err != nil {
		return err
	}

	// --- Order events ---
	var publisher services.EventPublisher
	if cfg.AMQP.Enabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.AMQP.URL}, log.Named("rabbitmq"))
		if err != nil {
			return err
		}
		defer mqClient.Close()
		if err := mqClient.Consume(orderEventHandler(log.Named("order-events"))); err != nil {
			return err
		}
		publisher = mqClient
	} else {
		log.Info("RabbitMQ disabled, order events are not published")
	}

	payments := payment.NewClient(cfg.Payment.BaseURL, cfg.Payment.SecretKey, cfg.Payment.Timeout, log.Named("payment"))

	server := app.New(app.Deps{
		Config:    cfg,
		DB:        db,
		Logger:    log,
		Metrics:   metrics.New(cfg.Metrics.Namespace),
		Publisher: publisher,
		Payments:  payments,
	})

	// Graceful shutdown handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		serverErr <- server.Listen(cfg.Server.Port)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		log.Error("Error during Fiber shutdown", zap.Error(err))
	}
	log.Info("Server gracefully stopped")
	return nil
}

// orderEventHandler logs each order event. Undecodable bodies are rejected so
// the consumer requeues them once.
func orderEventHandler(log *zap.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event map[string]any
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("decode %s event: %w", msg.RoutingKey, err)
		}
		log.Info("Received order event",
			zap.String("routing_key", msg.RoutingKey),
			zap.Any("order_id", event["orderId"]),
			zap.Any("event", event))
		return nil
	}
}
