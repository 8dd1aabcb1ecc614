package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tuanvumaihuynh/shop-admin/internal/config"
	"github.com/tuanvumaihuynh/shop-admin/internal/log"
	"github.com/tuanvumaihuynh/shop-admin/internal/relay"
	"github.com/tuanvumaihuynh/shop-admin/internal/repository"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/mq"
	"github.com/tuanvumaihuynh/shop-admin/internal/telemetry"
	"github.com/tuanvumaihuynh/shop-admin/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running relay application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log   config.Log
		Store config.Store
		Relay config.Relay
		Kafka config.Kafka
		Otel  config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	if cfg.Store.Driver == config.StoreDriverMemory {
		return fmt.Errorf("relay cannot share an in-memory store with the api, use %s or %s",
			config.StoreDriverMongo, config.StoreDriverPostgres)
	}

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	store, closeStore, err := storage.Open(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("error opening store: %w", err)
	}
	defer closeStore(ctx)
	store = docstore.WithTimeout(store, cfg.Store.OpTimeout)

	kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("error creating kafka producer: %w", err)
	}
	defer kafkaProducer.Close()

	outboxMsgRepository := repository.NewOutboxMsgRepository(store)

	interruptChan := cmdutil.InterruptChan()

	svc := relay.NewService(cfg.Relay, logger, store, outboxMsgRepository, kafkaProducer)
	cleanup := svc.Run(ctx)
	logger.InfoContext(ctx, "relay service started")

	<-interruptChan

	logger.InfoContext(ctx, "relay service is shutting down")
	cleanup()

	logger.InfoContext(ctx, "relay service is stopped")

	return nil
}
