package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/shop-admin/internal/config"
	"github.com/tuanvumaihuynh/shop-admin/internal/event"
	"github.com/tuanvumaihuynh/shop-admin/internal/http"
	"github.com/tuanvumaihuynh/shop-admin/internal/log"
	"github.com/tuanvumaihuynh/shop-admin/internal/relay"
	"github.com/tuanvumaihuynh/shop-admin/internal/repository"
	"github.com/tuanvumaihuynh/shop-admin/internal/service"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/mq"
	"github.com/tuanvumaihuynh/shop-admin/internal/telemetry"
	"github.com/tuanvumaihuynh/shop-admin/pkg/cmdutil"
	"github.com/tuanvumaihuynh/shop-admin/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running standalone application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log       config.Log
		Store     config.Store
		HTTP      config.HTTP
		Relay     config.Relay
		Kafka     config.Kafka
		Otel      config.Otel
		Inventory config.Inventory
		Order     config.Order
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

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

	kafkaConsumer, err := mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
	if err != nil {
		return fmt.Errorf("error creating kafka consumer: %w", err)
	}
	defer kafkaConsumer.Close()

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	productRepository := repository.NewProductRepository(store)
	orderRepository := repository.NewOrderRepository(store)
	customerRepository := repository.NewCustomerRepository(store)
	businessInfoRepository := repository.NewBusinessInfoRepository(store)
	outboxMsgRepository := repository.NewOutboxMsgRepository(store)

	customerService := service.NewCustomerService(store, v, customerRepository)
	services := http.Services{
		Product:      service.NewProductService(store, v, productRepository, outboxMsgRepository),
		Order:        service.NewOrderService(cfg.Order, cfg.Inventory, store, v, orderRepository, productRepository, customerRepository, outboxMsgRepository),
		Customer:     customerService,
		BusinessInfo: service.NewBusinessInfoService(store, v, businessInfoRepository),
		Dashboard:    service.NewDashboardService(cfg.Inventory, cfg.Order, productRepository, orderRepository, customerRepository),
	}

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		svc := event.New(logger, kafkaConsumer, customerService)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running event service: %w", err))
		}
		logger.InfoContext(ctx, "event service started")

		<-interruptChan

		logger.InfoContext(ctx, "event service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "event service is stopped")
	})

	wg.Go(func() {
		svc := http.New(cfg.HTTP, logger, store, services)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Go(func() {
		svc := relay.NewService(cfg.Relay, logger, store, outboxMsgRepository, kafkaProducer)
		cleanup := svc.Run(ctx)
		logger.InfoContext(ctx, "relay service started")

		<-interruptChan

		logger.InfoContext(ctx, "relay service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "relay service is stopped")
	})

	wg.Wait()

	return nil
}
