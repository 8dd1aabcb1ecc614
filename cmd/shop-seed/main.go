package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tuanvumaihuynh/shop-admin/internal/config"
	"github.com/tuanvumaihuynh/shop-admin/internal/log"
	"github.com/tuanvumaihuynh/shop-admin/internal/repository"
	"github.com/tuanvumaihuynh/shop-admin/internal/service"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
	"github.com/tuanvumaihuynh/shop-admin/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running seed application: %v\n", err)
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
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	store, closeStore, err := storage.Open(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("error opening store: %w", err)
	}
	defer closeStore(ctx)
	store = docstore.WithTimeout(store, cfg.Store.OpTimeout)

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	s := &seeder{
		logger:       logger,
		products:     service.NewProductService(store, v, repository.NewProductRepository(store), repository.NewOutboxMsgRepository(store)),
		customers:    service.NewCustomerService(store, v, repository.NewCustomerRepository(store)),
		businessInfo: service.NewBusinessInfoService(store, v, repository.NewBusinessInfoRepository(store)),
	}

	logger.InfoContext(ctx, "seeding store")

	if err := s.Seed(ctx); err != nil {
		return fmt.Errorf("error seeding store: %w", err)
	}

	logger.InfoContext(ctx, "store seeded successfully")

	return nil
}
