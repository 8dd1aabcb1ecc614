package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tuanvumaihuynh/shop-admin/internal/config"
	"github.com/tuanvumaihuynh/shop-admin/internal/log"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running migrate application: %v\n", err)
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

	logger.InfoContext(ctx, "starting store migration")

	if err := storage.Migrate(ctx, cfg.Store, logger); err != nil {
		return fmt.Errorf("error migrating store: %w", err)
	}

	logger.InfoContext(ctx, "store migration completed successfully")

	return nil
}
