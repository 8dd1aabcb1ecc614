// Package storage opens the document store selected by configuration.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/shop-admin/internal/config"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/db"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore/memstore"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore/mongostore"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore/pgstore"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/mongodb"
)

type CleanupFunc func(ctx context.Context)

// Open connects to the configured backend. Backend specific settings are read
// from the environment only for the selected driver.
func Open(ctx context.Context, cfg config.Store, logger *slog.Logger) (docstore.Store, CleanupFunc, error) {
	logger = logger.With(slog.String("store_driver", cfg.Driver.String()))

	switch cfg.Driver {
	case config.StoreDriverMongo:
		mongoCfg, err := config.New[config.Mongo]()
		if err != nil {
			return nil, nil, fmt.Errorf("load mongo config: %w", err)
		}

		client, err := mongodb.Connect(ctx, mongoCfg)
		if err != nil {
			return nil, nil, err
		}
		logger.InfoContext(ctx, "connected to document store", slog.String("database", mongoCfg.DB))

		return mongostore.New(client, mongoCfg.DB), func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				logger.ErrorContext(ctx, "error disconnecting mongo", slog.Any("error", err))
			}
		}, nil

	case config.StoreDriverPostgres:
		pgCfg, err := config.New[config.Postgres]()
		if err != nil {
			return nil, nil, fmt.Errorf("load postgres config: %w", err)
		}

		pool, err := db.NewPgxPool(ctx, pgCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("create pgx pool: %w", err)
		}
		logger.InfoContext(ctx, "connected to document store", slog.String("database", pgCfg.DB))

		return pgstore.New(db.NewPostgres(pool)), func(context.Context) { pool.Close() }, nil

	case config.StoreDriverMemory:
		logger.WarnContext(ctx, "using in-memory document store, data is lost on exit")
		return memstore.New(), func(context.Context) {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
}
