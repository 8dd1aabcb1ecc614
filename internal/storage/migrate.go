package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/shop-admin/internal/config"
	"github.com/tuanvumaihuynh/shop-admin/internal/model"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/db"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/mongodb"
)

// MongoIndexes back the equality filters the repositories issue.
var MongoIndexes = []mongodb.Index{
	{Collection: model.CollectionProducts, Keys: []string{"category"}},
	{Collection: model.CollectionOrders, Keys: []string{"customerId"}},
	{Collection: model.CollectionOrders, Keys: []string{"paymentStatus"}},
	{Collection: model.CollectionOrders, Keys: []string{"deliveryStatus"}},
	{Collection: model.CollectionOutboxMessages, Keys: []string{"processedAt"}},
}

// Migrate prepares the configured backend: schema migrations for postgres,
// indexes for mongo. The memory driver needs nothing.
func Migrate(ctx context.Context, cfg config.Store, logger *slog.Logger) error {
	logger = logger.With(slog.String("store_driver", cfg.Driver.String()))

	switch cfg.Driver {
	case config.StoreDriverMongo:
		mongoCfg, err := config.New[config.Mongo]()
		if err != nil {
			return fmt.Errorf("load mongo config: %w", err)
		}

		client, err := mongodb.Connect(ctx, mongoCfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Disconnect(ctx); err != nil {
				logger.ErrorContext(ctx, "error disconnecting mongo", slog.Any("error", err))
			}
		}()

		if err := mongodb.EnsureIndexes(ctx, client.Database(mongoCfg.DB), MongoIndexes); err != nil {
			return fmt.Errorf("ensure mongo indexes: %w", err)
		}
		logger.InfoContext(ctx, "mongo indexes are up to date", slog.Int("count", len(MongoIndexes)))

	case config.StoreDriverPostgres:
		pgCfg, err := config.New[config.Postgres]()
		if err != nil {
			return fmt.Errorf("load postgres config: %w", err)
		}

		pool, err := db.NewPgxPool(ctx, pgCfg)
		if err != nil {
			return fmt.Errorf("create pgx pool: %w", err)
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate postgres: %w", err)
		}
		logger.InfoContext(ctx, "postgres schema is up to date")

	case config.StoreDriverMemory:
		logger.InfoContext(ctx, "in-memory store needs no migration")

	default:
		return fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}

	return nil
}
