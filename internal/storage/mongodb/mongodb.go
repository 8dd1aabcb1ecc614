// Package mongodb connects to MongoDB with a registry that stores
// decimal.Decimal values as Decimal128.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tuanvumaihuynh/shop-admin/internal/config"
)

// Connect opens a client and pings the primary.
func Connect(ctx context.Context, cfg config.Mongo) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetRegistry(NewRegistry()).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// Index is an ascending index over Keys in Collection.
type Index struct {
	Collection string
	Keys       []string
}

// EnsureIndexes creates the indexes that are missing. Existing indexes with
// the same keys are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database, indexes []Index) error {
	for _, idx := range indexes {
		keys := bson.D{}
		for _, k := range idx.Keys {
			keys = append(keys, bson.E{Key: k, Value: 1})
		}

		_, err := db.Collection(idx.Collection).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys})
		if err != nil {
			return fmt.Errorf("create index %s%v: %w", idx.Collection, idx.Keys, err)
		}
	}

	return nil
}
