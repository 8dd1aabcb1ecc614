// Package mongostore maps docstore collections onto MongoDB collections.
// Transactions need a replica set or sharded cluster.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
)

var _ docstore.Store = (*Store)(nil)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func New(client *mongo.Client, database string) *Store {
	return &Store{client: client, db: client.Database(database)}
}

func (s *Store) Collection(name string) docstore.Collection {
	return &collection{coll: s.db.Collection(name)}
}

// WithTx runs fn inside a session transaction. The driver retries fn on
// transient transaction errors, so fn may run more than once.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

type collection struct {
	coll *mongo.Collection
}

func (c *collection) Insert(ctx context.Context, id string, doc any) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert %s/%s: %w", c.coll.Name(), id, docstore.ErrDuplicateID)
		}
		return fmt.Errorf("insert %s/%s: %w", c.coll.Name(), id, err)
	}
	return nil
}

func (c *collection) Get(ctx context.Context, id string, out any) error {
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("get %s/%s: %w", c.coll.Name(), id, docstore.ErrNotFound)
		}
		return fmt.Errorf("get %s/%s: %w", c.coll.Name(), id, err)
	}
	return nil
}

func (c *collection) Find(ctx context.Context, q docstore.Query, out any) error {
	filter, err := buildFilter(q.Where)
	if err != nil {
		return err
	}

	order := 1
	if q.Desc {
		order = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: order}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *collection) Patch(ctx context.Context, id string, fields map[string]any) error {
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("patch %s/%s: %w", c.coll.Name(), id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("patch %s/%s: %w", c.coll.Name(), id, docstore.ErrNotFound)
	}
	return nil
}

func (c *collection) Delete(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", c.coll.Name(), id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete %s/%s: %w", c.coll.Name(), id, docstore.ErrNotFound)
	}
	return nil
}

func buildFilter(conds []docstore.Condition) (bson.M, error) {
	filter := bson.M{}
	for _, cond := range conds {
		switch cond.Op {
		case docstore.OpEq:
			filter[cond.Field] = cond.Value
		case docstore.OpNotExists:
			filter[cond.Field] = bson.M{"$exists": false}
		default:
			return nil, fmt.Errorf("unsupported operator %d", cond.Op)
		}
	}
	return filter, nil
}
