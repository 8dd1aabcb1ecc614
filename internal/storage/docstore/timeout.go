package docstore

import (
	"context"
	"time"
)

// WithTimeout bounds every collection call made through s by d. Transactions
// are not bounded as a whole.
func WithTimeout(s Store, d time.Duration) Store {
	if d <= 0 {
		return s
	}
	return &timeoutStore{Store: s, d: d}
}

type timeoutStore struct {
	Store
	d time.Duration
}

func (s *timeoutStore) Collection(name string) Collection {
	return &timeoutCollection{c: s.Store.Collection(name), d: s.d}
}

type timeoutCollection struct {
	c Collection
	d time.Duration
}

func (c *timeoutCollection) Insert(ctx context.Context, id string, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, c.d)
	defer cancel()
	return c.c.Insert(ctx, id, doc)
}

func (c *timeoutCollection) Get(ctx context.Context, id string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.d)
	defer cancel()
	return c.c.Get(ctx, id, out)
}

func (c *timeoutCollection) Find(ctx context.Context, q Query, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.d)
	defer cancel()
	return c.c.Find(ctx, q, out)
}

func (c *timeoutCollection) Patch(ctx context.Context, id string, fields map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, c.d)
	defer cancel()
	return c.c.Patch(ctx, id, fields)
}

func (c *timeoutCollection) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, c.d)
	defer cancel()
	return c.c.Delete(ctx, id)
}
