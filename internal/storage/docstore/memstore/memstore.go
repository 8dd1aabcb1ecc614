// Package memstore is an in-process docstore.Store keeping documents as JSON.
// Transactions are serialized and rolled back by restoring a snapshot, so a
// write made outside a transaction while one is running can be lost on
// rollback; it is meant for local runs and tests.
package memstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
)

var _ docstore.Store = (*Store)(nil)

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data map[string]map[string]json.RawMessage
}

func New() *Store {
	return &Store{data: map[string]map[string]json.RawMessage{}}
}

type txKey struct{}

func (s *Store) Collection(name string) docstore.Collection {
	return &collection{s: s, name: name}
}

func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}

	return nil
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) snapshot() map[string]map[string]json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]map[string]json.RawMessage, len(s.data))
	for name, docs := range s.data {
		out[name] = maps.Clone(docs)
	}
	return out
}

type collection struct {
	s    *Store
	name string
}

func (c *collection) Insert(_ context.Context, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	docs, ok := c.s.data[c.name]
	if !ok {
		docs = map[string]json.RawMessage{}
		c.s.data[c.name] = docs
	}
	if _, exists := docs[id]; exists {
		return fmt.Errorf("insert %s/%s: %w", c.name, id, docstore.ErrDuplicateID)
	}
	docs[id] = raw

	return nil
}

func (c *collection) Get(_ context.Context, id string, out any) error {
	c.s.mu.RLock()
	raw, ok := c.s.data[c.name][id]
	c.s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("get %s/%s: %w", c.name, id, docstore.ErrNotFound)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	return nil
}

func (c *collection) Find(_ context.Context, q docstore.Query, out any) error {
	c.s.mu.RLock()
	docs := c.s.data[c.name]
	ids := slices.Sorted(maps.Keys(docs))
	if q.Desc {
		slices.Reverse(ids)
	}

	matched := make([][]byte, 0, len(ids))
	for _, id := range ids {
		if q.Limit > 0 && len(matched) == q.Limit {
			break
		}
		ok, err := matches(docs[id], q.Where)
		if err != nil {
			c.s.mu.RUnlock()
			return err
		}
		if ok {
			matched = append(matched, docs[id])
		}
	}
	c.s.mu.RUnlock()

	arr := append([]byte{'['}, bytes.Join(matched, []byte{','})...)
	arr = append(arr, ']')
	if err := json.Unmarshal(arr, out); err != nil {
		return fmt.Errorf("unmarshal documents: %w", err)
	}
	return nil
}

func (c *collection) Patch(_ context.Context, id string, fields map[string]any) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	raw, ok := c.s.data[c.name][id]
	if !ok {
		return fmt.Errorf("patch %s/%s: %w", c.name, id, docstore.ErrNotFound)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	for k, v := range fields {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal field %s: %w", k, err)
		}
		doc[k] = b
	}

	patched, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	c.s.data[c.name][id] = patched

	return nil
}

func (c *collection) Delete(_ context.Context, id string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.data[c.name][id]; !ok {
		return fmt.Errorf("delete %s/%s: %w", c.name, id, docstore.ErrNotFound)
	}
	delete(c.s.data[c.name], id)

	return nil
}

func matches(raw json.RawMessage, conds []docstore.Condition) (bool, error) {
	if len(conds) == 0 {
		return true, nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false, fmt.Errorf("unmarshal document: %w", err)
	}

	for _, cond := range conds {
		v, exists := doc[cond.Field]
		switch cond.Op {
		case docstore.OpNotExists:
			if exists {
				return false, nil
			}
		case docstore.OpEq:
			var s string
			if !exists || json.Unmarshal(v, &s) != nil || s != cond.Value {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unsupported operator %d", cond.Op)
		}
	}

	return true, nil
}
