// Package docstore is the document database seen by repositories: named
// collections of documents addressed by string identifier. Reads return whole
// documents decoded into caller-supplied values; writes insert, patch top-level
// fields, or delete a single document.
package docstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrDuplicateID = errors.New("document id already exists")
)

type Operator uint8

const (
	// OpEq matches documents whose top-level string field equals Value.
	OpEq Operator = iota
	// OpNotExists matches documents without the top-level field.
	OpNotExists
)

type Condition struct {
	Field string
	Op    Operator
	Value string
}

func Eq(field, value string) Condition {
	return Condition{Field: field, Op: OpEq, Value: value}
}

func NotExists(field string) Condition {
	return Condition{Field: field, Op: OpNotExists}
}

// Query selects documents matching all conditions. Results are ordered by
// identifier (ascending unless Desc); Limit <= 0 means no limit.
type Query struct {
	Where []Condition
	Desc  bool
	Limit int
}

type Collection interface {
	// Insert stores doc under id. doc must encode its identifier as "id"
	// (JSON) / "_id" (BSON) with the same value.
	Insert(ctx context.Context, id string, doc any) error
	// Get decodes the document with the given id into out.
	Get(ctx context.Context, id string, out any) error
	// Find decodes the matching documents into out, a pointer to a slice.
	Find(ctx context.Context, q Query, out any) error
	// Patch replaces the given top-level fields of one document.
	Patch(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

type Store interface {
	Collection(name string) Collection
	// WithTx runs fn in a transaction. Collection calls made with the context
	// passed to fn take part in it; nested calls join the outer transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Ping(ctx context.Context) error
}
