// Package pgstore keeps documents as JSONB rows of a single PostgreSQL table
// keyed by (collection, id).
package pgstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tuanvumaihuynh/shop-admin/internal/storage/db"
	"github.com/tuanvumaihuynh/shop-admin/internal/storage/docstore"
)

const uniqueViolation = "23505"

var _ docstore.Store = (*Store)(nil)

// Conn is the connection documents are read and written through.
type Conn interface {
	db.DB
	Ping(ctx context.Context) error
}

type Store struct {
	conn Conn
}

func New(conn Conn) *Store {
	return &Store{conn: conn}
}

type txKey struct{}

func (s *Store) db(ctx context.Context) db.DB {
	if tx, ok := ctx.Value(txKey{}).(db.DB); ok {
		return tx
	}
	return s.conn
}

func (s *Store) Collection(name string) docstore.Collection {
	return &collection{s: s, name: name}
}

func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.db(ctx).WithTx(ctx, func(tx db.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (s *Store) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

type collection struct {
	s    *Store
	name string
}

func (c *collection) Insert(ctx context.Context, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	_, err = c.s.db(ctx).Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)`,
		c.name, id, data)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("insert %s/%s: %w", c.name, id, docstore.ErrDuplicateID)
		}
		return fmt.Errorf("insert %s/%s: %w", c.name, id, err)
	}

	return nil
}

func (c *collection) Get(ctx context.Context, id string, out any) error {
	var data []byte
	err := c.s.db(ctx).QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		c.name, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("get %s/%s: %w", c.name, id, docstore.ErrNotFound)
		}
		return fmt.Errorf("get %s/%s: %w", c.name, id, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	return nil
}

func (c *collection) Find(ctx context.Context, q docstore.Query, out any) error {
	sql, args, err := buildFind(c.name, q)
	if err != nil {
		return err
	}

	rows, err := c.s.db(ctx).Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("find %s: %w", c.name, err)
	}

	docs, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return fmt.Errorf("find %s: %w", c.name, err)
	}

	arr := append([]byte{'['}, bytes.Join(docs, []byte{','})...)
	arr = append(arr, ']')
	if err := json.Unmarshal(arr, out); err != nil {
		return fmt.Errorf("unmarshal documents: %w", err)
	}
	return nil
}

func (c *collection) Patch(ctx context.Context, id string, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal patch: %w", err)
	}

	tag, err := c.s.db(ctx).Exec(ctx,
		`UPDATE documents SET data = data || $3::jsonb, updated_at = NOW()
		 WHERE collection = $1 AND id = $2`,
		c.name, id, patch)
	if err != nil {
		return fmt.Errorf("patch %s/%s: %w", c.name, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("patch %s/%s: %w", c.name, id, docstore.ErrNotFound)
	}

	return nil
}

func (c *collection) Delete(ctx context.Context, id string) error {
	tag, err := c.s.db(ctx).Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`, c.name, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", c.name, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %s/%s: %w", c.name, id, docstore.ErrNotFound)
	}

	return nil
}

func buildFind(collection string, q docstore.Query) (string, []any, error) {
	var sb strings.Builder
	args := []any{collection}

	sb.WriteString(`SELECT data FROM documents WHERE collection = $1`)
	for _, cond := range q.Where {
		switch cond.Op {
		case docstore.OpEq:
			args = append(args, cond.Field, cond.Value)
			fmt.Fprintf(&sb, ` AND data @> jsonb_build_object($%d::text, $%d::text)`, len(args)-1, len(args))
		case docstore.OpNotExists:
			args = append(args, cond.Field)
			fmt.Fprintf(&sb, ` AND NOT (data ? $%d)`, len(args))
		default:
			return "", nil, fmt.Errorf("unsupported operator %d", cond.Op)
		}
	}

	if q.Desc {
		sb.WriteString(` ORDER BY id DESC`)
	} else {
		sb.WriteString(` ORDER BY id ASC`)
	}

	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}

	return sb.String(), args, nil
}
