// Package db holds the PostgreSQL connection used by the postgres document
// store: a pgx pool with tracing, nestable transactions and goose migrations.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is satisfied by the pool and by an open transaction.
type DB interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row

	// WithTx runs txFunc in a transaction. Called on a transaction it opens
	// a savepoint, so a failing inner block rolls back alone.
	WithTx(ctx context.Context, txFunc func(DB) error) error
}

var _ DB = (*Postgres)(nil)

// Postgres wraps the pool shared by every document collection.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}

func (p *Postgres) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

func (p *Postgres) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

func (p *Postgres) WithTx(ctx context.Context, txFunc func(DB) error) error {
	return runTx(ctx, p.pool.Begin, txFunc)
}

func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

type tx struct {
	pgx.Tx
}

func (t *tx) WithTx(ctx context.Context, txFunc func(DB) error) error {
	return runTx(ctx, t.Begin, txFunc)
}

func runTx(ctx context.Context, begin func(context.Context) (pgx.Tx, error), txFunc func(DB) error) (err error) {
	t, err := begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := t.Rollback(ctx); !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	if err = txFunc(&tx{Tx: t}); err != nil {
		return err
	}

	if err = t.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
