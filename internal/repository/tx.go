package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the query surface shared by *pgxpool.Pool and pgx.Tx, so a repository
// can run either standalone or inside a caller-owned transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// withTx executes fn within a transaction if the repository was created with a pool,
// or uses the existing transaction if the repository was created with a transaction.
func withTx[T any](ctx context.Context, db DB, fn func(tx pgx.Tx) (T, error)) (_ T, txErr error) {
	var zero T

	// Already in a transaction, just use it.
	if tx, ok := db.(pgx.Tx); ok {
		return fn(tx)
	}

	// Must be a pool, create a new transaction.
	pool, ok := db.(*pgxpool.Pool)
	if !ok {
		return zero, fmt.Errorf("db is neither pgx.Tx nor *pgxpool.Pool: %T", db)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return zero, err
	}

	// Ensure proper rollback handling.
	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	result, err := fn(tx)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, err
	}

	return result, nil
}
