package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Executor is satisfied by the pool and by an open transaction alike, so
// repository methods run the same way in and out of a transaction.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ExecutorFactory interface {
	NewExecutor() Executor
}

type TransactionFactory interface {
	Transaction(ctx context.Context, fn func(tx Executor) error) error
}

type beginner interface {
	Executor
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Database hands out executors over a pgx pool (or anything that can begin a
// transaction, such as a pgxmock pool).
type Database struct {
	pool beginner
}

func NewDatabase(pool beginner) *Database {
	return &Database{pool: pool}
}

func (db *Database) NewExecutor() Executor {
	return db.pool
}

// Transaction runs fn in a transaction, committed when fn returns nil and
// rolled back otherwise.
func (db *Database) Transaction(ctx context.Context, fn func(tx Executor) error) error {
	return pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		return fn(tx)
	})
}

// InTransaction is a helper for transactions returning a value.
func InTransaction[T any](ctx context.Context, factory TransactionFactory, fn func(tx Executor) (T, error)) (T, error) {
	var value T
	err := factory.Transaction(ctx, func(tx Executor) error {
		var fnErr error
		value, fnErr = fn(tx)
		return fnErr
	})
	return value, err
}
