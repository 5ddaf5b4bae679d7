package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type contextKey string

const (
	// TxKey is the context key for the transaction of the current unit of work.
	TxKey contextKey = "tx"
)

// GetQuerier retrieves the transaction of the current unit of work from context.
// Returns nil and false if not present.
func GetQuerier(ctx context.Context) (Querier, bool) {
	q, ok := ctx.Value(TxKey).(Querier)
	return q, ok
}

// SetQuerier stores q in context for repositories to pick up.
func SetQuerier(ctx context.Context, q Querier) context.Context {
	return context.WithValue(ctx, TxKey, q)
}

// WithTx runs fn inside one transaction: commit if fn returns nil, rollback
// otherwise. The transaction is reachable from fn's context via GetQuerier.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return pgx.BeginFunc(ctx, db.Conn, func(tx pgx.Tx) error {
		return fn(SetQuerier(ctx, tx))
	})
}
