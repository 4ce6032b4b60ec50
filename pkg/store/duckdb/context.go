package duckdb

import (
	"context"
	"database/sql"
)

type txKey struct{}

// WithTransaction binds tx to the context so store methods further down
// the call chain execute inside it instead of on the shared pool.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTransaction returns the bound transaction, or nil when the caller
// did not open one.
func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
