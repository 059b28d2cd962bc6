package store

import (
	"context"
	"database/sql"
)

// DBTX is the write surface shared by *sql.DB, *sql.Tx and their sqlx
// wrappers. Seeding passes a transaction; the app passes the pool.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
