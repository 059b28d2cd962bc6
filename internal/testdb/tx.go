package testdb

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// WithTx runs fn inside a transaction that is always rolled back, so the
// test leaves no rows behind.
func WithTx(t *testing.T, db *sqlx.DB, fn func(t *testing.T, tx *sqlx.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "test database unreachable before transaction")

	tx, err := db.Beginx()
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if p := recover(); p != nil {
			AssertRollbackNoError(t, tx)
			panic(p)
		}
		AssertRollbackNoError(t, tx)
	}()

	fn(t, tx)
}

// AssertRollbackNoError rolls tx back, tolerating an already finished
// transaction.
func AssertRollbackNoError(t *testing.T, tx *sqlx.Tx) {
	t.Helper()
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		t.Logf("warning: failed to roll back transaction: %v", err)
	}
}
