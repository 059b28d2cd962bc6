package testdb

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/withoutfanfare/developer-test/internal/config"
	"github.com/withoutfanfare/developer-test/internal/platform/postgres"
	"github.com/withoutfanfare/developer-test/internal/platform/sqlstore"
)

// TestTimeout bounds connection and migration work in tests.
const TestTimeout = 5 * time.Second

var (
	migrateOnce sync.Once
	migrateErr  error
)

// GetTestDBWithT opens the test database, applies migrations once per
// process and closes the connection when t finishes. It skips t when no
// database is configured.
func GetTestDBWithT(t *testing.T) *sqlx.DB {
	t.Helper()
	if ShouldSkipDatabaseTest() {
		t.Skip("DATABASE_URL not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, config.DatabaseConfig{URL: GetTestDatabaseURL(), MaxOpenConns: 4}, nil)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(func() { CleanupDB(t, db) })

	migrateOnce.Do(func() {
		migrateErr = sqlstore.Migrate(db, postgres.Dialect(), "up", nil)
	})
	require.NoError(t, migrateErr, "failed to migrate test database")

	return sqlx.NewDb(db, postgres.DriverName)
}

// CleanupDB closes db, logging rather than failing on error.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := db.Close(); err != nil {
		t.Logf("warning: failed to close test database: %v", err)
	}
}
