// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Tests that need a database skip themselves unless DATABASE_URL (or
// TASKREPORT_TEST_DB_URL) is set. The schema is migrated once per process
// with the embedded goose migrations, and each test runs inside its own
// transaction that is rolled back when the test finishes, so tests can use
// t.Parallel without seeing each other's rows.
//
//	func TestReportStore_Postgres(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
//	        writer := sqlstore.NewTaskWriter(tx, postgres.Dialect(), nil)
//	        // insert fixtures and assert against the store
//	    })
//	}
package testdb
