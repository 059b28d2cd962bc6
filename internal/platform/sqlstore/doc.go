// Package sqlstore implements store.ReportStore and store.TaskWriter over
// database/sql. Queries are written once with '?' placeholders and rebound
// per dialect with sqlx, so the same code serves PostgreSQL in production
// and SQLite in tests and local runs.
//
// A report costs at most six round trips: tasks with owner and assignee in
// one joined query, every comment of those tasks in a second query that
// repeats the same predicate, and one grouped query per aggregate.
package sqlstore
