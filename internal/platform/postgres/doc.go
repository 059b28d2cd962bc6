// Package postgres opens PostgreSQL connections through the pgx stdlib
// driver, supplies the sqlstore dialect for them, and embeds the goose
// migrations that create the task report schema.
package postgres
