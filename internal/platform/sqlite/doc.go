// Package sqlite opens embedded SQLite databases through the pure-Go
// modernc.org/sqlite driver and embeds the matching goose migrations. It
// backs local runs of the CLI and every store test that needs real SQL.
package sqlite
