package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/withoutfanfare/developer-test/internal/config"
	"github.com/withoutfanfare/developer-test/internal/platform/sqlstore"
	"github.com/withoutfanfare/developer-test/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// timeLayout is fixed width so text comparison orders like time.
const timeLayout = "2006-01-02 15:04:05.000000"

// LowerFunc folds text with strings.ToLower. SQLite's built-in LOWER only
// folds ASCII, so a filter like "émile" would never match "Émile".
const LowerFunc = "unicode_lower"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(LowerFunc, 1, unicodeLower); err != nil {
		panic(fmt.Sprintf("register %s: %v", LowerFunc, err))
	}
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the embedded goose migrations.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(fmt.Sprintf("embedded migrations: %v", err))
	}
	return sub
}

// FormatTime renders t the way timestamps are stored.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Dialect returns the sqlstore dialect for SQLite.
func Dialect() sqlstore.Dialect {
	return sqlstore.Dialect{
		DriverName: DriverName,
		Goose:      "sqlite3",
		Bind:       sqlx.QUESTION,
		Migrations: Migrations(),
		TimeArg:    func(t time.Time) any { return FormatTime(t) },
		MapError:   MapError,
		LowerFunc:  LowerFunc,
	}
}

// Open opens the database named by cfg.URL with foreign keys enforced.
// In-memory databases are pinned to a single connection so every query
// sees the same data.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	dsn := withForeignKeys(cfg.URL)
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if IsMemory(cfg.URL) {
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if logger != nil {
		logger.Info("database connection established",
			slog.String("driver", DriverName),
			slog.Bool("in_memory", IsMemory(cfg.URL)))
	}
	return db, nil
}

// OpenMemory opens and migrates a private in-memory database.
func OpenMemory(ctx context.Context, logger *slog.Logger) (*sql.DB, error) {
	db, err := Open(ctx, config.DatabaseConfig{URL: ":memory:"}, logger)
	if err != nil {
		return nil, err
	}
	if err := sqlstore.Migrate(db, Dialect(), "up", logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// IsMemory reports whether url names an in-memory database.
func IsMemory(url string) bool {
	return strings.Contains(url, ":memory:") || strings.Contains(url, "mode=memory")
}

func withForeignKeys(url string) string {
	if strings.Contains(url, "_pragma=foreign_keys") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)"
}

// MapError maps SQLite constraint failures to store errors.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT:
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN:
			return fmt.Errorf("%w: %v", store.ErrStoreUnavailable, err)
		}
	}
	return err
}
