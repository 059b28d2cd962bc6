// Package app wires configuration, storage, caching, metrics and the report
// pipeline into the dependency graph shared by the server and the CLI.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/withoutfanfare/developer-test/internal/cache"
	"github.com/withoutfanfare/developer-test/internal/config"
	"github.com/withoutfanfare/developer-test/internal/perf"
	"github.com/withoutfanfare/developer-test/internal/platform/metrics"
	"github.com/withoutfanfare/developer-test/internal/platform/postgres"
	"github.com/withoutfanfare/developer-test/internal/platform/sqlite"
	"github.com/withoutfanfare/developer-test/internal/platform/sqlstore"
	"github.com/withoutfanfare/developer-test/internal/report"
	"github.com/withoutfanfare/developer-test/internal/service"
	"github.com/withoutfanfare/developer-test/internal/service/auth"
	"github.com/withoutfanfare/developer-test/internal/warmer"
)

// App holds the shared dependencies and releases them on Close.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	DB      *sql.DB
	Dialect sqlstore.Dialect

	Store   *sqlstore.ReportStore
	Writer  *sqlstore.TaskWriter
	Cache   cache.Store
	Metrics *metrics.Collectors

	Generator *report.Generator
	Reports   service.ReportService

	// Tokens is nil when authentication is disabled.
	Tokens auth.TokenService
}

// OpenDatabase connects to the database selected by cfg.Driver and returns
// the matching dialect.
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, sqlstore.Dialect, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := postgres.Open(ctx, cfg, logger)
		return db, postgres.Dialect(), err
	case "sqlite":
		db, err := sqlite.Open(ctx, cfg, logger)
		return db, sqlite.Dialect(), err
	default:
		return nil, sqlstore.Dialect{}, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// New opens the configured database and builds every component on top of it.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, dialect, err := OpenDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a, err := NewWithDB(cfg, logger, db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

// NewWithDB builds the application around an already open database. The
// App takes ownership of db.
func NewWithDB(cfg *config.Config, logger *slog.Logger, db *sql.DB, dialect sqlstore.Dialect) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if db == nil {
		return nil, errors.New("database cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Dialect: dialect,
		Metrics: metrics.NewCollectors(),
	}

	a.Store = sqlstore.NewReportStore(sqlx.NewDb(db, dialect.DriverName), dialect, logger)
	a.Writer = sqlstore.NewTaskWriter(db, dialect, logger)

	var err error
	a.Cache, err = cache.New(cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report cache: %w", err)
	}
	logger.Info("report cache initialized",
		slog.String("driver", cfg.Cache.Driver),
		slog.Int("ttl_seconds", cfg.Cache.TTLSeconds))

	planner, err := report.NewPlanner(a.Store,
		report.WithParallelQueries(cfg.Report.ParallelQueries),
		report.WithPlannerLogger(logger))
	if err != nil {
		return nil, a.fail(fmt.Errorf("failed to create query planner: %w", err))
	}

	a.Generator, err = report.NewGenerator(planner,
		report.WithThresholds(Thresholds(cfg.Report)),
		report.WithObserver(a.Metrics),
		report.WithGeneratorLogger(logger))
	if err != nil {
		return nil, a.fail(fmt.Errorf("failed to create report generator: %w", err))
	}

	a.Reports, err = service.NewReportService(a.Generator, a.Cache, cache.DefaultTTL(cfg.Cache), logger,
		service.WithCacheObserver(a.Metrics))
	if err != nil {
		return nil, a.fail(fmt.Errorf("failed to create report service: %w", err))
	}

	if cfg.Auth.JWTSecret != "" {
		a.Tokens, err = auth.NewTokenService(cfg.Auth.JWTSecret)
		if err != nil {
			return nil, a.fail(fmt.Errorf("failed to initialize token service: %w", err))
		}
		logger.Info("bearer token authentication enabled")
	}

	logger.Info("application initialized",
		slog.String("database_driver", dialect.DriverName),
		slog.Bool("parallel_queries", cfg.Report.ParallelQueries))
	return a, nil
}

// Thresholds converts the report configuration into diagnostic thresholds.
func Thresholds(cfg config.ReportConfig) perf.Thresholds {
	t := perf.DefaultThresholds()
	if cfg.SlowThresholdMS > 0 {
		t.Slow = time.Duration(cfg.SlowThresholdMS) * time.Millisecond
	}
	if cfg.QueryCountThreshold > 0 {
		t.MaxQueries = cfg.QueryCountThreshold
	}
	return t
}

// Migrate runs a goose command against the application database.
func (a *App) Migrate(command string) error {
	return sqlstore.Migrate(a.DB, a.Dialect, command, a.Logger)
}

// NewWarmer returns the cache warmer for the configured schedule, or nil
// when warming is disabled.
func (a *App) NewWarmer() (*warmer.Warmer, error) {
	spec := a.Config.Report.WarmSchedule
	if spec == "" {
		return nil, nil
	}
	return warmer.New(a.Reports, spec, a.Config.Report.DefaultWindowDays, a.Logger)
}

// fail releases what was built so far and returns err.
func (a *App) fail(err error) error {
	if cerr := a.Cache.Close(); cerr != nil {
		a.Logger.Error("failed to close report cache", slog.String("error", cerr.Error()))
	}
	return err
}

// Close releases the cache and the database connection.
func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	a.Logger.Info("application shutdown completed")
	return nil
}
