// Package main implements the task report HTTP server. It loads
// configuration, opens the database, wires the report pipeline and serves
// GET /api/v1/reports/tasks until it receives SIGINT or SIGTERM.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/withoutfanfare/developer-test/internal/app"
	"github.com/withoutfanfare/developer-test/internal/config"
	"github.com/withoutfanfare/developer-test/internal/platform/logger"
	"github.com/withoutfanfare/developer-test/internal/platform/metrics"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, reset, status, version) and exit")
	migrateOnStart := flag.Bool("migrate-on-start", false, "apply pending migrations before serving")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd, *migrateOnStart); err != nil {
		log.Fatalf("task report server failed: %v", err)
	}
}

// run is the server lifecycle: everything main does apart from flag parsing
// and exiting.
func run(ctx context.Context, migrateCmd string, migrateOnStart bool) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	logConfig(l, cfg)

	shutdownTracing, err := metrics.InitTracing(cfg.Telemetry, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			l.Error("failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	core, err := app.New(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if migrateCmd != "" {
		defer func() { _ = core.Close() }()
		return handleMigrations(core, migrateCmd)
	}
	if migrateOnStart {
		if err := handleMigrations(core, "up"); err != nil {
			_ = core.Close()
			return err
		}
	}

	application, err := newApplication(core)
	if err != nil {
		_ = core.Close()
		return err
	}
	return application.Run(ctx)
}

func logConfig(l *slog.Logger, cfg *config.Config) {
	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("cache_driver", cfg.Cache.Driver))
	if cfg.Auth.JWTSecret != "" {
		l.Debug("auth configuration", slog.Bool("jwt_secret_present", true))
	}
}
