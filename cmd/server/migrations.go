package main

import (
	"fmt"
	"log/slog"

	"github.com/withoutfanfare/developer-test/internal/app"
)

// handleMigrations runs one goose command against the configured database.
func handleMigrations(core *app.App, command string) error {
	core.Logger.Info("executing migrations", slog.String("command", command))
	if err := core.Migrate(command); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
