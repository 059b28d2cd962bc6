package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/withoutfanfare/developer-test/internal/app"
)

var migrateCommands = []string{"up", "down", "reset", "status", "version"}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|reset|status|version]",
		Short:     "Run database migrations (default: up)",
		ValidArgs: migrateCommands,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}
			return withApp(cmd, func(_ context.Context, a *app.App) error {
				return a.Migrate(command)
			})
		},
	}
}
