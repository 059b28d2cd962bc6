// Package main implements reportctl, the operator CLI for the task report
// pipeline: render reports, run migrations, seed demo data and issue API
// tokens.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/withoutfanfare/developer-test/internal/app"
	"github.com/withoutfanfare/developer-test/internal/config"
	"github.com/withoutfanfare/developer-test/internal/platform/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reportctl",
		Short: "Task report operator CLI",
		Long: `reportctl renders task reports straight from the database and
manages the schema and demo data behind them.

Configuration is read the same way as the server: config.yaml in the
working directory or /etc/taskreport, overridden by TASKREPORT_* variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "explicit config file")

	root.AddCommand(
		reportCmd(),
		migrateCmd(),
		seedCmd(),
		tokenCmd(),
	)
	return root
}

// loadConfig honours --config, falling back to the standard search path.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// withApp builds the application for one command and closes it afterwards.
// Logs go to stderr so stdout stays machine readable.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	l, err := logger.SetupWithWriter(cfg.Server, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithContext(ctx, l)

	a, err := app.New(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	return fn(ctx, a)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
