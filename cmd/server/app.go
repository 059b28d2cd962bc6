package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/withoutfanfare/developer-test/internal/app"
	"github.com/withoutfanfare/developer-test/internal/warmer"
)

// application holds the wired core plus the pieces only the long-running
// server needs, and releases them on shutdown.
type application struct {
	*app.App

	// warmer is nil when no warm schedule is configured.
	warmer *warmer.Warmer
}

// newApplication prepares the server around an initialized core.
func newApplication(core *app.App) (*application, error) {
	w, err := core.NewWarmer()
	if err != nil {
		return nil, fmt.Errorf("failed to create cache warmer: %w", err)
	}
	return &application{App: core, warmer: w}, nil
}

// Run serves HTTP until ctx is canceled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	if app.warmer != nil {
		app.warmer.Start(ctx)
	}

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.warmer != nil {
		app.warmer.Stop()
	}
	if err := app.Close(); err != nil {
		app.Logger.Error("error releasing application resources", slog.String("error", err.Error()))
	}
}
