package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/withoutfanfare/developer-test/internal/api"
	apiMiddleware "github.com/withoutfanfare/developer-test/internal/api/middleware"
)

// setupRouter creates the router with the standard middleware stack and
// every route.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.Logger))

	reportHandler := api.NewReportHandler(app.Reports, app.Config.Report.DefaultWindowDays)

	r.Route("/api/v1", func(r chi.Router) {
		if app.Tokens != nil {
			r.Use(apiMiddleware.NewAuthMiddleware(app.Tokens).Authenticate)
		}
		if perMinute := app.Config.Server.RateLimitPerMinute; perMinute > 0 {
			r.Use(apiMiddleware.NewRateLimiter(perMinute).Limit)
		}

		r.Get("/reports/tasks", reportHandler.GetTaskReport)
	})

	r.Handle("/metrics", app.Metrics.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := app.DB.PingContext(r.Context()); err != nil {
			app.Logger.Warn("health check database ping failed", slog.String("error", err.Error()))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.Logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}
