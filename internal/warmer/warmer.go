// Package warmer periodically regenerates the default report window so
// that the first request after a TTL expiry is still served from cache.
package warmer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	rcron "github.com/robfig/cron/v3"

	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/platform/logger"
	"github.com/withoutfanfare/developer-test/internal/report"
)

// Refresher regenerates a report and overwrites its cache entry.
type Refresher interface {
	RefreshReport(ctx context.Context, req domain.ReportRequest) (*report.TaskReport, error)
}

// Warmer runs Refresher on a cron schedule.
type Warmer struct {
	refresher  Refresher
	schedule   rcron.Schedule
	spec       string
	windowDays int
	timeout    time.Duration
	now        func() time.Time
	logger     *slog.Logger

	mu       sync.Mutex
	cron     *rcron.Cron
	stop     chan struct{}
	watching chan struct{}
}

// New validates spec, a standard five-field cron expression or a
// descriptor such as "@every 15m".
func New(refresher Refresher, spec string, windowDays int, log *slog.Logger) (*Warmer, error) {
	if refresher == nil {
		return nil, errors.New("refresher cannot be nil")
	}
	if windowDays <= 0 {
		return nil, errors.New("window days must be positive")
	}
	schedule, err := rcron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid warm schedule %q: %w", spec, err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Warmer{
		refresher:  refresher,
		schedule:   schedule,
		spec:       spec,
		windowDays: windowDays,
		timeout:    time.Minute,
		now:        time.Now,
		logger:     log.With(slog.String("component", "report_warmer")),
	}, nil
}

// Start schedules warming runs until ctx is done or Stop is called.
func (w *Warmer) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cron != nil {
		return
	}

	w.cron = rcron.New()
	w.cron.Schedule(w.schedule, rcron.FuncJob(func() {
		_ = w.RunOnce(ctx)
	}))
	w.cron.Start()
	w.logger.Info("report warmer started",
		slog.String("schedule", w.spec),
		slog.Time("next_run", w.schedule.Next(w.now())))

	stop, watching := make(chan struct{}), make(chan struct{})
	w.stop, w.watching = stop, watching
	go func() {
		defer close(watching)
		select {
		case <-ctx.Done():
			w.Stop()
		case <-stop:
		}
	}()
}

// Stop halts scheduling and waits for a running job to finish.
func (w *Warmer) Stop() {
	w.mu.Lock()
	c, stop := w.cron, w.stop
	w.cron, w.stop = nil, nil
	w.mu.Unlock()
	if c == nil {
		return
	}
	close(stop)
	<-c.Stop().Done()
	w.logger.Info("report warmer stopped")
}

// RunOnce refreshes the default window immediately.
func (w *Warmer) RunOnce(ctx context.Context) error {
	req := domain.DefaultReportRequest(w.now(), w.windowDays)
	log := w.logger.With(
		slog.String("run_id", uuid.NewString()),
		slog.String("date_range", req.StartDate()+" to "+req.EndDate()))

	ctx, cancel := context.WithTimeout(logger.WithContext(ctx, log), w.timeout)
	defer cancel()

	started := w.now()
	rep, err := w.refresher.RefreshReport(ctx, req)
	if err != nil {
		log.Error("report warming failed", slog.Any("error", err))
		return err
	}
	log.Info("report cache warmed",
		slog.Int("task_count", rep.TotalTasks),
		slog.Duration("elapsed", w.now().Sub(started)))
	return nil
}
