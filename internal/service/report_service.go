package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/withoutfanfare/developer-test/internal/cache"
	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/platform/logger"
	"github.com/withoutfanfare/developer-test/internal/report"
)

// Cache lookup outcomes reported to a CacheObserver.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// ReportService serves task reports, from cache when possible.
type ReportService interface {
	// GetReport returns the report for req. Cached is true only when the
	// payload came from the cache.
	GetReport(ctx context.Context, req domain.ReportRequest) (*report.TaskReport, error)

	// RefreshReport regenerates the report for req and overwrites its cache
	// entry regardless of what the cache holds.
	RefreshReport(ctx context.Context, req domain.ReportRequest) (*report.TaskReport, error)
}

// Generator produces a fresh report.
type Generator interface {
	Generate(ctx context.Context, req domain.ReportRequest) (*report.TaskReport, error)
}

// CacheObserver is told the outcome of every cache lookup.
type CacheObserver interface {
	ObserveCacheResult(result string)
}

type nopCacheObserver struct{}

func (nopCacheObserver) ObserveCacheResult(string) {}

// reportServiceImpl implements ReportService.
type reportServiceImpl struct {
	generator Generator
	cache     cache.Store
	ttl       time.Duration
	observer  CacheObserver
	logger    *slog.Logger
}

var _ ReportService = (*reportServiceImpl)(nil)

// Option configures the report service.
type Option func(*reportServiceImpl)

// WithCacheObserver registers o for cache outcomes.
func WithCacheObserver(o CacheObserver) Option {
	return func(s *reportServiceImpl) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewReportService creates a ReportService storing payloads for ttl.
func NewReportService(
	generator Generator,
	store cache.Store,
	ttl time.Duration,
	log *slog.Logger,
	opts ...Option,
) (ReportService, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("cache store cannot be nil")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive")
	}
	if log == nil {
		log = slog.Default()
	}

	s := &reportServiceImpl{
		generator: generator,
		cache:     store,
		ttl:       ttl,
		observer:  nopCacheObserver{},
		logger:    log.With(slog.String("component", "report_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GetReport implements ReportService.
func (s *reportServiceImpl) GetReport(ctx context.Context, req domain.ReportRequest) (*report.TaskReport, error) {
	key := report.CacheKey(req)
	log := s.requestLogger(ctx, key)

	if cached, ok := s.lookup(ctx, log, key); ok {
		log.Debug("serving cached report", slog.Int("task_count", cached.TotalTasks))
		return cached, nil
	}

	rep, err := s.generator.Generate(ctx, req)
	if err != nil {
		log.Error("report generation failed", slog.Any("error", err))
		return nil, NewGetReportError("failed to generate report", err)
	}

	s.store(ctx, log, key, rep)
	return rep, nil
}

// RefreshReport implements ReportService.
func (s *reportServiceImpl) RefreshReport(ctx context.Context, req domain.ReportRequest) (*report.TaskReport, error) {
	key := report.CacheKey(req)
	log := s.requestLogger(ctx, key)

	rep, err := s.generator.Generate(ctx, req)
	if err != nil {
		log.Error("report refresh failed", slog.Any("error", err))
		return nil, NewRefreshReportError("failed to generate report", err)
	}

	s.store(ctx, log, key, rep)
	log.Info("report refreshed", slog.Int("task_count", rep.TotalTasks))
	return rep, nil
}

func (s *reportServiceImpl) requestLogger(ctx context.Context, key string) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger).With(slog.String("cache_key", key))
}

// lookup returns the cached payload for key. Any failure along the way is
// logged and reported as a miss.
func (s *reportServiceImpl) lookup(ctx context.Context, log *slog.Logger, key string) (*report.TaskReport, bool) {
	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.observer.ObserveCacheResult(CacheError)
		log.Warn("report cache read failed, generating uncached", slog.Any("error", err))
		return nil, false
	}
	if !found {
		s.observer.ObserveCacheResult(CacheMiss)
		return nil, false
	}

	var rep report.TaskReport
	if err := json.Unmarshal(raw, &rep); err != nil {
		s.observer.ObserveCacheResult(CacheError)
		log.Warn("discarding unreadable cached report", slog.Any("error", err))
		return nil, false
	}

	s.observer.ObserveCacheResult(CacheHit)
	rep.Cached = true
	return &rep, true
}

func (s *reportServiceImpl) store(ctx context.Context, log *slog.Logger, key string, rep *report.TaskReport) {
	raw, err := json.Marshal(rep)
	if err != nil {
		log.Warn("report payload not cacheable", slog.Any("error", err))
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		log.Warn("report cache write failed", slog.Any("error", err))
	}
}
