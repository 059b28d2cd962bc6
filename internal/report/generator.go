package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/perf"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/withoutfanfare/developer-test/internal/report")

// Observer receives the measurements of every completed generation.
type Observer interface {
	ObserveGeneration(m perf.Metrics, taskCount int)
}

type nopObserver struct{}

func (nopObserver) ObserveGeneration(perf.Metrics, int) {}

// Generator runs the planner and the formatter as one instrumented unit.
type Generator struct {
	planner    *Planner
	thresholds perf.Thresholds
	observer   Observer
	logger     *slog.Logger
	now        func() time.Time
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithThresholds overrides perf.DefaultThresholds.
func WithThresholds(t perf.Thresholds) GeneratorOption {
	return func(g *Generator) { g.thresholds = t }
}

// WithObserver registers o for generation measurements.
func WithObserver(o Observer) GeneratorOption {
	return func(g *Generator) {
		if o != nil {
			g.observer = o
		}
	}
}

// WithGeneratorLogger sets the logger used for threshold warnings.
func WithGeneratorLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithClock overrides the generated_at clock.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a Generator around planner.
func NewGenerator(planner *Planner, opts ...GeneratorOption) (*Generator, error) {
	if planner == nil {
		return nil, fmt.Errorf("planner cannot be nil")
	}
	g := &Generator{
		planner:    planner,
		thresholds: perf.DefaultThresholds(),
		observer:   nopObserver{},
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With(slog.String("component", "report_generator"))
	return g, nil
}

// Generate computes a fresh report for req. The returned payload always
// has Cached set to false.
func (g *Generator) Generate(ctx context.Context, req domain.ReportRequest) (*TaskReport, error) {
	ctx, span := tracer.Start(ctx, "report.generate", trace.WithAttributes(
		attribute.String("report.start_date", req.StartDate()),
		attribute.String("report.end_date", req.EndDate()),
		attribute.Bool("report.user_filter", req.HasFilter()),
	))
	defer span.End()

	collector := perf.FromContext(ctx)
	if collector == nil {
		collector = perf.NewCollector()
		ctx = perf.WithCollector(ctx, collector)
	}

	plan, err := g.planner.Plan(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "plan failed")
		return nil, err
	}

	records := FormatTasks(plan.Tasks, plan.Aggregates)
	metrics := collector.Finish()

	g.thresholds.Warn(ctx, g.logger, metrics,
		slog.Int("task_count", len(records)),
		slog.String("date_range", req.StartDate()+" to "+req.EndDate()))
	g.observer.ObserveGeneration(metrics, len(records))

	span.SetAttributes(
		attribute.Int("report.task_count", len(records)),
		attribute.Int("report.query_count", metrics.QueryCount),
	)

	return newTaskReport(req, records, plan.Aggregates, g.now(), metrics), nil
}
