package cache

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("github.com/withoutfanfare/developer-test/internal/cache")
	meter  = otel.Meter("github.com/withoutfanfare/developer-test/internal/cache")
)

var (
	opLatency metric.Float64Histogram
	lookups   metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		opLatency, err = meter.Float64Histogram(
			"report_cache_operation_duration_seconds",
			metric.WithDescription("Duration of report cache operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		lookups, err = meter.Int64Counter(
			"report_cache_lookups_total",
			metric.WithDescription("Report cache lookups by result"),
		)
		if err != nil {
			metricsErr = err
		}
	})
	return metricsErr
}

// instrumented records a span and metrics around every call to the
// wrapped backend.
type instrumented struct {
	next   Store
	driver string
}

// Instrument wraps s with tracing and metrics labelled by driver.
func Instrument(s Store, driver string) Store {
	return &instrumented{next: s, driver: driver}
}

func (i *instrumented) start(ctx context.Context, op string) (context.Context, trace.Span, time.Time) {
	ctx, span := tracer.Start(ctx, "cache."+op, trace.WithAttributes(
		attribute.String("cache.driver", i.driver),
	))
	return ctx, span, time.Now()
}

func (i *instrumented) finish(ctx context.Context, span trace.Span, op string, began time.Time, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, op+" failed")
	}
	span.End()

	if initMetrics() != nil {
		return
	}
	opLatency.Record(ctx, time.Since(began).Seconds(), metric.WithAttributes(
		attribute.String("driver", i.driver),
		attribute.String("operation", op),
		attribute.Bool("success", err == nil),
	))
}

func (i *instrumented) countLookup(ctx context.Context, result string) {
	if initMetrics() != nil {
		return
	}
	lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("driver", i.driver),
		attribute.String("result", result),
	))
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, span, began := i.start(ctx, "get")
	value, found, err := i.next.Get(ctx, key)
	span.SetAttributes(attribute.Bool("cache.hit", found))
	i.finish(ctx, span, "get", began, err)

	switch {
	case err != nil:
		i.countLookup(ctx, "error")
	case found:
		i.countLookup(ctx, "hit")
	default:
		i.countLookup(ctx, "miss")
	}
	return value, found, err
}

func (i *instrumented) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, span, began := i.start(ctx, "set")
	span.SetAttributes(attribute.Int("cache.value_bytes", len(value)))
	err := i.next.Set(ctx, key, value, ttl)
	i.finish(ctx, span, "set", began, err)
	return err
}

func (i *instrumented) Has(ctx context.Context, key string) (bool, error) {
	ctx, span, began := i.start(ctx, "has")
	ok, err := i.next.Has(ctx, key)
	i.finish(ctx, span, "has", began, err)
	return ok, err
}

func (i *instrumented) Close() error {
	return i.next.Close()
}
