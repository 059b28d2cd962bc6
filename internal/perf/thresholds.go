package perf

import (
	"context"
	"log/slog"
	"time"
)

// Thresholds beyond which a run is reported as a diagnostic warning.
type Thresholds struct {
	Slow       time.Duration
	MaxQueries int
}

// DefaultThresholds returns 1s and 100 round trips.
func DefaultThresholds() Thresholds {
	return Thresholds{Slow: time.Second, MaxQueries: 100}
}

// Exceeded reports which thresholds m crosses.
func (t Thresholds) Exceeded(m Metrics) (slow, chatty bool) {
	slow = m.ExecutionTimeMS > float64(t.Slow)/float64(time.Millisecond)
	chatty = m.QueryCount > t.MaxQueries
	return slow, chatty
}

// Warn logs one warning per crossed threshold. attrs are appended to the
// measured values on every record. It never fails the run.
func (t Thresholds) Warn(ctx context.Context, logger *slog.Logger, m Metrics, attrs ...slog.Attr) {
	slow, chatty := t.Exceeded(m)
	if !slow && !chatty {
		return
	}

	fields := append([]slog.Attr{
		slog.Float64("execution_time_ms", m.ExecutionTimeMS),
		slog.Float64("memory_used_mb", m.MemoryUsedMB),
		slog.Int("query_count", m.QueryCount),
	}, attrs...)

	if slow {
		logger.LogAttrs(ctx, slog.LevelWarn, "slow report generation detected", fields...)
	}
	if chatty {
		logger.LogAttrs(ctx, slog.LevelWarn, "high query count detected", fields...)
	}
}
