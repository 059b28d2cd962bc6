package perf

import (
	"context"
	"math"
	"runtime"
	"sync/atomic"
	"time"
)

const bytesPerMB = 1024 * 1024

// Metrics is the measured cost of one pipeline run.
type Metrics struct {
	ExecutionTimeMS float64 `json:"execution_time_ms"`
	MemoryUsedMB    float64 `json:"memory_used_mb"`
	PeakMemoryMB    float64 `json:"peak_memory_mb"`
	QueryCount      int     `json:"query_count"`
}

// Collector accumulates measurements for a single run. It is safe for
// concurrent use by the goroutines of that run.
type Collector struct {
	start     time.Time
	heapStart uint64
	queries   atomic.Int64
	now       func() time.Time
}

// NewCollector starts measuring immediately.
func NewCollector() *Collector {
	return newCollector(time.Now)
}

func newCollector(now func() time.Time) *Collector {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return &Collector{
		start:     now(),
		heapStart: ms.HeapAlloc,
		now:       now,
	}
}

// RecordQuery counts one store round trip.
func (c *Collector) RecordQuery() {
	c.queries.Add(1)
}

// Queries returns the round trips counted so far.
func (c *Collector) Queries() int {
	return int(c.queries.Load())
}

// Finish snapshots the measurements. It may be called more than once.
func (c *Collector) Finish() Metrics {
	elapsed := c.now().Sub(c.start)

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	var used uint64
	if ms.HeapAlloc > c.heapStart {
		used = ms.HeapAlloc - c.heapStart
	}

	return Metrics{
		ExecutionTimeMS: round2(float64(elapsed.Nanoseconds()) / float64(time.Millisecond)),
		MemoryUsedMB:    round2(float64(used) / bytesPerMB),
		PeakMemoryMB:    round2(float64(ms.HeapSys) / bytesPerMB),
		QueryCount:      c.Queries(),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type collectorKey struct{}

// WithCollector returns a copy of ctx carrying c.
func WithCollector(ctx context.Context, c *Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, c)
}

// FromContext returns the Collector carried by ctx, or nil.
func FromContext(ctx context.Context) *Collector {
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}

// RecordQuery counts one round trip against the Collector in ctx. It is a
// no-op when ctx carries none.
func RecordQuery(ctx context.Context) {
	if c := FromContext(ctx); c != nil {
		c.RecordQuery()
	}
}
