package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/withoutfanfare/developer-test/internal/perf"
)

const namespace = "taskreport"

// Collectors records report generations and cache outcomes. It satisfies
// report.Observer and service.CacheObserver.
type Collectors struct {
	registry *prometheus.Registry

	generationSeconds prometheus.Histogram
	queryCount        prometheus.Histogram
	taskCount         prometheus.Histogram
	memoryUsedMB      prometheus.Histogram
	cacheLookups      *prometheus.CounterVec
}

// NewCollectors registers the report collectors, along with the Go and
// process collectors, on a fresh registry.
func NewCollectors() *Collectors {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collectors{
		registry: reg,
		generationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_generation_duration_seconds",
			Help:      "Wall time of uncached report generations",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		queryCount: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_generation_queries",
			Help:      "Store round trips per report generation",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250},
		}),
		taskCount: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_generation_tasks",
			Help:      "Tasks included per report generation",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		memoryUsedMB: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_generation_memory_mb",
			Help:      "Heap growth per report generation in megabytes",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_lookups_total",
			Help:      "Report cache lookups by result",
		}, []string{"result"}),
	}
}

// ObserveGeneration implements report.Observer.
func (c *Collectors) ObserveGeneration(m perf.Metrics, taskCount int) {
	c.generationSeconds.Observe(m.ExecutionTimeMS / 1000)
	c.queryCount.Observe(float64(m.QueryCount))
	c.taskCount.Observe(float64(taskCount))
	c.memoryUsedMB.Observe(m.MemoryUsedMB)
}

// ObserveCacheResult implements service.CacheObserver.
func (c *Collectors) ObserveCacheResult(result string) {
	c.cacheLookups.WithLabelValues(result).Inc()
}

// Registry exposes the underlying registry.
func (c *Collectors) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
