package report

import (
	"time"

	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/perf"
)

// DateRange is the requested window at day granularity.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TaskReport is the payload produced by one generation and stored in the
// cache. Cached is the only field a cache hit rewrites.
type TaskReport struct {
	Report               []TaskRecord                   `json:"report"`
	TotalTasks           int                            `json:"total_tasks"`
	CategoryStats        map[string]domain.CategoryStat `json:"category_stats"`
	UserStats            map[int64]domain.UserStat      `json:"user_stats"`
	PriorityDistribution map[string]int64               `json:"priority_distribution"`
	StatusDistribution   map[string]int64               `json:"status_distribution"`
	DateRange            DateRange                      `json:"date_range"`
	UserFilter           *string                        `json:"user_filter"`
	GeneratedAt          time.Time                      `json:"generated_at"`
	Cached               bool                           `json:"cached"`
	perf.Metrics
}

func newTaskReport(req domain.ReportRequest, records []TaskRecord, agg domain.Aggregates, generatedAt time.Time, m perf.Metrics) *TaskReport {
	var filter *string
	if req.HasFilter() {
		f := req.UserFilter
		filter = &f
	}
	return &TaskReport{
		Report:               records,
		TotalTasks:           len(records),
		CategoryStats:        agg.Categories,
		UserStats:            agg.Users,
		PriorityDistribution: agg.Priorities,
		StatusDistribution:   agg.Statuses,
		DateRange:            DateRange{Start: req.StartDate(), End: req.EndDate()},
		UserFilter:           filter,
		GeneratedAt:          generatedAt.UTC().Truncate(time.Second),
		Metrics:              m,
	}
}
