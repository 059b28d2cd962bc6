package api

import (
	"time"

	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/perf"
	"github.com/withoutfanfare/developer-test/internal/report"
)

// TaskReportQuery holds the query parameters of GET /api/v1/reports/tasks.
type TaskReportQuery struct {
	StartDate  string `json:"start_date" validate:"omitempty,isodate"`
	EndDate    string `json:"end_date" validate:"omitempty,isodate"`
	UserFilter string `json:"user_filter" validate:"max=255"`
}

// TaskReportResponse is the public envelope around a report payload.
type TaskReportResponse struct {
	Report     []report.TaskRecord `json:"report"`
	Statistics ReportStatistics    `json:"statistics"`
	Filters    ReportFilters       `json:"filters"`
	Meta       ReportMeta          `json:"meta"`
}

// ReportStatistics groups the aggregate maps.
type ReportStatistics struct {
	TotalTasks           int                            `json:"total_tasks"`
	CategoryStats        map[string]domain.CategoryStat `json:"category_stats"`
	UserStats            map[int64]domain.UserStat      `json:"user_stats"`
	PriorityDistribution map[string]int64               `json:"priority_distribution"`
	StatusDistribution   map[string]int64               `json:"status_distribution"`
}

// ReportFilters echoes the normalized request.
type ReportFilters struct {
	DateRange  report.DateRange `json:"date_range"`
	UserFilter *string          `json:"user_filter"`
}

// ReportMeta describes how the payload was produced.
type ReportMeta struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Cached      bool         `json:"cached"`
	Performance perf.Metrics `json:"performance"`
}

// NewTaskReportResponse shapes rep into the response envelope.
func NewTaskReportResponse(rep *report.TaskReport) TaskReportResponse {
	records := rep.Report
	if records == nil {
		records = []report.TaskRecord{}
	}
	return TaskReportResponse{
		Report: records,
		Statistics: ReportStatistics{
			TotalTasks:           rep.TotalTasks,
			CategoryStats:        rep.CategoryStats,
			UserStats:            rep.UserStats,
			PriorityDistribution: rep.PriorityDistribution,
			StatusDistribution:   rep.StatusDistribution,
		},
		Filters: ReportFilters{
			DateRange:  rep.DateRange,
			UserFilter: rep.UserFilter,
		},
		Meta: ReportMeta{
			GeneratedAt: rep.GeneratedAt,
			Cached:      rep.Cached,
			Performance: rep.Metrics,
		},
	}
}
