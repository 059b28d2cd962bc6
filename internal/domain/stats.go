package domain

import "math"

// CategoryStat is the per-category aggregate over a report window.
type CategoryStat struct {
	Count    int64   `json:"count"`
	AvgHours float64 `json:"avg_hours"`
}

// UserStat is the per-owner aggregate over a report window.
type UserStat struct {
	TotalTasks     int64   `json:"total_tasks"`
	CompletedTasks int64   `json:"completed_tasks"`
	CompletionRate float64 `json:"completion_rate"`
}

// NewUserStat builds a UserStat and derives its completion rate.
func NewUserStat(total, completed int64) UserStat {
	return UserStat{
		TotalTasks:     total,
		CompletedTasks: completed,
		CompletionRate: CompletionRate(completed, total),
	}
}

// CompletionRate returns completed/total as a percentage rounded to two
// decimals. It is exactly 0 when total is 0.
func CompletionRate(completed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return Round2(float64(completed) / float64(total) * 100)
}

// Round2 rounds v half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Aggregates bundles the four breakdowns computed once per report window.
type Aggregates struct {
	Categories map[string]CategoryStat `json:"category_stats"`
	Users      map[int64]UserStat      `json:"user_stats"`
	Priorities map[string]int64        `json:"priority_distribution"`
	Statuses   map[string]int64        `json:"status_distribution"`
}

// EmptyAggregates returns Aggregates with every map allocated, so lookups
// and JSON encoding never see a nil map.
func EmptyAggregates() Aggregates {
	return Aggregates{
		Categories: map[string]CategoryStat{},
		Users:      map[int64]UserStat{},
		Priorities: map[string]int64{},
		Statuses:   map[string]int64{},
	}
}
