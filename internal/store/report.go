package store

import (
	"context"
	"time"

	"github.com/withoutfanfare/developer-test/internal/domain"
)

// ReportStore answers the five questions a task report asks of the data
// store. Every method covers tasks whose created_at lies in [start, end].
//
// Implementations must issue a fixed number of round trips per call,
// independent of how many tasks match, and must report each round trip to
// the perf.Collector carried by ctx.
type ReportStore interface {
	// FetchTasksInRange returns matching tasks ordered by created_at
	// descending, with Owner, Assignee and Comments attached. When
	// nameSubstring is non-empty only tasks whose owner name contains it
	// (case-insensitive, literal match) are returned.
	FetchTasksInRange(ctx context.Context, start, end time.Time, nameSubstring string) ([]domain.Task, error)

	// CategoryAggregates groups tasks by category, excluding null categories.
	CategoryAggregates(ctx context.Context, start, end time.Time) (map[string]domain.CategoryStat, error)

	// UserAggregates groups tasks by owner.
	UserAggregates(ctx context.Context, start, end time.Time) (map[int64]domain.UserStat, error)

	// PriorityCounts counts tasks per priority.
	PriorityCounts(ctx context.Context, start, end time.Time) (map[string]int64, error)

	// StatusCounts counts tasks per status.
	StatusCounts(ctx context.Context, start, end time.Time) (map[string]int64, error)
}

// TaskWriter inserts users, tasks and comments. IDs and timestamps left
// zero are assigned by the store.
type TaskWriter interface {
	CreateUser(ctx context.Context, user *domain.User) error
	CreateTask(ctx context.Context, task *domain.Task) error
	CreateComment(ctx context.Context, comment *domain.TaskComment) error
}
