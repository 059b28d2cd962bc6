package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/perf"
	"github.com/withoutfanfare/developer-test/internal/store"
)

// MockReportStore implements store.ReportStore for testing. Each call
// counts one round trip against the perf.Collector in ctx, as a SQL store
// would.
type MockReportStore struct {
	// Custom behavior functions
	FetchTasksInRangeFn  func(ctx context.Context, start, end time.Time, nameSubstring string) ([]domain.Task, error)
	CategoryAggregatesFn func(ctx context.Context, start, end time.Time) (map[string]domain.CategoryStat, error)
	UserAggregatesFn     func(ctx context.Context, start, end time.Time) (map[int64]domain.UserStat, error)
	PriorityCountsFn     func(ctx context.Context, start, end time.Time) (map[string]int64, error)
	StatusCountsFn       func(ctx context.Context, start, end time.Time) (map[string]int64, error)

	// Default response values
	Tasks      []domain.Task
	Aggregates domain.Aggregates
	Err        error

	mu    sync.Mutex
	calls map[string]int
	// Filters records every nameSubstring passed to FetchTasksInRange.
	Filters []string
}

var _ store.ReportStore = (*MockReportStore)(nil)

func (m *MockReportStore) record(ctx context.Context, method string) {
	perf.RecordQuery(ctx)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// Calls returns how many times method was invoked.
func (m *MockReportStore) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// TotalCalls returns the number of calls across all methods.
func (m *MockReportStore) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

// FetchTasksInRange implements store.ReportStore
func (m *MockReportStore) FetchTasksInRange(ctx context.Context, start, end time.Time, nameSubstring string) ([]domain.Task, error) {
	m.record(ctx, "FetchTasksInRange")
	m.mu.Lock()
	m.Filters = append(m.Filters, nameSubstring)
	m.mu.Unlock()

	if m.FetchTasksInRangeFn != nil {
		return m.FetchTasksInRangeFn(ctx, start, end, nameSubstring)
	}
	return m.Tasks, m.Err
}

// CategoryAggregates implements store.ReportStore
func (m *MockReportStore) CategoryAggregates(ctx context.Context, start, end time.Time) (map[string]domain.CategoryStat, error) {
	m.record(ctx, "CategoryAggregates")
	if m.CategoryAggregatesFn != nil {
		return m.CategoryAggregatesFn(ctx, start, end)
	}
	return m.Aggregates.Categories, m.Err
}

// UserAggregates implements store.ReportStore
func (m *MockReportStore) UserAggregates(ctx context.Context, start, end time.Time) (map[int64]domain.UserStat, error) {
	m.record(ctx, "UserAggregates")
	if m.UserAggregatesFn != nil {
		return m.UserAggregatesFn(ctx, start, end)
	}
	return m.Aggregates.Users, m.Err
}

// PriorityCounts implements store.ReportStore
func (m *MockReportStore) PriorityCounts(ctx context.Context, start, end time.Time) (map[string]int64, error) {
	m.record(ctx, "PriorityCounts")
	if m.PriorityCountsFn != nil {
		return m.PriorityCountsFn(ctx, start, end)
	}
	return m.Aggregates.Priorities, m.Err
}

// StatusCounts implements store.ReportStore
func (m *MockReportStore) StatusCounts(ctx context.Context, start, end time.Time) (map[string]int64, error) {
	m.record(ctx, "StatusCounts")
	if m.StatusCountsFn != nil {
		return m.StatusCountsFn(ctx, start, end)
	}
	return m.Aggregates.Statuses, m.Err
}
