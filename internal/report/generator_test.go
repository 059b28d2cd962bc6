package report_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/mocks"
	"github.com/withoutfanfare/developer-test/internal/perf"
	"github.com/withoutfanfare/developer-test/internal/report"
	"github.com/withoutfanfare/developer-test/internal/store"
	"github.com/withoutfanfare/developer-test/internal/testutils"
)

type recordingObserver struct {
	mu    sync.Mutex
	runs  []perf.Metrics
	tasks []int
}

func (o *recordingObserver) ObserveGeneration(m perf.Metrics, taskCount int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.runs = append(o.runs, m)
	o.tasks = append(o.tasks, taskCount)
}

var fixedNow = time.Date(2026, 7, 1, 10, 15, 30, 0, time.UTC)

func newGenerator(t *testing.T, st store.ReportStore, opts ...report.GeneratorOption) *report.Generator {
	t.Helper()
	p, err := report.NewPlanner(st)
	require.NoError(t, err)
	opts = append([]report.GeneratorOption{report.WithClock(func() time.Time { return fixedNow })}, opts...)
	g, err := report.NewGenerator(p, opts...)
	require.NoError(t, err)
	return g
}

func TestNewGenerator_NilPlanner(t *testing.T) {
	t.Parallel()
	_, err := report.NewGenerator(nil)
	require.Error(t, err)
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	st := &mocks.MockReportStore{
		Tasks: []domain.Task{
			{ID: 2, OwnerID: 1, Category: strPtr("Bug Fix"), Owner: &domain.User{Name: "Alice"}},
			{ID: 1, OwnerID: 1, Owner: &domain.User{Name: "Alice"}},
		},
		Aggregates: sampleAggregates(),
	}
	obs := &recordingObserver{}
	g := newGenerator(t, st, report.WithObserver(obs))

	rep, err := g.Generate(context.Background(), mustRequest(t, "2026-06-01", "2026-06-30", ""))
	require.NoError(t, err)

	assert.Len(t, rep.Report, 2)
	assert.Equal(t, 2, rep.TotalTasks)
	assert.Equal(t, sampleAggregates().Categories, rep.CategoryStats)
	assert.Equal(t, report.DateRange{Start: "2026-06-01", End: "2026-06-30"}, rep.DateRange)
	assert.Nil(t, rep.UserFilter)
	assert.False(t, rep.Cached)
	assert.Equal(t, fixedNow, rep.GeneratedAt)
	assert.Equal(t, 5, rep.QueryCount)
	assert.GreaterOrEqual(t, rep.ExecutionTimeMS, 0.0)
	assert.GreaterOrEqual(t, rep.MemoryUsedMB, 0.0)
	assert.Greater(t, rep.PeakMemoryMB, 0.0)

	require.Len(t, obs.runs, 1)
	assert.Equal(t, 5, obs.runs[0].QueryCount)
	assert.Equal(t, []int{2}, obs.tasks)
}

func TestGenerator_UserFilterEcho(t *testing.T) {
	t.Parallel()

	g := newGenerator(t, &mocks.MockReportStore{})
	rep, err := g.Generate(context.Background(), mustRequest(t, "2026-06-01", "2026-06-30", " Alice "))
	require.NoError(t, err)
	require.NotNil(t, rep.UserFilter)
	assert.Equal(t, "Alice", *rep.UserFilter)
}

func TestGenerator_EmptyWindowIsValid(t *testing.T) {
	t.Parallel()

	g := newGenerator(t, &mocks.MockReportStore{})
	rep, err := g.Generate(context.Background(), mustRequest(t, "2026-06-01", "2026-06-30", ""))
	require.NoError(t, err)
	assert.Zero(t, rep.TotalTasks)
	assert.Empty(t, rep.Report)

	raw, err := json.Marshal(rep)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, []any{}, decoded["report"])
	assert.Equal(t, map[string]any{}, decoded["category_stats"])
	assert.Equal(t, "2026-07-01T10:15:30Z", decoded["generated_at"])
	for _, key := range []string{"execution_time_ms", "memory_used_mb", "peak_memory_mb", "query_count", "cached", "user_filter"} {
		assert.Contains(t, decoded, key)
	}
}

func TestGenerator_ThresholdWarnings(t *testing.T) {
	t.Parallel()

	logger, handler := testutils.NewTestLogger()
	g := newGenerator(t, &mocks.MockReportStore{Tasks: []domain.Task{{ID: 1}}},
		report.WithGeneratorLogger(logger),
		report.WithThresholds(perf.Thresholds{Slow: time.Hour, MaxQueries: 4}))

	_, err := g.Generate(context.Background(), mustRequest(t, "2026-06-01", "2026-06-30", ""))
	require.NoError(t, err)

	warnings := handler.EntriesWithMessage("high query count detected")
	require.Len(t, warnings, 1)
	assert.Equal(t, "WARN", warnings[0]["level"])
	assert.Equal(t, int64(5), warnings[0]["query_count"])
	assert.Equal(t, int64(1), warnings[0]["task_count"])
	assert.Equal(t, "2026-06-01 to 2026-06-30", warnings[0]["date_range"])
	assert.Empty(t, handler.EntriesWithMessage("slow report generation detected"))
}

func TestGenerator_NoWarningsUnderThresholds(t *testing.T) {
	t.Parallel()

	logger, handler := testutils.NewTestLogger()
	g := newGenerator(t, &mocks.MockReportStore{}, report.WithGeneratorLogger(logger))

	_, err := g.Generate(context.Background(), mustRequest(t, "2026-06-01", "2026-06-30", ""))
	require.NoError(t, err)
	assert.Empty(t, handler.EntriesWithMessage("high query count detected"))
}

func TestGenerator_StoreFailure(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	g := newGenerator(t, &mocks.MockReportStore{Err: store.ErrStoreUnavailable}, report.WithObserver(obs))

	rep, err := g.Generate(context.Background(), mustRequest(t, "2026-06-01", "2026-06-30", ""))
	require.Error(t, err)
	assert.Nil(t, rep)
	assert.True(t, errors.Is(err, store.ErrStoreUnavailable))
	assert.Empty(t, obs.runs)
}

func TestGenerator_IdenticalRequestsYieldIdenticalReports(t *testing.T) {
	t.Parallel()

	st := &mocks.MockReportStore{
		Tasks:      []domain.Task{{ID: 1, OwnerID: 1, Category: strPtr("Bug Fix")}},
		Aggregates: sampleAggregates(),
	}
	g := newGenerator(t, st)
	req := mustRequest(t, "2026-06-01", "2026-06-30", "")

	first, err := g.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), req)
	require.NoError(t, err)

	a, err := json.Marshal(first.Report)
	require.NoError(t, err)
	b, err := json.Marshal(second.Report)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
