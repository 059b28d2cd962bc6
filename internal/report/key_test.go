package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/report"
)

func mustRequest(t *testing.T, start, end, filter string) domain.ReportRequest {
	t.Helper()
	req, err := domain.ParseReportRequest(start, end, filter)
	require.NoError(t, err)
	return req
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	all := mustRequest(t, "2026-06-01", "2026-06-30", "")
	assert.Equal(t, "task_report:v1:2026-06-01:2026-06-30:all", report.CacheKey(all))

	blank := mustRequest(t, "2026-06-01", "2026-06-30", "   ")
	assert.Equal(t, report.CacheKey(all), report.CacheKey(blank), "blank filter shares the unfiltered entry")

	alice := mustRequest(t, "2026-06-01", "2026-06-30", "Alice")
	bob := mustRequest(t, "2026-06-01", "2026-06-30", "Bob")
	literalAll := mustRequest(t, "2026-06-01", "2026-06-30", "all")

	assert.NotEqual(t, report.CacheKey(alice), report.CacheKey(bob))
	assert.NotEqual(t, report.CacheKey(all), report.CacheKey(literalAll), "a literal filter never collides with the sentinel")
	assert.True(t, strings.HasPrefix(report.CacheKey(alice), "task_report:v1:2026-06-01:2026-06-30:q-"))
	assert.Equal(t, report.CacheKey(alice), report.CacheKey(mustRequest(t, "2026-06-01", "2026-06-30", "Alice")))
}

func TestCacheKey_DayGranularity(t *testing.T) {
	t.Parallel()

	morning, err := domain.NewReportRequest(
		time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 2, 8, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)
	evening, err := domain.NewReportRequest(
		time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 2, 20, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)

	assert.Equal(t, report.CacheKey(morning), report.CacheKey(evening))
}
