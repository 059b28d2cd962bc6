package perf

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/withoutfanfare/developer-test/internal/testutils"
)

func TestCollector_CountsQueriesConcurrently(t *testing.T) {
	c := NewCollector()
	ctx := WithCollector(context.Background(), c)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordQuery(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, c.Queries())
	assert.Equal(t, 5, c.Finish().QueryCount)
}

func TestRecordQuery_WithoutCollector(t *testing.T) {
	assert.NotPanics(t, func() { RecordQuery(context.Background()) })
	assert.Nil(t, FromContext(context.Background()))
}

func TestCollector_TimingIsRounded(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	c := newCollector(func() time.Time { return now })

	now = base.Add(1234567 * time.Nanosecond)
	m := c.Finish()

	assert.Equal(t, 1.23, m.ExecutionTimeMS)
	assert.GreaterOrEqual(t, m.MemoryUsedMB, 0.0)
	assert.Greater(t, m.PeakMemoryMB, 0.0)
}

func TestThresholds_Exceeded(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name       string
		metrics    Metrics
		wantSlow   bool
		wantChatty bool
	}{
		{name: "within limits", metrics: Metrics{ExecutionTimeMS: 1000, QueryCount: 100}},
		{name: "slow", metrics: Metrics{ExecutionTimeMS: 1000.01, QueryCount: 6}, wantSlow: true},
		{name: "chatty", metrics: Metrics{ExecutionTimeMS: 5, QueryCount: 101}, wantChatty: true},
		{name: "both", metrics: Metrics{ExecutionTimeMS: 2500, QueryCount: 500}, wantSlow: true, wantChatty: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			slow, chatty := th.Exceeded(tc.metrics)
			assert.Equal(t, tc.wantSlow, slow)
			assert.Equal(t, tc.wantChatty, chatty)
		})
	}
}

func TestThresholds_Warn(t *testing.T) {
	logger, h := testutils.NewTestLogger()
	th := DefaultThresholds()

	th.Warn(context.Background(), logger, Metrics{ExecutionTimeMS: 3, QueryCount: 6})
	assert.Empty(t, h.Entries())

	th.Warn(context.Background(), logger, Metrics{ExecutionTimeMS: 1500.5, MemoryUsedMB: 2.5, QueryCount: 150})

	slow := h.EntriesWithMessage("slow report generation detected")
	require.Len(t, slow, 1)
	assert.Equal(t, "WARN", slow[0]["level"])
	assert.Equal(t, 1500.5, slow[0]["execution_time_ms"])
	assert.Equal(t, 2.5, slow[0]["memory_used_mb"])

	chatty := h.EntriesWithMessage("high query count detected")
	require.Len(t, chatty, 1)
	assert.EqualValues(t, 150, chatty[0]["query_count"])
}
