package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withoutfanfare/developer-test/internal/api/shared"
	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/mocks"
	"github.com/withoutfanfare/developer-test/internal/perf"
	"github.com/withoutfanfare/developer-test/internal/report"
	"github.com/withoutfanfare/developer-test/internal/service"
	"github.com/withoutfanfare/developer-test/internal/store"
)

var handlerNow = time.Date(2026, 7, 31, 15, 4, 5, 0, time.UTC)

func sampleReport(req domain.ReportRequest) *report.TaskReport {
	category := "Bug Fix"
	return &report.TaskReport{
		Report: []report.TaskRecord{{
			TaskID:    1,
			Title:     "Fix login",
			Status:    "pending",
			Priority:  "high",
			Category:  &category,
			OwnerName: "Alice",
			Metadata:  map[string]any{},
		}},
		TotalTasks:           1,
		CategoryStats:        map[string]domain.CategoryStat{"Bug Fix": {Count: 1, AvgHours: 0}},
		UserStats:            map[int64]domain.UserStat{1: domain.NewUserStat(1, 0)},
		PriorityDistribution: map[string]int64{"high": 1},
		StatusDistribution:   map[string]int64{"pending": 1},
		DateRange:            report.DateRange{Start: req.StartDate(), End: req.EndDate()},
		GeneratedAt:          handlerNow,
		Metrics:              perf.Metrics{ExecutionTimeMS: 12.5, QueryCount: 5},
	}
}

func newTestRouter(svc service.ReportService) http.Handler {
	h := NewReportHandler(svc, 30)
	h.now = func() time.Time { return handlerNow }
	r := chi.NewRouter()
	r.Get("/api/v1/reports/tasks", h.GetTaskReport)
	return r
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetTaskReport_Envelope(t *testing.T) {
	t.Parallel()
	svc := &mocks.MockReportService{
		GetReportFn: func(_ context.Context, req domain.ReportRequest) (*report.TaskReport, error) {
			return sampleReport(req), nil
		},
	}

	rec := get(t, newTestRouter(svc), "/api/v1/reports/tasks?start_date=2026-07-01&end_date=2026-07-15")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	for _, key := range []string{"report", "statistics", "filters", "meta"} {
		assert.Contains(t, body, key)
	}

	var resp TaskReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Report, 1)
	assert.Equal(t, 1, resp.Statistics.TotalTasks)
	assert.Equal(t, report.DateRange{Start: "2026-07-01", End: "2026-07-15"}, resp.Filters.DateRange)
	assert.Nil(t, resp.Filters.UserFilter)
	assert.False(t, resp.Meta.Cached)
	assert.Equal(t, 5, resp.Meta.Performance.QueryCount)

	require.Len(t, svc.Requests, 1)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), svc.Requests[0].Start)
}

func TestGetTaskReport_DefaultWindow(t *testing.T) {
	t.Parallel()
	svc := &mocks.MockReportService{
		GetReportFn: func(_ context.Context, req domain.ReportRequest) (*report.TaskReport, error) {
			return sampleReport(req), nil
		},
	}

	rec := get(t, newTestRouter(svc), "/api/v1/reports/tasks")
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, svc.Requests, 1)
	assert.Equal(t, "2026-07-01", svc.Requests[0].StartDate())
	assert.Equal(t, "2026-07-31", svc.Requests[0].EndDate())
	assert.False(t, svc.Requests[0].HasFilter())
}

func TestGetTaskReport_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		query       string
		wantMessage string
		wantField   string
	}{
		{name: "bad start format", query: "start_date=07/01/2026", wantMessage: "Validation failed", wantField: "start_date"},
		{name: "impossible end date", query: "end_date=2026-02-30", wantMessage: "Validation failed", wantField: "end_date"},
		{name: "filter too long", query: "user_filter=" + strings.Repeat("a", 256), wantMessage: "Validation failed", wantField: "user_filter"},
		{name: "end before start", query: "start_date=2026-07-10&end_date=2026-07-01", wantMessage: "end_date must be on or after start_date"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := &mocks.MockReportService{}
			rec := get(t, newTestRouter(svc), "/api/v1/reports/tasks?"+tc.query)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantMessage, body.Error)
			if tc.wantField != "" {
				assert.Contains(t, body.Fields, tc.wantField)
			}
			assert.Empty(t, svc.Requests, "invalid requests never reach the service")
		})
	}
}

func TestGetTaskReport_ServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "store unavailable",
			err:        service.NewGetReportError("failed to generate report", store.Unavailable("task", "fetch_tasks", errors.New("dial tcp 10.0.0.5:5432: refused"))),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "unexpected",
			err:        errors.New("SELECT * FROM tasks exploded"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := get(t, newTestRouter(&mocks.MockReportService{Err: tc.err}), "/api/v1/reports/tasks")

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.NotContains(t, rec.Body.String(), "5432")
			assert.NotContains(t, rec.Body.String(), "SELECT")
		})
	}
}

func TestGetTaskReport_PassesFilterLiterally(t *testing.T) {
	t.Parallel()
	svc := &mocks.MockReportService{
		GetReportFn: func(_ context.Context, req domain.ReportRequest) (*report.TaskReport, error) {
			rep := sampleReport(req)
			f := req.UserFilter
			rep.UserFilter = &f
			return rep, nil
		},
	}

	rec := get(t, newTestRouter(svc), "/api/v1/reports/tasks?user_filter=%27%3B+DROP+TABLE+users%3B+--")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TaskReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Filters.UserFilter)
	assert.Equal(t, "'; DROP TABLE users; --", *resp.Filters.UserFilter)
}
