package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/withoutfanfare/developer-test/internal/api/shared"
	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/platform/logger"
	"github.com/withoutfanfare/developer-test/internal/service"
)

// ReportHandler handles task report requests.
type ReportHandler struct {
	reportService service.ReportService
	windowDays    int
	now           func() time.Time
}

// NewReportHandler creates a ReportHandler. Requests without dates cover
// the windowDays ending today.
func NewReportHandler(reportService service.ReportService, windowDays int) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		windowDays:    windowDays,
		now:           time.Now,
	}
}

// GetTaskReport handles GET /api/v1/reports/tasks.
func (h *ReportHandler) GetTaskReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := TaskReportQuery{
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		UserFilter: q.Get("user_filter"),
	}

	if err := shared.ValidateRequest(&query); err != nil {
		shared.RespondWithFieldErrors(w, r, http.StatusUnprocessableEntity, "Validation failed", FieldErrors(err))
		return
	}

	req, err := h.buildRequest(query)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	rep, err := h.reportService.GetReport(r.Context(), req)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	logger.FromContext(r.Context()).Debug("task report served",
		slog.Int("task_count", rep.TotalTasks),
		slog.Bool("cached", rep.Cached))
	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskReportResponse(rep))
}

// buildRequest fills missing dates from the default window and normalizes
// the result.
func (h *ReportHandler) buildRequest(query TaskReportQuery) (domain.ReportRequest, error) {
	today := h.now().UTC()
	start := today.AddDate(0, 0, -h.windowDays)
	end := today

	if query.StartDate != "" {
		d, err := domain.ParseDate(query.StartDate)
		if err != nil {
			return domain.ReportRequest{}, err
		}
		start = d
	}
	if query.EndDate != "" {
		d, err := domain.ParseDate(query.EndDate)
		if err != nil {
			return domain.ReportRequest{}, err
		}
		end = d
	}
	return domain.NewReportRequest(start, end, query.UserFilter)
}
