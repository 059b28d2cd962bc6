package mocks

import (
	"context"
	"sync"

	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/report"
	"github.com/withoutfanfare/developer-test/internal/service"
)

// MockReportService implements service.ReportService for testing
type MockReportService struct {
	GetReportFn     func(ctx context.Context, req domain.ReportRequest) (*report.TaskReport, error)
	RefreshReportFn func(ctx context.Context, req domain.ReportRequest) (*report.TaskReport, error)

	// Default response values
	Report *report.TaskReport
	Err    error

	mu       sync.Mutex
	Requests []domain.ReportRequest
}

var _ service.ReportService = (*MockReportService)(nil)

func (m *MockReportService) track(req domain.ReportRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
}

// GetReport implements service.ReportService
func (m *MockReportService) GetReport(ctx context.Context, req domain.ReportRequest) (*report.TaskReport, error) {
	m.track(req)
	if m.GetReportFn != nil {
		return m.GetReportFn(ctx, req)
	}
	return m.Report, m.Err
}

// RefreshReport implements service.ReportService
func (m *MockReportService) RefreshReport(ctx context.Context, req domain.ReportRequest) (*report.TaskReport, error) {
	m.track(req)
	if m.RefreshReportFn != nil {
		return m.RefreshReportFn(ctx, req)
	}
	return m.Report, m.Err
}
