package service

import "fmt"

// ReportServiceError wraps a failure to produce a report. No partial
// payload accompanies it.
type ReportServiceError struct {
	// Operation is the operation that failed (e.g. "get_report", "refresh_report")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface.
func (e *ReportServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the underlying error.
func (e *ReportServiceError) Unwrap() error {
	return e.Err
}

// NewGetReportError returns a ReportServiceError for the get_report operation.
func NewGetReportError(message string, err error) *ReportServiceError {
	return &ReportServiceError{Operation: "get_report", Message: message, Err: err}
}

// NewRefreshReportError returns a ReportServiceError for the refresh_report operation.
func NewRefreshReportError(message string, err error) *ReportServiceError {
	return &ReportServiceError{Operation: "refresh_report", Message: message, Err: err}
}
