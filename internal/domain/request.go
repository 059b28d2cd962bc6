package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day-granularity format used for report boundaries,
// cache keys and the payload's date_range.
const DateLayout = "2006-01-02"

// MaxUserFilterLength bounds the user name filter accepted for a report.
const MaxUserFilterLength = 255

// ReportRequest identifies one task report: an inclusive day window in UTC
// and an optional owner-name substring filter.
//
// Start is the first instant of its day and End the last nanosecond of its
// day, so two requests naming the same days always cover the same rows.
// An empty UserFilter means "no filter".
type ReportRequest struct {
	Start      time.Time
	End        time.Time
	UserFilter string
}

// NewReportRequest normalizes the window and filter. It returns
// ErrInvalidRange when end falls on a day before start.
func NewReportRequest(start, end time.Time, userFilter string) (ReportRequest, error) {
	s := StartOfDay(start)
	e := EndOfDay(end)
	if e.Before(s) {
		return ReportRequest{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			s.Format(DateLayout), e.Format(DateLayout))
	}

	filter := strings.TrimSpace(userFilter)
	if len([]rune(filter)) > MaxUserFilterLength {
		return ReportRequest{}, fmt.Errorf("%w: %d characters exceeds %d",
			ErrFilterTooLong, len([]rune(filter)), MaxUserFilterLength)
	}

	return ReportRequest{Start: s, End: e, UserFilter: filter}, nil
}

// ParseReportRequest builds a request from Y-m-d strings.
func ParseReportRequest(start, end, userFilter string) (ReportRequest, error) {
	s, err := ParseDate(start)
	if err != nil {
		return ReportRequest{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return ReportRequest{}, err
	}
	return NewReportRequest(s, e, userFilter)
}

// DefaultReportRequest covers the window days ending today.
func DefaultReportRequest(now time.Time, windowDays int) ReportRequest {
	req, _ := NewReportRequest(now.AddDate(0, 0, -windowDays), now, "")
	return req
}

// HasFilter reports whether an owner-name filter applies.
func (r ReportRequest) HasFilter() bool {
	return r.UserFilter != ""
}

// StartDate returns Start formatted as Y-m-d.
func (r ReportRequest) StartDate() string {
	return r.Start.Format(DateLayout)
}

// EndDate returns End formatted as Y-m-d.
func (r ReportRequest) EndDate() string {
	return r.End.Format(DateLayout)
}

// ParseDate parses a Y-m-d date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidFormat, value)
	}
	return t, nil
}

// StartOfDay truncates t to midnight of its UTC day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last nanosecond of t's UTC day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
