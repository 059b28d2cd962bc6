package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain value fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidRange is returned when a report window ends before it starts.
	// Callers must reject it before invoking the report pipeline.
	ErrInvalidRange = errors.New("invalid date range: end is before start")

	// ErrInvalidFormat is returned when a date or other value is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrFilterTooLong is returned when a user name filter exceeds MaxUserFilterLength.
	ErrFilterTooLong = errors.New("user filter is too long")
)
