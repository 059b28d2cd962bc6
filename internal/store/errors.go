package store

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable marks any failure reaching or reading the data
	// store. A report run that sees it returns no partial payload.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrDuplicate is a uniqueness violation, such as a second user with the
	// same email.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is a row rejected before or by the schema (missing
	// owner, unknown status, broken foreign key).
	ErrInvalidEntity = errors.New("invalid entity")

	ErrTransactionFailed = errors.New("transaction failed")
)

// StoreError records which entity and operation failed. It unwraps to the
// sentinel above so callers branch with errors.Is.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Operation, e.Entity, e.Message)
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError builds a StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}

// Unavailable tags a failed read so it matches ErrStoreUnavailable.
func Unavailable(entity, operation string, err error) *StoreError {
	return NewStoreError(entity, operation, "query failed", fmt.Errorf("%w: %w", ErrStoreUnavailable, err))
}
