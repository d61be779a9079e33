package domain

import "errors"

// ErrNotFound signals that the requested position does not exist.
// Callers treat it as a reportable no-op, not a crash.
var ErrNotFound = errors.New("position not found")

// ValidationError rejects an operation before any mutation happens.
// It carries the offending field so the caller can surface a
// field-level message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a field-level validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
