package service

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced at operation boundaries and mapped to HTTP
// status codes by the API layer.
var (
	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the requester does not own the mutated entity.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports malformed or missing input. The caller can
// recover by resubmitting corrected input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
