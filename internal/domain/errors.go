package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across use cases and adapters.
// Adapters wrap these with context; handlers match with errors.Is.
var (
	// ErrNotFound indicates the requested entity does not exist for this user
	ErrNotFound = errors.New("not found")

	// ErrRateMissing indicates a currency conversion was requested but no
	// manual exchange rate covering the pair exists
	ErrRateMissing = errors.New("exchange rate missing")

	// ErrNotConfigured indicates a required upstream credential is absent.
	// This is a configuration problem, not a transient upstream failure:
	// operators should fix the environment rather than retry.
	ErrNotConfigured = errors.New("upstream credential not configured")

	// ErrPriceFeedUnavailable indicates the external price feed failed
	ErrPriceFeedUnavailable = errors.New("price feed unavailable")

	// ErrNewsUnavailable indicates the external news source failed
	ErrNewsUnavailable = errors.New("news source unavailable")

	// ErrGeneratorUnavailable indicates the text generation service failed
	ErrGeneratorUnavailable = errors.New("text generator unavailable")
)

// ValidationError reports malformed caller input. It always maps to a 400
// response and is never retried.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// NewValidationError creates a ValidationError with a formatted message
func NewValidationError(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
