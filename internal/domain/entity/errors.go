package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")

	// ErrTransport indicates that a catalog request failed in transit:
	// network failure, timeout, or a non-2xx response.
	ErrTransport = errors.New("catalog request failed")

	// ErrMalformedResponse indicates that a catalog response did not have
	// the expected shape.
	ErrMalformedResponse = errors.New("malformed catalog response")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// UserMessage returns the text shown to a user for a failed catalog
// operation. Transport and shape failures get fixed wording; anything
// else falls back to the error text.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedResponse):
		return "Received an unexpected response from the catalog. Please try again."
	case errors.Is(err, ErrTransport):
		return "Failed to load products. Please try again."
	default:
		return err.Error()
	}
}
