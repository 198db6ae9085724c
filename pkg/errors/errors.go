// Package errors provides common domain error types for calendar analytics.
//
// This package defines sentinel errors for common domain conditions like "not found"
// or "invalid record" that can be used across all packages. Using typed errors enables
// consistent error handling patterns with errors.Is() checks.
//
// Usage:
//
//	import caerrors "github.com/mdomarsaleem1/calendar-analytics/pkg/errors"
//
//	// Return a domain error
//	return nil, caerrors.ErrEmployeeNotFound
//
//	// Check for domain errors
//	if caerrors.IsNotFound(err) {
//	    // handle not found case
//	}
package errors

import "errors"

// Domain errors - common sentinel errors for domain conditions.
var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrEmployeeNotFound indicates the email has no entry in the HR directory.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrValidation indicates invalid input or validation failure.
	ErrValidation = errors.New("validation error")

	// ErrInvalidRecord indicates a source record that could not be interpreted.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrUnsupportedFormat indicates a file extension or payload shape the
	// loaders do not understand.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEmptyBatch indicates a load produced no usable records.
	ErrEmptyBatch = errors.New("empty batch")

	// ErrInvalidState indicates the operation is not valid for the current state.
	ErrInvalidState = errors.New("invalid state")
)

// IsNotFound reports whether any error in err's chain is ErrNotFound or
// ErrEmployeeNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrEmployeeNotFound)
}

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidRecord reports whether any error in err's chain is ErrInvalidRecord.
func IsInvalidRecord(err error) bool {
	return errors.Is(err, ErrInvalidRecord)
}

// IsUnsupportedFormat reports whether any error in err's chain is ErrUnsupportedFormat.
func IsUnsupportedFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}

// IsEmptyBatch reports whether any error in err's chain is ErrEmptyBatch.
func IsEmptyBatch(err error) bool {
	return errors.Is(err, ErrEmptyBatch)
}

// IsInvalidState reports whether any error in err's chain is ErrInvalidState.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}
