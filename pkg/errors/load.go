package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a classified load failure.
type ErrorCode string

const (
	ErrParseError        ErrorCode = "parse_error"
	ErrBadTimestamp      ErrorCode = "bad_timestamp"
	ErrMissingField      ErrorCode = "missing_field"
	ErrInvalidRecordCode ErrorCode = "invalid_record"
	ErrUnsupportedInput  ErrorCode = "unsupported_format"
	ErrEmptyInput        ErrorCode = "empty_input"
	ErrIOError           ErrorCode = "io_error"
	ErrLoadError         ErrorCode = "load_error"
)

// LoadError is a structured error for data load failures.
type LoadError struct {
	Code    ErrorCode
	Source  string
	Line    int
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Source != "" && e.Line > 0 {
		return fmt.Sprintf("%s: %s:%d: %s", e.Code, e.Source, e.Line, e.Message)
	}
	if e.Source != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Source, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ClassifyLoadError inspects an error and returns a *LoadError with the
// appropriate code. If the error doesn't match any known pattern, it returns
// a LoadError with ErrLoadError.
func ClassifyLoadError(err error, source string) *LoadError {
	if err == nil {
		return nil
	}

	le := &LoadError{
		Source: source,
		Cause:  err,
	}

	if errors.Is(err, ErrUnsupportedFormat) {
		le.Code = ErrUnsupportedInput
		le.Message = err.Error()
		return le
	}

	if errors.Is(err, ErrInvalidRecord) {
		le.Code = ErrInvalidRecordCode
		le.Message = err.Error()
		return le
	}

	if errors.Is(err, ErrEmptyBatch) {
		le.Code = ErrEmptyInput
		le.Message = err.Error()
		return le
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	// Timestamp patterns
	if strings.Contains(lower, "parsing time") || strings.Contains(lower, "timestamp") || strings.Contains(lower, "datetime") {
		le.Code = ErrBadTimestamp
		le.Message = msg
		return le
	}

	// Missing column or field patterns
	if strings.Contains(lower, "missing") && (strings.Contains(lower, "field") || strings.Contains(lower, "column") || strings.Contains(lower, "header")) {
		le.Code = ErrMissingField
		le.Message = msg
		return le
	}

	// CSV and JSON decoding patterns
	if strings.Contains(lower, "parse") || strings.Contains(lower, "unmarshal") || strings.Contains(lower, "unexpected end of") || strings.Contains(lower, "wrong number of fields") || strings.Contains(lower, "invalid character") {
		le.Code = ErrParseError
		le.Message = msg
		return le
	}

	// Filesystem patterns
	if strings.Contains(lower, "no such file") || strings.Contains(lower, "permission denied") || strings.Contains(lower, "is a directory") {
		le.Code = ErrIOError
		le.Message = msg
		return le
	}

	le.Code = ErrLoadError
	le.Message = msg
	return le
}

// IsRecoverable returns true if the error affects a single record rather than
// the whole load. Callers may skip the record and continue.
func IsRecoverable(err error) bool {
	var le *LoadError
	if errors.As(err, &le) {
		if info, ok := ErrorCodeRegistry[le.Code]; ok {
			return info.Recoverable
		}
		return false
	}
	return false
}
