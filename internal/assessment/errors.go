package assessment

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes assessment errors for the UI boundary. The UI
// maps codes to recovery actions; the core never carries behavior
// inside its error values.
type ErrorCode string

const (
	// ErrCodeMalformedFile indicates bytes that do not parse as an
	// assessment document (invalid JSON, or JSON that is not an object).
	ErrCodeMalformedFile ErrorCode = "MALFORMED_FILE"

	// ErrCodeSchemaIncompatible indicates a parseable document whose
	// schema version or required structure does not match this build.
	ErrCodeSchemaIncompatible ErrorCode = "SCHEMA_INCOMPATIBLE"

	// ErrCodeFileTooLarge indicates the pre-flight size check failed.
	ErrCodeFileTooLarge ErrorCode = "FILE_TOO_LARGE"

	// ErrCodeStorageExhausted indicates the snapshot store rejected a
	// write due to capacity.
	ErrCodeStorageExhausted ErrorCode = "STORAGE_EXHAUSTED"

	// ErrCodeServiceUnavailable indicates the external analysis service
	// is unconfigured or the call failed.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// ErrCodeUnknown is the catch-all for unclassified failures.
	ErrCodeUnknown ErrorCode = "UNKNOWN"
)

// Error is the core's error value. UserMessage is short and safe to
// show directly; Detail is the technical diagnostic, preserved
// end-to-end for logs and support.
type Error struct {
	Code        ErrorCode
	UserMessage string
	Detail      string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.UserMessage, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.UserMessage)
}

// NewError builds an Error with a formatted technical detail.
func NewError(code ErrorCode, userMessage, detailFormat string, args ...any) *Error {
	return &Error{
		Code:        code,
		UserMessage: userMessage,
		Detail:      fmt.Sprintf(detailFormat, args...),
	}
}

// CodeOf extracts the error code from err, unwrapping as needed.
// Returns ErrCodeUnknown for non-assessment errors and "" for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ErrCodeUnknown
}

// IsCode reports whether err carries the given code.
// Uses errors.As to handle wrapped errors.
func IsCode(err error, code ErrorCode) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}

// UserMessageOf returns the short user-facing message for err, falling
// back to err.Error() for unclassified errors.
func UserMessageOf(err error) string {
	if err == nil {
		return ""
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.UserMessage
	}
	return err.Error()
}
