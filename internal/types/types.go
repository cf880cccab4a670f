// Package types defines core data types and errors shared across the
// ghana-translator application.
package types

import "errors"

// ErrorCode identifies the category of an application error
type ErrorCode string

const (
	// ErrConfig indicates a bad or unusable terminology source or
	// application configuration. Fatal, raised before any translation.
	ErrConfig ErrorCode = "CONFIG_ERROR"
	// ErrService indicates a failure of the external translation
	// service: network error, non-2xx response, or timeout.
	ErrService ErrorCode = "SERVICE_ERROR"
	// ErrInvalidInput indicates invalid caller input.
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrFileIO indicates a file read or write failure.
	ErrFileIO ErrorCode = "FILE_IO_ERROR"
	// ErrInternal indicates an unexpected internal failure.
	ErrInternal ErrorCode = "INTERNAL_ERROR"
)

// AppError is the application error type. Callers match on Code rather
// than on sentinel values.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface for AppError
func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError with the given code, message, and optional cause
func NewAppError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewAppErrorWithDetails creates a new AppError with details
func NewAppErrorWithDetails(code ErrorCode, message, details string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// CodeOf returns the ErrorCode carried by err, unwrapping as needed.
// Returns ErrInternal for non-AppError errors and "" for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// IsCode reports whether err carries the given ErrorCode.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// CandidateSpan is a contiguous slice of input text proposed by a
// phrase extractor as a possible terminology occurrence. Start and End
// are byte offsets into the original UTF-8 text; Surface is the exact
// text slice text[Start:End].
type CandidateSpan struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Surface string `json:"surface"`
}

// Len returns the span length in bytes.
func (s CandidateSpan) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether two spans share at least one byte.
func (s CandidateSpan) Overlaps(o CandidateSpan) bool {
	return s.Start < o.End && o.Start < s.End
}
