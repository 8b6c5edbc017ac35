package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Configuration errors. These are fatal and abort a run before any
	// file is processed.
	ErrConfigLoad      ErrorCode = "CONFIG_LOAD"
	ErrConfigParse     ErrorCode = "CONFIG_PARSE"
	ErrConfigValid     ErrorCode = "CONFIG_INVALID"
	ErrResourceMissing ErrorCode = "RESOURCE_MISSING"
	ErrRuleInvalid     ErrorCode = "RULE_INVALID"

	// Input errors
	ErrInputNotFound ErrorCode = "INPUT_NOT_FOUND"
	ErrNoInputFiles  ErrorCode = "NO_INPUT_FILES"

	// FileSystem errors
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrFileWrite ErrorCode = "FILE_WRITE"

	// Per-file transformation errors
	ErrTransform ErrorCode = "TRANSFORM"
)

// Detail keys shared by callers that attach remediation data.
const (
	DetailPath = "path"
	DetailHint = "hint"
)

// TransformError represents a structured error with code and details
type TransformError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TransformError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TransformError) Unwrap() error {
	return e.Wrapped
}

// Is matches any TransformError carrying the same code.
func (e *TransformError) Is(target error) bool {
	var targetErr *TransformError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TransformError with the given code and message
func New(code ErrorCode, message string) *TransformError {
	return &TransformError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TransformError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TransformError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *TransformError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TransformError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *TransformError) WithDetail(key string, value interface{}) *TransformError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Missing builds the fatal error reported for an absent required resource.
func Missing(path, hint string) *TransformError {
	return Newf(ErrResourceMissing, "required resource not found: %s", path).
		WithDetail(DetailPath, path).
		WithDetail(DetailHint, hint)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var te *TransformError
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TransformError
func GetErrorCode(err error) ErrorCode {
	var te *TransformError
	if errors.As(err, &te) {
		return te.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TransformError
func GetErrorDetails(err error) map[string]interface{} {
	var te *TransformError
	if errors.As(err, &te) {
		return te.Details
	}
	return nil
}
