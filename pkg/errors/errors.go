package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for the filesystem operation taxonomy
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// OS-level errors, translated from errno
	ErrNotFound          ErrorCode = "NOT_FOUND"
	ErrPermission        ErrorCode = "PERMISSION"
	ErrAlreadyExists     ErrorCode = "ALREADY_EXISTS"
	ErrInvalidArgument   ErrorCode = "INVALID_ARGUMENT"
	ErrInappropriateType ErrorCode = "INAPPROPRIATE_TYPE"
	ErrDirNotEmpty       ErrorCode = "DIR_NOT_EMPTY"
	ErrCrossDevice       ErrorCode = "CROSS_DEVICE"

	// Pre-check errors raised before any syscall is attempted
	ErrSameFile            ErrorCode = "SAME_FILE"
	ErrDestinationInSource ErrorCode = "DESTINATION_IN_SOURCE"

	// Aggregate error for best-effort recursive operations
	ErrRecursiveFailure ErrorCode = "RECURSIVE_FAILURE"
)

// HPathError represents a structured error with code and details
type HPathError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *HPathError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HPathError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *HPathError) Is(target error) bool {
	var targetErr *HPathError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new HPathError with the given code and message
func New(code ErrorCode, message string) *HPathError {
	return &HPathError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new HPathError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *HPathError {
	return &HPathError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an HPathError
func Wrap(err error, code ErrorCode, message string) *HPathError {
	if err == nil {
		return nil
	}
	return &HPathError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HPathError {
	if err == nil {
		return nil
	}
	return &HPathError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *HPathError) WithDetail(key string, value interface{}) *HPathError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var hpathErr *HPathError
	if errors.As(err, &hpathErr) {
		return hpathErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an HPathError
func GetErrorCode(err error) ErrorCode {
	var hpathErr *HPathError
	if errors.As(err, &hpathErr) {
		return hpathErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an HPathError
func GetErrorDetails(err error) map[string]interface{} {
	var hpathErr *HPathError
	if errors.As(err, &hpathErr) {
		return hpathErr.Details
	}
	return nil
}
