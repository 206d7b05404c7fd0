package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCanceled     ErrorCode = "CANCELED"

	// Search directory errors
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrNotDirectory ErrorCode = "NOT_DIRECTORY"
	ErrPathResolve  ErrorCode = "PATH_RESOLVE"

	// Traversal errors
	ErrDirAccess ErrorCode = "DIR_ACCESS"
	ErrOutput    ErrorCode = "OUTPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
)

// BrokensymError represents a structured error with code and details
type BrokensymError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BrokensymError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BrokensymError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BrokensymError) Is(target error) bool {
	var targetErr *BrokensymError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BrokensymError with the given code and message
func New(code ErrorCode, message string) *BrokensymError {
	return &BrokensymError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BrokensymError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BrokensymError {
	return &BrokensymError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BrokensymError
func Wrap(err error, code ErrorCode, message string) *BrokensymError {
	if err == nil {
		return nil
	}
	return &BrokensymError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BrokensymError {
	if err == nil {
		return nil
	}
	return &BrokensymError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BrokensymError) WithDetail(key string, value interface{}) *BrokensymError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var bsErr *BrokensymError
	if errors.As(err, &bsErr) {
		return bsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BrokensymError
func GetErrorCode(err error) ErrorCode {
	var bsErr *BrokensymError
	if errors.As(err, &bsErr) {
		return bsErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a BrokensymError
func GetErrorDetails(err error) map[string]interface{} {
	var bsErr *BrokensymError
	if errors.As(err, &bsErr) {
		return bsErr.Details
	}
	return nil
}

// ExitCode maps an error to a process exit status. Finding broken links is
// not a failure, so only a non-nil error yields a non-zero status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Describe returns the operating system's description of err without the
// operation and path that *fs.PathError and *os.SyscallError prepend, the
// way perror(3) would print it.
func Describe(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	var sysErr *os.SyscallError
	if errors.As(err, &sysErr) {
		return sysErr.Err.Error()
	}
	return err.Error()
}
