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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrPermission   ErrorCode = "PERMISSION"

	// Caller skipped a check that must hold before an unconditional action
	ErrPrecondition ErrorCode = "PRECONDITION"

	// Repository configuration errors (fatal, reported before any entry is touched)
	ErrNotRepository     ErrorCode = "NOT_REPOSITORY"
	ErrConfigCorrupt     ErrorCode = "CONFIG_CORRUPT"
	ErrConfigNotRecord   ErrorCode = "CONFIG_NOT_RECORD"
	ErrVersionMissing    ErrorCode = "VERSION_MISSING"
	ErrVersionNotInteger ErrorCode = "VERSION_NOT_INTEGER"
	ErrVersionTooNew     ErrorCode = "VERSION_TOO_NEW"
	ErrLayoutInvalid     ErrorCode = "LAYOUT_INVALID"

	// Status file errors
	ErrStatusCorrupt ErrorCode = "STATUS_CORRUPT"
	ErrStatusVersion ErrorCode = "STATUS_VERSION"

	// Application configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Template errors
	ErrTemplateParse   ErrorCode = "TEMPLATE_PARSE"
	ErrTemplateExecute ErrorCode = "TEMPLATE_EXECUTE"

	// FileSystem errors
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrFileRemove    ErrorCode = "FILE_REMOVE"
	ErrFileRename    ErrorCode = "FILE_RENAME"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// CoffleError represents a structured error with code and details
type CoffleError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CoffleError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CoffleError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CoffleError) Is(target error) bool {
	var targetErr *CoffleError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CoffleError with the given code and message
func New(code ErrorCode, message string) *CoffleError {
	return &CoffleError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CoffleError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CoffleError {
	return &CoffleError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CoffleError
func Wrap(err error, code ErrorCode, message string) *CoffleError {
	if err == nil {
		return nil
	}
	return &CoffleError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CoffleError {
	if err == nil {
		return nil
	}
	return &CoffleError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CoffleError) WithDetail(key string, value interface{}) *CoffleError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *CoffleError) WithDetails(details map[string]interface{}) *CoffleError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var coffleErr *CoffleError
	if errors.As(err, &coffleErr) {
		return coffleErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CoffleError
func GetErrorCode(err error) ErrorCode {
	var coffleErr *CoffleError
	if errors.As(err, &coffleErr) {
		return coffleErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a CoffleError
func GetErrorDetails(err error) map[string]interface{} {
	var coffleErr *CoffleError
	if errors.As(err, &coffleErr) {
		return coffleErr.Details
	}
	return nil
}