package errors

import "fmt"

// AppError is a structured application error with a stable code
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an error with additional context, preserving an existing
// AppError code
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	code := CodeInternalError
	if appErr, ok := err.(*AppError); ok {
		code = appErr.Code
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if err is an AppError, else "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeParseError      = "PARSE_ERROR"
	CodeDatabaseError   = "DATABASE_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeExternalService = "EXTERNAL_SERVICE_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

// ConfigInvalid flags a configuration problem caught at load time
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// ParseError flags unreadable or corrupt file input
func ParseError(message string, cause error) *AppError {
	return &AppError{Code: CodeParseError, Message: message, Cause: cause}
}

// DatabaseError flags a persistence failure
func DatabaseError(message string, cause error) *AppError {
	return &AppError{Code: CodeDatabaseError, Message: message, Cause: cause}
}

// NotFound flags a missing resource
func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// InvalidInput flags a malformed request
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// ExternalServiceError flags a failure in an upstream service call
func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code:    CodeExternalService,
		Message: fmt.Sprintf("%s service error", service),
		Cause:   cause,
	}
}
