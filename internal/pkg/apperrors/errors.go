package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Authentication errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrUnauthorized  = errors.New("authentication required")
	ErrInvalidFormat = errors.New("invalid token format")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Event registration errors
var (
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrEventClosed       = errors.New("event is no longer open for registration")
	ErrEventFull         = errors.New("event has reached its capacity")
)

// News engagement errors
var (
	ErrEmptyComment = errors.New("comment content must not be empty")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a validation failure naming the offending field
func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Field:   field,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}
