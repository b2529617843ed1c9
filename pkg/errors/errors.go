package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures so callers can decide whether to skip a
// file, drop a row, or surface the error.
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource or cache key was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates input that could not be interpreted
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeUnsupported indicates a container format this pipeline does not read
	ErrorTypeUnsupported ErrorType = "UNSUPPORTED"

	// ErrorTypeTooLarge indicates a file over the configured byte ceiling
	ErrorTypeTooLarge ErrorType = "TOO_LARGE"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeExternal indicates an error from an external service
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewUnsupportedError creates a new unsupported input error
func NewUnsupportedError(message string) *AppError {
	return &AppError{Type: ErrorTypeUnsupported, Message: message}
}

// NewTooLargeError creates a new oversized input error
func NewTooLargeError(message string) *AppError {
	return &AppError{Type: ErrorTypeTooLarge, Message: message}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeExternal, Message: message, Err: err}
}
