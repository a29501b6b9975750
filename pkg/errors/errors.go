package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a lookup by identifier returned no rows
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates malformed input rejected before persistence
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeInvalidFilter indicates an unrecognized filter key or value
	ErrorTypeInvalidFilter ErrorType = "INVALID_FILTER"

	// ErrorTypeConflict indicates a conflict with existing data
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeUnauthorized indicates a missing or invalid credential
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"

	// ErrorTypeForbidden indicates the caller's role may not perform the operation
	ErrorTypeForbidden ErrorType = "FORBIDDEN"

	// ErrorTypeQuery indicates the persistence layer failed to execute a statement
	ErrorTypeQuery ErrorType = "QUERY"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeExternal indicates an error from external service
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

// AppError is the error every layer below the handlers returns. Type
// decides the HTTP status; Err keeps the underlying cause for logs.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error formats the error as "TYPE: message", followed by the wrapped cause
func (e *AppError) Error() string {
	if e.Err == nil {
		return string(e.Type) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

func newError(t ErrorType, message string, err error) *AppError {
	return &AppError{Type: t, Message: message, Err: err}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError { return newError(ErrorTypeNotFound, message, nil) }

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError { return newError(ErrorTypeValidation, message, nil) }

// NewInvalidFilterError reports a filter key or value the query layer does not recognize
func NewInvalidFilterError(key, value string) *AppError {
	return newError(ErrorTypeInvalidFilter, fmt.Sprintf("unrecognized value %q for filter %q", value, key), nil)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *AppError { return newError(ErrorTypeConflict, message, nil) }

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return newError(ErrorTypeUnauthorized, message, nil)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string) *AppError { return newError(ErrorTypeForbidden, message, nil) }

// NewQueryError wraps a driver failure
func NewQueryError(message string, err error) *AppError { return newError(ErrorTypeQuery, message, err) }

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return newError(ErrorTypeInternal, message, err)
}

// NewExternalError wraps a failure of a dependency outside the process
func NewExternalError(message string, err error) *AppError {
	return newError(ErrorTypeExternal, message, err)
}

// Public returns the message safe to show API clients. Detail of query and
// internal failures stays in the logs.
func Public(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return "internal server error"
	}
	switch appErr.Type {
	case ErrorTypeQuery, ErrorTypeInternal:
		return "internal server error"
	}
	return appErr.Message
}

// IsType reports whether any error in err's chain is an AppError of type t.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// TypeOf returns the type of the first AppError in err's chain, or
// ErrorTypeInternal when there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}
