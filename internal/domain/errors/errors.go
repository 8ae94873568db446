// Package errors defines the application error taxonomy shared by the usecase
// and delivery layers.
package errors

import (
	"net/http"

	"guidemyai/internal/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Wire error code, e.g. "invalid_grant"
	Message() string   // Human-readable error message
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the wire error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the human-readable error message.
func (e *BaseError) Message() string {
	return e.message
}

// Predefined error types. The error codes and messages are part of the wire
// contract; handlers surface them verbatim.
var (
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"unauthorized",
		"No valid session or token found",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"invalid_grant",
		"Invalid credentials",
	)

	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"email_taken",
		"An account with this email already exists",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"forbidden",
		"Unauthorized",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"not_found",
		"Not found",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"invalid_request",
		"Invalid request",
	)

	ErrProfileNameTaken = NewBaseError(
		http.StatusConflict,
		"profile_name_taken",
		"A profile with this name already exists",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"internal_error",
		"internal server error",
	)
)

// NewValidationError creates a 400 error whose message is surfaced verbatim,
// e.g. "Name is required".
func NewValidationError(message string) *BaseError {
	return NewBaseError(http.StatusBadRequest, "invalid_request", message)
}

// DatabaseExecuteError represents a storage failure that carries no
// caller-actionable detail. It reports as a generic 500.
type DatabaseExecuteError struct {
	err error
}

// NewDatabaseExecuteError creates a database-related error.
func NewDatabaseExecuteError(err error) AppError {
	return &DatabaseExecuteError{err: err}
}

// Error implements the error interface.
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code.
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the wire error code.
func (e *DatabaseExecuteError) ErrorCode() string {
	return "internal_error"
}

// Message returns the generic message; storage internals are never leaked.
func (e *DatabaseExecuteError) Message() string {
	return "internal server error"
}
