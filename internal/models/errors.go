package models

import (
	"errors"
	"fmt"
)

// Error codes surfaced to the transport layer.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthorization  = "AUTHORIZATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_REQUIRED"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL_ERROR"
)

// AppError is the application error taxonomy. Services return AppError
// values; the API layer maps codes to HTTP statuses.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports invalid caller input, e.g. empty required text.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewAuthorizationError reports a caller acting on a resource they do not own.
func NewAuthorizationError(message string) *AppError {
	return &AppError{Code: CodeAuthorization, Message: message}
}

// NewAuthenticationError reports a missing or unresolvable caller identity.
func NewAuthenticationError(message string) *AppError {
	return &AppError{Code: CodeAuthentication, Message: message}
}

// NewNotFoundError reports a missing referenced entity.
func NewNotFoundError(resource string, key interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, key),
	}
}

// NewInternalError wraps an unexpected infrastructure failure.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "internal error", Err: err}
}

// ErrorCode extracts the taxonomy code from err, defaulting to
// CodeInternal for errors outside the taxonomy.
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}
