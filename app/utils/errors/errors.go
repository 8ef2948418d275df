package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents specific error types
type ErrorCode string

const (
	// Authentication and authorization errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"

	// User management errors
	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserInactive ErrorCode = "USER_INACTIVE"
	ErrCodeUserConflict ErrorCode = "USER_CONFLICT"

	// Tenant management errors
	ErrCodeTenantNotFound ErrorCode = "TENANT_NOT_FOUND"

	// Validation errors
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeIncompleteClaims ErrorCode = "INCOMPLETE_CLAIMS"
	ErrCodeBadRequest       ErrorCode = "BAD_REQUEST"

	// Upstream identity provider errors
	ErrCodeUpstreamAuth      ErrorCode = "UPSTREAM_AUTH_ERROR"
	ErrCodeKeySetUnavailable ErrorCode = "KEY_SET_UNAVAILABLE"

	// System errors
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Rate limiting
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
)

// AppError represents an application error with additional context
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getHTTPStatusCode(code),
	}
}

// Wrap wraps an existing error with AppError
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getHTTPStatusCode(code),
		Cause:      cause,
	}
}

// AsAppError converts an error to AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatusCode gets the HTTP status code for an error
func GetHTTPStatusCode(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// getHTTPStatusCode maps error codes to HTTP status codes
func getHTTPStatusCode(code ErrorCode) int {
	switch code {
	case ErrCodeUnauthorized, ErrCodeInvalidToken, ErrCodeUserNotFound:
		return http.StatusUnauthorized
	case ErrCodeForbidden, ErrCodeUserInactive:
		return http.StatusForbidden
	case ErrCodeTenantNotFound:
		return http.StatusNotFound
	case ErrCodeUserConflict:
		return http.StatusConflict
	case ErrCodeValidationFailed, ErrCodeIncompleteClaims, ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrCodeUpstreamAuth:
		return http.StatusBadGateway
	case ErrCodeKeySetUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeInternalError, ErrCodeDatabaseError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
