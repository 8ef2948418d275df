package domain

import (
	"errors"
	"fmt"
)

// Authentication and reconciliation errors
var (
	// Token verification errors
	ErrKeySetUnavailable = errors.New("signing key set unavailable")
	ErrInvalidToken      = errors.New("invalid token")

	// Claims errors
	ErrIncompleteClaims = errors.New("token claims missing required user information")

	// Tenant errors
	ErrTenantNotFound = errors.New("tenant not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserInactive = errors.New("user account is not active")
	ErrUserConflict = errors.New("user already exists")

	// General errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// UpstreamError carries the diagnostic detail of a non-2xx response from
// the identity provider. It is terminal for the request; retrying is a
// caller concern.
type UpstreamError struct {
	Operation  string
	StatusCode int
	Body       string
	Cause      error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s failed: upstream returned %d: %s", e.Operation, e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// NewUpstreamError creates an UpstreamError for a non-2xx provider response
func NewUpstreamError(operation string, statusCode int, body string) *UpstreamError {
	return &UpstreamError{
		Operation:  operation,
		StatusCode: statusCode,
		Body:       body,
	}
}
