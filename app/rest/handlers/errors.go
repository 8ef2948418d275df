package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"auth-gateway/app/domain"
	apperrors "auth-gateway/app/utils/errors"
	"auth-gateway/app/utils/validator"
)

// ErrorResponse is the JSON error body returned by all handlers
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// toAppError translates domain errors into HTTP-mapped application errors.
// The taxonomy matters at the edges: a missing local user is 401 while an
// inactive one is 403, and a key-set outage is 503 because retrying helps.
func toAppError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}

	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		return apperrors.Wrap(apperrors.ErrCodeValidationFailed, validationErr.Error(), err)
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return apperrors.Wrap(apperrors.ErrCodeUpstreamAuth, "identity provider request failed", err)
	}

	switch {
	case errors.Is(err, domain.ErrKeySetUnavailable):
		return apperrors.Wrap(apperrors.ErrCodeKeySetUnavailable, "signing keys are temporarily unavailable", err)
	case errors.Is(err, domain.ErrInvalidToken):
		return apperrors.Wrap(apperrors.ErrCodeInvalidToken, "token verification failed", err)
	case errors.Is(err, domain.ErrIncompleteClaims):
		return apperrors.Wrap(apperrors.ErrCodeIncompleteClaims, "token claims are missing required user information", err)
	case errors.Is(err, domain.ErrTenantNotFound):
		return apperrors.Wrap(apperrors.ErrCodeTenantNotFound, "no active tenant matches the department", err)
	case errors.Is(err, domain.ErrUserNotFound):
		return apperrors.Wrap(apperrors.ErrCodeUserNotFound, "user is not registered", err)
	case errors.Is(err, domain.ErrUserInactive):
		return apperrors.Wrap(apperrors.ErrCodeUserInactive, "user account is not active", err)
	case errors.Is(err, domain.ErrUserConflict):
		return apperrors.Wrap(apperrors.ErrCodeUserConflict, "user already exists", err)
	case errors.Is(err, domain.ErrUnauthorized):
		return apperrors.Wrap(apperrors.ErrCodeUnauthorized, "authentication required", err)
	case errors.Is(err, domain.ErrForbidden):
		return apperrors.Wrap(apperrors.ErrCodeForbidden, "access denied", err)
	default:
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "internal server error", err)
	}
}

// respondError writes the mapped error as a JSON response
func respondError(c echo.Context, err error) error {
	appErr := toAppError(err)
	return c.JSON(appErr.StatusCode, ErrorResponse{
		Error:   appErr.Message,
		Code:    string(appErr.Code),
		Details: appErr.Details,
	})
}
