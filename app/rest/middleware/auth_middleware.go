package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"
)

// Context keys for the authenticated principal
const (
	userContextKey   = "auth_user"
	tenantContextKey = "auth_tenant"
)

// AuthMiddleware guards routes with bearer-token authentication
type AuthMiddleware struct {
	authUsecase port.AuthUsecase
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authUsecase port.AuthUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authUsecase: authUsecase,
		logger:      logger,
	}
}

// RequireAuth verifies the bearer token and stores the resolved user and
// tenant on the request context. 401 covers a missing, invalid or unknown
// principal; 403 is reserved for a known but deactivated one.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error": "authentication required",
					"code":  "UNAUTHORIZED",
				})
			}

			user, tenant, err := m.authUsecase.CurrentUser(c.Request().Context(), token)
			if err != nil {
				return m.rejectToken(c, err)
			}

			c.Set(userContextKey, user)
			c.Set(tenantContextKey, tenant)

			return next(c)
		}
	}
}

func (m *AuthMiddleware) rejectToken(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserInactive):
		m.logger.Warn("inactive user rejected", "ip", c.RealIP())
		return c.JSON(http.StatusForbidden, map[string]interface{}{
			"error": "user account is not active",
			"code":  "USER_INACTIVE",
		})
	case errors.Is(err, domain.ErrKeySetUnavailable):
		m.logger.Error("token verification unavailable", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"error": "signing keys are temporarily unavailable",
			"code":  "KEY_SET_UNAVAILABLE",
		})
	default:
		m.logger.Info("bearer token rejected", "error", err, "ip", c.RealIP())
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"error": "authentication required",
			"code":  "UNAUTHORIZED",
		})
	}
}

// extractBearerToken pulls the token out of the Authorization header
func extractBearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// UserFromContext returns the authenticated user set by RequireAuth
func UserFromContext(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

// TenantFromContext returns the authenticated user's tenant set by RequireAuth
func TenantFromContext(c echo.Context) *domain.Tenant {
	tenant, _ := c.Get(tenantContextKey).(*domain.Tenant)
	return tenant
}
