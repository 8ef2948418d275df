package main

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"
	"auth-gateway/app/rest/middleware"
)

const claimsContextKey = "resource.claims"

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// newRouter builds the resource service routes. Everything under /v1
// except the health check requires a valid bearer token.
func newRouter(verifier port.TokenVerifier, corsOrigins []string, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.NewCORSMiddleware(corsOrigins))
	e.Use(middleware.SecurityHeaders())

	v1 := e.Group("/v1")
	v1.GET("/health", healthCheck)

	protected := v1.Group("", requireBearer(verifier, logger))
	protected.GET("/protected", protectedResource)
	protected.GET("/data", dataResource)

	return e
}

// requireBearer verifies the Authorization header and stores the decoded
// claims in the request context.
func requireBearer(verifier port.TokenVerifier, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, errorBody{
					Error: "missing bearer token",
					Code:  "UNAUTHORIZED",
				})
			}

			claims, err := verifier.Verify(c.Request().Context(), strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				if errors.Is(err, domain.ErrKeySetUnavailable) {
					logger.Error("signing keys unavailable", "error", err)
					return c.JSON(http.StatusServiceUnavailable, errorBody{
						Error: "token verification temporarily unavailable",
						Code:  "KEY_SET_UNAVAILABLE",
					})
				}
				logger.Warn("rejected bearer token", "error", err)
				return c.JSON(http.StatusUnauthorized, errorBody{
					Error: "invalid or expired token",
					Code:  "UNAUTHORIZED",
				})
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

func claimsFromContext(c echo.Context) *domain.Claims {
	claims, _ := c.Get(claimsContextKey).(*domain.Claims)
	return claims
}

func healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "resource-service",
	})
}

func protectedResource(c echo.Context) error {
	claims := claimsFromContext(c)
	return c.JSON(http.StatusOK, map[string]any{
		"message":    "access granted",
		"subject":    claims.Subject,
		"email":      claims.Email,
		"department": claims.Department,
	})
}

func dataResource(c echo.Context) error {
	claims := claimsFromContext(c)
	return c.JSON(http.StatusOK, map[string]any{
		"department": claims.Department,
		"items": []map[string]any{
			{"id": 1, "name": "quarterly report", "owner": claims.Email},
			{"id": 2, "name": "team roster", "owner": claims.Email},
		},
		"retrieved_at": time.Now().UTC().Format(time.RFC3339),
	})
}
