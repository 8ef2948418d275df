package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

var startTime = time.Now()

// DependencyChecker reports whether a backing dependency is reachable
type DependencyChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	db     DependencyChecker
	logger *slog.Logger
}

// HealthResponse is the basic health check body
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Uptime    string    `json:"uptime"`
}

// ReadinessResponse reports per-dependency readiness
type ReadinessResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// NewHealthHandler creates a new health handler. The database checker may
// be nil for services that run without one.
func NewHealthHandler(db DependencyChecker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// HealthCheck performs a basic liveness check
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   "auth-gateway",
		Uptime:    time.Since(startTime).String(),
	})
}

// ReadinessCheck verifies backing dependencies are reachable
func (h *HealthHandler) ReadinessCheck(c echo.Context) error {
	checks := make(map[string]string)
	healthy := true

	if h.db != nil {
		if err := h.db.HealthCheck(c.Request().Context()); err != nil {
			h.logger.Error("database readiness check failed", "error", err)
			checks["database"] = "unreachable"
			healthy = false
		} else {
			checks["database"] = "connected"
		}
	}

	status := http.StatusOK
	overall := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "not ready"
	}

	return c.JSON(status, ReadinessResponse{
		Status:    overall,
		Timestamp: time.Now(),
		Checks:    checks,
	})
}
