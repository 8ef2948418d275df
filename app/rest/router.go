package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"auth-gateway/app/port"
	"auth-gateway/app/rest/handlers"
	custommw "auth-gateway/app/rest/middleware"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger        *slog.Logger
	AuthUsecase   port.AuthUsecase
	TenantUsecase port.TenantUsecase
	DBChecker     handlers.DependencyChecker
	CORSOrigins   []string
	EnableDebug   bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = config.EnableDebug

	authHandler := handlers.NewAuthHandler(config.AuthUsecase, config.TenantUsecase, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.DBChecker, config.Logger)

	authMiddleware := custommw.NewAuthMiddleware(config.AuthUsecase, config.Logger)
	rateLimiter := custommw.NewRateLimiter()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.NewCORSMiddleware(config.CORSOrigins))
	e.Use(custommw.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
	}))

	v1 := e.Group("/v1")

	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)

	auth := v1.Group("/auth")

	// Public: pre-login and token lifecycle endpoints
	auth.POST("/identify-tenant", authHandler.IdentifyTenant)
	auth.POST("/callback", authHandler.Callback)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected: requires a valid bearer token and an active local user
	auth.POST("/logout", authHandler.Logout, authMiddleware.RequireAuth())
	auth.GET("/me", authHandler.Me, authMiddleware.RequireAuth())

	return e
}
