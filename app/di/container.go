package di

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"auth-gateway/app/config"
	"auth-gateway/app/driver/keycloak"
	"auth-gateway/app/driver/postgres"
	"auth-gateway/app/gateway"
	"auth-gateway/app/port"
	"auth-gateway/app/rest"
	"auth-gateway/app/usecase"
)

// Container holds all dependencies for the gateway. Nothing here is
// global: every component receives its collaborators explicitly.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB       *postgres.DB
	KeySet   *keycloak.KeySetCache
	Keycloak *keycloak.Client

	// Gateways and verifiers
	IdentityGateway port.IdentityGateway
	TokenVerifier   port.TokenVerifier

	// Usecases
	AuthUsecase   port.AuthUsecase
	TenantUsecase port.TenantUsecase
}

// NewContainer creates and wires the full dependency graph
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error
	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container.KeySet = keycloak.NewKeySetCache(cfg, logger)
	container.Keycloak = keycloak.NewClient(cfg, logger)
	container.TokenVerifier = keycloak.NewVerifier(container.KeySet, logger)
	container.IdentityGateway = gateway.NewIdentityGateway(container.Keycloak, logger)

	tenantRepository := postgres.NewTenantRepository(container.DB.Pool(), logger)
	userRepository := postgres.NewUserRepository(container.DB.Pool(), logger)

	container.TenantUsecase = usecase.NewTenantUsecase(tenantRepository, cfg, logger)
	container.AuthUsecase = usecase.NewAuthUsecase(
		container.IdentityGateway,
		container.TokenVerifier,
		tenantRepository,
		userRepository,
		cfg,
		logger,
	)

	logger.Info("dependency container initialized")
	return container, nil
}

// CreateRouter creates a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	return rest.NewRouter(rest.RouterConfig{
		Logger:        c.Logger,
		AuthUsecase:   c.AuthUsecase,
		TenantUsecase: c.TenantUsecase,
		DBChecker:     c.DB,
		CORSOrigins:   c.Config.CORSOrigins,
		EnableDebug:   c.Config.LogLevel == "debug",
	})
}

// Close releases held resources
func (c *Container) Close() {
	if c.DB != nil {
		c.DB.Close()
	}
}
