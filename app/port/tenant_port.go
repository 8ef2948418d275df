package port

//go:generate mockgen -source=tenant_port.go -destination=../mocks/mock_tenant_port.go -package=mocks

import (
	"context"

	"auth-gateway/app/domain"

	"github.com/google/uuid"
)

// TenantUsecase defines tenant identification business logic interface
type TenantUsecase interface {
	// IdentifyTenant resolves the active tenant for a department code and
	// builds the provider authorization URL for it. A miss yields
	// Found=false, not an error.
	IdentifyTenant(ctx context.Context, department string) (*domain.TenantIdentification, error)

	GetTenantByID(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, error)
}

// TenantRepository defines tenant data access interface
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, error)
	// GetActiveByIdentifier returns domain.ErrTenantNotFound when no tenant
	// matches or the match is inactive.
	GetActiveByIdentifier(ctx context.Context, identifier string) (*domain.Tenant, error)
	Count(ctx context.Context) (int64, error)
}
