package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"
)

// TenantRepository implements port.TenantRepository for PostgreSQL
type TenantRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewTenantRepository creates a new PostgreSQL tenant repository
func NewTenantRepository(db DatabaseIface, logger *slog.Logger) port.TenantRepository {
	return &TenantRepository{
		db:     db,
		logger: logger.With("component", "tenant_repository"),
	}
}

// Create creates a new tenant in the database
func (r *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		INSERT INTO tenants (
			id, name, identifier, idp_alias, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)`

	_, err := r.db.Exec(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Identifier,
		tenant.IDPAlias,
		tenant.Status,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("failed to create tenant", "tenant_id", tenant.ID, "error", err)
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	r.logger.Info("tenant created", "tenant_id", tenant.ID, "identifier", tenant.Identifier)
	return nil
}

// GetByID retrieves a tenant by ID
func (r *TenantRepository) GetByID(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, error) {
	query := `
		SELECT id, name, identifier, idp_alias, status, created_at, updated_at
		FROM tenants WHERE id = $1`

	tenant, err := r.scanTenant(r.db.QueryRow(ctx, query, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}
		r.logger.Error("failed to get tenant by id", "tenant_id", tenantID, "error", err)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return tenant, nil
}

// GetActiveByIdentifier retrieves the active tenant matching a department
// code. Inactive tenants are indistinguishable from absent ones.
func (r *TenantRepository) GetActiveByIdentifier(ctx context.Context, identifier string) (*domain.Tenant, error) {
	query := `
		SELECT id, name, identifier, idp_alias, status, created_at, updated_at
		FROM tenants WHERE identifier = $1 AND status = 'active'`

	tenant, err := r.scanTenant(r.db.QueryRow(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}
		r.logger.Error("failed to get tenant by identifier", "identifier", identifier, "error", err)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return tenant, nil
}

// Count returns the number of tenants
func (r *TenantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tenants`).Scan(&count)
	if err != nil {
		r.logger.Error("failed to count tenants", "error", err)
		return 0, fmt.Errorf("failed to count tenants: %w", err)
	}
	return count, nil
}

func (r *TenantRepository) scanTenant(row pgx.Row) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := row.Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Identifier,
		&tenant.IDPAlias,
		&tenant.Status,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}
