package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/google/uuid"

	"auth-gateway/app/config"
	"auth-gateway/app/domain"
	"auth-gateway/app/port"
)

// TenantUsecase implements tenant identification business logic
type TenantUsecase struct {
	tenantRepo port.TenantRepository
	cfg        *config.Config
	logger     *slog.Logger
}

// NewTenantUsecase creates a new tenant usecase
func NewTenantUsecase(tenantRepo port.TenantRepository, cfg *config.Config, logger *slog.Logger) *TenantUsecase {
	return &TenantUsecase{
		tenantRepo: tenantRepo,
		cfg:        cfg,
		logger:     logger.With("component", "tenant_usecase"),
	}
}

// IdentifyTenant resolves the active tenant for a department code and
// builds the provider authorization URL. A missing or inactive tenant is a
// normal miss, not an error: the caller reports it as Found=false.
func (u *TenantUsecase) IdentifyTenant(ctx context.Context, department string) (*domain.TenantIdentification, error) {
	tenant, err := u.tenantRepo.GetActiveByIdentifier(ctx, department)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			u.logger.Info("no active tenant for department", "department", department)
			return &domain.TenantIdentification{Found: false}, nil
		}
		return nil, fmt.Errorf("failed to identify tenant: %w", err)
	}

	authURL := u.buildAuthorizationURL(tenant)

	u.logger.Info("tenant identified", "department", department, "tenant_id", tenant.ID)
	return &domain.TenantIdentification{
		Found:   true,
		Tenant:  tenant,
		AuthURL: authURL,
	}, nil
}

// GetTenantByID retrieves a tenant by its ID
func (u *TenantUsecase) GetTenantByID(ctx context.Context, tenantID uuid.UUID) (*domain.Tenant, error) {
	return u.tenantRepo.GetByID(ctx, tenantID)
}

// buildAuthorizationURL assembles the provider's authorization endpoint URL
// with the tenant's identity-provider hint so the login page goes straight
// to the right upstream IdP.
func (u *TenantUsecase) buildAuthorizationURL(tenant *domain.Tenant) string {
	idpAlias := tenant.IDPAlias
	if idpAlias == "" {
		idpAlias = domain.DefaultIDPAlias
	}

	params := url.Values{
		"client_id":     {u.cfg.ClientID},
		"response_type": {"code"},
		"redirect_uri":  {u.cfg.OAuthRedirectURI},
		"kc_idp_hint":   {idpAlias},
	}

	return u.cfg.AuthorizeURL() + "?" + params.Encode()
}
