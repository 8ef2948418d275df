package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"auth-gateway/app/config"
	"auth-gateway/app/domain"
	"auth-gateway/app/port"
)

// AuthUsecase implements the OAuth2 flow business logic
type AuthUsecase struct {
	identity    port.IdentityGateway
	verifier    port.TokenVerifier
	tenantRepo  port.TenantRepository
	userRepo    port.UserRepository
	redirectURI string
	logger      *slog.Logger
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	identity port.IdentityGateway,
	verifier port.TokenVerifier,
	tenantRepo port.TenantRepository,
	userRepo port.UserRepository,
	cfg *config.Config,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		identity:    identity,
		verifier:    verifier,
		tenantRepo:  tenantRepo,
		userRepo:    userRepo,
		redirectURI: cfg.OAuthRedirectURI,
		logger:      logger.With("component", "auth_usecase"),
	}
}

// HandleCallback completes the authorization-code flow: exchange the code,
// verify the access token against the realm's keys, resolve the tenant and
// reconcile the local user mirror. The department parameter wins over the
// token's department claim when both are present.
func (u *AuthUsecase) HandleCallback(ctx context.Context, code, department string) (*domain.AuthenticatedSession, error) {
	tokens, err := u.identity.ExchangeCode(ctx, code, u.redirectURI)
	if err != nil {
		return nil, err
	}

	claims, err := u.verifier.Verify(ctx, tokens.AccessToken)
	if err != nil {
		return nil, err
	}

	if department == "" {
		department = claims.Department
	}
	if department == "" {
		u.logger.Warn("callback carries no department", "sub", claims.Subject)
		return nil, domain.ErrTenantNotFound
	}

	tenant, err := u.tenantRepo.GetActiveByIdentifier(ctx, department)
	if err != nil {
		return nil, err
	}

	user, err := u.reconcileUser(ctx, claims, tenant)
	if err != nil {
		return nil, err
	}

	if !user.IsActive() {
		u.logger.Warn("inactive user attempted login", "user_id", user.ID, "subject_id", user.SubjectID)
		return nil, domain.ErrUserInactive
	}

	u.logger.Info("callback completed",
		"user_id", user.ID,
		"tenant_id", tenant.ID,
		"department", department)

	return &domain.AuthenticatedSession{
		Tokens: tokens,
		User:   user,
		Tenant: tenant,
	}, nil
}

// RefreshSession exchanges a refresh token for fresh tokens and bumps the
// user's last login.
func (u *AuthUsecase) RefreshSession(ctx context.Context, refreshToken string) (*domain.AuthenticatedSession, error) {
	tokens, err := u.identity.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	claims, err := u.verifier.Verify(ctx, tokens.AccessToken)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetBySubjectID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	// A forbidden refresh must leave no trace: bump last_login only once
	// the user is known to be active.
	if !user.IsActive() {
		return nil, domain.ErrUserInactive
	}

	user, err = u.userRepo.RecordLogin(ctx, claims.Subject, time.Now())
	if err != nil {
		return nil, err
	}

	tenant, err := u.tenantRepo.GetByID(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}

	u.logger.Info("session refreshed", "user_id", user.ID)
	return &domain.AuthenticatedSession{
		Tokens: tokens,
		User:   user,
		Tenant: tenant,
	}, nil
}

// Logout revokes the refresh token at the provider. There is no local
// session state to clear; tokens are the only session artifact.
func (u *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	if err := u.identity.Revoke(ctx, refreshToken); err != nil {
		return err
	}

	u.logger.Info("session logged out")
	return nil
}

// CurrentUser verifies a bearer token and resolves the local user and its
// tenant. A missing local user is unauthenticated, an inactive one is
// forbidden; handlers map the two differently.
func (u *AuthUsecase) CurrentUser(ctx context.Context, accessToken string) (*domain.User, *domain.Tenant, error) {
	claims, err := u.verifier.Verify(ctx, accessToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := u.userRepo.GetBySubjectID(ctx, claims.Subject)
	if err != nil {
		return nil, nil, err
	}

	if !user.IsActive() {
		return nil, nil, domain.ErrUserInactive
	}

	tenant, err := u.tenantRepo.GetByID(ctx, user.TenantID)
	if err != nil {
		return nil, nil, err
	}

	return user, tenant, nil
}

// reconcileUser builds the claim-derived user state and upserts it. A
// unique-constraint conflict means another request inserted the same
// subject concurrently; one retry then lands on the update path.
func (u *AuthUsecase) reconcileUser(ctx context.Context, claims *domain.Claims, tenant *domain.Tenant) (*domain.User, error) {
	candidate, err := domain.NewUserFromClaims(claims, tenant)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.Upsert(ctx, candidate)
	if errors.Is(err, domain.ErrUserConflict) {
		u.logger.Info("retrying user reconcile after concurrent insert", "subject_id", claims.Subject)
		user, err = u.userRepo.Upsert(ctx, candidate)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile user: %w", err)
	}

	return user, nil
}
