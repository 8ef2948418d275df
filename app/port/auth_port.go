package port

//go:generate mockgen -source=auth_port.go -destination=../mocks/mock_auth_port.go -package=mocks

import (
	"context"

	"auth-gateway/app/domain"
)

// AuthUsecase defines the OAuth2 flow business logic interface
type AuthUsecase interface {
	// HandleCallback exchanges an authorization code, verifies the access
	// token, resolves the tenant and reconciles the local user. The
	// department parameter is optional; the token's department claim takes
	// effect when it is empty.
	HandleCallback(ctx context.Context, code, department string) (*domain.AuthenticatedSession, error)

	// RefreshSession exchanges a refresh token for fresh tokens and bumps
	// the user's last login.
	RefreshSession(ctx context.Context, refreshToken string) (*domain.AuthenticatedSession, error)

	// Logout revokes the refresh token at the provider.
	Logout(ctx context.Context, refreshToken string) error

	// CurrentUser verifies a bearer token and resolves the active local
	// user and its tenant. A missing user is unauthenticated
	// (domain.ErrUserNotFound); an inactive one is forbidden
	// (domain.ErrUserInactive).
	CurrentUser(ctx context.Context, accessToken string) (*domain.User, *domain.Tenant, error)
}

// IdentityGateway defines the identity-provider token endpoint operations.
// Every call is an independent network request; none retries automatically.
type IdentityGateway interface {
	ExchangeCode(ctx context.Context, code, redirectURI string) (*domain.TokenSet, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenSet, error)
	Revoke(ctx context.Context, refreshToken string) error
	UserInfo(ctx context.Context, accessToken string) (map[string]interface{}, error)
}

// TokenVerifier validates a bearer token's signature against the provider's
// published keys and decodes its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Claims, error)
}
