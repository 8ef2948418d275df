package gateway

import (
	"context"
	"log/slog"

	"auth-gateway/app/domain"
	"auth-gateway/app/driver/keycloak"
	"auth-gateway/app/port"
)

// IdentityGatewayImpl adapts the Keycloak driver to the identity gateway
// port, translating wire-level token responses into domain token sets.
type IdentityGatewayImpl struct {
	client *keycloak.Client
	logger *slog.Logger
}

// NewIdentityGateway creates an identity gateway backed by Keycloak
func NewIdentityGateway(client *keycloak.Client, logger *slog.Logger) port.IdentityGateway {
	return &IdentityGatewayImpl{
		client: client,
		logger: logger.With("component", "identity_gateway"),
	}
}

// ExchangeCode exchanges an authorization code for a token set
func (g *IdentityGatewayImpl) ExchangeCode(ctx context.Context, code, redirectURI string) (*domain.TokenSet, error) {
	resp, err := g.client.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		return nil, err
	}

	g.logger.Info("authorization code exchanged")
	return toTokenSet(resp), nil
}

// Refresh exchanges a refresh token for a fresh token set
func (g *IdentityGatewayImpl) Refresh(ctx context.Context, refreshToken string) (*domain.TokenSet, error) {
	resp, err := g.client.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	return toTokenSet(resp), nil
}

// Revoke revokes a refresh token at the provider
func (g *IdentityGatewayImpl) Revoke(ctx context.Context, refreshToken string) error {
	return g.client.Revoke(ctx, refreshToken)
}

// UserInfo retrieves the provider's userinfo document for an access token
func (g *IdentityGatewayImpl) UserInfo(ctx context.Context, accessToken string) (map[string]interface{}, error) {
	return g.client.UserInfo(ctx, accessToken)
}

func toTokenSet(resp *keycloak.TokenResponse) *domain.TokenSet {
	return &domain.TokenSet{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		ExpiresIn:    resp.ExpiresIn,
	}
}
