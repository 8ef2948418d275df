package keycloak

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"auth-gateway/app/config"
	"auth-gateway/app/domain"
)

// upstream response bodies are truncated before being carried in errors
const maxErrorBodyBytes = 2048

// TokenResponse is the wire-level token endpoint response
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Client talks to the realm's OpenID Connect endpoints. Each operation is a
// single bounded network call; retrying is a caller concern.
type Client struct {
	tokenURL      string
	revocationURL string
	userInfoURL   string
	clientID      string
	clientSecret  string
	httpClient    *http.Client
	logger        *slog.Logger
}

// NewClient creates a Keycloak client from configuration
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		tokenURL:      cfg.TokenURL(),
		revocationURL: cfg.RevocationURL(),
		userInfoURL:   cfg.UserInfoURL(),
		clientID:      cfg.ClientID,
		clientSecret:  cfg.ClientSecret,
		httpClient: &http.Client{
			Timeout: cfg.KeycloakTimeout,
		},
		logger: logger.With("component", "keycloak_client"),
	}
}

// ExchangeCode exchanges an authorization code for tokens
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenResponse, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {redirectURI},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	return c.postTokenForm(ctx, "token exchange", c.tokenURL, form)
}

// Refresh exchanges a refresh token for fresh tokens
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	return c.postTokenForm(ctx, "token refresh", c.tokenURL, form)
}

// Revoke revokes a refresh token at the provider
func (c *Client) Revoke(ctx context.Context, refreshToken string) error {
	form := url.Values{
		"token":         {refreshToken},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	resp, err := c.postForm(ctx, "token revocation", c.revocationURL, form)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Info("refresh token revoked")
	return nil
}

// UserInfo retrieves the userinfo document for an access token
func (c *Client) UserInfo(ctx context.Context, accessToken string) (map[string]interface{}, error) {
	const operation = "userinfo fetch"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Operation: operation, Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("userinfo request failed", "error", err)
		return nil, &domain.UpstreamError{Operation: operation, Cause: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(operation, resp); err != nil {
		c.logger.Error("userinfo request rejected", "status", resp.StatusCode)
		return nil, err
	}

	var info map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, &domain.UpstreamError{Operation: operation, Cause: fmt.Errorf("malformed userinfo response: %w", err)}
	}

	return info, nil
}

// postTokenForm posts a form to the token endpoint and decodes the token response
func (c *Client) postTokenForm(ctx context.Context, operation, endpoint string, form url.Values) (*TokenResponse, error) {
	resp, err := c.postForm(ctx, operation, endpoint, form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var tokens TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, &domain.UpstreamError{Operation: operation, Cause: fmt.Errorf("malformed token response: %w", err)}
	}

	c.logger.Info("token endpoint call succeeded", "operation", operation)
	return &tokens, nil
}

// postForm posts a form-encoded request; non-2xx responses become
// UpstreamError with the body carried for diagnostics.
func (c *Client) postForm(ctx context.Context, operation, endpoint string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &domain.UpstreamError{Operation: operation, Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("provider request failed", "operation", operation, "error", err)
		return nil, &domain.UpstreamError{Operation: operation, Cause: err}
	}

	if err := checkStatus(operation, resp); err != nil {
		resp.Body.Close()
		c.logger.Error("provider rejected request", "operation", operation, "status", resp.StatusCode)
		return nil, err
	}

	return resp, nil
}

func checkStatus(operation string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return domain.NewUpstreamError(operation, resp.StatusCode, string(body))
}
