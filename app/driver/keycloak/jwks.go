package keycloak

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-jose/go-jose/v4"

	"auth-gateway/app/config"
	"auth-gateway/app/domain"
)

// ErrUnknownKeyID is returned when a key id is absent from the key set even
// after a fresh fetch. Verification callers treat it as an invalid token,
// not as a key-set outage.
var ErrUnknownKeyID = fmt.Errorf("signing key id not found in key set")

// KeySetCache fetches and caches the realm's published signing keys (JWKS).
// It is the only shared mutable state in the process: reads are concurrent,
// refreshes are serialized by the write lock. Duplicate concurrent fetches
// are tolerated since the fetch is idempotent.
type KeySetCache struct {
	jwksURL    string
	ttl        time.Duration
	httpClient *http.Client
	logger     *slog.Logger

	mu        sync.RWMutex
	keySet    *jose.JSONWebKeySet
	fetchedAt time.Time
}

// NewKeySetCache creates a key set cache for the configured realm
func NewKeySetCache(cfg *config.Config, logger *slog.Logger) *KeySetCache {
	return &KeySetCache{
		jwksURL: cfg.JWKSURL(),
		ttl:     cfg.JWKSCacheTTL,
		httpClient: &http.Client{
			Timeout: cfg.KeycloakTimeout,
		},
		logger: logger.With("component", "key_set_cache"),
	}
}

// KeyByID returns the public key for a key id. On a stale cache or an
// unknown key id, exactly one fresh fetch is attempted before failing:
// rotation makes an unknown kid the expected signal that new keys were
// published.
func (c *KeySetCache) KeyByID(ctx context.Context, kid string) (interface{}, error) {
	if key, ok := c.lookup(kid); ok {
		return key, nil
	}

	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}

	if key, ok := c.lookup(kid); ok {
		return key, nil
	}

	c.logger.Warn("signing key not found after refresh", "kid", kid)
	return nil, fmt.Errorf("%w: %q", ErrUnknownKeyID, kid)
}

// Refresh fetches the key set from the JWKS endpoint and replaces the
// cached copy. A failed fetch never caches a negative result.
func (c *KeySetCache) Refresh(ctx context.Context) error {
	keySet, err := c.fetch(ctx)
	if err != nil {
		c.logger.Error("failed to refresh key set", "url", c.jwksURL, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrKeySetUnavailable, err)
	}

	c.mu.Lock()
	c.keySet = keySet
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	c.logger.Info("key set refreshed", "keys", len(keySet.Keys))
	return nil
}

// lookup searches the cached key set; a stale cache never serves keys.
func (c *KeySetCache) lookup(kid string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.keySet == nil || time.Since(c.fetchedAt) > c.ttl {
		return nil, false
	}

	for _, key := range c.keySet.Key(kid) {
		if key.Use == "" || key.Use == "sig" {
			return key.Key, true
		}
	}
	return nil, false
}

func (c *KeySetCache) fetch(ctx context.Context) (*jose.JSONWebKeySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build JWKS request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JWKS endpoint returned status %d", resp.StatusCode)
	}

	var keySet jose.JSONWebKeySet
	if err := json.NewDecoder(resp.Body).Decode(&keySet); err != nil {
		return nil, fmt.Errorf("failed to decode JWKS response: %w", err)
	}

	if len(keySet.Keys) == 0 {
		return nil, fmt.Errorf("JWKS endpoint returned an empty key set")
	}

	return &keySet, nil
}
