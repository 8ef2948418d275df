package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the auth gateway
type Config struct {
	// Server
	Port     string
	Host     string
	LogLevel string

	// Database
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseSSLMode  string

	// Keycloak. PublicURL is what the browser can reach and is only used
	// for the authorization redirect; every server-to-server call uses URL.
	KeycloakURL       string
	KeycloakPublicURL string
	KeycloakRealm     string
	ClientID          string
	ClientSecret      string
	OAuthRedirectURI  string

	// Identity provider client behavior
	KeycloakTimeout time.Duration
	JWKSCacheTTL    time.Duration

	// HTTP
	CORSOrigins []string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", "8000")
	config.Host = getEnvOrDefault("HOST", "0.0.0.0")
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	// Database configuration
	config.DatabaseHost = getEnvOrDefault("DB_HOST", "localhost")
	config.DatabasePort = getEnvOrDefault("DB_PORT", "5432")
	config.DatabaseName = getEnvOrDefault("DB_NAME", "multitenantauth")
	config.DatabaseUser = getEnvOrDefault("DB_USER", "postgres")
	config.DatabasePassword = os.Getenv("DB_PASSWORD")
	if config.DatabasePassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	config.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", "disable")

	// Keycloak configuration
	config.KeycloakURL = os.Getenv("KEYCLOAK_URL")
	if config.KeycloakURL == "" {
		return nil, fmt.Errorf("KEYCLOAK_URL is required")
	}
	config.KeycloakPublicURL = getEnvOrDefault("KEYCLOAK_PUBLIC_URL", config.KeycloakURL)

	config.KeycloakRealm = os.Getenv("KEYCLOAK_REALM")
	if config.KeycloakRealm == "" {
		return nil, fmt.Errorf("KEYCLOAK_REALM is required")
	}

	config.ClientID = os.Getenv("KEYCLOAK_CLIENT_ID")
	if config.ClientID == "" {
		return nil, fmt.Errorf("KEYCLOAK_CLIENT_ID is required")
	}

	config.ClientSecret = os.Getenv("KEYCLOAK_CLIENT_SECRET")
	if config.ClientSecret == "" {
		return nil, fmt.Errorf("KEYCLOAK_CLIENT_SECRET is required")
	}

	config.OAuthRedirectURI = os.Getenv("OAUTH_REDIRECT_URI")
	if config.OAuthRedirectURI == "" {
		return nil, fmt.Errorf("OAUTH_REDIRECT_URI is required")
	}

	var err error
	timeoutStr := getEnvOrDefault("KEYCLOAK_TIMEOUT", "10s")
	config.KeycloakTimeout, err = time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid KEYCLOAK_TIMEOUT: %w", err)
	}

	ttlStr := getEnvOrDefault("JWKS_CACHE_TTL", "1h")
	config.JWKSCacheTTL, err = time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWKS_CACHE_TTL: %w", err)
	}

	originsStr := getEnvOrDefault("CORS_ORIGINS", "http://localhost:3000")
	for _, origin := range strings.Split(originsStr, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			config.CORSOrigins = append(config.CORSOrigins, origin)
		}
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadResource reads the subset of configuration the resource service
// needs. It validates tokens locally, so no database or confidential
// client credentials are required.
func LoadResource() (*Config, error) {
	config := &Config{}

	config.Port = getEnvOrDefault("PORT", "8001")
	config.Host = getEnvOrDefault("HOST", "0.0.0.0")
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	config.KeycloakURL = os.Getenv("KEYCLOAK_URL")
	if config.KeycloakURL == "" {
		return nil, fmt.Errorf("KEYCLOAK_URL is required")
	}
	config.KeycloakPublicURL = getEnvOrDefault("KEYCLOAK_PUBLIC_URL", config.KeycloakURL)

	config.KeycloakRealm = os.Getenv("KEYCLOAK_REALM")
	if config.KeycloakRealm == "" {
		return nil, fmt.Errorf("KEYCLOAK_REALM is required")
	}

	var err error
	timeoutStr := getEnvOrDefault("KEYCLOAK_TIMEOUT", "10s")
	config.KeycloakTimeout, err = time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid KEYCLOAK_TIMEOUT: %w", err)
	}

	ttlStr := getEnvOrDefault("JWKS_CACHE_TTL", "1h")
	config.JWKSCacheTTL, err = time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWKS_CACHE_TTL: %w", err)
	}

	originsStr := getEnvOrDefault("CORS_ORIGINS", "http://localhost:3000")
	for _, origin := range strings.Split(originsStr, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			config.CORSOrigins = append(config.CORSOrigins, origin)
		}
	}

	if err := config.validateCore(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.validateCore(); err != nil {
		return err
	}
	if !isValidURL(c.OAuthRedirectURI) {
		return fmt.Errorf("invalid URL: %s", c.OAuthRedirectURI)
	}
	return nil
}

func (c *Config) validateCore() error {
	port, err := strconv.ParseInt(c.Port, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	for _, raw := range []string{c.KeycloakURL, c.KeycloakPublicURL} {
		if !isValidURL(raw) {
			return fmt.Errorf("invalid URL: %s", raw)
		}
	}

	if c.KeycloakTimeout < time.Second {
		return fmt.Errorf("keycloak timeout must be at least 1 second, got: %v", c.KeycloakTimeout)
	}

	// The cache may hold keys up to the provider's rotation interval; a
	// sub-minute TTL just hammers the JWKS endpoint.
	if c.JWKSCacheTTL < time.Minute {
		return fmt.Errorf("JWKS cache TTL must be at least 1 minute, got: %v", c.JWKSCacheTTL)
	}

	return nil
}

// Derived Keycloak endpoint URLs

// TokenURL returns the realm token endpoint
func (c *Config) TokenURL() string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", c.KeycloakURL, c.KeycloakRealm)
}

// AuthorizeURL returns the browser-facing authorization endpoint
func (c *Config) AuthorizeURL() string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/auth", c.KeycloakPublicURL, c.KeycloakRealm)
}

// JWKSURL returns the realm certs endpoint publishing the signing key set
func (c *Config) JWKSURL() string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/certs", c.KeycloakURL, c.KeycloakRealm)
}

// UserInfoURL returns the realm userinfo endpoint
func (c *Config) UserInfoURL() string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/userinfo", c.KeycloakURL, c.KeycloakRealm)
}

// RevocationURL returns the realm token revocation endpoint
func (c *Config) RevocationURL() string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/revoke", c.KeycloakURL, c.KeycloakRealm)
}

// Issuer returns the realm issuer URL
func (c *Config) Issuer() string {
	return fmt.Sprintf("%s/realms/%s", c.KeycloakURL, c.KeycloakRealm)
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
