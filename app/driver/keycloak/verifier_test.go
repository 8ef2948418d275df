package keycloak

import (
	"context"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-gateway/app/domain"
)

func signTestToken(t *testing.T, priv *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(priv)
	require.NoError(t, err)
	return signed
}

func TestVerifier_Verify(t *testing.T) {
	priv, pub := generateTestKey(t, "key-1")

	var fetches atomic.Int32
	srv := jwksServer(t, &fetches, func() []jose.JSONWebKey {
		return []jose.JSONWebKey{pub}
	})
	defer srv.Close()

	log := testLogger(t)
	verifier := NewVerifier(NewKeySetCache(testConfig(t, srv.URL), log), log)

	exp := time.Now().Add(time.Hour)
	tokenString := signTestToken(t, priv, "key-1", jwt.MapClaims{
		"sub":         "user-123",
		"email":       "jordan@finance.example.com",
		"given_name":  "Jordan",
		"family_name": "Lee",
		"department":  "finance",
		"exp":         exp.Unix(),
	})

	claims, err := verifier.Verify(context.Background(), tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "jordan@finance.example.com", claims.Email)
	assert.Equal(t, "Jordan", claims.GivenName)
	assert.Equal(t, "Lee", claims.FamilyName)
	assert.Equal(t, "finance", claims.Department)
	assert.WithinDuration(t, exp, claims.ExpiresAt, time.Second)
}

func TestVerifier_ExpiredToken(t *testing.T) {
	priv, pub := generateTestKey(t, "key-1")

	var fetches atomic.Int32
	srv := jwksServer(t, &fetches, func() []jose.JSONWebKey {
		return []jose.JSONWebKey{pub}
	})
	defer srv.Close()

	log := testLogger(t)
	verifier := NewVerifier(NewKeySetCache(testConfig(t, srv.URL), log), log)

	tokenString := signTestToken(t, priv, "key-1", jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	_, err := verifier.Verify(context.Background(), tokenString)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifier_WrongKey(t *testing.T) {
	// token signed by a key the realm never published
	rogue, _ := generateTestKey(t, "key-1")
	_, pub := generateTestKey(t, "key-1")

	var fetches atomic.Int32
	srv := jwksServer(t, &fetches, func() []jose.JSONWebKey {
		return []jose.JSONWebKey{pub}
	})
	defer srv.Close()

	log := testLogger(t)
	verifier := NewVerifier(NewKeySetCache(testConfig(t, srv.URL), log), log)

	tokenString := signTestToken(t, rogue, "key-1", jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := verifier.Verify(context.Background(), tokenString)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifier_UnknownKidIsInvalidToken(t *testing.T) {
	priv, pub := generateTestKey(t, "key-1")

	var fetches atomic.Int32
	srv := jwksServer(t, &fetches, func() []jose.JSONWebKey {
		return []jose.JSONWebKey{pub}
	})
	defer srv.Close()

	log := testLogger(t)
	verifier := NewVerifier(NewKeySetCache(testConfig(t, srv.URL), log), log)

	tokenString := signTestToken(t, priv, "key-other", jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := verifier.Verify(context.Background(), tokenString)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.NotErrorIs(t, err, domain.ErrKeySetUnavailable)
}

func TestVerifier_KeySetOutageStaysRetryable(t *testing.T) {
	priv, _ := generateTestKey(t, "key-1")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	log := testLogger(t)
	verifier := NewVerifier(NewKeySetCache(testConfig(t, srv.URL), log), log)

	tokenString := signTestToken(t, priv, "key-1", jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := verifier.Verify(context.Background(), tokenString)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrKeySetUnavailable)
}

func TestVerifier_RejectsNonRS256(t *testing.T) {
	_, pub := generateTestKey(t, "key-1")

	var fetches atomic.Int32
	srv := jwksServer(t, &fetches, func() []jose.JSONWebKey {
		return []jose.JSONWebKey{pub}
	})
	defer srv.Close()

	log := testLogger(t)
	verifier := NewVerifier(NewKeySetCache(testConfig(t, srv.URL), log), log)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token.Header["kid"] = "key-1"
	signed, err := token.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), signed)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
