package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTenant(t *testing.T) *Tenant {
	t.Helper()

	tenant, err := NewTenant("Tenant A Corp", "tenant-a", "microsoft")
	require.NoError(t, err)
	return tenant
}

func testClaims() *Claims {
	return &Claims{
		Subject:    "abc-123",
		Email:      "a@x.com",
		GivenName:  "A",
		FamilyName: "B",
	}
}

func TestNewUserFromClaims(t *testing.T) {
	tests := []struct {
		name    string
		claims  *Claims
		wantErr error
	}{
		{
			name:   "valid claims",
			claims: testClaims(),
		},
		{
			name:    "missing subject",
			claims:  &Claims{Email: "a@x.com"},
			wantErr: ErrIncompleteClaims,
		},
		{
			name:    "missing email",
			claims:  &Claims{Subject: "abc-123"},
			wantErr: ErrIncompleteClaims,
		},
		{
			name:    "malformed email",
			claims:  &Claims{Subject: "abc-123", Email: "not an email"},
			wantErr: ErrIncompleteClaims,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenant := testTenant(t)
			user, err := NewUserFromClaims(tt.claims, tenant)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "abc-123", user.SubjectID)
			assert.Equal(t, "a@x.com", user.Email)
			assert.Equal(t, tenant.ID, user.TenantID)
			assert.Equal(t, tenant.Identifier, user.Department)
			assert.Equal(t, UserStatusActive, user.Status)
			assert.NotNil(t, user.LastLoginAt)
		})
	}
}

func TestNewUserFromClaims_NilInputs(t *testing.T) {
	tenant := testTenant(t)

	_, err := NewUserFromClaims(nil, tenant)
	assert.Error(t, err)

	_, err = NewUserFromClaims(testClaims(), nil)
	assert.Error(t, err)
}

func TestUser_ApplyClaims(t *testing.T) {
	tenant := testTenant(t)
	user, err := NewUserFromClaims(testClaims(), tenant)
	require.NoError(t, err)

	firstLogin := *user.LastLoginAt

	// A later login with changed profile fields refreshes the mirror but
	// keeps identity and status.
	newTenant, err := NewTenant("Tenant B Industries", "tenant-b", "microsoft")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	user.ApplyClaims(&Claims{
		Subject:    "abc-123",
		Email:      "renamed@x.com",
		GivenName:  "Renamed",
		FamilyName: "User",
	}, newTenant)

	assert.Equal(t, "abc-123", user.SubjectID)
	assert.Equal(t, "renamed@x.com", user.Email)
	assert.Equal(t, "Renamed", user.FirstName)
	assert.Equal(t, newTenant.ID, user.TenantID)
	assert.Equal(t, "tenant-b", user.Department)
	assert.Equal(t, UserStatusActive, user.Status)
	assert.True(t, user.LastLoginAt.After(firstLogin))
}

func TestUser_IsActive(t *testing.T) {
	tenant := testTenant(t)
	user, err := NewUserFromClaims(testClaims(), tenant)
	require.NoError(t, err)

	assert.True(t, user.IsActive())

	user.Status = UserStatusInactive
	assert.False(t, user.IsActive())
}
