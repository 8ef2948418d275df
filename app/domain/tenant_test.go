package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenant(t *testing.T) {
	tests := []struct {
		name       string
		tenantName string
		identifier string
		idpAlias   string
		wantErr    bool
		wantAlias  string
	}{
		{
			name:       "valid tenant",
			tenantName: "Tenant A Corp",
			identifier: "tenant-a",
			idpAlias:   "microsoft",
			wantErr:    false,
			wantAlias:  "microsoft",
		},
		{
			name:       "empty alias falls back to default",
			tenantName: "Tenant B Industries",
			identifier: "tenant-b",
			idpAlias:   "",
			wantErr:    false,
			wantAlias:  DefaultIDPAlias,
		},
		{
			name:       "empty name",
			tenantName: "",
			identifier: "tenant-a",
			wantErr:    true,
		},
		{
			name:       "whitespace only name",
			tenantName: "   ",
			identifier: "tenant-a",
			wantErr:    true,
		},
		{
			name:       "empty identifier",
			tenantName: "Tenant A Corp",
			identifier: "",
			wantErr:    true,
		},
		{
			name:       "identifier with uppercase",
			tenantName: "Tenant A Corp",
			identifier: "Tenant-A",
			wantErr:    true,
		},
		{
			name:       "identifier with spaces",
			tenantName: "Tenant A Corp",
			identifier: "tenant a",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenant, err := NewTenant(tt.tenantName, tt.identifier, tt.idpAlias)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, tenant)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.identifier, tenant.Identifier)
			assert.Equal(t, tt.wantAlias, tenant.IDPAlias)
			assert.Equal(t, TenantStatusActive, tenant.Status)
			assert.True(t, tenant.IsActive())
			assert.NotEmpty(t, tenant.ID)
		})
	}
}

func TestTenant_StatusTransitions(t *testing.T) {
	tenant, err := NewTenant("Tenant A Corp", "tenant-a", "")
	require.NoError(t, err)

	tenant.Deactivate()
	assert.False(t, tenant.IsActive())
	assert.Equal(t, TenantStatusInactive, tenant.Status)

	tenant.Activate()
	assert.True(t, tenant.IsActive())
}
