package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
)

// DefaultIDPAlias is the identity-provider hint used when a tenant does not
// configure its own upstream broker.
const DefaultIDPAlias = "microsoft"

// Tenant represents an organization in the multi-tenant system. The
// Identifier is the business key matched against the department code users
// enter at login.
type Tenant struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	Identifier string       `json:"identifier"`
	IDPAlias   string       `json:"idp_alias"`
	Status     TenantStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// identifierRegex validates tenant identifiers (lowercase, alphanumeric, hyphens only)
var identifierRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// NewTenant creates a new tenant with validation
func NewTenant(name, identifier, idpAlias string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if identifier == "" {
		return nil, fmt.Errorf("identifier is required")
	}

	if len(identifier) > 255 {
		return nil, fmt.Errorf("identifier must be 255 characters or less")
	}

	if !identifierRegex.MatchString(identifier) {
		return nil, fmt.Errorf("identifier must contain only lowercase letters, numbers, and hyphens")
	}

	if idpAlias == "" {
		idpAlias = DefaultIDPAlias
	}

	now := time.Now()

	return &Tenant{
		ID:         uuid.New(),
		Name:       name,
		Identifier: identifier,
		IDPAlias:   idpAlias,
		Status:     TenantStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// Deactivate marks the tenant inactive. Inactive tenants no longer resolve
// during identification.
func (t *Tenant) Deactivate() {
	t.Status = TenantStatusInactive
	t.UpdatedAt = time.Now()
}

// Activate marks the tenant active
func (t *Tenant) Activate() {
	t.Status = TenantStatusActive
	t.UpdatedAt = time.Now()
}
