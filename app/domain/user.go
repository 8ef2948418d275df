package domain

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User represents a local mirror of an identity-provider principal. The
// SubjectID is the provider's stable `sub` claim; all other claim-derived
// fields are refreshed on every successful login.
type User struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	SubjectID   string     `json:"subject_id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	Department  string     `json:"department"`
	Status      UserStatus `json:"status"`
	LastLoginAt *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewUserFromClaims creates a new active user from verified token claims,
// bound to the resolved tenant.
func NewUserFromClaims(claims *Claims, tenant *Tenant) (*User, error) {
	if claims == nil {
		return nil, fmt.Errorf("claims are required")
	}
	if tenant == nil {
		return nil, fmt.Errorf("tenant is required")
	}
	if err := claims.Validate(); err != nil {
		return nil, err
	}

	if _, err := mail.ParseAddress(claims.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email format: %v", ErrIncompleteClaims, err)
	}

	now := time.Now()

	return &User{
		ID:          uuid.New(),
		TenantID:    tenant.ID,
		SubjectID:   claims.Subject,
		Email:       claims.Email,
		FirstName:   claims.GivenName,
		LastName:    claims.FamilyName,
		Department:  tenant.Identifier,
		Status:      UserStatusActive,
		LastLoginAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ApplyClaims overwrites the claim-derived fields from a fresh login and
// rebinds the user to the resolved tenant. Status is never touched here.
func (u *User) ApplyClaims(claims *Claims, tenant *Tenant) {
	now := time.Now()
	u.Email = claims.Email
	u.FirstName = claims.GivenName
	u.LastName = claims.FamilyName
	u.Department = tenant.Identifier
	u.TenantID = tenant.ID
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// RecordLogin records the last login time
func (u *User) RecordLogin(loginTime time.Time) {
	u.LastLoginAt = &loginTime
	u.UpdatedAt = time.Now()
}

// IsActive returns true if the user is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
