package domain

import "time"

// Claims is the decoded access-token claim set, narrowed to the fields this
// service reads. Anything else the provider puts in the token is dropped at
// the verification boundary.
type Claims struct {
	Subject    string
	Email      string
	GivenName  string
	FamilyName string
	Department string
	ExpiresAt  time.Time
}

// Validate checks that the claims identify a usable principal. Department
// is intentionally not required here: callers may supply it out of band.
func (c *Claims) Validate() error {
	if c.Subject == "" || c.Email == "" {
		return ErrIncompleteClaims
	}
	return nil
}
