package domain

// TenantIdentification is the outcome of resolving a department code.
// A miss is a normal branch of the public identification flow, so it is
// reported as Found=false rather than an error.
type TenantIdentification struct {
	Found   bool
	Tenant  *Tenant
	AuthURL string
}

// AuthenticatedSession is the result of a completed callback or refresh:
// the provider's tokens plus the reconciled local user and owning tenant.
type AuthenticatedSession struct {
	Tokens *TokenSet
	User   *User
	Tenant *Tenant
}
