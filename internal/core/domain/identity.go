package domain

// User is an operator account scoped to a single tenant. Roles holds the
// full set of assigned role IDs. Passwords are write-only and never appear
// on the entity; they travel only inside create/update payloads.
type User struct {
	ID       string
	Name     string
	Email    string
	TenantID string
	Roles    []string
}

// Tenant is an isolated customer account. Visible only to global admins.
type Tenant struct {
	ID   string
	Name string
}

// Facility is a physical site belonging to one tenant. A facility record
// without a tenant reference cannot be used for scope resolution.
type Facility struct {
	ID       string
	Name     string
	TenantID *string
}

// Scope is the resolved tenant context attached to a request. The zero
// value means unscoped, which only a global admin may use for reads that
// span tenants. Mutating calls always carry a concrete tenant.
type Scope struct {
	TenantID string
}

// Actor is the immutable request-scoped identity derived from the access
// token. It is passed by value to every data-access call instead of living
// in ambient global state.
type Actor struct {
	UserID        string
	Name          string
	IsGlobalAdmin bool
	TenantID      string
}
