package domain

// Permission defines a named capability. A nil TenantID marks a global
// template permission authored by a platform admin; otherwise the
// permission belongs to exactly one tenant.
type Permission struct {
	ID          string
	Name        string
	Description *string
	TenantID    *string
}

// Role defines a set of permissions. Permissions holds the full set of
// assigned permission IDs; the server treats a submitted set as an
// authoritative replacement, never a diff.
type Role struct {
	ID          string
	Name        string
	Description *string
	Permissions []string
	TenantID    *string
	UsersCount  int
}

// HasPermission reports whether the role carries the given permission ID.
func (r Role) HasPermission(id string) bool {
	for _, pid := range r.Permissions {
		if pid == id {
			return true
		}
	}
	return false
}
