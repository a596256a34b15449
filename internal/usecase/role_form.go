package usecase

import (
	"context"
	"strings"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
	"github.com/ingberrio/erp-sub001/internal/core/port"
)

// RoleForm holds the draft for creating or editing a role, including the
// permission assignment matrix.
type RoleForm struct {
	Name        string
	Description string
	Permissions *Matrix

	existing *domain.Role
}

// NewRoleForm seeds the draft from an existing role, or starts blank for
// create. candidates is the currently fetched permission set; any assigned
// ID no longer in it is pruned so a deleted permission cannot be
// resubmitted.
func NewRoleForm(role *domain.Role, candidates []domain.Permission) *RoleForm {
	f := &RoleForm{existing: role, Permissions: NewMatrix(nil)}
	if role != nil {
		f.Name = role.Name
		if role.Description != nil {
			f.Description = *role.Description
		}
		f.Permissions = NewMatrix(role.Permissions)
	}

	valid := make([]string, 0, len(candidates))
	for _, permission := range candidates {
		valid = append(valid, permission.ID)
	}
	f.Permissions.Prune(valid)
	return f
}

// IsEdit reports whether the form mutates an existing role.
func (f *RoleForm) IsEdit() bool { return f.existing != nil }

// Validate checks the draft locally.
func (f *RoleForm) Validate() error {
	verr := NewValidationError()
	if strings.TrimSpace(f.Name) == "" {
		verr.Add("name", "name is required")
	}
	if verr.Any() {
		return verr
	}
	return nil
}

// Submit validates and issues the create or update. The payload carries
// the complete resulting permission ID set, never a diff: the server
// replaces the relation with exactly what it receives.
func (f *RoleForm) Submit(ctx context.Context, scope domain.Scope, gateway port.RoleGateway) (*domain.Role, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	payload := domain.Role{
		Name:        strings.TrimSpace(f.Name),
		Permissions: f.Permissions.IDs(),
	}
	if description := strings.TrimSpace(f.Description); description != "" {
		payload.Description = &description
	}

	if f.existing != nil {
		payload.ID = f.existing.ID
		payload.TenantID = f.existing.TenantID
		payload.UsersCount = f.existing.UsersCount
		return gateway.Update(ctx, scope, payload)
	}
	return gateway.Create(ctx, scope, payload)
}
