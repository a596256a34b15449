package usecase

import (
	"context"
	"strings"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
	"github.com/ingberrio/erp-sub001/internal/core/port"
)

// PermissionForm holds the draft for creating or editing a permission.
type PermissionForm struct {
	Name        string
	Description string

	existing *domain.Permission
}

// NewPermissionForm seeds the draft from an existing permission, or starts
// blank for create when permission is nil.
func NewPermissionForm(permission *domain.Permission) *PermissionForm {
	f := &PermissionForm{existing: permission}
	if permission != nil {
		f.Name = permission.Name
		if permission.Description != nil {
			f.Description = *permission.Description
		}
	}
	return f
}

// IsEdit reports whether the form mutates an existing permission.
func (f *PermissionForm) IsEdit() bool { return f.existing != nil }

// Validate checks the draft locally so invalid payloads never round-trip.
func (f *PermissionForm) Validate() error {
	verr := NewValidationError()
	if strings.TrimSpace(f.Name) == "" {
		verr.Add("name", "name is required")
	}
	if verr.Any() {
		return verr
	}
	return nil
}

// Submit validates, builds the payload, and issues the create or update.
func (f *PermissionForm) Submit(ctx context.Context, scope domain.Scope, gateway port.PermissionGateway) (*domain.Permission, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	payload := domain.Permission{Name: strings.TrimSpace(f.Name)}
	if description := strings.TrimSpace(f.Description); description != "" {
		payload.Description = &description
	}

	if f.existing != nil {
		payload.ID = f.existing.ID
		payload.TenantID = f.existing.TenantID
		return gateway.Update(ctx, scope, payload)
	}
	return gateway.Create(ctx, scope, payload)
}
