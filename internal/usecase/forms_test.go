package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

// Gateway mocks recording the payloads they receive.

type roleGatewayMock struct {
	created *domain.Role
	updated *domain.Role
	deleted []string
	err     error
}

func (m *roleGatewayMock) List(_ context.Context, _ domain.Scope) ([]domain.Role, error) {
	return nil, nil
}

func (m *roleGatewayMock) Create(_ context.Context, _ domain.Scope, role domain.Role) (*domain.Role, error) {
	if m.err != nil {
		return nil, m.err
	}
	role.ID = "generated"
	m.created = &role
	return &role, nil
}

func (m *roleGatewayMock) Update(_ context.Context, _ domain.Scope, role domain.Role) (*domain.Role, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.updated = &role
	return &role, nil
}

func (m *roleGatewayMock) Delete(_ context.Context, _ domain.Scope, id string) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

type userGatewayMock struct {
	created        *domain.User
	updated        *domain.User
	createPassword string
	updatePassword string
	networkTouched bool
}

func (m *userGatewayMock) List(_ context.Context, _ domain.Scope) ([]domain.User, error) {
	m.networkTouched = true
	return nil, nil
}

func (m *userGatewayMock) Create(_ context.Context, _ domain.Scope, user domain.User, password string) (*domain.User, error) {
	m.networkTouched = true
	user.ID = "generated"
	m.created = &user
	m.createPassword = password
	return &user, nil
}

func (m *userGatewayMock) Update(_ context.Context, _ domain.Scope, user domain.User, password string) (*domain.User, error) {
	m.networkTouched = true
	m.updated = &user
	m.updatePassword = password
	return &user, nil
}

func (m *userGatewayMock) Delete(_ context.Context, _ domain.Scope, _ string) error {
	m.networkTouched = true
	return nil
}

func TestRoleFormSubmitsFullPermissionSet(t *testing.T) {
	description := "full access"
	role := domain.Role{ID: "1", Name: "Admin", Description: &description, Permissions: []string{"10", "11"}}
	candidates := []domain.Permission{{ID: "10", Name: "a"}, {ID: "11", Name: "b"}}

	form := NewRoleForm(&role, candidates)
	form.Permissions.Toggle("10")

	gw := &roleGatewayMock{}
	if _, err := form.Submit(context.Background(), domain.Scope{TenantID: "7"}, gw); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if gw.updated == nil {
		t.Fatal("expected update call for existing role")
	}
	// The payload is the full resulting set, not a diff.
	if !reflect.DeepEqual(gw.updated.Permissions, []string{"11"}) {
		t.Fatalf("expected permissions [11], got %v", gw.updated.Permissions)
	}
}

func TestRoleFormPrunesStalePermissionIDs(t *testing.T) {
	role := domain.Role{ID: "1", Name: "Admin", Permissions: []string{"10", "99"}}
	candidates := []domain.Permission{{ID: "10", Name: "a"}}

	form := NewRoleForm(&role, candidates)

	gw := &roleGatewayMock{}
	if _, err := form.Submit(context.Background(), domain.Scope{TenantID: "7"}, gw); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !reflect.DeepEqual(gw.updated.Permissions, []string{"10"}) {
		t.Fatalf("expected stale id 99 pruned, got %v", gw.updated.Permissions)
	}
}

func TestRoleFormRequiresName(t *testing.T) {
	form := NewRoleForm(nil, nil)
	form.Name = "   "

	gw := &roleGatewayMock{}
	_, err := form.Submit(context.Background(), domain.Scope{TenantID: "7"}, gw)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if gw.created != nil || gw.updated != nil {
		t.Fatal("validation failure must not reach the gateway")
	}
}

func TestUserFormCreateRequiresPassword(t *testing.T) {
	form := NewUserForm(nil, nil)
	form.Name = "Ana"
	form.Email = "ana@example.com"

	gw := &userGatewayMock{}
	_, err := form.Submit(context.Background(), domain.Scope{TenantID: "7"}, gw)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["password"]; !ok {
		t.Fatalf("expected password failure, got %v", verr.Fields)
	}
	if gw.networkTouched {
		t.Fatal("no network call may be issued for an invalid create")
	}
}

func TestUserFormRejectsWeakPassword(t *testing.T) {
	form := NewUserForm(nil, nil)
	form.Name = "Ana"
	form.Email = "ana@example.com"
	form.Password = "aaaa"

	gw := &userGatewayMock{}
	if _, err := form.Submit(context.Background(), domain.Scope{TenantID: "7"}, gw); err == nil {
		t.Fatal("expected weak password rejection")
	}
	if gw.networkTouched {
		t.Fatal("no network call may be issued for a weak password")
	}
}

func TestUserFormEditEmptyPasswordMeansNoChange(t *testing.T) {
	user := domain.User{ID: "u1", Name: "Ana", Email: "ana@example.com", TenantID: "7", Roles: []string{"2"}}
	roles := []domain.Role{{ID: "2", Name: "Viewer"}}

	form := NewUserForm(&user, roles)

	gw := &userGatewayMock{}
	if _, err := form.Submit(context.Background(), domain.Scope{TenantID: "7"}, gw); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if gw.updated == nil {
		t.Fatal("expected update call")
	}
	if gw.updatePassword != "" {
		t.Fatalf("expected empty password pass-through, got %q", gw.updatePassword)
	}
}

func TestUserFormSurvivesRoleDeletedMidEdit(t *testing.T) {
	// Role 2 was deleted by another screen while the form still had it
	// checked; reseeding against the refreshed role list drops it without
	// touching the other assignment.
	user := domain.User{ID: "u1", Name: "Ana", Email: "ana@example.com", TenantID: "7", Roles: []string{"2", "3"}}
	refreshed := []domain.Role{{ID: "3", Name: "Auditor"}}

	form := NewUserForm(&user, refreshed)

	gw := &userGatewayMock{}
	if _, err := form.Submit(context.Background(), domain.Scope{TenantID: "7"}, gw); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !reflect.DeepEqual(gw.updated.Roles, []string{"3"}) {
		t.Fatalf("expected deleted role dropped, got %v", gw.updated.Roles)
	}
}

func TestUserFormCarriesScopeTenant(t *testing.T) {
	form := NewUserForm(nil, nil)
	form.Name = "Ana"
	form.Email = "ana@example.com"
	form.Password = "correct-horse-battery"

	gw := &userGatewayMock{}
	if _, err := form.Submit(context.Background(), domain.Scope{TenantID: "9"}, gw); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if gw.created.TenantID != "9" {
		t.Fatalf("expected tenant 9 on payload, got %q", gw.created.TenantID)
	}
	if gw.createPassword != "correct-horse-battery" {
		t.Fatal("expected password forwarded on create")
	}
}

func TestPermissionFormValidateAndSeed(t *testing.T) {
	description := "view plant batches"
	existing := domain.Permission{ID: "p1", Name: "plants:read", Description: &description}

	form := NewPermissionForm(&existing)
	if !form.IsEdit() {
		t.Fatal("expected edit mode")
	}
	if form.Name != "plants:read" || form.Description != "view plant batches" {
		t.Fatalf("expected seeded draft, got %q / %q", form.Name, form.Description)
	}

	blank := NewPermissionForm(nil)
	if blank.IsEdit() {
		t.Fatal("expected create mode")
	}
	var verr *ValidationError
	if err := blank.Validate(); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty name, got %v", err)
	}
}
