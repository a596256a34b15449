package usecase

import (
	"context"
	"strings"

	zxcvbn "github.com/nbutton23/zxcvbn-go"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
	"github.com/ingberrio/erp-sub001/internal/core/port"
)

// minPasswordScore is the zxcvbn floor for new passwords.
const minPasswordScore = 2

// UserForm holds the draft for creating or editing a user, including the
// role assignment matrix. Password is write-only: required on create,
// blank on edit means the password is left unchanged.
type UserForm struct {
	Name     string
	Email    string
	Password string
	Roles    *Matrix

	existing *domain.User
}

// NewUserForm seeds the draft from an existing user, or starts blank for
// create. candidates is the currently fetched role set; assigned IDs no
// longer in it are pruned.
func NewUserForm(user *domain.User, candidates []domain.Role) *UserForm {
	f := &UserForm{existing: user, Roles: NewMatrix(nil)}
	if user != nil {
		f.Name = user.Name
		f.Email = user.Email
		f.Roles = NewMatrix(user.Roles)
	}

	valid := make([]string, 0, len(candidates))
	for _, role := range candidates {
		valid = append(valid, role.ID)
	}
	f.Roles.Prune(valid)
	return f
}

// IsEdit reports whether the form mutates an existing user.
func (f *UserForm) IsEdit() bool { return f.existing != nil }

// Validate checks the draft locally. A create without a password, or with
// one zxcvbn rates below the floor, is rejected before any network call.
func (f *UserForm) Validate() error {
	verr := NewValidationError()
	if strings.TrimSpace(f.Name) == "" {
		verr.Add("name", "name is required")
	}

	email := strings.TrimSpace(f.Email)
	if email == "" {
		verr.Add("email", "email is required")
	} else if !strings.Contains(email, "@") {
		verr.Add("email", "email is invalid")
	}

	if f.existing == nil && f.Password == "" {
		verr.Add("password", "password is required")
	}
	if f.Password != "" {
		if result := zxcvbn.PasswordStrength(f.Password, []string{f.Name, email}); result.Score < minPasswordScore {
			verr.Add("password", "password is too weak")
		}
	}

	if verr.Any() {
		return verr
	}
	return nil
}

// Submit validates and issues the create or update. The payload carries
// the complete resulting role ID set; an empty password on edit is
// omitted from the request body entirely.
func (f *UserForm) Submit(ctx context.Context, scope domain.Scope, gateway port.UserGateway) (*domain.User, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	payload := domain.User{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		TenantID: scope.TenantID,
		Roles:    f.Roles.IDs(),
	}

	if f.existing != nil {
		payload.ID = f.existing.ID
		return gateway.Update(ctx, scope, payload, f.Password)
	}
	return gateway.Create(ctx, scope, payload, f.Password)
}
