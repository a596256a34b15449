package restapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

// UserGateway implements port.UserGateway over the API.
type UserGateway struct {
	client *Client
}

// NewUserGateway wires the gateway to a client.
func NewUserGateway(client *Client) *UserGateway {
	return &UserGateway{client: client}
}

type userResource struct {
	ID       flexID          `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	TenantID flexID          `json:"tenant_id"`
	Roles    []permissionRef `json:"roles"`
}

func (r userResource) toDomain() domain.User {
	roles := make([]string, 0, len(r.Roles))
	for _, ref := range r.Roles {
		if ref.id != "" {
			roles = append(roles, ref.id.String())
		}
	}
	return domain.User{
		ID:       r.ID.String(),
		Name:     r.Name,
		Email:    r.Email,
		TenantID: r.TenantID.String(),
		Roles:    roles,
	}
}

// userPayload always carries the complete role ID set. Password is
// omitted when empty so an edit without a new password changes nothing.
type userPayload struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	TenantID string   `json:"tenant_id"`
	Roles    []string `json:"roles"`
	Password string   `json:"password,omitempty"`
}

func newUserPayload(user domain.User, password string) userPayload {
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	return userPayload{
		Name:     user.Name,
		Email:    user.Email,
		TenantID: user.TenantID,
		Roles:    roles,
		Password: password,
	}
}

// List fetches users with their nested role sets.
func (g *UserGateway) List(ctx context.Context, scope domain.Scope) ([]domain.User, error) {
	query := url.Values{"with_roles": {"true"}}
	resources, err := listCollection[userResource](ctx, g.client, "/users", scope.TenantID, query)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(resources))
	for _, r := range resources {
		users = append(users, r.toDomain())
	}
	return users, nil
}

// Create posts a new user and returns the server's copy.
func (g *UserGateway) Create(ctx context.Context, scope domain.Scope, user domain.User, password string) (*domain.User, error) {
	var resource userResource
	if err := g.client.do(ctx, http.MethodPost, "/users", scope.TenantID, nil, newUserPayload(user, password), &resource); err != nil {
		return nil, err
	}
	created := resource.toDomain()
	return &created, nil
}

// Update replaces an existing user, including its full role set.
func (g *UserGateway) Update(ctx context.Context, scope domain.Scope, user domain.User, password string) (*domain.User, error) {
	var resource userResource
	if err := g.client.do(ctx, http.MethodPut, "/users/"+user.ID, scope.TenantID, nil, newUserPayload(user, password), &resource); err != nil {
		return nil, err
	}
	updated := resource.toDomain()
	return &updated, nil
}

// Delete removes a user.
func (g *UserGateway) Delete(ctx context.Context, scope domain.Scope, id string) error {
	return g.client.do(ctx, http.MethodDelete, "/users/"+id, scope.TenantID, nil, nil, nil)
}
