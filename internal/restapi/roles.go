package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

// RoleGateway implements port.RoleGateway over the API.
type RoleGateway struct {
	client *Client
}

// NewRoleGateway wires the gateway to a client.
func NewRoleGateway(client *Client) *RoleGateway {
	return &RoleGateway{client: client}
}

// permissionRef accepts the two encodings the API uses for a role's nested
// permissions: a bare ID, or the full permission object.
type permissionRef struct {
	id flexID
}

func (r *permissionRef) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj struct {
			ID flexID `json:"id"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		r.id = obj.ID
		return nil
	}
	return json.Unmarshal(trimmed, &r.id)
}

type roleResource struct {
	ID          flexID          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	TenantID    *flexID         `json:"tenant_id,omitempty"`
	UsersCount  int             `json:"users_count"`
	Permissions []permissionRef `json:"permissions"`
}

func (r roleResource) toDomain() domain.Role {
	permissions := make([]string, 0, len(r.Permissions))
	for _, ref := range r.Permissions {
		if ref.id != "" {
			permissions = append(permissions, ref.id.String())
		}
	}
	return domain.Role{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		Permissions: permissions,
		TenantID:    r.TenantID.ptr(),
		UsersCount:  r.UsersCount,
	}
}

// rolePayload always carries the complete permission ID set. The server
// replaces the relation with exactly this set; there is no diff endpoint.
type rolePayload struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
}

func newRolePayload(role domain.Role) rolePayload {
	permissions := role.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return rolePayload{Name: role.Name, Description: role.Description, Permissions: permissions}
}

// List fetches roles with their nested permission sets and user counts.
func (g *RoleGateway) List(ctx context.Context, scope domain.Scope) ([]domain.Role, error) {
	query := url.Values{
		"with_permissions": {"true"},
		"with_users_count": {"true"},
	}
	resources, err := listCollection[roleResource](ctx, g.client, "/roles", scope.TenantID, query)
	if err != nil {
		return nil, err
	}
	roles := make([]domain.Role, 0, len(resources))
	for _, r := range resources {
		roles = append(roles, r.toDomain())
	}
	return roles, nil
}

// Create posts a new role and returns the server's copy.
func (g *RoleGateway) Create(ctx context.Context, scope domain.Scope, role domain.Role) (*domain.Role, error) {
	var resource roleResource
	if err := g.client.do(ctx, http.MethodPost, "/roles", scope.TenantID, nil, newRolePayload(role), &resource); err != nil {
		return nil, err
	}
	created := resource.toDomain()
	return &created, nil
}

// Update replaces an existing role, including its full permission set.
func (g *RoleGateway) Update(ctx context.Context, scope domain.Scope, role domain.Role) (*domain.Role, error) {
	var resource roleResource
	if err := g.client.do(ctx, http.MethodPut, "/roles/"+role.ID, scope.TenantID, nil, newRolePayload(role), &resource); err != nil {
		return nil, err
	}
	updated := resource.toDomain()
	return &updated, nil
}

// Delete removes a role. Users still holding it are the server's problem;
// the next user list refresh reflects the detachment.
func (g *RoleGateway) Delete(ctx context.Context, scope domain.Scope, id string) error {
	return g.client.do(ctx, http.MethodDelete, "/roles/"+id, scope.TenantID, nil, nil, nil)
}
