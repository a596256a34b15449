package restapi

import (
	"context"
	"net/http"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

// PermissionGateway implements port.PermissionGateway over the API.
type PermissionGateway struct {
	client *Client
}

// NewPermissionGateway wires the gateway to a client.
func NewPermissionGateway(client *Client) *PermissionGateway {
	return &PermissionGateway{client: client}
}

type permissionResource struct {
	ID          flexID  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	TenantID    *flexID `json:"tenant_id,omitempty"`
}

func (r permissionResource) toDomain() domain.Permission {
	return domain.Permission{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		TenantID:    r.TenantID.ptr(),
	}
}

type permissionPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// List fetches all permissions visible in the given scope.
func (g *PermissionGateway) List(ctx context.Context, scope domain.Scope) ([]domain.Permission, error) {
	resources, err := listCollection[permissionResource](ctx, g.client, "/permissions", scope.TenantID, nil)
	if err != nil {
		return nil, err
	}
	permissions := make([]domain.Permission, 0, len(resources))
	for _, r := range resources {
		permissions = append(permissions, r.toDomain())
	}
	return permissions, nil
}

// Create posts a new permission and returns the server's copy.
func (g *PermissionGateway) Create(ctx context.Context, scope domain.Scope, permission domain.Permission) (*domain.Permission, error) {
	var resource permissionResource
	payload := permissionPayload{Name: permission.Name, Description: permission.Description}
	if err := g.client.do(ctx, http.MethodPost, "/permissions", scope.TenantID, nil, payload, &resource); err != nil {
		return nil, err
	}
	created := resource.toDomain()
	return &created, nil
}

// Update replaces an existing permission and returns the server's copy.
func (g *PermissionGateway) Update(ctx context.Context, scope domain.Scope, permission domain.Permission) (*domain.Permission, error) {
	var resource permissionResource
	payload := permissionPayload{Name: permission.Name, Description: permission.Description}
	if err := g.client.do(ctx, http.MethodPut, "/permissions/"+permission.ID, scope.TenantID, nil, payload, &resource); err != nil {
		return nil, err
	}
	updated := resource.toDomain()
	return &updated, nil
}

// Delete removes a permission. Callers confirm with the operator first.
func (g *PermissionGateway) Delete(ctx context.Context, scope domain.Scope, id string) error {
	return g.client.do(ctx, http.MethodDelete, "/permissions/"+id, scope.TenantID, nil, nil, nil)
}
