package restapi

import (
	"context"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

// TenantGateway implements port.TenantGateway. The endpoint is
// global-admin only; scoped actors get a RemoteError from the server.
type TenantGateway struct {
	client *Client
}

// NewTenantGateway wires the gateway to a client.
func NewTenantGateway(client *Client) *TenantGateway {
	return &TenantGateway{client: client}
}

type tenantResource struct {
	ID   flexID `json:"id"`
	Name string `json:"name"`
}

// List fetches all tenants.
func (g *TenantGateway) List(ctx context.Context) ([]domain.Tenant, error) {
	resources, err := listCollection[tenantResource](ctx, g.client, "/tenants", "", nil)
	if err != nil {
		return nil, err
	}
	tenants := make([]domain.Tenant, 0, len(resources))
	for _, r := range resources {
		tenants = append(tenants, domain.Tenant{ID: r.ID.String(), Name: r.Name})
	}
	return tenants, nil
}

// FacilityGateway implements port.FacilityGateway.
type FacilityGateway struct {
	client *Client
}

// NewFacilityGateway wires the gateway to a client.
func NewFacilityGateway(client *Client) *FacilityGateway {
	return &FacilityGateway{client: client}
}

type facilityResource struct {
	ID       flexID  `json:"id"`
	Name     string  `json:"name"`
	TenantID *flexID `json:"tenant_id,omitempty"`
}

// List fetches all facilities visible to the actor.
func (g *FacilityGateway) List(ctx context.Context) ([]domain.Facility, error) {
	resources, err := listCollection[facilityResource](ctx, g.client, "/facilities", "", nil)
	if err != nil {
		return nil, err
	}
	facilities := make([]domain.Facility, 0, len(resources))
	for _, r := range resources {
		facilities = append(facilities, domain.Facility{
			ID:       r.ID.String(),
			Name:     r.Name,
			TenantID: r.TenantID.ptr(),
		})
	}
	return facilities, nil
}
