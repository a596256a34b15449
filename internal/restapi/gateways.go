package restapi

import "github.com/ingberrio/erp-sub001/internal/core/port"

// Gateways groups the concrete API gateway implementations.
type Gateways struct {
	Permissions   *PermissionGateway
	Roles         *RoleGateway
	Users         *UserGateway
	Tenants       *TenantGateway
	Facilities    *FacilityGateway
	Discrepancies *DiscrepancyGateway
	Traceability  *TraceabilityGateway
}

// NewGateways wires all gateways backed by the provided client.
func NewGateways(client *Client) *Gateways {
	return &Gateways{
		Permissions:   NewPermissionGateway(client),
		Roles:         NewRoleGateway(client),
		Users:         NewUserGateway(client),
		Tenants:       NewTenantGateway(client),
		Facilities:    NewFacilityGateway(client),
		Discrepancies: NewDiscrepancyGateway(client),
		Traceability:  NewTraceabilityGateway(client),
	}
}

var (
	_ port.PermissionGateway   = (*PermissionGateway)(nil)
	_ port.RoleGateway         = (*RoleGateway)(nil)
	_ port.UserGateway         = (*UserGateway)(nil)
	_ port.TenantGateway       = (*TenantGateway)(nil)
	_ port.FacilityGateway     = (*FacilityGateway)(nil)
	_ port.DiscrepancyGateway  = (*DiscrepancyGateway)(nil)
	_ port.TraceabilityGateway = (*TraceabilityGateway)(nil)
)
