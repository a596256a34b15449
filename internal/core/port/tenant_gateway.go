package port

import (
	"context"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

// TenantGateway lists tenants. Only a global admin may call it; the server
// rejects scoped actors.
type TenantGateway interface {
	List(ctx context.Context) ([]domain.Tenant, error)
}

// FacilityGateway lists facilities for the facility selector that feeds
// tenant-scope resolution.
type FacilityGateway interface {
	List(ctx context.Context) ([]domain.Facility, error)
}
