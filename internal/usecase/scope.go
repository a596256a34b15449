package usecase

import (
	"strings"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

// ResolveTenant computes the effective tenant scope for a request. It is
// pure given its inputs and must run before every tenant-scoped read or
// write.
//
// A global admin acts on behalf of a facility: the selected facility is
// resolved to its tenant, and a facility without a tenant reference is an
// error, not a silent unscoped call. A regular actor always uses its own
// tenant and never triggers a facility lookup.
func ResolveTenant(actor domain.Actor, selectedFacilityID string, facilities []domain.Facility) (domain.Scope, error) {
	if !actor.IsGlobalAdmin {
		if strings.TrimSpace(actor.TenantID) == "" {
			return domain.Scope{}, ErrMissingTenant
		}
		return domain.Scope{TenantID: actor.TenantID}, nil
	}

	if strings.TrimSpace(selectedFacilityID) == "" {
		return domain.Scope{}, ErrFacilityRequired
	}
	for _, facility := range facilities {
		if facility.ID != selectedFacilityID {
			continue
		}
		if facility.TenantID == nil || *facility.TenantID == "" {
			return domain.Scope{}, ErrNoTenantForFacility
		}
		return domain.Scope{TenantID: *facility.TenantID}, nil
	}
	return domain.Scope{}, ErrUnknownFacility
}
