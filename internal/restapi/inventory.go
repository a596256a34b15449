package restapi

import (
	"context"
	"net/http"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

// DiscrepancyGateway implements port.DiscrepancyGateway.
type DiscrepancyGateway struct {
	client *Client
}

// NewDiscrepancyGateway wires the gateway to a client.
func NewDiscrepancyGateway(client *Client) *DiscrepancyGateway {
	return &DiscrepancyGateway{client: client}
}

type discrepancyResource struct {
	ID               flexID  `json:"id"`
	BatchName        string  `json:"batch_name"`
	LogicalQuantity  float64 `json:"logical_quantity"`
	PhysicalQuantity float64 `json:"physical_quantity"`
	Unit             string  `json:"unit"`
}

type reasonResource struct {
	ID    flexID `json:"id"`
	Label string `json:"label"`
}

type justificationPayload struct {
	DiscrepancyID string `json:"discrepancy_id"`
	ReasonID      string `json:"reason_id"`
	Notes         string `json:"notes,omitempty"`
}

// List fetches open discrepancies for the scoped tenant.
func (g *DiscrepancyGateway) List(ctx context.Context, scope domain.Scope) ([]domain.Discrepancy, error) {
	resources, err := listCollection[discrepancyResource](ctx, g.client, "/discrepancies", scope.TenantID, nil)
	if err != nil {
		return nil, err
	}
	discrepancies := make([]domain.Discrepancy, 0, len(resources))
	for _, r := range resources {
		discrepancies = append(discrepancies, domain.Discrepancy{
			ID:               r.ID.String(),
			BatchName:        r.BatchName,
			LogicalQuantity:  r.LogicalQuantity,
			PhysicalQuantity: r.PhysicalQuantity,
			Unit:             r.Unit,
		})
	}
	return discrepancies, nil
}

// Reasons fetches the justification reason catalogue.
func (g *DiscrepancyGateway) Reasons(ctx context.Context, scope domain.Scope) ([]domain.DiscrepancyReason, error) {
	resources, err := listCollection[reasonResource](ctx, g.client, "/discrepancy-reasons", scope.TenantID, nil)
	if err != nil {
		return nil, err
	}
	reasons := make([]domain.DiscrepancyReason, 0, len(resources))
	for _, r := range resources {
		reasons = append(reasons, domain.DiscrepancyReason{ID: r.ID.String(), Label: r.Label})
	}
	return reasons, nil
}

// Justify posts a justification for a discrepancy.
func (g *DiscrepancyGateway) Justify(ctx context.Context, scope domain.Scope, justification domain.Justification) error {
	payload := justificationPayload{
		DiscrepancyID: justification.DiscrepancyID,
		ReasonID:      justification.ReasonID,
		Notes:         justification.Notes,
	}
	path := "/discrepancies/" + justification.DiscrepancyID + "/justify"
	return g.client.do(ctx, http.MethodPost, path, scope.TenantID, nil, payload, nil)
}
