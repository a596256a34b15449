package port

import (
	"context"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

// DiscrepancyGateway serves inventory reconciliation: open discrepancies,
// the reason catalogue, and justification submits.
type DiscrepancyGateway interface {
	List(ctx context.Context, scope domain.Scope) ([]domain.Discrepancy, error)
	Reasons(ctx context.Context, scope domain.Scope) ([]domain.DiscrepancyReason, error)
	Justify(ctx context.Context, scope domain.Scope, justification domain.Justification) error
}

// TraceabilityGateway reads the immutable event log, newest first. Both
// filters are optional; the tenant scope is mandatory.
type TraceabilityGateway interface {
	List(ctx context.Context, scope domain.Scope, areaID, batchID string) ([]domain.TraceabilityEvent, error)
}
