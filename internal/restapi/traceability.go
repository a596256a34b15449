package restapi

import (
	"context"
	"net/url"
	"sort"
	"time"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

// TraceabilityGateway implements port.TraceabilityGateway. The log is
// read-only; this gateway has no mutating methods on purpose.
type TraceabilityGateway struct {
	client *Client
}

// NewTraceabilityGateway wires the gateway to a client.
func NewTraceabilityGateway(client *Client) *TraceabilityGateway {
	return &TraceabilityGateway{client: client}
}

type traceabilityResource struct {
	ID           flexID    `json:"id"`
	BatchID      flexID    `json:"batch_id"`
	AreaID       flexID    `json:"area_id"`
	EventType    string    `json:"event_type"`
	Method       string    `json:"method"`
	FromLocation string    `json:"from_location"`
	ToLocation   string    `json:"to_location"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UserName     string    `json:"user_name"`
}

// List fetches events for the scoped tenant, optionally filtered by area
// and batch, sorted newest first regardless of server order.
func (g *TraceabilityGateway) List(ctx context.Context, scope domain.Scope, areaID, batchID string) ([]domain.TraceabilityEvent, error) {
	query := url.Values{}
	if areaID != "" {
		query.Set("area_id", areaID)
	}
	if batchID != "" {
		query.Set("batch_id", batchID)
	}

	resources, err := listCollection[traceabilityResource](ctx, g.client, "/traceability-events", scope.TenantID, query)
	if err != nil {
		return nil, err
	}

	events := make([]domain.TraceabilityEvent, 0, len(resources))
	for _, r := range resources {
		events = append(events, domain.TraceabilityEvent{
			ID:           r.ID.String(),
			BatchID:      r.BatchID.String(),
			AreaID:       r.AreaID.String(),
			EventType:    r.EventType,
			Method:       r.Method,
			FromLocation: r.FromLocation,
			ToLocation:   r.ToLocation,
			Quantity:     r.Quantity,
			Unit:         r.Unit,
			Description:  r.Description,
			CreatedAt:    r.CreatedAt,
			UserName:     r.UserName,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}
