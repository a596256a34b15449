package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

func TestDiscrepancyJustify(t *testing.T) {
	var path string
	var body map[string]any
	client := newTestClient(t, func(engine *gin.Engine) {
		engine.POST("/api/v1/discrepancies/:id/justify", func(c *gin.Context) {
			path = c.Request.URL.Path
			if err := c.ShouldBindJSON(&body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
			c.Status(http.StatusNoContent)
		})
	})

	justification := domain.Justification{DiscrepancyID: "d1", ReasonID: "r2", Notes: "trimming loss"}
	if err := NewDiscrepancyGateway(client).Justify(context.Background(), domain.Scope{TenantID: "7"}, justification); err != nil {
		t.Fatalf("justify: %v", err)
	}

	if path != "/api/v1/discrepancies/d1/justify" {
		t.Fatalf("unexpected path %q", path)
	}
	if body["discrepancy_id"] != "d1" || body["reason_id"] != "r2" || body["notes"] != "trimming loss" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestTraceabilityListSortsNewestFirst(t *testing.T) {
	var query map[string][]string
	client := newTestClient(t, func(engine *gin.Engine) {
		engine.GET("/api/v1/traceability-events", func(c *gin.Context) {
			query = c.Request.URL.Query()
			c.JSON(http.StatusOK, []gin.H{
				{"batch_id": "b1", "event_type": "move", "created_at": "2025-02-01T08:00:00Z"},
				{"batch_id": "b1", "event_type": "harvest", "created_at": "2025-02-03T08:00:00Z"},
				{"batch_id": "b1", "event_type": "destroy", "created_at": "2025-02-02T08:00:00Z"},
			})
		})
	})

	events, err := NewTraceabilityGateway(client).List(context.Background(), domain.Scope{TenantID: "7"}, "a1", "b1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if query["area_id"][0] != "a1" || query["batch_id"][0] != "b1" {
		t.Fatalf("unexpected query %v", query)
	}
	want := []string{"harvest", "destroy", "move"}
	for i, event := range events {
		if event.EventType != want[i] {
			t.Fatalf("expected order %v, got %v at %d", want, event.EventType, i)
		}
	}
	if !events[0].CreatedAt.Equal(time.Date(2025, 2, 3, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp %v", events[0].CreatedAt)
	}
}

func TestTraceabilityListToleratesMissingIDs(t *testing.T) {
	client := newTestClient(t, func(engine *gin.Engine) {
		engine.GET("/api/v1/traceability-events", func(c *gin.Context) {
			raw := `[{"batch_id": 12, "event_type": "move", "created_at": "2025-02-01T08:00:00Z"}]`
			c.Data(http.StatusOK, "application/json", json.RawMessage(raw))
		})
	})

	events, err := NewTraceabilityGateway(client).List(context.Background(), domain.Scope{TenantID: "7"}, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 || events[0].ID != "" || events[0].BatchID != "12" {
		t.Fatalf("unexpected events %v", events)
	}
}
