package tui

import (
	"testing"
	"time"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

func TestDisplayKeyPrefersServerID(t *testing.T) {
	event := domain.TraceabilityEvent{ID: "70", BatchID: "114", EventType: "harvest"}
	if got := displayKey(event, 3); got != "70" {
		t.Errorf("displayKey = %q, want server ID", got)
	}
}

func TestDisplayKeyDerivesStableKeyForLegacyRows(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	event := domain.TraceabilityEvent{BatchID: "114", EventType: "move", CreatedAt: created}

	first := displayKey(event, 2)
	second := displayKey(event, 2)
	if first != second {
		t.Errorf("key not stable: %q vs %q", first, second)
	}
	if displayKey(event, 3) == first {
		t.Error("rows at different positions must not collide")
	}
}
