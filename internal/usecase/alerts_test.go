package usecase

import (
	"strings"
	"testing"
	"time"
)

func TestAlertsConfirmRunsOnlyOnAccept(t *testing.T) {
	a := NewAlerts()

	ran := 0
	a.RequestConfirm("Delete role", `Delete role "Viewer"?`, func() { ran++ })

	a.DismissConfirm()
	if ran != 0 {
		t.Fatal("dismiss must never run the action")
	}
	if a.Pending() != nil {
		t.Fatal("expected prompt cleared after dismiss")
	}

	a.RequestConfirm("Delete role", `Delete role "Viewer"?`, func() { ran++ })
	a.AcceptConfirm()
	a.AcceptConfirm() // second accept is a no-op
	if ran != 1 {
		t.Fatalf("expected action to run exactly once, ran %d times", ran)
	}
}

func TestAlertsSecondConfirmReplacesFirst(t *testing.T) {
	a := NewAlerts()

	var first, second bool
	a.RequestConfirm("Delete permission", `Delete permission "plants:read"?`, func() { first = true })
	a.RequestConfirm("Delete role", `Delete role "Admin"?`, func() { second = true })

	if got := a.Pending().Title; got != "Delete role" {
		t.Fatalf("expected replacement prompt, got %q", got)
	}
	a.AcceptConfirm()
	if first || !second {
		t.Fatalf("expected only the replacing action to run (first=%v second=%v)", first, second)
	}
}

func TestAlertsNotifyErrorFlattensDetails(t *testing.T) {
	a := NewAlerts()

	a.NotifyError("save failed", map[string][]string{
		"email": {"already taken"},
		"name":  {"is required", "is too short"},
	})

	notices := a.Active()
	if len(notices) != 1 {
		t.Fatalf("expected 1 notice, got %d", len(notices))
	}
	msg := notices[0].Message
	for _, want := range []string{"save failed", "already taken", "is required", "is too short"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("notice %q missing %q", msg, want)
		}
	}
	if notices[0].Severity != SeverityError {
		t.Fatalf("expected error severity, got %q", notices[0].Severity)
	}
}

func TestAlertsNoticesExpire(t *testing.T) {
	a := NewAlerts()
	clock := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return clock }

	a.Notify("saved", SeveritySuccess)
	if len(a.Active()) != 1 {
		t.Fatal("expected fresh notice visible")
	}

	clock = clock.Add(noticeTTL + time.Millisecond)
	if len(a.Active()) != 0 {
		t.Fatal("expected notice expired after TTL")
	}
}

func TestAlertsDismissRemovesEarly(t *testing.T) {
	a := NewAlerts()
	a.Notify("saved", SeveritySuccess)
	a.Notify("deleted", SeverityInfo)

	notices := a.Active()
	a.Dismiss(notices[0].ID)

	remaining := a.Active()
	if len(remaining) != 1 || remaining[0].Message != "deleted" {
		t.Fatalf("expected only the second notice, got %v", remaining)
	}
}
