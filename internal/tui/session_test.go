package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
	"github.com/ingberrio/erp-sub001/internal/usecase"
)

type sentinelMsg struct{}

func TestSessionConfirmReleasesCommandOnceOnAccept(t *testing.T) {
	sess := &session{alerts: usecase.NewAlerts()}
	cmd := func() tea.Msg { return sentinelMsg{} }

	sess.pushConfirm("Delete", "Really?", cmd)
	if sess.alerts.Pending() == nil {
		t.Fatal("expected a pending confirm")
	}

	sess.alerts.AcceptConfirm()
	released := sess.takeConfirmed()
	if released == nil {
		t.Fatal("expected the command to be released on accept")
	}
	if _, ok := released().(sentinelMsg); !ok {
		t.Fatal("released command did not produce the queued message")
	}

	if sess.takeConfirmed() != nil {
		t.Fatal("command handed out twice")
	}
}

func TestSessionConfirmDismissNeverReleasesCommand(t *testing.T) {
	sess := &session{alerts: usecase.NewAlerts()}
	sess.pushConfirm("Delete", "Really?", func() tea.Msg { return sentinelMsg{} })

	sess.alerts.DismissConfirm()
	if sess.takeConfirmed() != nil {
		t.Fatal("dismiss must not release the command")
	}
}

func TestSessionScopeFollowsFacilitySelection(t *testing.T) {
	tenant := "t1"
	sess := &session{
		actor:      domain.Actor{IsGlobalAdmin: true},
		facilities: []domain.Facility{{ID: "f1", Name: "Site A", TenantID: &tenant}},
	}

	if _, err := sess.Scope(); err == nil {
		t.Fatal("expected scope error before a facility is picked")
	}

	sess.facilityID = "f1"
	scope, err := sess.Scope()
	if err != nil {
		t.Fatalf("Scope: %v", err)
	}
	if scope.TenantID != tenant {
		t.Errorf("tenant = %q, want %q", scope.TenantID, tenant)
	}
	if sess.facilityName() != "Site A" {
		t.Errorf("facility name = %q", sess.facilityName())
	}
}
