package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
	"github.com/ingberrio/erp-sub001/internal/restapi"
	"github.com/ingberrio/erp-sub001/internal/usecase"
)

// session carries the actor, the facility selection a global admin made,
// and the shared gateways. Screens resolve their scope through it right
// before every tenant-scoped call.
type session struct {
	actor      domain.Actor
	gateways   *restapi.Gateways
	alerts     *usecase.Alerts
	facilities []domain.Facility
	tenants    []domain.Tenant
	facilityID string
	pageSize   int

	// confirmed holds the follow-up command the pending confirm action
	// deposits on accept. Dismissal leaves it nil.
	confirmed tea.Cmd
}

// pushConfirm queues a confirm prompt whose accepted action releases cmd.
// The gateway guarantees the action runs once on accept and never on
// dismiss, so cmd cannot leak out of a cancelled prompt.
func (s *session) pushConfirm(title, message string, cmd tea.Cmd) {
	s.alerts.RequestConfirm(title, message, func() { s.confirmed = cmd })
}

// takeConfirmed hands out the released command at most once.
func (s *session) takeConfirmed() tea.Cmd {
	cmd := s.confirmed
	s.confirmed = nil
	return cmd
}

// Scope resolves the effective tenant for the current actor and facility
// selection. Screens must not cache the result across facility switches.
func (s *session) Scope() (domain.Scope, error) {
	return usecase.ResolveTenant(s.actor, s.facilityID, s.facilities)
}

// tenantName resolves the display name of the tenant the current scope
// acts in, or the raw tenant ID when the directory has no entry for it.
func (s *session) tenantName() string {
	scope, err := s.Scope()
	if err != nil {
		return ""
	}
	for _, t := range s.tenants {
		if t.ID == scope.TenantID {
			return t.Name
		}
	}
	return scope.TenantID
}

// facilityName resolves the selected facility's display name.
func (s *session) facilityName() string {
	for _, f := range s.facilities {
		if f.ID == s.facilityID {
			return f.Name
		}
	}
	return ""
}
