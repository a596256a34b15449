package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
)

// errMsg is any failed command. Screens convert it to a notice; nothing
// crashes a view.
type errMsg struct {
	err error
}

// tickMsg drives notice expiry.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// facilitiesLoadedMsg delivers the facility list for the admin selector.
type facilitiesLoadedMsg struct {
	items []domain.Facility
}

// tenantsLoadedMsg delivers the tenant directory so the header can name
// the tenant an admin is acting in.
type tenantsLoadedMsg struct {
	items []domain.Tenant
}

// Loader results carry the list-view generation that started them so a
// late response from an abandoned load is dropped, never applied.

type permissionsLoadedMsg struct {
	gen   uint64
	items []domain.Permission
	err   error
}

type rolesLoadedMsg struct {
	gen   uint64
	items []domain.Role
	err   error
}

type usersLoadedMsg struct {
	gen   uint64
	items []domain.User
	err   error
}

type discrepanciesLoadedMsg struct {
	gen   uint64
	items []domain.Discrepancy
	err   error
}

type reasonsLoadedMsg struct {
	items []domain.DiscrepancyReason
	err   error
}

type eventsLoadedMsg struct {
	gen   uint64
	items []domain.TraceabilityEvent
	err   error
}

// Mutation results.

type permissionSavedMsg struct {
	item *domain.Permission
}

type permissionDeletedMsg struct {
	id string
}

type roleSavedMsg struct {
	item *domain.Role
}

type roleDeletedMsg struct {
	id string
}

type userSavedMsg struct {
	item *domain.User
}

type userDeletedMsg struct {
	id string
}

type justifiedMsg struct {
	discrepancyID string
}
