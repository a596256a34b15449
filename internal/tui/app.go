package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
	"github.com/ingberrio/erp-sub001/internal/restapi"
	"github.com/ingberrio/erp-sub001/internal/usecase"
)

type tab int

const (
	tabPermissions tab = iota
	tabRoles
	tabUsers
	tabDiscrepancies
	tabTraceability
	tabCount
)

var tabTitles = [tabCount]string{
	"Permissions", "Roles", "Users", "Discrepancies", "Traceability",
}

// Model is the root console model. It owns the tab bar, the facility
// picker, the confirm overlay and the notice footer; everything else is
// delegated to the active screen.
type Model struct {
	sess *session

	tab         tab
	initialized [tabCount]bool

	permissions   PermissionsModel
	roles         RolesModel
	users         UsersModel
	discrepancies DiscrepanciesModel
	traceability  TraceabilityModel

	picker    bool
	pickerIdx int

	width int
}

// New builds the root console model.
func New(actor domain.Actor, gateways *restapi.Gateways, pageSize int) Model {
	sess := &session{
		actor:    actor,
		gateways: gateways,
		alerts:   usecase.NewAlerts(),
		pageSize: pageSize,
	}
	m := Model{
		sess:          sess,
		permissions:   newPermissionsModel(sess),
		roles:         newRolesModel(sess),
		users:         newUsersModel(sess),
		discrepancies: newDiscrepanciesModel(sess),
		traceability:  newTraceabilityModel(sess),
	}
	// A scoped actor can load immediately; an admin waits for a facility.
	if !sess.actor.IsGlobalAdmin {
		m.initialized[tabPermissions] = true
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.sess.actor.IsGlobalAdmin {
		return tea.Batch(tick(), m.loadFacilities(), m.loadTenants())
	}
	return tea.Batch(tick(), m.permissions.Init())
}

func (m Model) loadFacilities() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := sess.gateways.Facilities.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		return facilitiesLoadedMsg{items: items}
	}
}

// loadTenants fetches the tenant directory. Only a global admin may call
// the endpoint; scoped actors already know their tenant.
func (m Model) loadTenants() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := sess.gateways.Tenants.List(ctx)
		if err != nil {
			return errMsg{err}
		}
		return tenantsLoadedMsg{items: items}
	}
}

// activate runs the screen's initial loads the first time it becomes
// visible with a resolvable scope.
func (m Model) activate(t tab) (Model, tea.Cmd) {
	if m.initialized[t] {
		return m, nil
	}
	if _, err := m.sess.Scope(); err != nil {
		// An admin is simply waiting for the facility picker; a scoped
		// actor with no tenant on the token has nothing to wait for.
		if !m.sess.actor.IsGlobalAdmin {
			notifyRemote(m.sess.alerts, err)
		}
		return m, nil
	}
	m.initialized[t] = true
	switch t {
	case tabPermissions:
		return m, m.permissions.Init()
	case tabRoles:
		return m, m.roles.Init()
	case tabUsers:
		return m, m.users.Init()
	case tabDiscrepancies:
		return m, m.discrepancies.Init()
	case tabTraceability:
		return m, m.traceability.Init()
	}
	return m, nil
}

// resetScreens rebuilds every screen after a facility switch so no view
// keeps data from the previous tenant.
func (m Model) resetScreens() Model {
	m.permissions = newPermissionsModel(m.sess)
	m.roles = newRolesModel(m.sess)
	m.users = newUsersModel(m.sess)
	m.discrepancies = newDiscrepanciesModel(m.sess)
	m.traceability = newTraceabilityModel(m.sess)
	m.initialized = [tabCount]bool{}
	return m
}

// capturing reports whether the active screen is consuming raw text, in
// which case global shortcuts stay out of its way.
func (m Model) capturing() bool {
	switch m.tab {
	case tabPermissions:
		return m.permissions.view != permissionsViewList
	case tabRoles:
		return m.roles.view != rolesViewList
	case tabUsers:
		return m.users.view != usersViewList
	case tabDiscrepancies:
		return m.discrepancies.view != discrepanciesViewList
	case tabTraceability:
		return m.traceability.view != traceViewList
	}
	return false
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		return m, tick()

	case facilitiesLoadedMsg:
		m.sess.facilities = msg.items
		if m.sess.actor.IsGlobalAdmin && m.sess.facilityID == "" {
			m.picker = true
			m.pickerIdx = 0
			return m, nil
		}
		return m.activate(m.tab)

	case tenantsLoadedMsg:
		m.sess.tenants = msg.items
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m.route(msg)
}

// route delivers a non-key message to the screen that owns its type and
// applies the cross-screen effects some mutations have.
func (m Model) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.(type) {
	case permissionsLoadedMsg, permissionSavedMsg:
		var cmd tea.Cmd
		m.permissions, cmd = m.permissions.Update(msg)
		return m, cmd

	case permissionDeletedMsg:
		var cmd tea.Cmd
		m.permissions, cmd = m.permissions.Update(msg)
		cmds = append(cmds, cmd)
		// Roles cache permission assignments; drop the stale candidate.
		if m.initialized[tabRoles] {
			cmds = append(cmds, m.roles.loadCandidates())
		}
		return m, tea.Batch(cmds...)

	case rolesLoadedMsg, rolePermissionsLoadedMsg, roleSavedMsg:
		var cmd tea.Cmd
		m.roles, cmd = m.roles.Update(msg)
		return m, cmd

	case roleDeletedMsg:
		var cmd tea.Cmd
		m.roles, cmd = m.roles.Update(msg)
		cmds = append(cmds, cmd)
		// Users still showing the deleted role must refresh; editing one
		// later prunes the assignment instead of resurrecting it.
		if m.initialized[tabUsers] {
			cmds = append(cmds, m.users.reload(), m.users.loadCandidates())
		}
		return m, tea.Batch(cmds...)

	case usersLoadedMsg, userRolesLoadedMsg, userSavedMsg, userDeletedMsg:
		var cmd tea.Cmd
		m.users, cmd = m.users.Update(msg)
		return m, cmd

	case discrepanciesLoadedMsg, reasonsLoadedMsg, justifiedMsg:
		var cmd tea.Cmd
		m.discrepancies, cmd = m.discrepancies.Update(msg)
		return m, cmd

	case eventsLoadedMsg:
		var cmd tea.Cmd
		m.traceability, cmd = m.traceability.Update(msg)
		return m, cmd

	case errMsg:
		return m.routeToActive(msg)
	}
	return m, nil
}

func (m Model) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.tab {
	case tabPermissions:
		m.permissions, cmd = m.permissions.Update(msg)
	case tabRoles:
		m.roles, cmd = m.roles.Update(msg)
	case tabUsers:
		m.users, cmd = m.users.Update(msg)
	case tabDiscrepancies:
		m.discrepancies, cmd = m.discrepancies.Update(msg)
	case tabTraceability:
		m.traceability, cmd = m.traceability.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isKey(msg, "ctrl+c") {
		return m, tea.Quit
	}

	// The confirm overlay swallows every key while pending.
	if m.sess.alerts.Pending() != nil {
		switch {
		case isKey(msg, "y"), isEnter(msg):
			m.sess.alerts.AcceptConfirm()
			return m, m.sess.takeConfirmed()
		case isKey(msg, "n"), isBack(msg):
			m.sess.alerts.DismissConfirm()
		}
		return m, nil
	}

	if m.picker {
		return m.handlePickerKeys(msg)
	}

	if !m.capturing() {
		switch {
		case isKey(msg, "q"):
			return m, tea.Quit
		case isKey(msg, "f") && m.sess.actor.IsGlobalAdmin:
			m.picker = true
			m.pickerIdx = 0
			if len(m.sess.facilities) == 0 {
				return m, m.loadFacilities()
			}
			return m, nil
		case isKey(msg, "right", "]"):
			m.tab = (m.tab + 1) % tabCount
			return m.activate(m.tab)
		case isKey(msg, "left", "["):
			m.tab = (m.tab + tabCount - 1) % tabCount
			return m.activate(m.tab)
		case isKey(msg, "1", "2", "3", "4", "5") && len(msg.Runes) == 1:
			m.tab = tab(int(msg.Runes[0] - '1'))
			return m.activate(m.tab)
		}
	}

	return m.routeToActive(msg)
}

func (m Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isDown(msg):
		if m.pickerIdx < len(m.sess.facilities)-1 {
			m.pickerIdx++
		}
	case isUp(msg):
		if m.pickerIdx > 0 {
			m.pickerIdx--
		}
	case isEnter(msg):
		if m.pickerIdx < len(m.sess.facilities) {
			m.sess.facilityID = m.sess.facilities[m.pickerIdx].ID
			m.picker = false
			m = m.resetScreens()
			return m.activate(m.tab)
		}
	case isBack(msg):
		if m.sess.facilityID != "" {
			m.picker = false
		}
	case isKey(msg, "q"):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(" " + m.renderTabs() + "\n\n")

	switch {
	case m.picker:
		b.WriteString(m.renderPicker())
	default:
		b.WriteString(m.activeView())
	}

	if pending := m.sess.alerts.Pending(); pending != nil {
		b.WriteString("\n" + m.renderConfirm(pending))
	}

	if notices := m.sess.alerts.Active(); len(notices) > 0 {
		b.WriteString("\n")
		for _, n := range notices {
			b.WriteString(" " + renderNotice(n) + "\n")
		}
	}

	return b.String()
}

func (m Model) activeView() string {
	switch m.tab {
	case tabPermissions:
		return m.permissions.View()
	case tabRoles:
		return m.roles.View()
	case tabUsers:
		return m.users.View()
	case tabDiscrepancies:
		return m.discrepancies.View()
	case tabTraceability:
		return m.traceability.View()
	}
	return ""
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, tabCount+1)
	for i, title := range tabTitles {
		if tab(i) == m.tab {
			parts = append(parts, activeTab.Render(title))
		} else {
			parts = append(parts, tabStyle.Render(title))
		}
	}
	bar := strings.Join(parts, " ")
	if m.sess.actor.IsGlobalAdmin {
		name := m.sess.facilityName()
		if name == "" {
			name = "no facility"
		}
		bar += mutedStyle.Render("  │ f: " + name)
		if tenant := m.sess.tenantName(); tenant != "" {
			bar += mutedStyle.Render("  tenant: " + tenant)
		}
	}
	return bar
}

func (m Model) renderPicker() string {
	body := titleStyle.Render("Select facility") + "\n\n"
	if len(m.sess.facilities) == 0 {
		body += mutedStyle.Render("Loading facilities...")
		return indent(box(body), 1)
	}
	for i, f := range m.sess.facilities {
		row := f.Name
		if f.TenantID == nil || *f.TenantID == "" {
			row += "  " + errorStyle.Render("(no tenant)")
		} else {
			tenant := *f.TenantID
			for _, t := range m.sess.tenants {
				if t.ID == tenant {
					tenant = t.Name
					break
				}
			}
			row += "  " + mutedStyle.Render(tenant)
		}
		if i == m.pickerIdx {
			row = selectedStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		body += row + "\n"
	}
	body += "\n" + mutedStyle.Render("enter select · esc cancel")
	return indent(box(body), 1)
}

func (m Model) renderConfirm(pending *usecase.Confirm) string {
	body := warnStyle.Render(pending.Title) + "\n\n" +
		pending.Message + "\n\n" +
		mutedStyle.Render("y/enter confirm · n/esc cancel")
	boxed := box(body)
	if m.width == 0 {
		return indent(boxed, 1)
	}
	lines := strings.Split(boxed, "\n")
	for i, line := range lines {
		lines[i] = centerLine(line, m.width)
	}
	return strings.Join(lines, "\n")
}

func renderNotice(n usecase.Notice) string {
	line := fmt.Sprintf("· %s", n.Message)
	switch n.Severity {
	case usecase.SeverityError:
		return errorStyle.Render(line)
	case usecase.SeveritySuccess:
		return successStyle.Render(line)
	}
	return mutedStyle.Render(line)
}
