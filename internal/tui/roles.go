package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
	"github.com/ingberrio/erp-sub001/internal/usecase"
)

type rolesView int

const (
	rolesViewList rolesView = iota
	rolesViewSearch
	rolesViewForm
)

// rolePermissionsLoadedMsg delivers the matrix candidates for the role form.
type rolePermissionsLoadedMsg struct {
	items []domain.Permission
	err   error
}

// RolesModel is the role management screen, including the role↔permission
// assignment matrix.
type RolesModel struct {
	sess *session

	view      rolesView
	lv        *usecase.ListView[domain.Role]
	list      *list
	searchBuf string

	candidates []domain.Permission

	form      *usecase.RoleForm
	formFocus int
	matrixIdx int
	saving    bool
}

func newRolesModel(sess *session) RolesModel {
	fields := func(r domain.Role) (string, string) {
		if r.Description != nil {
			return r.Name, *r.Description
		}
		return r.Name, ""
	}
	return RolesModel{
		sess: sess,
		lv:   usecase.NewListView("roles", fields),
		list: newList(sess.pageSize),
	}
}

func (m RolesModel) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.loadCandidates())
}

func (m RolesModel) reload() tea.Cmd {
	gen := m.lv.Begin()
	sess := m.sess
	return func() tea.Msg {
		scope, err := sess.Scope()
		if err != nil {
			return rolesLoadedMsg{gen: gen, err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := sess.gateways.Roles.List(ctx, scope)
		return rolesLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (m RolesModel) loadCandidates() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		scope, err := sess.Scope()
		if err != nil {
			return rolePermissionsLoadedMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := sess.gateways.Permissions.List(ctx, scope)
		return rolePermissionsLoadedMsg{items: items, err: err}
	}
}

func (m RolesModel) saveCmd(form *usecase.RoleForm) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		scope, err := sess.Scope()
		if err != nil {
			return errMsg{err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		saved, err := form.Submit(ctx, scope, sess.gateways.Roles)
		if err != nil {
			return errMsg{err}
		}
		return roleSavedMsg{item: saved}
	}
}

func (m RolesModel) deleteCmd(id string) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		scope, err := sess.Scope()
		if err != nil {
			return errMsg{err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := sess.gateways.Roles.Delete(ctx, scope, id); err != nil {
			return errMsg{err}
		}
		return roleDeletedMsg{id: id}
	}
}

func (m RolesModel) Update(msg tea.Msg) (RolesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case rolesLoadedMsg:
		if err := m.lv.Apply(msg.gen, msg.items, msg.err); err != nil {
			m.notifyError(err)
		}
		m.refreshRows()
		return m, nil

	case rolePermissionsLoadedMsg:
		if msg.err != nil {
			m.notifyError(msg.err)
			return m, nil
		}
		m.candidates = msg.items
		return m, nil

	case roleSavedMsg:
		m.saving = false
		m.view = rolesViewList
		m.form = nil
		item := *msg.item
		m.lv.Patch(item, func(r domain.Role) bool { return r.ID == item.ID })
		m.refreshRows()
		m.sess.alerts.Notify(fmt.Sprintf("Role %q saved", item.Name), usecase.SeveritySuccess)
		return m, nil

	case roleDeletedMsg:
		m.lv.Remove(func(r domain.Role) bool { return r.ID == msg.id })
		m.refreshRows()
		m.sess.alerts.Notify("Role deleted", usecase.SeverityInfo)
		return m, nil

	case errMsg:
		m.saving = false
		m.notifyError(msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m *RolesModel) notifyError(err error) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		m.sess.alerts.NotifyError("Invalid input", verr.Fields)
		return
	}
	notifyRemote(m.sess.alerts, err)
}

func (m *RolesModel) refreshRows() {
	filtered := m.lv.Filter(m.searchBuf)
	rows := make([]string, len(filtered))
	for i, r := range filtered {
		rows[i] = fmt.Sprintf("%s  %s", r.Name,
			mutedStyle.Render(fmt.Sprintf("%d permissions · %d users", len(r.Permissions), r.UsersCount)))
	}
	m.list.SetItems(rows)
}

func (m *RolesModel) visible() []domain.Role {
	return m.lv.Filter(m.searchBuf)
}

func (m RolesModel) handleKeys(msg tea.KeyMsg) (RolesModel, tea.Cmd) {
	switch m.view {
	case rolesViewSearch:
		switch {
		case isEnter(msg), isBack(msg):
			m.view = rolesViewList
		default:
			m.searchBuf = appendKey(m.searchBuf, msg)
			m.refreshRows()
		}
		return m, nil

	case rolesViewForm:
		return m.handleFormKeys(msg)
	}

	switch {
	case isDown(msg):
		m.list.Down()
	case isUp(msg):
		m.list.Up()
	case isKey(msg, "/"):
		m.view = rolesViewSearch
	case isKey(msg, "r"):
		return m, tea.Batch(m.reload(), m.loadCandidates())
	case isKey(msg, "a"):
		m.form = usecase.NewRoleForm(nil, m.candidates)
		m.formFocus, m.matrixIdx = 0, 0
		m.view = rolesViewForm
	case isEnter(msg), isKey(msg, "e"):
		if items := m.visible(); m.list.Selected() < len(items) {
			selected := items[m.list.Selected()]
			m.form = usecase.NewRoleForm(&selected, m.candidates)
			m.formFocus, m.matrixIdx = 0, 0
			m.view = rolesViewForm
		}
	case isKey(msg, "d"):
		if items := m.visible(); m.list.Selected() < len(items) {
			selected := items[m.list.Selected()]
			message := fmt.Sprintf("Delete role %q?", selected.Name)
			if selected.UsersCount > 0 {
				message = fmt.Sprintf("Delete role %q? %d users hold it.", selected.Name, selected.UsersCount)
			}
			m.sess.pushConfirm("Delete role", message, m.deleteCmd(selected.ID))
		}
	case isBack(msg):
		if m.searchBuf != "" {
			m.searchBuf = ""
			m.refreshRows()
		}
	}
	return m, nil
}

// Form focus: 0 name, 1 description, 2 assignment matrix.
func (m RolesModel) handleFormKeys(msg tea.KeyMsg) (RolesModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	inMatrix := m.formFocus == 2

	switch {
	case isBack(msg):
		m.view = rolesViewList
		m.form = nil
	case isKey(msg, "tab"):
		m.formFocus = (m.formFocus + 1) % 3
	case isEnter(msg):
		m.saving = true
		return m, m.saveCmd(m.form)
	case inMatrix && isDown(msg):
		if m.matrixIdx < len(m.candidates)-1 {
			m.matrixIdx++
		}
	case inMatrix && isUp(msg):
		if m.matrixIdx > 0 {
			m.matrixIdx--
		}
	case inMatrix && isSpace(msg):
		if m.matrixIdx < len(m.candidates) {
			m.form.Permissions.Toggle(m.candidates[m.matrixIdx].ID)
		}
	case !inMatrix && isDown(msg):
		m.formFocus++
	case !inMatrix && isUp(msg) && m.formFocus > 0:
		m.formFocus--
	case !inMatrix:
		switch m.formFocus {
		case 0:
			m.form.Name = appendKey(m.form.Name, msg)
		case 1:
			m.form.Description = appendKey(m.form.Description, msg)
		}
	}
	return m, nil
}

func (m RolesModel) View() string {
	switch m.view {
	case rolesViewSearch:
		return indent(inputDialog("Search roles", m.searchBuf), 1)
	case rolesViewForm:
		return m.renderForm()
	}
	return m.renderList()
}

func (m RolesModel) renderList() string {
	header := titleStyle.Render("Roles")
	if m.searchBuf != "" {
		header += mutedStyle.Render(fmt.Sprintf("  filter: %q", m.searchBuf))
	}

	var body string
	switch m.lv.State() {
	case usecase.ListStateLoading:
		body = mutedStyle.Render("Loading roles...")
	case usecase.ListStateEmpty:
		body = mutedStyle.Render("No roles yet. Press a to add one.")
	default:
		body = m.list.View()
		if m.lv.State() == usecase.ListStateStale {
			body = warnStyle.Render("Showing last known data; refresh failed.") + "\n" + body
		}
		if len(m.visible()) == 0 {
			body = mutedStyle.Render("No matches for the current filter.")
		}
	}

	help := mutedStyle.Render("a add · enter edit · d delete · / search · r reload")
	return indent(header+"\n\n"+body+"\n\n"+help, 1)
}

func (m RolesModel) renderForm() string {
	if m.saving {
		return indent(mutedStyle.Render("Saving..."), 1)
	}
	title := "New role"
	if m.form.IsEdit() {
		title = "Edit role"
	}

	body := titleStyle.Render(title) + "\n\n" +
		fieldLine("Name", m.form.Name, m.formFocus == 0, false) + "\n" +
		fieldLine("Description", m.form.Description, m.formFocus == 1, false) + "\n\n"

	matrixTitle := "  Permissions"
	if m.formFocus == 2 {
		matrixTitle = focusStyle.Render("> Permissions")
	}
	body += labelStyle.Render(matrixTitle) + "\n"
	for i, candidate := range m.candidates {
		row := checkbox(m.form.Permissions.Has(candidate.ID), candidate.Name)
		if m.formFocus == 2 && i == m.matrixIdx {
			row = selectedStyle.Render(row)
		}
		body += "  " + row + "\n"
	}
	if len(m.candidates) == 0 {
		body += mutedStyle.Render("  no permissions available") + "\n"
	}

	body += "\n" + mutedStyle.Render("enter save · tab section · space toggle · esc cancel")
	return indent(box(body), 1)
}
