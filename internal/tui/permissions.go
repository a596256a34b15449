package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
	"github.com/ingberrio/erp-sub001/internal/usecase"
)

type permissionsView int

const (
	permissionsViewList permissionsView = iota
	permissionsViewSearch
	permissionsViewForm
)

// PermissionsModel is the permission management screen.
type PermissionsModel struct {
	sess *session

	view      permissionsView
	lv        *usecase.ListView[domain.Permission]
	list      *list
	searchBuf string

	form      *usecase.PermissionForm
	formFocus int
	saving    bool
}

func newPermissionsModel(sess *session) PermissionsModel {
	fields := func(p domain.Permission) (string, string) {
		if p.Description != nil {
			return p.Name, *p.Description
		}
		return p.Name, ""
	}
	return PermissionsModel{
		sess: sess,
		lv:   usecase.NewListView("permissions", fields),
		list: newList(sess.pageSize),
	}
}

func (m PermissionsModel) Init() tea.Cmd { return m.reload() }

func (m PermissionsModel) reload() tea.Cmd {
	gen := m.lv.Begin()
	sess := m.sess
	return func() tea.Msg {
		scope, err := sess.Scope()
		if err != nil {
			return permissionsLoadedMsg{gen: gen, err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := sess.gateways.Permissions.List(ctx, scope)
		return permissionsLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (m PermissionsModel) saveCmd(form *usecase.PermissionForm) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		scope, err := sess.Scope()
		if err != nil {
			return errMsg{err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		saved, err := form.Submit(ctx, scope, sess.gateways.Permissions)
		if err != nil {
			return errMsg{err}
		}
		return permissionSavedMsg{item: saved}
	}
}

func (m PermissionsModel) deleteCmd(id string) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		scope, err := sess.Scope()
		if err != nil {
			return errMsg{err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := sess.gateways.Permissions.Delete(ctx, scope, id); err != nil {
			return errMsg{err}
		}
		return permissionDeletedMsg{id: id}
	}
}

func (m PermissionsModel) Update(msg tea.Msg) (PermissionsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case permissionsLoadedMsg:
		if err := m.lv.Apply(msg.gen, msg.items, msg.err); err != nil {
			m.notifyError(err)
		}
		m.refreshRows()
		return m, nil

	case permissionSavedMsg:
		m.saving = false
		m.view = permissionsViewList
		m.form = nil
		item := *msg.item
		m.lv.Patch(item, func(p domain.Permission) bool { return p.ID == item.ID })
		m.refreshRows()
		m.sess.alerts.Notify(fmt.Sprintf("Permission %q saved", item.Name), usecase.SeveritySuccess)
		return m, nil

	case permissionDeletedMsg:
		m.lv.Remove(func(p domain.Permission) bool { return p.ID == msg.id })
		m.refreshRows()
		m.sess.alerts.Notify("Permission deleted", usecase.SeverityInfo)
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

func (m *PermissionsModel) notifyError(err error) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		m.sess.alerts.NotifyError("Invalid input", verr.Fields)
		return
	}
	notifyRemote(m.sess.alerts, err)
}

func (m *PermissionsModel) refreshRows() {
	filtered := m.lv.Filter(m.searchBuf)
	rows := make([]string, len(filtered))
	for i, p := range filtered {
		description := ""
		if p.Description != nil {
			description = mutedStyle.Render("  " + *p.Description)
		}
		scope := ""
		if p.TenantID == nil {
			scope = warnStyle.Render(" [global]")
		}
		rows[i] = p.Name + scope + description
	}
	m.list.SetItems(rows)
}

// visible returns the filtered items backing the current rows.
func (m *PermissionsModel) visible() []domain.Permission {
	return m.lv.Filter(m.searchBuf)
}

func (m PermissionsModel) handleKeys(msg tea.KeyMsg) (PermissionsModel, tea.Cmd) {
	switch m.view {
	case permissionsViewSearch:
		switch {
		case isEnter(msg), isBack(msg):
			m.view = permissionsViewList
		default:
			m.searchBuf = appendKey(m.searchBuf, msg)
			m.refreshRows()
		}
		return m, nil

	case permissionsViewForm:
		return m.handleFormKeys(msg)
	}

	// List mode.
	switch {
	case isDown(msg):
		m.list.Down()
	case isUp(msg):
		m.list.Up()
	case isKey(msg, "/"):
		m.view = permissionsViewSearch
	case isKey(msg, "r"):
		return m, m.reload()
	case isKey(msg, "a"):
		m.form = usecase.NewPermissionForm(nil)
		m.formFocus = 0
		m.view = permissionsViewForm
	case isEnter(msg), isKey(msg, "e"):
		if items := m.visible(); m.list.Selected() < len(items) {
			selected := items[m.list.Selected()]
			m.form = usecase.NewPermissionForm(&selected)
			m.formFocus = 0
			m.view = permissionsViewForm
		}
	case isKey(msg, "d"):
		if items := m.visible(); m.list.Selected() < len(items) {
			selected := items[m.list.Selected()]
			m.sess.pushConfirm(
				"Delete permission",
				fmt.Sprintf("Delete permission %q? Roles using it lose it immediately.", selected.Name),
				m.deleteCmd(selected.ID),
			)
		}
	case isBack(msg):
		if m.searchBuf != "" {
			m.searchBuf = ""
			m.refreshRows()
		}
	}
	return m, nil
}

func (m PermissionsModel) handleFormKeys(msg tea.KeyMsg) (PermissionsModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	switch {
	case isBack(msg):
		m.view = permissionsViewList
		m.form = nil
	case isKey(msg, "tab"), isDown(msg):
		m.formFocus = (m.formFocus + 1) % 2
	case isUp(msg):
		m.formFocus = (m.formFocus + 1) % 2
	case isEnter(msg):
		m.saving = true
		return m, m.saveCmd(m.form)
	default:
		switch m.formFocus {
		case 0:
			m.form.Name = appendKey(m.form.Name, msg)
		case 1:
			m.form.Description = appendKey(m.form.Description, msg)
		}
	}
	return m, nil
}

func (m PermissionsModel) View() string {
	switch m.view {
	case permissionsViewSearch:
		return indent(inputDialog("Search permissions", m.searchBuf), 1)
	case permissionsViewForm:
		return m.renderForm()
	}
	return m.renderList()
}

func (m PermissionsModel) renderList() string {
	header := titleStyle.Render("Permissions")
	if m.searchBuf != "" {
		header += mutedStyle.Render(fmt.Sprintf("  filter: %q", m.searchBuf))
	}

	var body string
	switch m.lv.State() {
	case usecase.ListStateLoading:
		body = mutedStyle.Render("Loading permissions...")
	case usecase.ListStateEmpty:
		body = mutedStyle.Render("No permissions yet. Press a to add one.")
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

func (m PermissionsModel) renderForm() string {
	title := "New permission"
	if m.form.IsEdit() {
		title = "Edit permission"
	}
	if m.saving {
		return indent(mutedStyle.Render("Saving..."), 1)
	}
	body := titleStyle.Render(title) + "\n\n" +
		fieldLine("Name", m.form.Name, m.formFocus == 0, false) + "\n" +
		fieldLine("Description", m.form.Description, m.formFocus == 1, false) + "\n\n" +
		mutedStyle.Render("enter save · tab next field · esc cancel")
	return indent(box(body), 1)
}
