package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
	"github.com/ingberrio/erp-sub001/internal/infra/logger"
	"github.com/ingberrio/erp-sub001/internal/usecase"
)

type usersView int

const (
	usersViewList usersView = iota
	usersViewSearch
	usersViewForm
)

// userRolesLoadedMsg delivers the matrix candidates for the user form.
type userRolesLoadedMsg struct {
	items []domain.Role
	err   error
}

// UsersModel is the user management screen, including the user↔role
// assignment matrix.
type UsersModel struct {
	sess *session

	view      usersView
	lv        *usecase.ListView[domain.User]
	list      *list
	searchBuf string

	candidates []domain.Role

	form      *usecase.UserForm
	formFocus int
	matrixIdx int
	saving    bool
}

func newUsersModel(sess *session) UsersModel {
	fields := func(u domain.User) (string, string) {
		return u.Name, u.Email
	}
	return UsersModel{
		sess: sess,
		lv:   usecase.NewListView("users", fields),
		list: newList(sess.pageSize),
	}
}

func (m UsersModel) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.loadCandidates())
}

func (m UsersModel) reload() tea.Cmd {
	gen := m.lv.Begin()
	sess := m.sess
	return func() tea.Msg {
		scope, err := sess.Scope()
		if err != nil {
			return usersLoadedMsg{gen: gen, err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := sess.gateways.Users.List(ctx, scope)
		return usersLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (m UsersModel) loadCandidates() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		scope, err := sess.Scope()
		if err != nil {
			return userRolesLoadedMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := sess.gateways.Roles.List(ctx, scope)
		return userRolesLoadedMsg{items: items, err: err}
	}
}

func (m UsersModel) saveCmd(form *usecase.UserForm) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		scope, err := sess.Scope()
		if err != nil {
			return errMsg{err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		saved, err := form.Submit(ctx, scope, sess.gateways.Users)
		if err != nil {
			return errMsg{err}
		}
		return userSavedMsg{item: saved}
	}
}

func (m UsersModel) deleteCmd(id string) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		scope, err := sess.Scope()
		if err != nil {
			return errMsg{err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := sess.gateways.Users.Delete(ctx, scope, id); err != nil {
			return errMsg{err}
		}
		return userDeletedMsg{id: id}
	}
}

func (m UsersModel) Update(msg tea.Msg) (UsersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		if err := m.lv.Apply(msg.gen, msg.items, msg.err); err != nil {
			m.notifyError(err)
		}
		m.refreshRows()
		return m, nil

	case userRolesLoadedMsg:
		if msg.err != nil {
			m.notifyError(msg.err)
			return m, nil
		}
		m.candidates = msg.items
		return m, nil

	case userSavedMsg:
		m.saving = false
		m.view = usersViewList
		m.form = nil
		item := *msg.item
		m.lv.Patch(item, func(u domain.User) bool { return u.ID == item.ID })
		m.refreshRows()
		m.sess.alerts.Notify(fmt.Sprintf("User %s saved", logger.MaskEmail(item.Email)), usecase.SeveritySuccess)
		return m, nil

	case userDeletedMsg:
		m.lv.Remove(func(u domain.User) bool { return u.ID == msg.id })
		m.refreshRows()
		m.sess.alerts.Notify("User deleted", usecase.SeverityInfo)
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

func (m *UsersModel) notifyError(err error) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		m.sess.alerts.NotifyError("Invalid input", verr.Fields)
		return
	}
	notifyRemote(m.sess.alerts, err)
}

func (m *UsersModel) refreshRows() {
	filtered := m.lv.Filter(m.searchBuf)
	rows := make([]string, len(filtered))
	for i, u := range filtered {
		rows[i] = fmt.Sprintf("%s  %s  %s", u.Name, mutedStyle.Render(u.Email),
			mutedStyle.Render(fmt.Sprintf("%d roles", len(u.Roles))))
	}
	m.list.SetItems(rows)
}

func (m *UsersModel) visible() []domain.User {
	return m.lv.Filter(m.searchBuf)
}

func (m UsersModel) handleKeys(msg tea.KeyMsg) (UsersModel, tea.Cmd) {
	switch m.view {
	case usersViewSearch:
		switch {
		case isEnter(msg), isBack(msg):
			m.view = usersViewList
		default:
			m.searchBuf = appendKey(m.searchBuf, msg)
			m.refreshRows()
		}
		return m, nil

	case usersViewForm:
		return m.handleFormKeys(msg)
	}

	switch {
	case isDown(msg):
		m.list.Down()
	case isUp(msg):
		m.list.Up()
	case isKey(msg, "/"):
		m.view = usersViewSearch
	case isKey(msg, "r"):
		return m, tea.Batch(m.reload(), m.loadCandidates())
	case isKey(msg, "a"):
		m.form = usecase.NewUserForm(nil, m.candidates)
		m.formFocus, m.matrixIdx = 0, 0
		m.view = usersViewForm
	case isEnter(msg), isKey(msg, "e"):
		if items := m.visible(); m.list.Selected() < len(items) {
			selected := items[m.list.Selected()]
			m.form = usecase.NewUserForm(&selected, m.candidates)
			m.formFocus, m.matrixIdx = 0, 0
			m.view = usersViewForm
		}
	case isKey(msg, "d"):
		if items := m.visible(); m.list.Selected() < len(items) {
			selected := items[m.list.Selected()]
			m.sess.pushConfirm(
				"Delete user",
				fmt.Sprintf("Delete user %q (%s)?", selected.Name, selected.Email),
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

// Form focus: 0 name, 1 email, 2 password, 3 assignment matrix.
func (m UsersModel) handleFormKeys(msg tea.KeyMsg) (UsersModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	inMatrix := m.formFocus == 3

	switch {
	case isBack(msg):
		m.view = usersViewList
		m.form = nil
	case isKey(msg, "tab"):
		m.formFocus = (m.formFocus + 1) % 4
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
			m.form.Roles.Toggle(m.candidates[m.matrixIdx].ID)
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
			m.form.Email = appendKey(m.form.Email, msg)
		case 2:
			m.form.Password = appendKey(m.form.Password, msg)
		}
	}
	return m, nil
}

func (m UsersModel) View() string {
	switch m.view {
	case usersViewSearch:
		return indent(inputDialog("Search users", m.searchBuf), 1)
	case usersViewForm:
		return m.renderForm()
	}
	return m.renderList()
}

func (m UsersModel) renderList() string {
	header := titleStyle.Render("Users")
	if name := m.sess.facilityName(); name != "" {
		header += mutedStyle.Render("  facility: " + name)
	}
	if m.searchBuf != "" {
		header += mutedStyle.Render(fmt.Sprintf("  filter: %q", m.searchBuf))
	}

	var body string
	switch m.lv.State() {
	case usecase.ListStateLoading:
		body = mutedStyle.Render("Loading users...")
	case usecase.ListStateEmpty:
		body = mutedStyle.Render("No users yet. Press a to add one.")
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

func (m UsersModel) renderForm() string {
	if m.saving {
		return indent(mutedStyle.Render("Saving..."), 1)
	}
	title := "New user"
	passwordLabel := "Password"
	if m.form.IsEdit() {
		title = "Edit user"
		passwordLabel = "Password (blank = unchanged)"
	}

	body := titleStyle.Render(title) + "\n\n" +
		fieldLine("Name", m.form.Name, m.formFocus == 0, false) + "\n" +
		fieldLine("Email", m.form.Email, m.formFocus == 1, false) + "\n" +
		fieldLine(passwordLabel, m.form.Password, m.formFocus == 2, true) + "\n\n"

	matrixTitle := "  Roles"
	if m.formFocus == 3 {
		matrixTitle = focusStyle.Render("> Roles")
	}
	body += labelStyle.Render(matrixTitle) + "\n"
	for i, candidate := range m.candidates {
		row := checkbox(m.form.Roles.Has(candidate.ID), candidate.Name)
		if m.formFocus == 3 && i == m.matrixIdx {
			row = selectedStyle.Render(row)
		}
		body += "  " + row + "\n"
	}
	if len(m.candidates) == 0 {
		body += mutedStyle.Render("  no roles available") + "\n"
	}

	body += "\n" + mutedStyle.Render("enter save · tab section · space toggle · esc cancel")
	return indent(box(body), 1)
}
