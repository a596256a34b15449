package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
	"github.com/ingberrio/erp-sub001/internal/usecase"
)

type discrepanciesView int

const (
	discrepanciesViewList discrepanciesView = iota
	discrepanciesViewJustify
)

// DiscrepanciesModel lists open inventory discrepancies and collects
// justifications for them.
type DiscrepanciesModel struct {
	sess *session

	view discrepanciesView
	lv   *usecase.ListView[domain.Discrepancy]
	list *list

	reasons []domain.DiscrepancyReason

	form       *usecase.JustificationForm
	reasonIdx  int
	notesFocus bool
	saving     bool
}

func newDiscrepanciesModel(sess *session) DiscrepanciesModel {
	fields := func(d domain.Discrepancy) (string, string) {
		return d.BatchName, ""
	}
	return DiscrepanciesModel{
		sess: sess,
		lv:   usecase.NewListView("discrepancies", fields),
		list: newList(sess.pageSize),
	}
}

func (m DiscrepanciesModel) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.loadReasons())
}

func (m DiscrepanciesModel) reload() tea.Cmd {
	gen := m.lv.Begin()
	sess := m.sess
	return func() tea.Msg {
		scope, err := sess.Scope()
		if err != nil {
			return discrepanciesLoadedMsg{gen: gen, err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := sess.gateways.Discrepancies.List(ctx, scope)
		return discrepanciesLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (m DiscrepanciesModel) loadReasons() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		scope, err := sess.Scope()
		if err != nil {
			return reasonsLoadedMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := sess.gateways.Discrepancies.Reasons(ctx, scope)
		return reasonsLoadedMsg{items: items, err: err}
	}
}

func (m DiscrepanciesModel) justifyCmd(form *usecase.JustificationForm) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		scope, err := sess.Scope()
		if err != nil {
			return errMsg{err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := form.Submit(ctx, scope, sess.gateways.Discrepancies); err != nil {
			return errMsg{err}
		}
		return justifiedMsg{discrepancyID: form.Discrepancy().ID}
	}
}

func (m DiscrepanciesModel) Update(msg tea.Msg) (DiscrepanciesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case discrepanciesLoadedMsg:
		if err := m.lv.Apply(msg.gen, msg.items, msg.err); err != nil {
			m.notifyError(err)
		}
		m.refreshRows()
		return m, nil

	case reasonsLoadedMsg:
		if msg.err != nil {
			m.notifyError(msg.err)
			return m, nil
		}
		m.reasons = msg.items
		return m, nil

	case justifiedMsg:
		m.saving = false
		m.view = discrepanciesViewList
		m.form = nil
		m.lv.Remove(func(d domain.Discrepancy) bool { return d.ID == msg.discrepancyID })
		m.refreshRows()
		m.sess.alerts.Notify("Discrepancy justified", usecase.SeveritySuccess)
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

func (m *DiscrepanciesModel) notifyError(err error) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		m.sess.alerts.NotifyError("Invalid input", verr.Fields)
		return
	}
	notifyRemote(m.sess.alerts, err)
}

func (m *DiscrepanciesModel) refreshRows() {
	items := m.lv.Items()
	rows := make([]string, len(items))
	for i, d := range items {
		delta := fmt.Sprintf("%+.2f %s", d.Delta(), d.Unit)
		if d.Delta() < 0 {
			delta = errorStyle.Render(delta)
		} else {
			delta = warnStyle.Render(delta)
		}
		rows[i] = fmt.Sprintf("%s  logical %.2f · physical %.2f  %s",
			d.BatchName, d.LogicalQuantity, d.PhysicalQuantity, delta)
	}
	m.list.SetItems(rows)
}

func (m DiscrepanciesModel) handleKeys(msg tea.KeyMsg) (DiscrepanciesModel, tea.Cmd) {
	if m.view == discrepanciesViewJustify {
		return m.handleFormKeys(msg)
	}

	switch {
	case isDown(msg):
		m.list.Down()
	case isUp(msg):
		m.list.Up()
	case isKey(msg, "r"):
		return m, tea.Batch(m.reload(), m.loadReasons())
	case isEnter(msg), isKey(msg, "j"):
		if items := m.lv.Items(); m.list.Selected() < len(items) {
			m.form = usecase.NewJustificationForm(items[m.list.Selected()])
			m.reasonIdx = 0
			m.notesFocus = false
			m.view = discrepanciesViewJustify
		}
	}
	return m, nil
}

func (m DiscrepanciesModel) handleFormKeys(msg tea.KeyMsg) (DiscrepanciesModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	switch {
	case isBack(msg):
		m.view = discrepanciesViewList
		m.form = nil
	case isKey(msg, "tab"):
		m.notesFocus = !m.notesFocus
	case isEnter(msg):
		m.saving = true
		return m, m.justifyCmd(m.form)
	case !m.notesFocus && isDown(msg):
		if m.reasonIdx < len(m.reasons)-1 {
			m.reasonIdx++
			m.form.ReasonID = m.reasons[m.reasonIdx].ID
		}
	case !m.notesFocus && isUp(msg):
		if m.reasonIdx > 0 {
			m.reasonIdx--
			m.form.ReasonID = m.reasons[m.reasonIdx].ID
		}
	case !m.notesFocus && isSpace(msg):
		if m.reasonIdx < len(m.reasons) {
			m.form.ReasonID = m.reasons[m.reasonIdx].ID
		}
	case m.notesFocus:
		m.form.Notes = appendKey(m.form.Notes, msg)
	}
	return m, nil
}

func (m DiscrepanciesModel) View() string {
	if m.view == discrepanciesViewJustify {
		return m.renderForm()
	}
	return m.renderList()
}

func (m DiscrepanciesModel) renderList() string {
	header := titleStyle.Render("Inventory discrepancies")
	if name := m.sess.facilityName(); name != "" {
		header += mutedStyle.Render("  facility: " + name)
	}

	var body string
	switch m.lv.State() {
	case usecase.ListStateLoading:
		body = mutedStyle.Render("Loading discrepancies...")
	case usecase.ListStateEmpty:
		body = successStyle.Render("No open discrepancies.")
	default:
		body = m.list.View()
		if m.lv.State() == usecase.ListStateStale {
			body = warnStyle.Render("Showing last known data; refresh failed.") + "\n" + body
		}
	}

	help := mutedStyle.Render("enter justify · r reload")
	return indent(header+"\n\n"+body+"\n\n"+help, 1)
}

func (m DiscrepanciesModel) renderForm() string {
	if m.saving {
		return indent(mutedStyle.Render("Submitting..."), 1)
	}
	d := m.form.Discrepancy()
	body := titleStyle.Render("Justify discrepancy") + "\n\n" +
		labelStyle.Render("  Batch") + "  " + d.BatchName + "\n" +
		labelStyle.Render("  Delta") + "  " + fmt.Sprintf("%+.2f %s", d.Delta(), d.Unit) + "\n\n"

	reasonTitle := "  Reason"
	if !m.notesFocus {
		reasonTitle = focusStyle.Render("> Reason")
	}
	body += labelStyle.Render(reasonTitle) + "\n"
	for i, reason := range m.reasons {
		row := checkbox(m.form.ReasonID == reason.ID, reason.Label)
		if !m.notesFocus && i == m.reasonIdx {
			row = selectedStyle.Render(row)
		}
		body += "  " + row + "\n"
	}
	if len(m.reasons) == 0 {
		body += mutedStyle.Render("  no reasons available") + "\n"
	}

	body += "\n" + fieldLine("Notes", m.form.Notes, m.notesFocus, false) + "\n"
	body += "\n" + mutedStyle.Render("enter submit · tab notes · space pick · esc cancel")
	return indent(box(body), 1)
}
