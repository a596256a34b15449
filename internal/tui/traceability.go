package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ingberrio/erp-sub001/internal/core/domain"
	"github.com/ingberrio/erp-sub001/internal/usecase"
)

type traceView int

const (
	traceViewList traceView = iota
	traceViewFilter
)

// TraceabilityModel is the read-only audit log screen.
type TraceabilityModel struct {
	sess *session

	view traceView
	lv   *usecase.ListView[domain.TraceabilityEvent]
	list *list

	areaBuf     string
	batchBuf    string
	filterFocus int
}

func newTraceabilityModel(sess *session) TraceabilityModel {
	fields := func(e domain.TraceabilityEvent) (string, string) {
		return e.EventType, e.Description
	}
	return TraceabilityModel{
		sess: sess,
		lv:   usecase.NewListView("traceability-events", fields),
		list: newList(sess.pageSize),
	}
}

func (m TraceabilityModel) Init() tea.Cmd {
	return m.reload()
}

func (m TraceabilityModel) reload() tea.Cmd {
	gen := m.lv.Begin()
	sess := m.sess
	areaID, batchID := m.areaBuf, m.batchBuf
	return func() tea.Msg {
		scope, err := sess.Scope()
		if err != nil {
			return eventsLoadedMsg{gen: gen, err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := sess.gateways.Traceability.List(ctx, scope, areaID, batchID)
		return eventsLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (m TraceabilityModel) Update(msg tea.Msg) (TraceabilityModel, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsLoadedMsg:
		if err := m.lv.Apply(msg.gen, msg.items, msg.err); err != nil {
			notifyRemote(m.sess.alerts, err)
		}
		m.refreshRows()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

// displayKey is the row identity used for rendering only. Legacy rows may
// arrive without a server ID; the derived key never leaves the terminal.
func displayKey(e domain.TraceabilityEvent, index int) string {
	if e.ID != "" {
		return e.ID
	}
	return fmt.Sprintf("%s-%s-%d-%d", e.BatchID, e.EventType, e.CreatedAt.Unix(), index)
}

func (m *TraceabilityModel) refreshRows() {
	items := m.lv.Items()
	rows := make([]string, len(items))
	for i, e := range items {
		qty := ""
		if e.Quantity != 0 {
			qty = fmt.Sprintf("  %.2f %s", e.Quantity, e.Unit)
		}
		move := ""
		if e.FromLocation != "" || e.ToLocation != "" {
			move = mutedStyle.Render(fmt.Sprintf("  %s → %s", e.FromLocation, e.ToLocation))
		}
		rows[i] = fmt.Sprintf("%s  %s%s%s  %s  %s",
			mutedStyle.Render(e.CreatedAt.Format("2006-01-02 15:04")),
			e.EventType, qty, move,
			mutedStyle.Render(e.UserName),
			mutedStyle.Render("#"+displayKey(e, i)))
	}
	m.list.SetItems(rows)
}

func (m TraceabilityModel) handleKeys(msg tea.KeyMsg) (TraceabilityModel, tea.Cmd) {
	if m.view == traceViewFilter {
		switch {
		case isEnter(msg):
			m.view = traceViewList
			return m, m.reload()
		case isBack(msg):
			m.view = traceViewList
		case isKey(msg, "tab"):
			m.filterFocus = (m.filterFocus + 1) % 2
		default:
			if m.filterFocus == 0 {
				m.areaBuf = appendKey(m.areaBuf, msg)
			} else {
				m.batchBuf = appendKey(m.batchBuf, msg)
			}
		}
		return m, nil
	}

	switch {
	case isDown(msg):
		m.list.Down()
	case isUp(msg):
		m.list.Up()
	case isKey(msg, "/"), isKey(msg, "f"):
		m.view = traceViewFilter
	case isKey(msg, "r"):
		return m, m.reload()
	case isBack(msg):
		if m.areaBuf != "" || m.batchBuf != "" {
			m.areaBuf, m.batchBuf = "", ""
			return m, m.reload()
		}
	}
	return m, nil
}

func (m TraceabilityModel) View() string {
	if m.view == traceViewFilter {
		body := titleStyle.Render("Filter events") + "\n\n" +
			fieldLine("Area ID", m.areaBuf, m.filterFocus == 0, false) + "\n" +
			fieldLine("Batch ID", m.batchBuf, m.filterFocus == 1, false) + "\n\n" +
			mutedStyle.Render("enter apply · tab field · esc cancel")
		return indent(box(body), 1)
	}

	header := titleStyle.Render("Traceability")
	if name := m.sess.facilityName(); name != "" {
		header += mutedStyle.Render("  facility: " + name)
	}
	if m.areaBuf != "" {
		header += mutedStyle.Render("  area: " + m.areaBuf)
	}
	if m.batchBuf != "" {
		header += mutedStyle.Render("  batch: " + m.batchBuf)
	}

	var body string
	switch m.lv.State() {
	case usecase.ListStateLoading:
		body = mutedStyle.Render("Loading events...")
	case usecase.ListStateEmpty:
		body = mutedStyle.Render("No events recorded.")
	default:
		body = m.list.View()
		if m.lv.State() == usecase.ListStateStale {
			body = warnStyle.Render("Showing last known data; refresh failed.") + "\n" + body
		}
	}

	help := mutedStyle.Render("/ filter · r reload · esc clear filter")
	return indent(header+"\n\n"+body+"\n\n"+help, 1)
}
