package usecase

import (
	"sort"
	"strings"
	"time"

	uuid "github.com/google/uuid"
)

// noticeTTL is how long a notice stays visible unless dismissed earlier.
const noticeTTL = 4 * time.Second

// Severity classifies a notice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice is a transient status message.
type Notice struct {
	ID       string
	Message  string
	Severity Severity
	shownAt  time.Time
}

// Confirm is a pending confirm-then-act prompt.
type Confirm struct {
	Title   string
	Message string
	action  func()
}

// Alerts is the confirmation and notification gateway. A single confirm
// prompt may be pending at a time; requesting another replaces it. The
// confirmed action runs exactly once and never on dismiss.
type Alerts struct {
	pending *Confirm
	notices []Notice
	ttl     time.Duration
	now     func() time.Time
}

// NewAlerts returns a gateway with the standard auto-dismiss interval.
func NewAlerts() *Alerts {
	return &Alerts{ttl: noticeTTL, now: time.Now}
}

// RequestConfirm queues a confirm prompt, replacing any pending one.
func (a *Alerts) RequestConfirm(title, message string, action func()) {
	a.pending = &Confirm{Title: title, Message: message, action: action}
}

// Pending returns the active confirm prompt, if any.
func (a *Alerts) Pending() *Confirm { return a.pending }

// AcceptConfirm runs the pending action and clears the prompt.
func (a *Alerts) AcceptConfirm() {
	if a.pending == nil {
		return
	}
	action := a.pending.action
	a.pending = nil
	if action != nil {
		action()
	}
}

// DismissConfirm clears the prompt without running anything.
func (a *Alerts) DismissConfirm() { a.pending = nil }

// Notify queues a transient notice.
func (a *Alerts) Notify(message string, severity Severity) {
	a.notices = append(a.notices, Notice{
		ID:       uuid.NewString(),
		Message:  message,
		Severity: severity,
		shownAt:  a.now(),
	})
}

// NotifyError queues an error notice. Field-level details, when present,
// are flattened into the displayed text in field order.
func (a *Alerts) NotifyError(message string, details map[string][]string) {
	if len(details) > 0 {
		fields := make([]string, 0, len(details))
		for field := range details {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		flat := make([]string, 0, len(fields))
		for _, field := range fields {
			flat = append(flat, strings.Join(details[field], " "))
		}
		message = message + ": " + strings.Join(flat, " ")
	}
	a.Notify(message, SeverityError)
}

// Dismiss removes a notice by ID before its TTL runs out.
func (a *Alerts) Dismiss(id string) {
	for i, notice := range a.notices {
		if notice.ID == id {
			a.notices = append(a.notices[:i], a.notices[i+1:]...)
			return
		}
	}
}

// Active drops expired notices and returns the rest, oldest first.
func (a *Alerts) Active() []Notice {
	cutoff := a.now().Add(-a.ttl)
	alive := a.notices[:0]
	for _, notice := range a.notices {
		if notice.shownAt.After(cutoff) {
			alive = append(alive, notice)
		}
	}
	a.notices = alive
	return append([]Notice(nil), a.notices...)
}
