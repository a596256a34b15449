package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// list is a scrolling selection window over pre-rendered row labels.
type list struct {
	items    []string
	selected int
	offset   int
	height   int
}

func newList(height int) *list {
	if height < 3 {
		height = 3
	}
	return &list{height: height}
}

// SetItems replaces the rows, clamping the selection into range.
func (l *list) SetItems(items []string) {
	l.items = items
	if l.selected >= len(items) {
		l.selected = len(items) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
	l.clampOffset()
}

func (l *list) Selected() int { return l.selected }

func (l *list) Down() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
	l.clampOffset()
}

func (l *list) Up() {
	if l.selected > 0 {
		l.selected--
	}
	l.clampOffset()
}

func (l *list) clampOffset() {
	if l.selected < l.offset {
		l.offset = l.selected
	}
	if l.selected >= l.offset+l.height {
		l.offset = l.selected - l.height + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the visible window, highlighting the selected row.
func (l *list) View() string {
	if len(l.items) == 0 {
		return ""
	}
	end := l.offset + l.height
	if end > len(l.items) {
		end = len(l.items)
	}

	var b strings.Builder
	for i := l.offset; i < end; i++ {
		row := l.items[i]
		if i == l.selected {
			b.WriteString(selectedStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// inputDialog renders a one-line prompt with a cursor.
func inputDialog(title, value string) string {
	return boxStyle.Render(titleStyle.Render(title) + "\n" + value + "█")
}

// box wraps body in a rounded border.
func box(body string) string {
	return boxStyle.Render(body)
}

// indent prefixes every line with n spaces.
func indent(body string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

// checkbox renders a matrix row.
func checkbox(checked bool, label string) string {
	mark := "[ ]"
	if checked {
		mark = "[x]"
	}
	return mark + " " + label
}

// fieldLine renders a labelled form value, highlighting the focused field.
func fieldLine(label, value string, focused, secret bool) string {
	shown := value
	if secret && shown != "" {
		shown = strings.Repeat("*", len(value))
	}
	if focused {
		return focusStyle.Render("> "+label+": ") + shown + "█"
	}
	return labelStyle.Render("  "+label+": ") + shown
}

// centerLine centers a line within width, best effort.
func centerLine(line string, width int) string {
	w := lipgloss.Width(line)
	if width <= w {
		return line
	}
	return strings.Repeat(" ", (width-w)/2) + line
}
