package tui

import tea "github.com/charmbracelet/bubbletea"

func isKey(msg tea.KeyMsg, names ...string) bool {
	s := msg.String()
	for _, name := range names {
		if s == name {
			return true
		}
	}
	return false
}

func isUp(msg tea.KeyMsg) bool    { return isKey(msg, "up", "ctrl+p") }
func isDown(msg tea.KeyMsg) bool  { return isKey(msg, "down", "ctrl+n") }
func isEnter(msg tea.KeyMsg) bool { return isKey(msg, "enter") }
func isBack(msg tea.KeyMsg) bool  { return isKey(msg, "esc") }
func isSpace(msg tea.KeyMsg) bool { return isKey(msg, " ", "space") }

// appendKey applies printable runes and backspace to a text buffer.
func appendKey(buf string, msg tea.KeyMsg) string {
	switch {
	case isKey(msg, "backspace", "delete"):
		if len(buf) > 0 {
			runes := []rune(buf)
			return string(runes[:len(runes)-1])
		}
		return buf
	case msg.Type == tea.KeyRunes:
		return buf + string(msg.Runes)
	case msg.Type == tea.KeySpace:
		return buf + " "
	default:
		return buf
	}
}
