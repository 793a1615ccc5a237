package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timeblock/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch {
	case m.help.Active():
		return m.handleHelpKeys(msg)
	case m.lifecycle.Active():
		return m.handleFormKeys(msg)
	default:
		return m.handleTimelineKeys(msg)
	}
}

// handleTimelineKeys handles keys while the form is closed.
func (m Model) handleTimelineKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		m.moveCursor(-1)
	case "l", "right":
		m.moveCursor(1)
	case "H":
		m.pan(-time.Hour)
	case "L":
		m.pan(time.Hour)
	case "+", "=":
		m.zoom(0.5, m.cursor)
	case "-", "_":
		m.zoom(2, m.cursor)
	case "n":
		m.cursor = m.clampCursor(m.marker.At())
		m.keepCursorVisible()
		m.selected = m.itemAtCursor()
	case "tab":
		m.selectNext(1)
	case "shift+tab":
		m.selectNext(-1)
	case "esc":
		m.selected = 0

	// Items
	case "enter":
		cmd := m.activate(m.dispatcher.DoubleClick(m.cursorProps()), "key")
		return m, cmd
	case "shift+left":
		return m, m.shiftSelected(-1)
	case "shift+right":
		return m, m.shiftSelected(1)
	case "<":
		return m, m.resizeSelected(-1)
	case ">":
		return m, m.resizeSelected(1)
	case "x", "delete":
		return m, m.removeSelected()
	case "y":
		if m.items.Len() == 0 {
			return m, m.setStatus("Nothing to copy")
		}
		return m, commands.CopyText(agendaText(m.items.All()), "day")

	case "?":
		m.help.Toggle()
	}
	return m, nil
}

// handleFormKeys handles keys while the item form is open.
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m, m.submit()
	case "esc":
		m.cancel()
		return m, nil
	}

	if m.selectAll {
		m.selectAll = false
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace, tea.KeyDelete:
			// Typing over a selection replaces it.
			m.form.SetValue("")
			if msg.Type == tea.KeyBackspace || msg.Type == tea.KeyDelete {
				m.lifecycle.SetValue("")
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	m.lifecycle.SetValue(m.form.Value())
	return m, cmd
}

// handleHelpKeys scrolls or closes the help overlay.
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q", "enter":
		m.help.Hide()
	case "j", "down":
		m.scrollHelp(1)
	case "k", "up":
		m.scrollHelp(-1)
	case "pgdown", " ":
		m.scrollHelp(m.height / 2)
	case "pgup":
		m.scrollHelp(-m.height / 2)
	}
	return m, nil
}

func (m *Model) scrollHelp(delta int) {
	m.help.Scroll(delta, len(splitContent(m.helpContent())), m.screenHeight())
}
