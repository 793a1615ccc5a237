package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timeblock/internal/dispatch"
	"github.com/javiermolinar/timeblock/internal/item"
	"github.com/javiermolinar/timeblock/internal/lifecycle"
)

// clampCursor keeps the cursor on a snap step inside the day.
func (m Model) clampCursor(t time.Time) time.Time {
	t = item.Snap(t)
	lo := item.DayStart()
	hi := item.DayEnd().Add(-item.SnapInterval)
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}

// moveCursor moves the cursor by steps snap intervals and pans the window
// when it leaves the visible range.
func (m *Model) moveCursor(steps int) {
	m.cursor = m.clampCursor(m.cursor.Add(item.SnapInterval * time.Duration(steps)))
	m.keepCursorVisible()
	m.selected = m.itemAtCursor()
}

func (m *Model) keepCursorVisible() {
	opts := m.adapter.Options()
	switch {
	case m.cursor.Before(m.window.Start):
		m.window = m.window.Pan(m.cursor.Sub(m.window.Start), opts)
	case !m.cursor.Before(m.window.End):
		m.window = m.window.Pan(m.cursor.Add(item.SnapInterval).Sub(m.window.End), opts)
	}
}

// itemAtCursor returns the id of the item under the cursor, or 0.
func (m Model) itemAtCursor() int64 {
	if it, ok := m.items.At(m.cursor); ok {
		return it.ID
	}
	return 0
}

// cursorProps is the double click payload for the cursor position.
func (m Model) cursorProps() dispatch.Props {
	if id := m.itemAtCursor(); id != 0 {
		return dispatch.OnItem(id, m.cursor)
	}
	return dispatch.OnTime(m.cursor)
}

// activate runs a resolved double click through the lifecycle and opens
// the form.
func (m *Model) activate(a dispatch.Activation, source string) tea.Cmd {
	LogActivation(a, source)
	from := m.lifecycle.Phase()
	switch a.Kind {
	case dispatch.KindEdit:
		if !m.lifecycle.BeginEdit(a.ItemID) {
			return nil
		}
		m.selected = a.ItemID
	case dispatch.KindCreate:
		w := m.lifecycle.BeginCreate(a.Time)
		m.cursor = m.clampCursor(w.Start)
		m.keepCursorVisible()
		m.selected = 0
	default:
		return nil
	}
	LogPhaseChange(from, m.lifecycle.Phase(), source)
	return m.syncForm()
}

// syncForm copies the lifecycle form surface into the text input.
func (m *Model) syncForm() tea.Cmd {
	f := m.lifecycle.Form()
	m.form.Placeholder = f.Placeholder
	m.form.SetValue(f.Value)
	m.form.CursorEnd()
	m.selectAll = f.SelectAll
	if !f.Enabled {
		m.form.Blur()
		return nil
	}
	return m.form.Focus()
}

// submit commits the form. Validation errors keep the form open.
func (m *Model) submit() tea.Cmd {
	from := m.lifecycle.Phase()
	editing := from == lifecycle.PhaseEditing
	change, err := m.lifecycle.Submit(m.form.Value())
	if errors.Is(err, item.ErrEmptyContent) {
		return m.setError("Item name cannot be empty")
	}
	LogPhaseChange(from, m.lifecycle.Phase(), "submit")
	if err != nil {
		LogError("submit", err)
		m.syncForm()
		return m.setError(fmt.Sprintf("Error: %v", err))
	}
	m.syncForm()
	m.persist(change)
	m.selected = change.Item.ID
	if editing {
		return m.setStatus(fmt.Sprintf("Renamed to %q", change.Item.Content))
	}
	return m.setStatus(fmt.Sprintf("Added %q at %s", change.Item.Content, item.ClockLabel(change.Item.Start)))
}

// cancel closes the form without changes.
func (m *Model) cancel() {
	from := m.lifecycle.Phase()
	m.lifecycle.Cancel()
	LogPhaseChange(from, m.lifecycle.Phase(), "cancel")
	m.syncForm()
}

// selectNext selects the next (dir > 0) or previous item by start time and
// moves the cursor to it.
func (m *Model) selectNext(dir int) {
	items := m.items.All()
	if len(items) == 0 {
		return
	}
	idx := -1
	for i, it := range items {
		if it.ID == m.selected {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && dir > 0:
		idx = 0
	case idx < 0:
		idx = len(items) - 1
	default:
		idx = (idx + dir + len(items)) % len(items)
	}
	next := items[idx]
	m.selected = next.ID
	m.cursor = m.clampCursor(next.Start)
	m.keepCursorVisible()
}

// targetID is the item keyboard edits apply to.
func (m Model) targetID() int64 {
	if m.selected != 0 {
		return m.selected
	}
	return m.itemAtCursor()
}

// shiftSelected moves the selected item by steps snap intervals.
func (m *Model) shiftSelected(steps int) tea.Cmd {
	id := m.targetID()
	if id == 0 {
		return nil
	}
	change, err := m.adapter.Move(id, steps)
	if err != nil {
		LogError("move", err)
		return m.setError(rejectMessage(err))
	}
	m.persist(change)
	m.selected = id
	m.cursor = m.clampCursor(change.Item.Start)
	m.keepCursorVisible()
	return nil
}

// resizeSelected moves the end of the selected item by steps snap intervals.
func (m *Model) resizeSelected(steps int) tea.Cmd {
	id := m.targetID()
	if id == 0 {
		return nil
	}
	change, err := m.adapter.Resize(id, steps)
	if err != nil {
		LogError("resize", err)
		return m.setError(rejectMessage(err))
	}
	m.persist(change)
	m.selected = id
	return nil
}

// removeSelected deletes the selected item.
func (m *Model) removeSelected() tea.Cmd {
	id := m.targetID()
	if id == 0 {
		return nil
	}
	change, err := m.adapter.Remove(id)
	if err != nil {
		LogError("remove", err)
		return m.setError(rejectMessage(err))
	}
	from := m.lifecycle.Phase()
	m.lifecycle.Forget(id)
	if from != m.lifecycle.Phase() {
		LogPhaseChange(from, m.lifecycle.Phase(), "removed")
		m.syncForm()
	}
	m.persist(change)
	m.selected = m.itemAtCursor()
	return m.setStatus(fmt.Sprintf("Removed %q", change.Item.Content))
}

func rejectMessage(err error) string {
	switch {
	case errors.Is(err, item.ErrEndBeforeStart):
		return "An item cannot end before it starts"
	case errors.Is(err, item.ErrNotEditable):
		return "This item cannot be changed"
	case errors.Is(err, item.ErrItemNotFound):
		return "Item no longer exists"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// zoom scales the window around the cursor.
func (m *Model) zoom(factor float64, center time.Time) {
	m.window = m.window.Zoom(factor, center, m.adapter.Options())
	LogWindow(m.window, "zoom")
}

// pan moves the window and keeps the cursor inside it.
func (m *Model) pan(d time.Duration) {
	m.window = m.window.Pan(d, m.adapter.Options())
	switch {
	case m.cursor.Before(m.window.Start):
		m.cursor = m.clampCursor(m.window.Start)
	case !m.cursor.Before(m.window.End):
		m.cursor = m.clampCursor(m.window.End.Add(-item.SnapInterval))
	}
	m.selected = m.itemAtCursor()
	LogWindow(m.window, "pan")
}
