package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timeblock/internal/dispatch"
	"github.com/javiermolinar/timeblock/internal/item"
	"github.com/javiermolinar/timeblock/internal/timeline"
	"github.com/javiermolinar/timeblock/internal/tui/commands"
)

type dragKind int

const (
	dragItem dragKind = iota + 1
	dragMarker
)

// dragState tracks a left button drag that started on the lane.
type dragState struct {
	kind    dragKind
	anchor  time.Time // time under the pointer at press
	orig    item.Item
	preview item.Item
	moved   bool
}

// handleMouseMsg routes mouse input. Presses on the timeline are taps for
// the dispatcher and may start a drag; the wheel zooms.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.help.Active() || m.loading {
		return m, nil
	}
	l := m.layout()
	col, inLane := l.column(msg.X)
	onSurface := inLane && msg.Y >= rowRuler && msg.Y <= rowCursor
	onLane := inLane && msg.Y >= rowLane && msg.Y < rowLane+laneRows
	at := m.window.TimeAt(col, l.laneWidth)
	LogMouse(msg, at, onSurface)

	switch {
	case msg.Button == tea.MouseButtonWheelUp && onSurface:
		m.zoom(0.5, at)
		return m, nil
	case msg.Button == tea.MouseButtonWheelDown && onSurface:
		m.zoom(2, at)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.Y == rowForm {
			return m.clickForm(msg.X)
		}
		if !onSurface {
			return m, nil
		}
		return m.press(col, at, onLane, l)

	case tea.MouseActionMotion:
		if m.drag == nil || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.dragTo(at)
		return m, nil

	case tea.MouseActionRelease:
		if m.drag == nil {
			return m, nil
		}
		return m, m.drop()
	}
	return m, nil
}

// press handles a left press on the timeline surface.
func (m Model) press(col int, at time.Time, onLane bool, l layout) (tea.Model, tea.Cmd) {
	props := dispatch.OnTime(at)

	// Items own their columns; the marker only catches presses on free time.
	if onLane {
		if id := m.laneOwners(l)[col]; id > 0 {
			if it, ok := m.items.Get(id); ok {
				props = dispatch.OnItem(id, at)
				m.selected = id
				m.drag = &dragState{kind: dragItem, anchor: at, orig: it, preview: it}
			}
		} else if col == m.markerColumn(l) {
			m.drag = &dragState{kind: dragMarker, anchor: at}
		}
	}
	if !props.HasItem {
		m.selected = 0
	}
	m.cursor = m.clampCursor(at)

	if !m.config.Timeline.DoubleTap {
		return m, nil
	}
	res := m.dispatcher.Tap(m.now(), props)
	var cmds []tea.Cmd
	if res.ArmReset {
		cmds = append(cmds, commands.TapReset(m.dispatcher.Window(), res.Gen))
	}
	if res.Fired() {
		m.drag = nil
		cmds = append(cmds, m.activate(res.Activation, "tap"))
	}
	return m, tea.Batch(cmds...)
}

// dragTo follows the pointer during a drag.
func (m *Model) dragTo(at time.Time) {
	switch m.drag.kind {
	case dragMarker:
		// The now marker is not draggable; put it back immediately.
		restored, overridden := m.marker.TimeChange(timeline.NowMarkerID, at, m.now())
		if overridden {
			LogMarkerSnapBack(at, restored)
		}
	case dragItem:
		orig := m.drag.orig
		start := item.Snap(orig.Start.Add(at.Sub(m.drag.anchor)))
		preview := orig.Shift(start.Sub(orig.Start)).FitDay()
		m.drag.preview = preview
		m.drag.moved = !preview.Start.Equal(orig.Start)
	}
}

// drop ends a drag. A moved item goes through the adapter; a rejected
// move leaves the collection as it was, which restores the block.
func (m *Model) drop() tea.Cmd {
	d := m.drag
	m.drag = nil
	if d.kind != dragItem || !d.moved {
		return nil
	}
	change, err := m.adapter.Update(d.preview)
	if err != nil {
		LogError("drag", err)
		return m.setError(rejectMessage(err))
	}
	m.persist(change)
	m.cursor = m.clampCursor(change.Item.Start)
	return nil
}

// clickForm handles a press on the form row buttons.
func (m Model) clickForm(x int) (tea.Model, tea.Cmd) {
	if !m.lifecycle.Active() {
		return m, nil
	}
	submit, cancel := m.formButtons()
	switch {
	case submit.contains(x):
		return m, m.submit()
	case cancel.contains(x):
		m.cancel()
	}
	return m, nil
}

// span is a horizontal screen range [from, to).
type span struct {
	from, to int
}

func (s span) contains(x int) bool {
	return x >= s.from && x < s.to
}
