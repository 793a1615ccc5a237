package tui

import (
	"cmp"
	"slices"
	"time"

	"github.com/javiermolinar/timeblock/internal/item"
	"github.com/javiermolinar/timeblock/internal/lifecycle"
)

const (
	lanePadding = 2
	laneRows    = 3
)

// Screen rows, top to bottom.
const (
	rowTitle = iota
	rowGap
	rowRuler
	rowTicks
	rowLane // first of laneRows
)

const (
	rowCursor = rowLane + laneRows + iota
	rowGap2
	rowForm
	rowStatus
	rowHelp
)

// layout is the horizontal geometry of the timeline.
type layout struct {
	laneX     int
	laneWidth int
}

func (m Model) layout() layout {
	w := m.width - 2*lanePadding
	if w < 1 {
		w = 1
	}
	return layout{laneX: lanePadding, laneWidth: w}
}

// column maps a screen x to a lane column; ok is false outside the lane.
func (l layout) column(x int) (int, bool) {
	col := x - l.laneX
	return col, col >= 0 && col < l.laneWidth
}

// laneOwner marks what a lane column shows.
const (
	ownerNone    int64 = 0
	ownerPending int64 = -1
)

// laneOwners returns, per lane column, the id of the item drawn there.
// Items do not stack: on overlap the most recently created one is on top,
// and a pending creation window is drawn above everything.
func (m Model) laneOwners(l layout) []int64 {
	owners := make([]int64, l.laneWidth)
	items := m.displayItems()
	// Ascending id so newer items overwrite older ones.
	slices.SortFunc(items, func(a, b item.Item) int { return cmp.Compare(a.ID, b.ID) })
	for _, it := range items {
		m.paint(owners, it.Start, it.End, it.ID, l)
	}
	if st := m.lifecycle.State(); st.Phase == lifecycle.PhaseCreating && st.Pending != nil {
		m.paint(owners, st.Pending.Start, st.Pending.End, ownerPending, l)
	}
	return owners
}

func (m Model) paint(owners []int64, start, end time.Time, id int64, l layout) {
	c0 := m.window.ColumnOf(start, l.laneWidth)
	c1 := m.window.ColumnOf(end, l.laneWidth)
	if c1 <= c0 {
		c1 = c0 + 1
	}
	c0 = max(c0, 0)
	c1 = min(c1, l.laneWidth)
	for c := c0; c < c1; c++ {
		owners[c] = id
	}
}

// displayItems returns the items as drawn, with a drag preview in place of
// the dragged item.
func (m Model) displayItems() []item.Item {
	items := m.items.All()
	if m.drag == nil || m.drag.kind != dragItem || !m.drag.moved {
		return items
	}
	for i, it := range items {
		if it.ID == m.drag.preview.ID {
			items[i] = m.drag.preview
		}
	}
	return items
}
