package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/timeblock/internal/item"
	"github.com/javiermolinar/timeblock/internal/lifecycle"
	"github.com/javiermolinar/timeblock/internal/tui/theme"
)

const (
	nowGlyph    = "│"
	nowHead     = "▼"
	cursorGlyph = "▲"
)

// View renders the timeline, the form and the status lines.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	l := m.layout()
	pad := strings.Repeat(" ", l.laneX)

	lines := make([]string, 0, rowHelp+1)
	lines = append(lines, m.renderTitle())
	lines = append(lines, "")
	lines = append(lines, pad+m.renderRuler(l))
	lines = append(lines, pad+m.renderTicks(l))
	owners := m.laneOwners(l)
	for r := 0; r < laneRows; r++ {
		lines = append(lines, pad+m.renderLaneRow(l, owners, r == laneRows/2))
	}
	lines = append(lines, pad+m.renderCursorRow(l))
	lines = append(lines, "")
	formLine, _, _ := m.renderForm()
	lines = append(lines, formLine)
	lines = append(lines, pad+m.renderStatus(l))
	lines = append(lines, pad+m.renderHints(l))

	out := strings.Join(lines, "\n")
	if m.help.Active() {
		out = m.help.Render(out, m.width, max(m.screenHeight(), len(lines)), m.helpContent())
	}
	return out
}

func (m Model) helpContent() string {
	return renderHelp(min(m.width-4, 70), theme.IsLight(m.theme))
}

// screenHeight is the terminal height, or the timeline height before the
// first resize.
func (m Model) screenHeight() int {
	if m.height > 0 {
		return m.height
	}
	return rowHelp + 1
}

func (m Model) renderTitle() string {
	left := " " + m.styles.TitleStyle.Render("timeblock") + "  " +
		m.styles.MutedStyle.Render(fmt.Sprintf("%s-%s", item.ClockLabel(m.window.Start), item.ClockLabel(m.window.End)))
	right := m.styles.NowStyle.Render("Now "+item.ClockLabel(m.marker.At())) + " "
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return ansi.Truncate(left, m.width, "")
	}
	return left + strings.Repeat(" ", gap) + right
}

// hourStep returns how many hours apart labels are drawn so they do not
// collide.
func (m Model) hourStep(l layout) int {
	opts := m.adapter.Options()
	labelW := len(opts.HourLabel(item.At(12, 0), true)) + 1
	hours := m.window.Span().Hours()
	if hours <= 0 {
		return 1
	}
	perHour := float64(l.laneWidth) / hours
	for _, step := range []int{1, 2, 3, 6, 12} {
		if perHour*float64(step) >= float64(labelW) {
			return step
		}
	}
	return 24
}

func (m Model) renderRuler(l layout) string {
	opts := m.adapter.Options()
	step := m.hourStep(l)
	var b strings.Builder
	pos := 0
	for h := 0; h <= 24; h += step {
		t := item.At(h, 0)
		if t.Before(m.window.Start) || t.After(m.window.End) {
			continue
		}
		col := m.window.ColumnOf(t, l.laneWidth)
		major := h%6 == 0
		label := opts.HourLabel(t, major)
		if col < pos || col+len(label) > l.laneWidth {
			continue
		}
		b.WriteString(strings.Repeat(" ", col-pos))
		if major {
			b.WriteString(m.styles.MajorLabelStyle.Render(label))
		} else {
			b.WriteString(m.styles.MinorLabelStyle.Render(label))
		}
		pos = col + len(label) + 1
		if pos <= l.laneWidth {
			b.WriteString(" ")
		}
	}
	if pos < l.laneWidth {
		b.WriteString(strings.Repeat(" ", l.laneWidth-pos))
	}
	return b.String()
}

func (m Model) renderTicks(l layout) string {
	cells := make([]string, l.laneWidth)
	for i := range cells {
		cells[i] = "─"
	}
	step := m.hourStep(l)
	for h := 0; h <= 24; h++ {
		col := m.window.ColumnOf(item.At(h, 0), l.laneWidth)
		if col < 0 || col >= l.laneWidth {
			continue
		}
		if h%step == 0 {
			cells[col] = "┬"
		} else {
			cells[col] = "┴"
		}
	}
	col := m.markerColumn(l)
	if col < 0 {
		return m.styles.TickStyle.Render(strings.Join(cells, ""))
	}
	left := m.styles.TickStyle.Render(strings.Join(cells[:col], ""))
	right := m.styles.TickStyle.Render(strings.Join(cells[col+1:], ""))
	return left + m.styles.NowStyle.Render(nowHead) + right
}

// markerColumn returns the lane column of the now marker, or -1 when it
// is outside the window.
func (m Model) markerColumn(l layout) int {
	at := m.marker.At()
	if !m.window.Contains(at) {
		return -1
	}
	col := m.window.ColumnOf(at, l.laneWidth)
	if col < 0 || col >= l.laneWidth {
		return -1
	}
	return col
}

// laneCell is the content key of one lane column in one row.
type laneCell struct {
	owner  int64
	marker bool
}

func (m Model) renderLaneRow(l layout, owners []int64, labelRow bool) string {
	markerCol := m.markerColumn(l)
	cells := make([]laneCell, l.laneWidth)
	for c, owner := range owners {
		cells[c] = laneCell{owner: owner}
		// Labels are not split by the marker line.
		if c == markerCol && (!labelRow || owner == ownerNone) {
			cells[c].marker = true
		}
	}

	items := m.displayItems()
	index := make(map[int64]int, len(items))
	for i, it := range items {
		index[it.ID] = i
	}

	var b strings.Builder
	labeled := make(map[int64]bool)
	for start := 0; start < len(cells); {
		end := start + 1
		for end < len(cells) && cells[end] == cells[start] {
			end++
		}
		cell := cells[start]
		width := end - start
		style := m.cellStyle(cell.owner, items, index)

		var text string
		switch {
		case cell.marker:
			style = m.styles.NowStyle.Background(style.GetBackground())
			text = strings.Repeat(nowGlyph, width)
		case labelRow && cell.owner != ownerNone && !labeled[cell.owner]:
			labeled[cell.owner] = true
			text = fitText(" "+m.ownerLabel(cell.owner, items, index), width)
		default:
			text = strings.Repeat(" ", width)
		}
		b.WriteString(style.Render(text))
		start = end
	}
	return b.String()
}

func (m Model) cellStyle(owner int64, items []item.Item, index map[int64]int) lipgloss.Style {
	switch owner {
	case ownerNone:
		return m.styles.LaneStyle
	case ownerPending:
		return m.styles.PendingStyle
	}
	i, ok := index[owner]
	if !ok {
		return m.styles.LaneStyle
	}
	it := items[i]
	st := m.lifecycle.State()
	selected := owner == m.selected || (st.Phase == lifecycle.PhaseEditing && st.EditingID == owner)
	dragged := m.drag != nil && m.drag.kind == dragItem && m.drag.moved && m.drag.orig.ID == owner
	past := !it.End.After(m.marker.At())
	return m.styles.itemStyle(i%2 == 1, past, selected, dragged)
}

func (m Model) ownerLabel(owner int64, items []item.Item, index map[int64]int) string {
	if owner == ownerPending {
		if v := strings.TrimSpace(m.form.Value()); v != "" {
			return v
		}
		return "New item"
	}
	if i, ok := index[owner]; ok {
		return items[i].Content
	}
	return ""
}

// fitText truncates or pads s to exactly width cells.
func fitText(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func (m Model) renderCursorRow(l layout) string {
	col := m.window.ColumnOf(m.cursor, l.laneWidth)
	if col < 0 || col >= l.laneWidth {
		return ""
	}
	label := cursorGlyph + " " + item.ClockLabel(m.cursor)
	detail := ""
	if it, ok := m.items.Get(m.targetID()); ok {
		detail = fmt.Sprintf("  %s %s-%s", it.Content, item.ClockLabel(it.Start), item.ClockLabel(it.End))
	}
	line := strings.Repeat(" ", col) + m.styles.CursorStyle.Render(label) + m.styles.MutedStyle.Render(detail)
	return ansi.Truncate(line, l.laneWidth, "…")
}

// renderForm renders the form row and reports where its buttons are.
func (m Model) renderForm() (string, span, span) {
	f := m.lifecycle.Form()
	l := m.layout()
	inputW := m.form.Width + 2

	var input string
	switch {
	case !f.Enabled:
		input = m.styles.InputStyle.Render(fitText(" "+m.styles.PlaceholderStyle.Render(f.Placeholder), inputW))
	case m.selectAll:
		value := m.styles.InputSelectedStyle.Render(m.form.Value())
		input = m.styles.InputFocusedStyle.Render(fitText(" "+value, inputW))
	default:
		input = m.styles.InputFocusedStyle.Render(fitText(" "+m.form.View(), inputW))
	}

	submitLabel := f.SubmitLabel
	if submitLabel == "" {
		submitLabel = lifecycle.LabelAdd
	}
	submitStyle := m.styles.ButtonDisabledStyle
	if f.Enabled {
		submitStyle = m.styles.ButtonStyle
	}
	cancelStyle := m.styles.ButtonDisabledStyle
	if f.CancelEnabled {
		cancelStyle = m.styles.ButtonStyle
	}
	submit := submitStyle.Render(submitLabel)
	cancel := cancelStyle.Render("Cancel")

	x := l.laneX + lipgloss.Width(input) + 1
	submitSpan := span{from: x, to: x + lipgloss.Width(submit)}
	x = submitSpan.to + 1
	cancelSpan := span{from: x, to: x + lipgloss.Width(cancel)}

	line := strings.Repeat(" ", l.laneX) + input + " " + submit + " " + cancel
	return line, submitSpan, cancelSpan
}

// formButtons returns the screen ranges of the submit and cancel buttons.
func (m Model) formButtons() (span, span) {
	_, submit, cancel := m.renderForm()
	return submit, cancel
}

func (m Model) renderStatus(l layout) string {
	switch {
	case m.loading:
		return m.styles.MutedStyle.Render("Loading items...")
	case m.statusMsg == "":
		return ""
	case m.statusErr:
		return m.styles.ErrorStyle.Render(ansi.Truncate(m.statusMsg, l.laneWidth, "…"))
	default:
		return m.styles.StatusStyle.Render(ansi.Truncate(m.statusMsg, l.laneWidth, "…"))
	}
}

func (m Model) renderHints(l layout) string {
	hints := "h/l move · H/L pan · +/- zoom · enter add/edit · tab next · x remove · y copy · ? help · q quit"
	if m.lifecycle.Active() {
		hints = "enter " + strings.ToLower(m.lifecycle.Form().SubmitLabel) + " · esc cancel"
	}
	return m.styles.HelpStyle.Render(ansi.Truncate(hints, l.laneWidth, "…"))
}
