package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	overlayMinWidth  = 30
	overlayMinHeight = 8
	overlayPadX      = 2
	overlayPadY      = 1
)

// helpOverlay is an opaque, scrollable box centered over the timeline.
type helpOverlay struct {
	open   bool
	offset int // first visible content line
	bg     lipgloss.Color
}

func newHelpOverlay(bg lipgloss.Color) helpOverlay {
	return helpOverlay{bg: bg}
}

// Toggle flips the overlay visibility.
func (h *helpOverlay) Toggle() {
	h.open = !h.open
	h.offset = 0
}

// Hide closes the overlay.
func (h *helpOverlay) Hide() {
	h.open = false
	h.offset = 0
}

// Active reports whether the overlay is visible.
func (h helpOverlay) Active() bool {
	return h.open
}

// Scroll moves the visible window by delta lines for content of total
// lines shown in a screen of the given height.
func (h *helpOverlay) Scroll(delta, total, height int) {
	rows := overlayRows(total, height)
	h.offset = clamp(h.offset+delta, 0, max(total-rows, 0))
}

// overlayRows is the number of content lines that fit.
func overlayRows(total, height int) int {
	boxH := clamp(total+2*overlayPadY, overlayMinHeight, height)
	return max(boxH-2*overlayPadY, 1)
}

// overlayBox is the placement of the overlay on screen.
type overlayBox struct {
	top, left, width, height int
}

func placeOverlay(contentW, contentH, width, height int) overlayBox {
	b := overlayBox{
		width:  clamp(contentW+2*overlayPadX, overlayMinWidth, width),
		height: clamp(contentH+2*overlayPadY, overlayMinHeight, height),
	}
	b.top = max((height-b.height)/2, 0)
	b.left = max((width-b.width)/2, 0)
	return b
}

// Render draws the overlay with content on top of base.
func (h helpOverlay) Render(base string, width, height int, content string) string {
	if !h.open || width <= 0 || height <= 0 {
		return base
	}

	lines := splitContent(content)
	contentW := 0
	for _, line := range lines {
		contentW = max(contentW, lipgloss.Width(line))
	}
	box := placeOverlay(contentW, len(lines), width, height)
	rows := box.height - 2*overlayPadY
	offset := clamp(h.offset, 0, max(len(lines)-rows, 0))

	bgSeq := ansi.Style{}.BackgroundColor(ansi.HexColor(string(h.bg))).String()
	innerW := box.width - 2*overlayPadX
	textW := min(contentW, innerW)
	indent := overlayPadX + (innerW-textW)/2

	baseLines := fitBase(base, width, height)
	for r := 0; r < box.height; r++ {
		var inner string
		switch i := r - overlayPadY + offset; {
		case r >= overlayPadY && r < overlayPadY+rows && i < len(lines):
			inner = strings.Repeat(" ", indent) + fitLine(lines[i], textW, bgSeq)
		case r == box.height-1 && len(lines) > rows:
			inner = scrollHint(offset, rows, len(lines), box.width-overlayPadX)
		}
		inner = padRight(inner, box.width)

		row := box.top + r
		baseLine := baseLines[row]
		baseLines[row] = ansi.Cut(baseLine, 0, box.left) +
			bgSeq + inner + ansi.ResetStyle +
			ansi.Cut(baseLine, box.left+box.width, width)
	}
	return strings.Join(baseLines, "\n")
}

func scrollHint(offset, rows, total, width int) string {
	hint := fmt.Sprintf("%d-%d/%d j/k", offset+1, offset+rows, total)
	return strings.Repeat(" ", max(width-len(hint), 0)) + hint
}

func splitContent(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(content, "\n"), "\n")
}

// fitLine cuts or pads line to width and re-applies the overlay background
// after every reset inside it.
func fitLine(line string, width int, bgSeq string) string {
	if lipgloss.Width(line) > width {
		line = ansi.Cut(line, 0, width)
	}
	line = padRight(line, width)
	if bgSeq == "" {
		return line
	}
	for _, reset := range []string{ansi.ResetStyle, "\x1b[0m", "\x1b[49m"} {
		line = strings.ReplaceAll(line, reset, reset+bgSeq)
	}
	return line
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// fitBase returns exactly height lines of exactly width columns.
func fitBase(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Cut(line, 0, width)
			continue
		}
		lines[i] = padRight(line, width)
	}
	return lines
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return hi
	}
	return max(lo, min(v, hi))
}
