package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func screen(width, height int) string {
	row := strings.Repeat(".", width)
	return strings.Repeat(row+"\n", height-1) + row
}

func numbered(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %02d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestHelpOverlayToggle(t *testing.T) {
	h := newHelpOverlay(lipgloss.Color("#0c0c0c"))
	if h.Active() {
		t.Fatal("expected overlay to start closed")
	}
	h.Toggle()
	if !h.Active() {
		t.Fatal("expected overlay to open on toggle")
	}
	h.Scroll(3, 40, 12)
	h.Hide()
	if h.Active() || h.offset != 0 {
		t.Fatalf("Hide() left active=%v offset=%d", h.Active(), h.offset)
	}
}

func TestHelpOverlayClosedReturnsBase(t *testing.T) {
	h := newHelpOverlay(lipgloss.Color("#0c0c0c"))
	base := "alpha\nbeta"
	if got := h.Render(base, 10, 2, "content"); got != base {
		t.Fatalf("Render() = %q, want base unchanged", got)
	}
}

func TestHelpOverlayCoversCenter(t *testing.T) {
	h := newHelpOverlay(lipgloss.Color("#0c0c0c"))
	h.Toggle()

	width, height := 40, 12
	got := h.Render(screen(width, height), width, height, "KEYS")
	lines := strings.Split(got, "\n")
	if len(lines) != height {
		t.Fatalf("got %d lines, want %d", len(lines), height)
	}

	box := placeOverlay(4, 1, width, height)
	bgSeq := ansi.Style{}.BackgroundColor(ansi.HexColor("#0c0c0c")).String()
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Fatalf("line %d width = %d, want %d", i, w, width)
		}
		inBox := i >= box.top && i < box.top+box.height
		if strings.Contains(line, bgSeq) != inBox {
			t.Fatalf("line %d background = %v, want %v", i, !inBox, inBox)
		}
		plain := ansi.Strip(line)
		if inBox && (!strings.HasPrefix(plain, ".") || !strings.HasSuffix(plain, ".")) {
			t.Fatalf("line %d should keep the timeline on both sides: %q", i, plain)
		}
	}
	if !strings.Contains(ansi.Strip(got), "KEYS") {
		t.Fatal("content not drawn")
	}
}

func TestHelpOverlayGrowsWithContent(t *testing.T) {
	h := newHelpOverlay(lipgloss.Color("#0c0c0c"))
	h.Toggle()

	content := strings.Repeat("k", 90)
	got := h.Render(screen(100, 40), 100, 40, content)
	if !strings.Contains(ansi.Strip(got), content) {
		t.Fatal("expected wide content to be shown in full")
	}
}

func TestHelpOverlayScrolls(t *testing.T) {
	h := newHelpOverlay(lipgloss.Color("#0c0c0c"))
	h.Toggle()

	const total, height = 30, 12
	content := numbered(total)
	rows := overlayRows(total, height)
	if rows != height-2*overlayPadY {
		t.Fatalf("overlayRows() = %d, want %d", rows, height-2*overlayPadY)
	}

	first := ansi.Strip(h.Render(screen(50, height), 50, height, content))
	if !strings.Contains(first, "line 01") || strings.Contains(first, "line 11") {
		t.Fatalf("initial window wrong:\n%s", first)
	}
	if !strings.Contains(first, "1-10/30") {
		t.Fatalf("missing scroll hint:\n%s", first)
	}

	h.Scroll(5, total, height)
	scrolled := ansi.Strip(h.Render(screen(50, height), 50, height, content))
	if strings.Contains(scrolled, "line 05") || !strings.Contains(scrolled, "line 06") || !strings.Contains(scrolled, "line 15") {
		t.Fatalf("scrolled window wrong:\n%s", scrolled)
	}

	h.Scroll(100, total, height)
	if h.offset != total-rows {
		t.Errorf("offset = %d, want %d", h.offset, total-rows)
	}
	h.Scroll(-100, total, height)
	if h.offset != 0 {
		t.Errorf("offset = %d, want 0", h.offset)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{5, 8, 6, 6},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
