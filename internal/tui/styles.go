// Package tui provides the terminal user interface for timeblock.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/timeblock/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	TitleStyle lipgloss.Style
	MutedStyle lipgloss.Style

	// Axis
	MajorLabelStyle lipgloss.Style
	MinorLabelStyle lipgloss.Style
	TickStyle       lipgloss.Style

	// Lane
	LaneStyle         lipgloss.Style
	ItemStyle         lipgloss.Style
	ItemAltStyle      lipgloss.Style // Alternate shade for adjacent items
	ItemPastStyle     lipgloss.Style
	ItemSelectedStyle lipgloss.Style
	ItemDraggedStyle  lipgloss.Style
	PendingStyle      lipgloss.Style
	NowStyle          lipgloss.Style
	CursorStyle       lipgloss.Style

	// Form
	InputStyle          lipgloss.Style
	InputFocusedStyle   lipgloss.Style
	InputSelectedStyle  lipgloss.Style
	PlaceholderStyle    lipgloss.Style
	ButtonStyle         lipgloss.Style
	ButtonDisabledStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	OverlayBg lipgloss.Color
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	s.MutedStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.MajorLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)

	s.MinorLabelStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.TickStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.LaneStyle = lipgloss.NewStyle().
		Background(p.BgHighlight).
		Foreground(p.FgMuted)

	s.ItemStyle = lipgloss.NewStyle().
		Background(p.ItemBg).
		Foreground(p.TextOnItem).
		Bold(true)

	s.ItemAltStyle = s.ItemStyle.
		Background(p.ItemBgAlt)

	s.ItemPastStyle = lipgloss.NewStyle().
		Background(p.ItemPastBg).
		Foreground(p.Fg)

	s.ItemSelectedStyle = lipgloss.NewStyle().
		Background(p.BgSelection).
		Foreground(p.Accent).
		Bold(true)

	s.ItemDraggedStyle = lipgloss.NewStyle().
		Background(p.Accent).
		Foreground(p.TextOnAccent).
		Bold(true)

	s.PendingStyle = lipgloss.NewStyle().
		Background(p.PendingBg).
		Foreground(p.TextOnPending).
		Italic(true)

	s.NowStyle = lipgloss.NewStyle().
		Foreground(p.Current).
		Bold(true)

	s.CursorStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	s.InputStyle = lipgloss.NewStyle().
		Background(p.BgHighlight).
		Foreground(p.FgMuted)

	s.InputFocusedStyle = lipgloss.NewStyle().
		Background(p.BgHighlight).
		Foreground(p.Fg)

	s.InputSelectedStyle = lipgloss.NewStyle().
		Background(p.BgSelection).
		Foreground(p.Fg)

	s.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Italic(true)

	s.ButtonStyle = lipgloss.NewStyle().
		Background(p.Accent).
		Foreground(p.TextOnAccent).
		Bold(true).
		Padding(0, 1)

	s.ButtonDisabledStyle = lipgloss.NewStyle().
		Background(p.BgHighlight).
		Foreground(p.FgMuted).
		Padding(0, 1)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.Accent)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.OverlayBg = p.BgHighlight

	return s
}

// itemStyle picks the block style for an item in the lane.
func (s *Styles) itemStyle(alt, past, selected, dragged bool) lipgloss.Style {
	switch {
	case dragged:
		return s.ItemDraggedStyle
	case selected:
		return s.ItemSelectedStyle
	case past:
		return s.ItemPastStyle
	case alt:
		return s.ItemAltStyle
	default:
		return s.ItemStyle
	}
}
