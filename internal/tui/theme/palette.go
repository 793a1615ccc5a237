package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Item        lipgloss.Color
	Pending     lipgloss.Color
	Current     lipgloss.Color
	Warning     lipgloss.Color

	ItemBg     lipgloss.Color
	ItemBgAlt  lipgloss.Color // adjacent items alternate shades
	ItemPastBg lipgloss.Color // items that ended before now
	PendingBg  lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color
	TextOnItem    lipgloss.Color
	TextOnPending lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	isLight := IsLight(t)
	itemBgHex := itemBaseBg(t.Item, t.Bg, isLight)
	pendingBgHex := itemBaseBg(t.Pending, t.Bg, isLight)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Item:        lipgloss.Color(t.Item),
		Pending:     lipgloss.Color(t.Pending),
		Current:     lipgloss.Color(t.Current),
		Warning:     lipgloss.Color(t.Warning),

		ItemBg:     lipgloss.Color(itemBgHex),
		ItemBgAlt:  lipgloss.Color(alternateShade(itemBgHex, isLight)),
		ItemPastBg: lipgloss.Color(itemMutedBg(t.Item, t.Bg, isLight)),
		PendingBg:  lipgloss.Color(pendingBgHex),

		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),
		TextOnItem:    lipgloss.Color(chooseTextColor(itemBgHex, t.Fg, t.Bg)),
		TextOnPending: lipgloss.Color(chooseTextColor(pendingBgHex, t.Fg, t.Bg)),
	}
}

// IsLight reports whether the theme has a light background.
func IsLight(t *Theme) bool {
	return luminance(t.Bg) > 0.55
}

func itemBaseBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.75)
	}
	return darkenColor(accent)
}

func itemMutedBg(accent, bg string, isLight bool) string {
	if isLight {
		return blendColors(accent, bg, 0.88)
	}
	return blendColors(darkenColor(accent), bg, 0.6)
}

// darkenColor halves each channel with a floor so blocks stay visible on
// dark backgrounds. Invalid colors are returned unchanged.
func darkenColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	const floor = 40
	r, g, b := c.RGB255()
	return fromRGB255(max(int(r)/2, floor), max(int(g)/2, floor), max(int(b)/2, floor))
}

// alternateShade nudges hex away from the background for adjacent items.
func alternateShade(hex string, isLight bool) string {
	if isLight {
		return blendColors(hex, "#000000", 0.10)
	}
	return blendColors(hex, "#ffffff", 0.30)
}

func fromRGB255(r, g, b int) string {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hex()
}

// blendColors mixes b into a by ratio in RGB space. When either color is
// invalid a is returned.
func blendColors(a, b string, ratio float64) string {
	ca, errA := colorful.Hex(a)
	cb, errB := colorful.Hex(b)
	if errA != nil || errB != nil {
		return a
	}
	ratio = min(max(ratio, 0), 1)
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}

// chooseTextColor returns whichever candidate reads better on bg.
func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

// contrastRatio is the WCAG contrast between two colors.
func contrastRatio(a, b string) float64 {
	hi, lo := luminance(a), luminance(b)
	if hi < lo {
		hi, lo = lo, hi
	}
	return (hi + 0.05) / (lo + 0.05)
}

// luminance is the WCAG relative luminance; invalid colors count as black.
func luminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
