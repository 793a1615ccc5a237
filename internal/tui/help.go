package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `
# timeblock

Plan the day on a single timeline. Times snap to 15 minutes.

## Timeline

| key | action |
|-----|--------|
| h / l | move the cursor |
| H / L | pan one hour |
| + / - | zoom in / out |
| n | jump to now |
| enter | edit the item under the cursor, or add one |
| tab / shift+tab | select the next / previous item |
| esc | clear the selection |
| shift+left / shift+right | move the selected item |
| < / > | shorten / extend the selected item |
| x | remove the selected item |
| y | copy the day to the clipboard |
| q | quit |

## Form

| key | action |
|-----|--------|
| enter | add or update |
| esc | cancel |

## Mouse

Double click an item to rename it, or empty space to add one.
Drag an item to move it. The wheel zooms.

## Help

| key | action |
|-----|--------|
| j / k | scroll |
| ? / esc | close |
`

var (
	helpRendererMu sync.Mutex
	// Renderers are cached by wrap width and style; building one is slow.
	helpRenderers = map[string]*glamour.TermRenderer{}
)

// renderHelp renders the help screen for the given wrap width.
func renderHelp(width int, light bool) string {
	if width < 20 {
		width = 20
	}
	style := "dark"
	if light {
		style = "light"
	}
	key := style + ":" + strconv.Itoa(width)

	helpRendererMu.Lock()
	r := helpRenderers[key]
	helpRendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			// WithAutoStyle queries the terminal and can block.
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return strings.TrimSpace(helpMarkdown)
		}
		helpRendererMu.Lock()
		if existing := helpRenderers[key]; existing != nil {
			r = existing
		} else {
			helpRenderers[key] = rr
			r = rr
		}
		helpRendererMu.Unlock()
	}

	out, err := r.Render(helpMarkdown)
	if err != nil {
		return strings.TrimSpace(helpMarkdown)
	}
	return strings.TrimRight(out, "\n")
}
