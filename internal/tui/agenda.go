package tui

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/timeblock/internal/item"
)

// agendaText renders items as plain text, one per line, for the clipboard.
func agendaText(items []item.Item) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "%s-%s  %s\n", item.ClockLabel(it.Start), item.ClockLabel(it.End), it.Content)
	}
	return b.String()
}
