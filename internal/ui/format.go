package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/timeblock/internal/item"
	"github.com/javiermolinar/timeblock/internal/timeline"
)

// Stats holds aggregated statistics for a day of items.
type Stats struct {
	Blocks        int
	BookedMinutes int // union of all item ranges
	LongestFree   int // longest gap between 00:00 and 24:00
}

// FreeMinutes returns the unbooked part of the day.
func (s Stats) FreeMinutes() int {
	return 24*60 - s.BookedMinutes
}

// ComputeStats aggregates items sorted by start.
func ComputeStats(items []item.Item) Stats {
	stats := Stats{Blocks: len(items)}

	cursor := item.DayStart()
	for _, it := range items {
		if it.Start.After(cursor) {
			stats.LongestFree = max(stats.LongestFree, minutesBetween(cursor, it.Start))
			cursor = it.Start
		}
		if it.End.After(cursor) {
			stats.BookedMinutes += minutesBetween(cursor, it.End)
			cursor = it.End
		}
	}
	stats.LongestFree = max(stats.LongestFree, minutesBetween(cursor, item.DayEnd()))
	return stats
}

func minutesBetween(from, to time.Time) int {
	return int(to.Sub(from) / time.Minute)
}

// PrintOpts configures agenda printing behavior.
type PrintOpts struct {
	Now          time.Time // marks the item in progress
	ShowIDs      bool
	ShowDuration bool
	Width        int // terminal width (0 = detect)
}

// Row layout: "  ▶ 09:00-11:00  " plus "  2h30m" when durations are shown.
const (
	rowOverhead      = 17
	durationOverhead = 8
	idOverhead       = 16
	minContentWidth  = 10
)

// contentWidth returns the space left for item content.
func (o PrintOpts) contentWidth() int {
	width := o.Width
	if width <= 0 {
		width = termWidth()
	}
	overhead := rowOverhead
	if o.ShowDuration {
		overhead += durationOverhead
	}
	if o.ShowIDs {
		overhead += idOverhead
	}
	return max(width-overhead, minContentWidth)
}

// PrintAgenda writes the day's items followed by a stats line.
func PrintAgenda(w io.Writer, items []item.Item, opts PrintOpts) {
	fmt.Fprintln(w, formatHeader("Today"))
	if len(items) == 0 {
		fmt.Fprintln(w, formatMuted("  No items scheduled."))
		return
	}

	now := item.OnBaseDay(opts.Now)
	width := opts.contentWidth()
	for _, it := range items {
		printItemRow(w, it, opts, now, width)
	}

	fmt.Fprintln(w)
	PrintStats(w, ComputeStats(items))
}

func printItemRow(w io.Writer, it item.Item, opts PrintOpts, now time.Time, width int) {
	current := !opts.Now.IsZero() && it.Contains(now)

	symbol := " "
	if current {
		symbol = "▶"
	}

	clock := formatClock(fmt.Sprintf("%s-%s", item.ClockLabel(it.Start), item.ClockLabel(it.End)))
	content := ansi.Truncate(it.Content, width, "…")
	if current {
		content = formatCurrent(content)
	}

	row := fmt.Sprintf("  %s %s  %s", symbol, clock, content)
	if opts.ShowDuration {
		pad := max(width-ansi.StringWidth(it.Content), 0)
		row += fmt.Sprintf("%*s  %s", pad, "", formatMuted(FormatDuration(int(it.Duration()/time.Minute))))
	}
	if opts.ShowIDs {
		row += "  " + formatMuted(fmt.Sprintf("#%d", it.ID))
	}
	fmt.Fprintln(w, row)
}

// PrintStats prints the stats summary line.
func PrintStats(w io.Writer, stats Stats) {
	fmt.Fprintf(w, "%s | Free: %s | Longest gap: %s | Blocks: %d\n",
		formatSuccess("Booked: "+FormatDuration(stats.BookedMinutes)),
		FormatDuration(stats.FreeMinutes()),
		FormatDuration(stats.LongestFree),
		stats.Blocks)
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// loadDay opens the store and returns the day's items, seeding the
// defaults into an empty store the way the timeline does on start.
func (a *App) loadDay(ctx context.Context) (*item.Collection, error) {
	if err := a.ensureStore(); err != nil {
		return nil, err
	}
	res := timeline.Bootstrap(ctx, a.store)
	if res.Fallback {
		return nil, fmt.Errorf("loading items: %w", res.LoadErr)
	}
	if len(res.SaveErrs) > 0 {
		return nil, fmt.Errorf("seeding default items: %w", res.SaveErrs[0])
	}
	return item.NewCollection(res.Items...), nil
}
