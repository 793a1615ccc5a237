// Package timeline adapts the live item collection to the timeline view.
package timeline

import (
	"time"

	"github.com/javiermolinar/timeblock/internal/config"
	"github.com/javiermolinar/timeblock/internal/item"
)

// Editable lists which direct manipulations the view allows.
type Editable struct {
	Add           bool
	Remove        bool
	UpdateTime    bool
	UpdateGroup   bool
	OverrideItems bool
}

// LabelFormat holds time layouts for hour labels on the axis.
type LabelFormat struct {
	MinorHour string
	MajorHour string
}

// Label layouts.
const (
	hourLabelWide    = "15:04"
	hourLabelCompact = "15"
)

// Options configures the timeline view.
type Options struct {
	Editable   Editable
	ItemMargin int

	// Min and Max bound panning; Start and End are the initial window.
	Min   time.Time
	Max   time.Time
	Start time.Time
	End   time.Time

	Stack    bool
	Moveable bool
	Zoomable bool
	ZoomMin  time.Duration
	ZoomMax  time.Duration

	Snap   func(time.Time) time.Time
	Format LabelFormat

	Compact bool
}

// NewOptions builds the view options for a viewport of the given width in
// terminal columns. At or below the configured compact width the default
// window is narrower and hour labels are terse.
func NewOptions(viewportWidth int, cfg config.TimelineConfig) Options {
	compact := viewportWidth <= cfg.CompactWidth

	startLabel, endLabel := cfg.WindowStart, cfg.WindowEnd
	format := LabelFormat{MinorHour: hourLabelWide, MajorHour: hourLabelWide}
	if compact {
		startLabel, endLabel = cfg.CompactWindowStart, cfg.CompactWindowEnd
		format = LabelFormat{MinorHour: hourLabelCompact, MajorHour: hourLabelCompact}
	}

	return Options{
		Editable: Editable{
			Add:           false,
			Remove:        true,
			UpdateTime:    true,
			UpdateGroup:   false,
			OverrideItems: false,
		},
		ItemMargin: 10,
		Min:        item.DayStart(),
		Max:        item.DayEnd(),
		Start:      clockOr(startLabel, item.At(6, 0)),
		End:        clockOr(endLabel, item.At(18, 0)),
		Stack:      false,
		Moveable:   true,
		Zoomable:   true,
		ZoomMin:    time.Hour,
		ZoomMax:    24 * time.Hour,
		Snap:       item.Snap,
		Format:     format,
		Compact:    compact,
	}
}

// InitialWindow returns the configured visible window.
func (o Options) InitialWindow() Window {
	return Window{Start: o.Start, End: o.End}.clamp(o)
}

// HourLabel formats an axis label for t.
func (o Options) HourLabel(t time.Time, major bool) string {
	layout := o.Format.MinorHour
	if major {
		layout = o.Format.MajorHour
	}
	if t.Equal(o.Max) && o.Max.Equal(item.DayEnd()) {
		if layout == hourLabelCompact {
			return "24"
		}
		return "24:00"
	}
	return t.In(time.Local).Format(layout)
}

// FitWindow narrows the visible window from 06:00 when the viewport cannot
// show twelve hours at minColumnsPerHour. Otherwise it returns current.
func FitWindow(current Window, width, minColumnsPerHour int, o Options) Window {
	if minColumnsPerHour <= 0 {
		return current
	}
	hours := width / minColumnsPerHour
	if hours >= 12 {
		return current
	}
	hours = max(hours, 1)
	startHour := 6
	endHour := min(startHour+hours, 24)
	return Window{Start: item.At(startHour, 0), End: item.At(endHour, 0)}.clamp(o)
}

func clockOr(s string, fallback time.Time) time.Time {
	t, err := item.ParseClock(s)
	if err != nil {
		return fallback
	}
	return t
}
