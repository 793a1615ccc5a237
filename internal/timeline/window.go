package timeline

import (
	"math"
	"time"
)

// Window is the visible range of the timeline.
type Window struct {
	Start time.Time
	End   time.Time
}

// Span returns the visible duration.
func (w Window) Span() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t is inside [Start, End].
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Zoom scales the span by factor around center. Factors below 1 zoom in.
// The result respects the zoom bounds and the Min/Max range of o.
func (w Window) Zoom(factor float64, center time.Time, o Options) Window {
	if !o.Zoomable || factor <= 0 {
		return w
	}
	span := time.Duration(float64(w.Span()) * factor)
	span = clampSpan(span, o)

	// Keep center at the same relative position.
	ratio := 0.5
	if w.Span() > 0 {
		ratio = float64(center.Sub(w.Start)) / float64(w.Span())
	}
	ratio = min(max(ratio, 0), 1)
	start := center.Add(-time.Duration(math.Round(float64(span) * ratio)))
	return Window{Start: start, End: start.Add(span)}.clamp(o)
}

// Pan moves the window by d without leaving the Min/Max range.
func (w Window) Pan(d time.Duration, o Options) Window {
	if !o.Moveable {
		return w
	}
	return Window{Start: w.Start.Add(d), End: w.End.Add(d)}.clamp(o)
}

// ColumnOf maps t to a column of a lane width columns wide. The result is
// outside [0, width) when t is not visible.
func (w Window) ColumnOf(t time.Time, width int) int {
	span := w.Span()
	if span <= 0 || width <= 0 {
		return 0
	}
	offset := t.Sub(w.Start)
	return int(float64(offset) * float64(width) / float64(span))
}

// TimeAt maps a column back to the instant at its left edge.
func (w Window) TimeAt(col, width int) time.Time {
	if width <= 0 {
		return w.Start
	}
	col = min(max(col, 0), width-1)
	offset := time.Duration(float64(w.Span()) * float64(col) / float64(width))
	return w.Start.Add(offset)
}

// StepPerColumn returns the duration covered by a single column.
func (w Window) StepPerColumn(width int) time.Duration {
	if width <= 0 {
		return 0
	}
	return w.Span() / time.Duration(width)
}

func clampSpan(span time.Duration, o Options) time.Duration {
	if o.ZoomMin > 0 && span < o.ZoomMin {
		span = o.ZoomMin
	}
	if o.ZoomMax > 0 && span > o.ZoomMax {
		span = o.ZoomMax
	}
	if bound := o.Max.Sub(o.Min); bound > 0 && span > bound {
		span = bound
	}
	return span
}

// clamp enforces the zoom bounds and keeps the window inside Min/Max.
func (w Window) clamp(o Options) Window {
	span := clampSpan(w.Span(), o)
	start := w.Start
	if !o.Min.IsZero() && start.Before(o.Min) {
		start = o.Min
	}
	end := start.Add(span)
	if !o.Max.IsZero() && end.After(o.Max) {
		end = o.Max
		start = end.Add(-span)
	}
	return Window{Start: start, End: end}
}
