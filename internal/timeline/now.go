package timeline

import (
	"time"

	"github.com/javiermolinar/timeblock/internal/item"
)

// Reserved identity of the now marker.
const (
	NowMarkerID    = "currentTime"
	NowMarkerTitle = "Now"
)

// NowMarker is the non-interactive line showing the current time of day.
type NowMarker struct {
	at time.Time
}

// NewNowMarker places a marker at the wall clock of now.
func NewNowMarker(now time.Time) *NowMarker {
	m := &NowMarker{}
	m.Refresh(now)
	return m
}

// At returns the marker position on the base day.
func (m *NowMarker) At() time.Time {
	return m.at
}

// Refresh moves the marker to the wall clock of now.
func (m *NowMarker) Refresh(now time.Time) time.Time {
	m.at = item.OnBaseDay(now)
	return m.at
}

// TimeChange handles a drag of a custom time line. Dragging the now marker
// is undone by putting it back at the wall clock; other ids are accepted at
// the dragged position. The bool reports whether the drag was overridden.
func (m *NowMarker) TimeChange(id string, dragged, now time.Time) (time.Time, bool) {
	if id != NowMarkerID {
		return dragged, false
	}
	return m.Refresh(now), true
}
