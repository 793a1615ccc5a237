package item

import (
	"math"
	"time"
)

// SnapInterval is the grid every item boundary is aligned to.
const SnapInterval = 15 * time.Minute

// Snap returns the instant on the 15-minute grid nearest to t.
// The grid is anchored at the Unix epoch; halves round up.
func Snap(t time.Time) time.Time {
	step := SnapInterval.Milliseconds()
	ms := t.UnixMilli()
	snapped := int64(math.Floor(float64(ms)/float64(step)+0.5)) * step
	return time.UnixMilli(snapped).In(t.Location())
}
