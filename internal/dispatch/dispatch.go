// Package dispatch turns raw pointer input into timeline activations.
package dispatch

import "time"

// DefaultTapWindow is the longest gap between two taps of a double tap.
const DefaultTapWindow = 300 * time.Millisecond

// Props is the payload of a pointer event on the timeline: the item under
// the pointer, if any, and the time under the pointer, if any.
type Props struct {
	ItemID  int64
	HasItem bool
	Time    time.Time
	HasTime bool
}

// OnItem returns props for a pointer event over an item.
func OnItem(id int64, at time.Time) Props {
	return Props{ItemID: id, HasItem: true, Time: at, HasTime: true}
}

// OnTime returns props for a pointer event over empty timeline space.
func OnTime(at time.Time) Props {
	return Props{Time: at, HasTime: true}
}

// Kind is what an activation asks the lifecycle to do.
type Kind int

const (
	KindNone Kind = iota
	KindEdit
	KindCreate
)

func (k Kind) String() string {
	switch k {
	case KindEdit:
		return "edit"
	case KindCreate:
		return "create"
	default:
		return "none"
	}
}

// Activation is a semantic double click.
type Activation struct {
	Kind   Kind
	ItemID int64
	Time   time.Time
}

// Resolve maps a double click payload to an activation. An item under the
// pointer wins over the bare time.
func Resolve(p Props) Activation {
	switch {
	case p.HasItem:
		return Activation{Kind: KindEdit, ItemID: p.ItemID}
	case p.HasTime:
		return Activation{Kind: KindCreate, Time: p.Time}
	default:
		return Activation{}
	}
}

// TapResult is the outcome of a single tap.
type TapResult struct {
	// Activation is set when the tap completed a double tap.
	Activation Activation
	// ArmReset asks the caller to call ResetTaps(Gen) once the tap window
	// has elapsed.
	ArmReset bool
	Gen      uint64
}

// Fired reports whether the tap completed a double tap.
func (r TapResult) Fired() bool {
	return r.Activation.Kind != KindNone
}

// Dispatcher interprets double clicks and, on pointer devices that never
// report them, double taps. It is driven from the UI event loop and is not
// safe for concurrent use.
type Dispatcher struct {
	window  time.Duration
	count   int
	lastTap time.Time
	gen     uint64
}

// New returns a Dispatcher using window as the double tap window. A
// non-positive window selects DefaultTapWindow.
func New(window time.Duration) *Dispatcher {
	if window <= 0 {
		window = DefaultTapWindow
	}
	return &Dispatcher{window: window}
}

// Window returns the double tap window.
func (d *Dispatcher) Window() time.Duration {
	return d.window
}

// DoubleClick handles a native double click.
func (d *Dispatcher) DoubleClick(p Props) Activation {
	return Resolve(p)
}

// Tap registers a single tap at the given instant. The first tap arms a
// counter reset. A second tap strictly inside the window fires the shared
// double click handler with its own payload. A second tap at or after the
// window starts a new pair.
func (d *Dispatcher) Tap(at time.Time, p Props) TapResult {
	if d.count == 1 && at.Sub(d.lastTap) < d.window {
		d.count = 0
		return TapResult{Activation: Resolve(p)}
	}

	d.count = 1
	d.lastTap = at
	d.gen++
	return TapResult{ArmReset: true, Gen: d.gen}
}

// ResetTaps clears the tap counter armed by the tap with generation gen.
// Resets armed by earlier taps are ignored so that rapid runs of taps pair
// up exactly.
func (d *Dispatcher) ResetTaps(gen uint64) {
	if gen != d.gen {
		return
	}
	d.count = 0
}

// Pending returns the number of taps waiting for a partner.
func (d *Dispatcher) Pending() int {
	return d.count
}
