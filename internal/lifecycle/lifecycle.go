// Package lifecycle owns the create/edit flow of timeline items.
//
// A Controller moves between three phases. Idle keeps the form disabled.
// Creating holds a pending one-hour window captured from an activation
// time. Editing holds the id of an existing item. Submitting or cancelling
// always returns to Idle.
//
// The controller mutates the injected live collection and returns an
// item.Change describing what still has to be persisted. It never talks to
// a store itself; the caller decides how persistence failures are handled.
package lifecycle

import (
	"strings"
	"time"

	"github.com/javiermolinar/timeblock/internal/item"
)

// Phase is the current step of the item form.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCreating
	PhaseEditing
)

func (p Phase) String() string {
	switch p {
	case PhaseCreating:
		return "creating"
	case PhaseEditing:
		return "editing"
	default:
		return "idle"
	}
}

// Window is a pending [Start, End) range for a new item.
type Window struct {
	Start time.Time
	End   time.Time
}

// State is the transient form state. Pending and EditingID are mutually
// exclusive.
type State struct {
	Phase     Phase
	Pending   *Window
	EditingID int64
}

// Form labels.
const (
	PlaceholderIdle   = "Item name (activate the timeline to add one)"
	PlaceholderCreate = "Item name"
	PlaceholderEdit   = "Rename item"
	LabelAdd          = "Add"
	LabelUpdate       = "Update"
)

// Form is the form surface derived from the current state.
type Form struct {
	Enabled       bool
	Value         string
	Placeholder   string
	SubmitLabel   string
	CancelEnabled bool
	SelectAll     bool
}

// Controller runs the item lifecycle over a live collection.
type Controller struct {
	items *item.Collection
	now   func() time.Time
	state State
	value string
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used to allocate item ids.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// New returns an idle controller over items.
func New(items *item.Collection, opts ...Option) *Controller {
	c := &Controller{
		items: items,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	s := c.state
	if s.Pending != nil {
		w := *s.Pending
		s.Pending = &w
	}
	return s
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.state.Phase
}

// Active reports whether the form is open.
func (c *Controller) Active() bool {
	return c.state.Phase != PhaseIdle
}

// BeginCreate opens the form for a new item starting at the snapped value
// of at and lasting one hour, cut at 24:00.
func (c *Controller) BeginCreate(at time.Time) Window {
	start := item.Snap(at)
	w := Window{Start: start, End: item.ClampToDay(start.Add(item.DefaultDuration))}
	c.state = State{Phase: PhaseCreating, Pending: &w}
	c.value = ""
	return w
}

// BeginEdit opens the form for an existing item. Unknown ids leave the
// controller untouched and return false.
func (c *Controller) BeginEdit(id int64) bool {
	it, ok := c.items.Get(id)
	if !ok {
		return false
	}
	c.state = State{Phase: PhaseEditing, EditingID: id}
	c.value = it.Content
	return true
}

// SetValue records the text currently typed into the form.
func (c *Controller) SetValue(v string) {
	c.value = v
}

// Submit commits the form. Blank text returns item.ErrEmptyContent and
// leaves both the state and the collection unchanged. On success the
// controller is Idle again and the returned change must be persisted.
func (c *Controller) Submit(text string) (item.Change, error) {
	name := strings.TrimSpace(text)
	if name == "" {
		c.value = text
		return item.Change{}, item.ErrEmptyContent
	}

	var change item.Change
	switch c.state.Phase {
	case PhaseEditing:
		it, err := c.items.SetContent(c.state.EditingID, name)
		if err != nil {
			c.reset()
			return item.Change{}, err
		}
		change = item.Change{Op: item.OpSave, Item: it}

	case PhaseCreating:
		w := c.state.Pending
		it := item.Item{
			ID:       c.items.NextID(c.now()),
			Content:  name,
			Start:    w.Start,
			End:      w.End,
			Editable: true,
		}
		if err := c.items.Add(it); err != nil {
			c.reset()
			return item.Change{}, err
		}
		change = item.Change{Op: item.OpSave, Item: it}
	}

	c.reset()
	return change, nil
}

// Cancel discards any pending or editing state.
func (c *Controller) Cancel() {
	c.reset()
}

// Forget drops the editing state if it refers to id, used when the item
// is removed while its form is open.
func (c *Controller) Forget(id int64) {
	if c.state.Phase == PhaseEditing && c.state.EditingID == id {
		c.reset()
	}
}

func (c *Controller) reset() {
	c.state = State{}
	c.value = ""
}

// Form derives the form surface from the current state.
func (c *Controller) Form() Form {
	switch c.state.Phase {
	case PhaseCreating:
		return Form{
			Enabled:       true,
			Value:         c.value,
			Placeholder:   PlaceholderCreate,
			SubmitLabel:   LabelAdd,
			CancelEnabled: true,
		}
	case PhaseEditing:
		return Form{
			Enabled:       true,
			Value:         c.value,
			Placeholder:   PlaceholderEdit,
			SubmitLabel:   LabelUpdate,
			CancelEnabled: true,
			SelectAll:     c.value != "",
		}
	default:
		return Form{
			Placeholder: PlaceholderIdle,
			SubmitLabel: LabelAdd,
		}
	}
}
