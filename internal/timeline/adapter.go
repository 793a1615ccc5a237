package timeline

import (
	"fmt"
	"time"

	"github.com/javiermolinar/timeblock/internal/item"
)

// Adapter applies direct manipulations from the view to the live
// collection. Accepted changes are applied immediately and returned so
// the caller can persist them; rejected changes leave the collection as it
// was and the view must restore the item.
type Adapter struct {
	items *item.Collection
	opts  Options
}

// NewAdapter returns an Adapter over items.
func NewAdapter(items *item.Collection, opts Options) *Adapter {
	return &Adapter{items: items, opts: opts}
}

// Options returns the view options.
func (a *Adapter) Options() Options {
	return a.opts
}

// SetOptions replaces the view options, for example after a resize.
func (a *Adapter) SetOptions(opts Options) {
	a.opts = opts
}

// Update handles the end of a drag or resize. The proposed item replaces
// the stored one when times are allowed to change, the item is editable and
// the range is not inverted.
func (a *Adapter) Update(proposed item.Item) (item.Change, error) {
	if !a.opts.Editable.UpdateTime {
		return item.Change{}, fmt.Errorf("moving item %d: %w", proposed.ID, item.ErrNotEditable)
	}
	current, ok := a.items.Get(proposed.ID)
	if !ok {
		return item.Change{}, fmt.Errorf("moving item %d: %w", proposed.ID, item.ErrItemNotFound)
	}
	if !current.Editable {
		return item.Change{}, fmt.Errorf("moving item %d: %w", proposed.ID, item.ErrNotEditable)
	}
	if proposed.End.Before(proposed.Start) {
		return item.Change{}, fmt.Errorf("moving item %d: %w", proposed.ID, item.ErrEndBeforeStart)
	}

	// Only times change through the view.
	current.Start = proposed.Start
	current.End = proposed.End
	if err := a.items.Update(current); err != nil {
		return item.Change{}, err
	}
	return item.Change{Op: item.OpSave, Item: current}, nil
}

// Move shifts an item by the given number of snap steps, stopping at the
// edges of the day.
func (a *Adapter) Move(id int64, steps int) (item.Change, error) {
	current, ok := a.items.Get(id)
	if !ok {
		return item.Change{}, fmt.Errorf("moving item %d: %w", id, item.ErrItemNotFound)
	}
	return a.Update(current.Shift(item.SnapInterval * time.Duration(steps)).FitDay())
}

// Resize moves the end of an item by the given number of snap steps. The
// end never passes 24:00.
func (a *Adapter) Resize(id int64, steps int) (item.Change, error) {
	current, ok := a.items.Get(id)
	if !ok {
		return item.Change{}, fmt.Errorf("resizing item %d: %w", id, item.ErrItemNotFound)
	}
	current.End = item.ClampToDay(current.End.Add(item.SnapInterval * time.Duration(steps)))
	return a.Update(current)
}

// Remove handles a delete request from the view.
func (a *Adapter) Remove(id int64) (item.Change, error) {
	if !a.opts.Editable.Remove {
		return item.Change{}, fmt.Errorf("removing item %d: %w", id, item.ErrNotEditable)
	}
	removed, ok := a.items.Remove(id)
	if !ok {
		return item.Change{}, fmt.Errorf("removing item %d: %w", id, item.ErrItemNotFound)
	}
	return item.Change{Op: item.OpDelete, Item: removed}, nil
}
