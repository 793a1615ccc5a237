// Package item defines the schedulable time block and its collection.
package item

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrEmptyContent   = errors.New("item name cannot be empty")
	ErrEndBeforeStart = errors.New("end time must not be before start time")
	ErrInvalidClock   = errors.New("time must be in HH:MM format")
)

// Domain errors.
var (
	ErrItemNotFound = errors.New("item not found")
	ErrDuplicateID  = errors.New("item id already exists")
	ErrNotEditable  = errors.New("item is not editable")
)

// DefaultDuration is the length of a freshly created item.
const DefaultDuration = time.Hour

// Item is a single time-blocked entry on the day timeline.
type Item struct {
	ID       int64
	Content  string
	Start    time.Time
	End      time.Time
	Editable bool
}

// New creates an editable item after validating content and range.
func New(id int64, content string, start, end time.Time) (Item, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Item{}, ErrEmptyContent
	}
	if end.Before(start) {
		return Item{}, ErrEndBeforeStart
	}
	return Item{
		ID:       id,
		Content:  content,
		Start:    start,
		End:      end,
		Editable: true,
	}, nil
}

// Duration returns End - Start.
func (it Item) Duration() time.Duration {
	return it.End.Sub(it.Start)
}

// Contains reports whether t falls inside [Start, End).
func (it Item) Contains(t time.Time) bool {
	return !t.Before(it.Start) && t.Before(it.End)
}

// Shift returns a copy moved by d, keeping its duration.
func (it Item) Shift(d time.Duration) Item {
	it.Start = it.Start.Add(d)
	it.End = it.End.Add(d)
	return it
}

// FitDay shifts a copy back inside the base day, keeping its duration.
// Items longer than a day are cut at 24:00.
func (it Item) FitDay() Item {
	if it.Start.Before(DayStart()) {
		it = it.Shift(DayStart().Sub(it.Start))
	}
	if it.End.After(DayEnd()) {
		it = it.Shift(DayEnd().Sub(it.End))
	}
	it.Start = ClampToDay(it.Start)
	it.End = ClampToDay(it.End)
	return it
}

// Validate checks the invariants required before an item is committed.
func (it Item) Validate() error {
	if strings.TrimSpace(it.Content) == "" {
		return ErrEmptyContent
	}
	if it.End.Before(it.Start) {
		return ErrEndBeforeStart
	}
	return nil
}

// Op identifies the persistence side effect of a change.
type Op int

const (
	OpNone Op = iota
	OpSave
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpSave:
		return "save"
	case OpDelete:
		return "delete"
	default:
		return "none"
	}
}

// Change describes a mutation already applied to the live collection
// that still has to be mirrored to the store.
type Change struct {
	Op   Op
	Item Item
}

// IsZero reports whether the change carries no side effect.
func (c Change) IsZero() bool {
	return c.Op == OpNone
}
