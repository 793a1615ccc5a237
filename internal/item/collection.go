package item

import (
	"fmt"
	"slices"
	"time"
)

// Collection is the live, in-memory set of items that drives the view.
// It is mutated only from the UI event loop and is not safe for
// concurrent use.
type Collection struct {
	items  map[int64]Item
	lastID int64
}

// NewCollection returns a collection holding items. Later duplicates of
// an id replace earlier ones.
func NewCollection(items ...Item) *Collection {
	c := &Collection{items: make(map[int64]Item, len(items))}
	for _, it := range items {
		c.put(it)
	}
	return c
}

func (c *Collection) put(it Item) {
	c.items[it.ID] = it
	if it.ID > c.lastID {
		c.lastID = it.ID
	}
}

// NextID returns a fresh id derived from the creation instant. Ids are
// unique within the collection and strictly increasing.
func (c *Collection) NextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	return id
}

// Add inserts a new item.
func (c *Collection) Add(it Item) error {
	if _, ok := c.items[it.ID]; ok {
		return fmt.Errorf("adding item %d: %w", it.ID, ErrDuplicateID)
	}
	c.put(it)
	return nil
}

// AddAll inserts every item, replacing items that share an id.
func (c *Collection) AddAll(items []Item) {
	for _, it := range items {
		c.put(it)
	}
}

// Get returns the item with id.
func (c *Collection) Get(id int64) (Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

// Update replaces an existing item.
func (c *Collection) Update(it Item) error {
	if _, ok := c.items[it.ID]; !ok {
		return fmt.Errorf("updating item %d: %w", it.ID, ErrItemNotFound)
	}
	c.items[it.ID] = it
	return nil
}

// SetContent changes only the content of an existing item and returns
// the updated item.
func (c *Collection) SetContent(id int64, content string) (Item, error) {
	it, ok := c.items[id]
	if !ok {
		return Item{}, fmt.Errorf("updating item %d: %w", id, ErrItemNotFound)
	}
	it.Content = content
	c.items[id] = it
	return it, nil
}

// Remove deletes the item with id and reports whether it existed.
func (c *Collection) Remove(id int64) (Item, bool) {
	it, ok := c.items[id]
	if ok {
		delete(c.items, id)
	}
	return it, ok
}

// Len returns the number of items.
func (c *Collection) Len() int {
	return len(c.items)
}

// All returns the items ordered by start time, then id.
func (c *Collection) All() []Item {
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	slices.SortFunc(out, compareItems)
	return out
}

// At returns the topmost item covering t. Items are not stacked, so when
// several overlap the one created last wins.
func (c *Collection) At(t time.Time) (Item, bool) {
	var (
		found Item
		ok    bool
	)
	for _, it := range c.items {
		if !it.Contains(t) {
			continue
		}
		if !ok || it.ID > found.ID {
			found = it
			ok = true
		}
	}
	return found, ok
}

func compareItems(a, b Item) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}
