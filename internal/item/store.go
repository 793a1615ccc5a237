package item

import (
	"context"
	"fmt"
	"sync"
)

// Store mirrors the live collection durably. It is never authoritative
// for the view: callers apply changes to the collection first.
type Store interface {
	// Save inserts or replaces the item with the same id.
	Save(ctx context.Context, it Item) error

	// Delete removes the item with id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error

	// LoadAll returns every stored item. An empty store yields no items
	// and no error.
	LoadAll(ctx context.Context) ([]Item, error)

	// Close releases any resources held by the store.
	Close() error
}

// StoreError is returned by Store implementations when an operation fails.
type StoreError struct {
	Op  string
	ID  int64
	Err error
}

func (e *StoreError) Error() string {
	if e.Op == "load" {
		return fmt.Sprintf("load items: %v", e.Err)
	}
	return fmt.Sprintf("%s item %d: %v", e.Op, e.ID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Apply mirrors a change to the store.
func Apply(ctx context.Context, s Store, c Change) error {
	switch c.Op {
	case OpSave:
		return s.Save(ctx, c.Item)
	case OpDelete:
		return s.Delete(ctx, c.Item.ID)
	default:
		return nil
	}
}

// MemoryStore is a Store kept in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	items map[int64]Item
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[int64]Item)}
}

// Save implements Store.
func (m *MemoryStore) Save(ctx context.Context, it Item) error {
	if err := ctx.Err(); err != nil {
		return &StoreError{Op: "save", ID: it.ID, Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[it.ID] = it
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return &StoreError{Op: "delete", ID: id, Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

// LoadAll implements Store.
func (m *MemoryStore) LoadAll(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, &StoreError{Op: "load", Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return NewCollection(valuesOf(m.items)...).All(), nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	return nil
}

func valuesOf(items map[int64]Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, it)
	}
	return out
}
