package item

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	items, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("empty store returned %d items", len(items))
	}

	it := Item{ID: 7, Content: "Focus", Start: At(14, 0), End: At(15, 0), Editable: true}
	if err := s.Save(ctx, it); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	items, _ = s.LoadAll(ctx)
	if len(items) != 1 || items[0] != it {
		t.Fatalf("LoadAll after Save = %+v", items)
	}

	if err := s.Delete(ctx, 7); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	items, _ = s.LoadAll(ctx)
	if len(items) != 0 {
		t.Fatalf("LoadAll after Delete returned %d items", len(items))
	}
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewMemoryStore().Save(ctx, Item{ID: 1})
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("error = %v, want *StoreError", err)
	}
	if storeErr.Op != "save" || storeErr.ID != 1 {
		t.Errorf("unexpected store error: %+v", storeErr)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected wrapped context.Canceled")
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	it := Item{ID: 1, Content: "x", Start: At(9, 0), End: At(10, 0)}

	if err := Apply(ctx, s, Change{Op: OpSave, Item: it}); err != nil {
		t.Fatalf("Apply save failed: %v", err)
	}
	if items, _ := s.LoadAll(ctx); len(items) != 1 {
		t.Fatalf("expected 1 stored item, got %d", len(items))
	}
	if err := Apply(ctx, s, Change{}); err != nil {
		t.Fatalf("Apply none failed: %v", err)
	}
	if err := Apply(ctx, s, Change{Op: OpDelete, Item: it}); err != nil {
		t.Fatalf("Apply delete failed: %v", err)
	}
	if items, _ := s.LoadAll(ctx); len(items) != 0 {
		t.Fatalf("expected empty store, got %d", len(items))
	}
}
