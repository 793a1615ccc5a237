package timeline

import (
	"context"
	"errors"
	"testing"

	"github.com/javiermolinar/timeblock/internal/item"
)

type failingStore struct {
	*item.MemoryStore
	loadErr error
	saveErr error
}

func (f failingStore) LoadAll(ctx context.Context) ([]item.Item, error) {
	if f.loadErr != nil {
		return nil, &item.StoreError{Op: "load", Err: f.loadErr}
	}
	return f.MemoryStore.LoadAll(ctx)
}

func (f failingStore) Save(ctx context.Context, it item.Item) error {
	if f.saveErr != nil {
		return &item.StoreError{Op: "save", ID: it.ID, Err: f.saveErr}
	}
	return f.MemoryStore.Save(ctx, it)
}

func TestBootstrapSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := item.NewMemoryStore()

	res := Bootstrap(ctx, store)

	if !res.Seeded || res.Fallback {
		t.Fatalf("unexpected result flags: %+v", res)
	}
	if len(res.Items) != len(item.Defaults()) {
		t.Fatalf("got %d items, want defaults", len(res.Items))
	}
	stored, _ := store.LoadAll(ctx)
	if len(stored) != len(item.Defaults()) {
		t.Errorf("defaults not persisted: %d stored", len(stored))
	}
}

func TestBootstrapLoadsSavedItems(t *testing.T) {
	ctx := context.Background()
	store := item.NewMemoryStore()
	saved := item.Item{ID: 77, Content: "Saved", Start: item.At(13, 0), End: item.At(14, 0), Editable: true}
	_ = store.Save(ctx, saved)

	res := Bootstrap(ctx, store)

	if res.Seeded || res.Fallback {
		t.Fatalf("unexpected result flags: %+v", res)
	}
	if len(res.Items) != 1 || res.Items[0] != saved {
		t.Errorf("items = %+v, want only the saved item", res.Items)
	}
}

func TestBootstrapFallsBackWithoutPersisting(t *testing.T) {
	ctx := context.Background()
	mem := item.NewMemoryStore()
	store := failingStore{MemoryStore: mem, loadErr: errors.New("disk gone")}

	res := Bootstrap(ctx, store)

	if !res.Fallback || res.Seeded {
		t.Fatalf("unexpected result flags: %+v", res)
	}
	if res.LoadErr == nil {
		t.Error("expected load error to be reported")
	}
	if len(res.Items) != len(item.Defaults()) {
		t.Errorf("got %d items, want defaults", len(res.Items))
	}
	stored, _ := mem.LoadAll(ctx)
	if len(stored) != 0 {
		t.Errorf("fallback persisted %d items", len(stored))
	}
}

func TestBootstrapReportsSeedFailures(t *testing.T) {
	store := failingStore{MemoryStore: item.NewMemoryStore(), saveErr: errors.New("read-only")}

	res := Bootstrap(context.Background(), store)

	if !res.Seeded {
		t.Fatal("expected seeded result")
	}
	if len(res.SaveErrs) != len(item.Defaults()) {
		t.Errorf("got %d save errors, want %d", len(res.SaveErrs), len(item.Defaults()))
	}
	if len(res.Items) != len(item.Defaults()) {
		t.Errorf("items = %d, want defaults shown anyway", len(res.Items))
	}
}
