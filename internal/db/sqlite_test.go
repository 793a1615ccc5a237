package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/timeblock/internal/item"
)

func TestLoadAll_EmptyStore(t *testing.T) {
	repo := newTestRepo(t)

	items, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestSave_ThenLoadAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	it := item.Item{
		ID:       1736150400000,
		Content:  "Write unit tests",
		Start:    item.At(9, 0),
		End:      item.At(11, 0),
		Editable: true,
	}

	if err := repo.Save(ctx, it); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	items, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	got := items[0]
	if got.ID != it.ID {
		t.Errorf("id = %d, want %d", got.ID, it.ID)
	}
	if got.Content != it.Content {
		t.Errorf("content = %q, want %q", got.Content, it.Content)
	}
	if !got.Start.Equal(it.Start) || !got.End.Equal(it.End) {
		t.Errorf("range = %s-%s, want %s-%s", got.Start, got.End, it.Start, it.End)
	}
	if !got.Editable {
		t.Error("expected editable to round trip")
	}
}

func TestSave_Upserts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	it := item.Item{ID: 2, Content: "Writing", Start: item.At(9, 0), End: item.At(11, 0), Editable: true}
	if err := repo.Save(ctx, it); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	it.Content = "Editing"
	it.Start = item.At(10, 0)
	it.End = item.At(12, 30)
	it.Editable = false
	if err := repo.Save(ctx, it); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	items, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected upsert to keep 1 item, got %d", len(items))
	}
	got := items[0]
	if got.Content != "Editing" || !got.Start.Equal(item.At(10, 0)) || !got.End.Equal(item.At(12, 30)) || got.Editable {
		t.Errorf("unexpected item after upsert: %+v", got)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, it := range item.Defaults() {
		if err := repo.Save(ctx, it); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	if err := repo.Delete(ctx, 2); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	items, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for _, it := range items {
		if it.ID == 2 {
			t.Fatal("deleted item still present")
		}
	}
}

func TestDelete_MissingIsNotAnError(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.Delete(context.Background(), 404); err != nil {
		t.Fatalf("Delete of missing id failed: %v", err)
	}
}

func TestLoadAll_OrderedByStart(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	defaults := item.Defaults()
	for i := len(defaults) - 1; i >= 0; i-- {
		if err := repo.Save(ctx, defaults[i]); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	items, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	for i := 1; i < len(items); i++ {
		if items[i].Start.Before(items[i-1].Start) {
			t.Fatalf("items out of order at %d: %s before %s", i, items[i].Start, items[i-1].Start)
		}
	}
}

func TestSave_ClosedStoreReturnsStoreError(t *testing.T) {
	repo := newTestRepo(t)
	_ = repo.Close()

	err := repo.Save(context.Background(), item.Item{ID: 5, Content: "x", Start: item.At(9, 0), End: item.At(10, 0)})
	var storeErr *item.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("error = %v, want *item.StoreError", err)
	}
	if storeErr.Op != "save" || storeErr.ID != 5 {
		t.Errorf("unexpected store error: %+v", storeErr)
	}

	_, err = repo.LoadAll(context.Background())
	if !errors.As(err, &storeErr) || storeErr.Op != "load" {
		t.Fatalf("LoadAll error = %v, want load StoreError", err)
	}
}

func TestNew_ReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.db")
	ctx := context.Background()

	first, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	it := item.Item{ID: 42, Content: "Persisted", Start: item.At(15, 15), End: item.At(16, 15), Editable: true}
	if err := first.Save(ctx, it); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	_ = first.Close()

	second, err := New(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = second.Close() }()

	items, err := second.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != 42 {
		t.Fatalf("unexpected items after reopen: %+v", items)
	}
}

func TestSave_KeepsSubMinutePrecision(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	start := item.At(9, 0).Add(1500 * time.Millisecond)
	it := item.Item{ID: 9, Content: "precise", Start: start, End: start.Add(time.Hour)}
	if err := repo.Save(ctx, it); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	items, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if !items[0].Start.Equal(start) {
		t.Errorf("start = %s, want %s", items[0].Start, start)
	}
}

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}
