package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mariovida/list-backend/internal/storage"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "list-backend-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	path := filepath.Join(tempDir, "lists.json")
	store, err := New(path)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store, path
}

func intPtr(n int) *int { return &n }

func TestJSONFileStore(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateList and GetList", func(t *testing.T) {
		list, err := store.CreateList(ctx, "Groceries")
		if err != nil {
			t.Fatalf("CreateList failed: %v", err)
		}
		if list.ID == "" {
			t.Error("Expected list ID to be generated")
		}

		got, err := store.GetList(ctx, list.ID)
		if err != nil {
			t.Fatalf("GetList failed: %v", err)
		}
		if got.Name != "Groceries" || len(got.Items) != 0 {
			t.Errorf("unexpected list: %+v", got)
		}
	})

	t.Run("CreateList rejects blank name", func(t *testing.T) {
		if _, err := store.CreateList(ctx, "   "); !errors.Is(err, storage.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("Unknown token is ErrNotFound", func(t *testing.T) {
		if _, err := store.GetList(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetList: expected ErrNotFound, got %v", err)
		}
		if _, err := store.ListItems(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("ListItems: expected ErrNotFound, got %v", err)
		}
		if _, err := store.AppendItem(ctx, "nope", "milk", nil); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("AppendItem: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Item lifecycle", func(t *testing.T) {
		list, _ := store.CreateList(ctx, "Lifecycle")

		milk, err := store.AppendItem(ctx, list.ID, "milk", intPtr(2))
		if err != nil {
			t.Fatalf("AppendItem failed: %v", err)
		}
		eggs, err := store.AppendItem(ctx, list.ID, "eggs", nil)
		if err != nil {
			t.Fatalf("AppendItem failed: %v", err)
		}
		if milk.ID == eggs.ID {
			t.Error("expected distinct item IDs within the list")
		}
		if eggs.Quantity != 1 {
			t.Errorf("default quantity: got %d, want 1", eggs.Quantity)
		}

		if err := store.SetItemChecked(ctx, list.ID, milk.ID, true); err != nil {
			t.Fatalf("SetItemChecked failed: %v", err)
		}
		if err := store.SetItemQuantity(ctx, list.ID, eggs.ID, 12); err != nil {
			t.Fatalf("SetItemQuantity failed: %v", err)
		}

		items, _ := store.ListItems(ctx, list.ID)
		if len(items) != 2 {
			t.Fatalf("items count: got %d, want 2", len(items))
		}
		if !items[0].Checked || items[1].Quantity != 12 {
			t.Errorf("unexpected items: %+v", items)
		}

		if err := store.RemoveItem(ctx, list.ID, milk.ID); err != nil {
			t.Fatalf("RemoveItem failed: %v", err)
		}
		items, _ = store.ListItems(ctx, list.ID)
		if len(items) != 1 || items[0].Content != "eggs" {
			t.Errorf("expected only eggs to remain, got %+v", items)
		}
	})

	t.Run("Validation failures leave state untouched", func(t *testing.T) {
		list, _ := store.CreateList(ctx, "Untouched")
		item, _ := store.AppendItem(ctx, list.ID, "milk", nil)

		if _, err := store.AppendItem(ctx, list.ID, "bread", intPtr(-1)); !errors.Is(err, storage.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		if err := store.SetItemQuantity(ctx, list.ID, item.ID, -5); !errors.Is(err, storage.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}

		items, _ := store.ListItems(ctx, list.ID)
		if len(items) != 1 || items[0].Quantity != 1 {
			t.Errorf("state changed after failed mutations: %+v", items)
		}
	})

	t.Run("RemoveItemByContent deletes first match by position", func(t *testing.T) {
		list, _ := store.CreateList(ctx, "Duplicates")
		first, _ := store.AppendItem(ctx, list.ID, "milk", nil)
		store.AppendItem(ctx, list.ID, "milk", nil)

		if err := store.RemoveItemByContent(ctx, list.ID, "milk"); err != nil {
			t.Fatalf("RemoveItemByContent failed: %v", err)
		}

		items, _ := store.ListItems(ctx, list.ID)
		if len(items) != 1 {
			t.Fatalf("items count: got %d, want 1", len(items))
		}
		if items[0].ID == first.ID {
			t.Error("expected the first match to be removed")
		}
	})

	t.Run("Snapshots are copies", func(t *testing.T) {
		list, _ := store.CreateList(ctx, "Snapshot")
		store.AppendItem(ctx, list.ID, "milk", nil)

		snap, _ := store.GetList(ctx, list.ID)
		snap.Items[0].Content = "tampered"

		items, _ := store.ListItems(ctx, list.ID)
		if items[0].Content != "milk" {
			t.Error("mutating a snapshot must not affect the store")
		}
	})
}

func TestJSONFileStorePersistence(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	list, err := store.CreateList(ctx, "Survives")
	if err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}
	item, err := store.AppendItem(ctx, list.ID, "milk", intPtr(3))
	if err != nil {
		t.Fatalf("AppendItem failed: %v", err)
	}
	if err := store.SetItemChecked(ctx, list.ID, item.ID, true); err != nil {
		t.Fatalf("SetItemChecked failed: %v", err)
	}
	store.Close()

	// A fresh store over the same file sees the flushed state.
	reloaded, err := New(path)
	if err != nil {
		t.Fatalf("Failed to reload store: %v", err)
	}
	got, err := reloaded.GetList(ctx, list.ID)
	if err != nil {
		t.Fatalf("GetList after reload failed: %v", err)
	}
	if got.Name != "Survives" || len(got.Items) != 1 {
		t.Fatalf("unexpected reloaded list: %+v", got)
	}
	if got.Items[0].Content != "milk" || got.Items[0].Quantity != 3 || !got.Items[0].Checked {
		t.Errorf("unexpected reloaded item: %+v", got.Items[0])
	}

	// Item ID sequence continues after reload.
	next, err := reloaded.AppendItem(ctx, list.ID, "eggs", nil)
	if err != nil {
		t.Fatalf("AppendItem after reload failed: %v", err)
	}
	if next.ID == item.ID {
		t.Errorf("expected a fresh item ID after reload, got %d twice", next.ID)
	}
}

func TestJSONFileStoreCorruptFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "list-backend-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "lists.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	// Corrupt data must not fail startup; the store starts empty.
	store, err := New(path)
	if err != nil {
		t.Fatalf("expected corrupt file to be tolerated, got %v", err)
	}
	if _, err := store.CreateList(context.Background(), "Fresh"); err != nil {
		t.Fatalf("CreateList after corrupt load failed: %v", err)
	}
}
