package testutil

import (
	"context"
	"testing"

	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/store"
)

// NewTestStore creates an in-memory SQLite store with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:", nil)
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// Row describes an item to seed. Parent refers to another Row's Key.
type Row struct {
	Key       string
	Content   string
	Parent    string
	Position  int
	Completed bool
}

// SeedList creates a list holding rows and returns the list together with a
// map from each Row.Key to the stored item ID. Parents must be listed
// before their children.
func SeedList(t *testing.T, s store.Store, rows ...Row) (*model.List, map[string]string) {
	t.Helper()
	ctx := context.Background()

	list := &model.List{Title: "Groceries"}
	if err := s.CreateList(ctx, list); err != nil {
		t.Fatalf("seeding list: %v", err)
	}

	ids := make(map[string]string, len(rows))
	for _, r := range rows {
		it := &model.Item{
			ListID:    list.ID,
			Content:   r.Content,
			Position:  r.Position,
			Completed: r.Completed,
		}
		if r.Parent != "" {
			pid, ok := ids[r.Parent]
			if !ok {
				t.Fatalf("seeding %s: parent %s not seeded yet", r.Key, r.Parent)
			}
			it.ParentID = &pid
		}
		if err := s.CreateItem(ctx, it); err != nil {
			t.Fatalf("seeding item %s: %v", r.Key, err)
		}
		ids[r.Key] = it.ID
	}
	return list, ids
}

// ItemsByKey loads the list's items and indexes them by the seed keys.
// Items created after seeding are returned under their own IDs.
func ItemsByKey(t *testing.T, s store.Store, listID string, ids map[string]string) map[string]model.Item {
	t.Helper()

	items, err := s.GetItems(context.Background(), listID)
	if err != nil {
		t.Fatalf("loading items: %v", err)
	}

	keyByID := make(map[string]string, len(ids))
	for k, id := range ids {
		keyByID[id] = k
	}
	out := make(map[string]model.Item, len(items))
	for _, it := range items {
		if k, ok := keyByID[it.ID]; ok {
			out[k] = it
		} else {
			out[it.ID] = it
		}
	}
	return out
}
