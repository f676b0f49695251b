package checklist

import (
	"context"

	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/store"
	"github.com/listo-app/listo/internal/tree"
)

// snapshot is the state of one list as read at the start of a mutation.
type snapshot struct {
	listID string
	items  []model.Item
	byID   map[string]model.Item
}

func loadSnapshot(ctx context.Context, st store.Store, listID string) (*snapshot, error) {
	items, err := st.GetItems(ctx, listID)
	if err != nil {
		return nil, err
	}
	snap := &snapshot{
		listID: listID,
		items:  items,
		byID:   make(map[string]model.Item, len(items)),
	}
	for _, it := range items {
		snap.byID[it.ID] = it
	}
	return snap, nil
}

// loadItemSnapshot loads an item and the snapshot of the list it belongs to.
func loadItemSnapshot(ctx context.Context, st store.Store, itemID string) (model.Item, *snapshot, error) {
	it, err := st.GetItemByID(ctx, itemID)
	if err != nil {
		return model.Item{}, nil, err
	}
	snap, err := loadSnapshot(ctx, st, it.ListID)
	if err != nil {
		return model.Item{}, nil, err
	}
	return snap.byID[it.ID], snap, nil
}

// isHeader reports whether id names a header of this list.
func (s *snapshot) isHeader(id string) bool {
	it, ok := s.byID[id]
	return ok && it.IsHeader()
}

// parentOf returns the header an item is displayed under, or "" when the
// item is shown at the root.
func (s *snapshot) parentOf(it model.Item) string {
	pid := it.Parent()
	if pid == "" || it.IsHeader() || !s.isHeader(pid) {
		return ""
	}
	return pid
}

// group returns the sibling group of parentID in display order.
func (s *snapshot) group(parentID string) []model.Item {
	return tree.Group(s.items, parentID)
}

// display returns all items in display order.
func (s *snapshot) display() []model.Item {
	return tree.DisplayOrder(s.items)
}

// insertAt places it at index of group and returns the group as it will
// look afterwards along with every position that changed.
func insertAt(group []model.Item, it model.Item, index int) ([]model.Item, map[string]int) {
	if index < 0 {
		index = 0
	}
	if index > len(group) {
		index = len(group)
	}
	p := tree.PlaceAt(group, index)

	changes := map[string]int{it.ID: p.Position}
	out := make([]model.Item, 0, len(group)+1)
	for i, sib := range group {
		if i == index {
			placed := it
			placed.Position = p.Position
			out = append(out, placed)
		}
		if np, ok := p.Shifts[sib.ID]; ok {
			sib.Position = np
			changes[sib.ID] = np
		}
		out = append(out, sib)
	}
	if index == len(group) {
		placed := it
		placed.Position = p.Position
		out = append(out, placed)
	}
	return out, changes
}
