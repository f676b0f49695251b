package checklist

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/store"
	"github.com/listo-app/listo/internal/tree"
)

// NewItem is an item to insert. ParentID, if set, must name a header of the
// same list.
type NewItem struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id"`
}

// AddItem appends a single item to the end of its group.
func (s *Service) AddItem(ctx context.Context, listID string, in NewItem) (*model.Item, error) {
	items, err := s.AddItems(ctx, listID, []NewItem{in})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// AddItems appends items, in order, to the end of their groups.
func (s *Service) AddItems(ctx context.Context, listID string, in []NewItem) ([]model.Item, error) {
	if len(in) == 0 {
		return nil, invalidf("no items to add")
	}
	if _, err := s.EnsureList(ctx, listID); err != nil {
		return nil, err
	}

	var created []model.Item
	err := s.store.InTx(ctx, func(tx store.Store) error {
		snap, err := loadSnapshot(ctx, tx, listID)
		if err != nil {
			return err
		}

		next := map[string]int{}
		for i, n := range in {
			content := strings.TrimSpace(n.Content)
			if content == "" {
				return invalidf("item %d: content must not be empty", i)
			}
			parent := ""
			if n.ParentID != nil {
				parent = strings.TrimSpace(*n.ParentID)
			}
			if parent != "" {
				if model.IsHeaderContent(content) {
					return invalidf("item %d: headers cannot be nested", i)
				}
				if !snap.isHeader(parent) {
					return invalidf("item %d: parent %s is not a header of this list", i, parent)
				}
			}

			pos, ok := next[parent]
			if !ok {
				pos = tree.NextPosition(snap.group(parent))
			}
			next[parent] = pos + 1

			created = append(created, model.Item{
				ID:       uuid.New().String(),
				ListID:   listID,
				Content:  content,
				ParentID: model.StringPtr(parent),
				Position: pos,
			})
		}
		return tx.CreateItems(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("added items", zap.String("list_id", listID), zap.Int("count", len(created)))
	return created, nil
}

// UpdateContent replaces an item's text. A header that still groups items
// cannot become a plain item, and a nested item cannot become a header.
func (s *Service) UpdateContent(ctx context.Context, itemID, content string) (*model.Item, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalidf("content must not be empty")
	}

	var updated model.Item
	err := s.store.InTx(ctx, func(tx store.Store) error {
		it, snap, err := loadItemSnapshot(ctx, tx, itemID)
		if err != nil {
			return err
		}

		becomesHeader := model.IsHeaderContent(content)
		switch {
		case it.IsHeader() && !becomesHeader && len(snap.group(it.ID)) > 0:
			return invalidf("header %s still groups items", it.ID)
		case !it.IsHeader() && becomesHeader && snap.parentOf(it) != "":
			return invalidf("nested item %s cannot become a header", it.ID)
		}

		it.Content = content
		if becomesHeader {
			it.Completed = false
		}
		if err := tx.UpdateItem(ctx, it); err != nil {
			return err
		}
		updated = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetCompleted sets an item's completion flag. Headers are never completed.
func (s *Service) SetCompleted(ctx context.Context, itemID string, completed bool) (*model.Item, error) {
	it, err := s.store.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.IsHeader() && completed {
		return nil, invalidf("header %s cannot be completed", itemID)
	}
	if it.Completed == completed {
		return it, nil
	}
	it.Completed = completed
	if err := s.store.UpdateItem(ctx, *it); err != nil {
		return nil, err
	}
	return it, nil
}

// Toggle flips an item's completion flag.
func (s *Service) Toggle(ctx context.Context, itemID string) (*model.Item, error) {
	it, err := s.store.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.SetCompleted(ctx, itemID, !it.Completed)
}

// DeleteItem removes an item. Deleting a header moves the items it grouped
// to the root, in the header's place and in their existing order.
func (s *Service) DeleteItem(ctx context.Context, itemID string) error {
	return s.store.InTx(ctx, func(tx store.Store) error {
		it, snap, err := loadItemSnapshot(ctx, tx, itemID)
		if err != nil {
			return err
		}

		children := snap.group(it.ID)
		if !it.IsHeader() || len(children) == 0 {
			return tx.DeleteItem(ctx, it.ID)
		}

		roots := snap.group("")
		index := tree.IndexOf(roots, it.ID)
		group := tree.Without(roots, it.ID)

		positions := map[string]int{}
		for i, ch := range children {
			var changes map[string]int
			group, changes = insertAt(group, ch, index+i)
			for id, p := range changes {
				positions[id] = p
			}
		}

		for _, ch := range children {
			ch.ParentID = nil
			ch.Position = positions[ch.ID]
			delete(positions, ch.ID)
			if err := tx.UpdateItem(ctx, ch); err != nil {
				return err
			}
		}
		if err := tx.SetPositions(ctx, positions); err != nil {
			return err
		}

		s.log.Debug("promoted header children",
			zap.String("header_id", it.ID), zap.Int("count", len(children)))
		return tx.DeleteItem(ctx, it.ID)
	})
}
