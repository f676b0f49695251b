package checklist

import (
	"context"

	"go.uber.org/zap"

	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/store"
	"github.com/listo-app/listo/internal/tree"
)

// place moves it into the group of parentID at index and writes the item
// and any siblings that had to shift.
func place(ctx context.Context, tx store.Store, it model.Item, parentID string, group []model.Item, index int) (model.Item, error) {
	_, changes := insertAt(tree.Without(group, it.ID), it, index)

	it.ParentID = model.StringPtr(parentID)
	it.Position = changes[it.ID]
	delete(changes, it.ID)

	if err := tx.UpdateItem(ctx, it); err != nil {
		return model.Item{}, err
	}
	if err := tx.SetPositions(ctx, changes); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// appendTo moves it to the end of the group of parentID.
func appendTo(ctx context.Context, tx store.Store, snap *snapshot, it model.Item, parentID string) (model.Item, error) {
	group := tree.Without(snap.group(parentID), it.ID)
	it.ParentID = model.StringPtr(parentID)
	it.Position = tree.NextPosition(group)
	if err := tx.UpdateItem(ctx, it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// Indent nests a root item under the closest header above it. Headers,
// nested items and root items with no header above them are returned
// unchanged.
func (s *Service) Indent(ctx context.Context, itemID string) (*model.Item, error) {
	var out model.Item
	err := s.store.InTx(ctx, func(tx store.Store) error {
		it, snap, err := loadItemSnapshot(ctx, tx, itemID)
		if err != nil {
			return err
		}
		out = it
		if it.IsHeader() || snap.parentOf(it) != "" {
			return nil
		}

		roots := snap.group("")
		header := ""
		for i := tree.IndexOf(roots, it.ID) - 1; i >= 0; i-- {
			if roots[i].IsHeader() {
				header = roots[i].ID
				break
			}
		}
		if header == "" {
			return nil
		}

		out, err = appendTo(ctx, tx, snap, it, header)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Outdent moves a nested item to the root, directly below the header it was
// grouped under.
func (s *Service) Outdent(ctx context.Context, itemID string) (*model.Item, error) {
	var out model.Item
	err := s.store.InTx(ctx, func(tx store.Store) error {
		it, snap, err := loadItemSnapshot(ctx, tx, itemID)
		if err != nil {
			return err
		}
		out = it

		header := snap.parentOf(it)
		if header == "" {
			// Already shown at the root; drop a stale parent reference if any.
			if it.IsRoot() {
				return nil
			}
			it.ParentID = nil
			out = it
			return tx.UpdateItem(ctx, it)
		}

		roots := snap.group("")
		out, err = place(ctx, tx, it, "", roots, tree.IndexOf(roots, header)+1)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Move puts an item at the end of a header's group, or at the end of the
// root group when parentID is empty.
func (s *Service) Move(ctx context.Context, itemID, parentID string) (*model.Item, error) {
	var out model.Item
	err := s.store.InTx(ctx, func(tx store.Store) error {
		it, snap, err := loadItemSnapshot(ctx, tx, itemID)
		if err != nil {
			return err
		}
		out = it

		if parentID != "" {
			if it.IsHeader() {
				return invalidf("headers cannot be nested")
			}
			if !snap.isHeader(parentID) {
				return invalidf("parent %s is not a header of this list", parentID)
			}
		}
		if snap.parentOf(it) == parentID && it.Parent() == parentID {
			return nil
		}

		out, err = appendTo(ctx, tx, snap, it, parentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MoveToGroup moves an item to the end of a header's group.
func (s *Service) MoveToGroup(ctx context.Context, itemID, headerID string) (*model.Item, error) {
	if headerID == "" {
		return nil, invalidf("header id must not be empty")
	}
	return s.Move(ctx, itemID, headerID)
}

// MoveToRoot moves an item to the end of the root group.
func (s *Service) MoveToRoot(ctx context.Context, itemID string) (*model.Item, error) {
	return s.Move(ctx, itemID, "")
}

// Reorder handles dropping activeID onto targetID. The active item lands
// after the target when it was above it and before the target when it was
// below. Headers stay at the root and are positioned relative to the
// target's header. An item dragged down onto a header becomes that header's
// first child.
func (s *Service) Reorder(ctx context.Context, activeID, targetID string) (*model.Item, error) {
	var out model.Item
	err := s.store.InTx(ctx, func(tx store.Store) error {
		active, snap, err := loadItemSnapshot(ctx, tx, activeID)
		if err != nil {
			return err
		}
		out = active
		if activeID == targetID {
			return nil
		}
		target, ok := snap.byID[targetID]
		if !ok {
			return invalidf("item %s is not in list %s", targetID, snap.listID)
		}

		order := snap.display()
		down := tree.IndexOf(order, active.ID) < tree.IndexOf(order, target.ID)

		var (
			parent string
			group  []model.Item
			index  int
		)
		switch {
		case active.IsHeader():
			anchor := snap.parentOf(target)
			if anchor == "" {
				anchor = target.ID
			}
			if anchor == active.ID {
				return nil
			}
			group = tree.Without(snap.group(""), active.ID)
			index = tree.IndexOf(group, anchor)
			if down {
				index++
			}

		case down && target.IsHeader():
			parent = target.ID
			group = tree.Without(snap.group(parent), active.ID)
			index = 0

		default:
			parent = snap.parentOf(target)
			group = tree.Without(snap.group(parent), active.ID)
			index = tree.IndexOf(group, target.ID)
			if down {
				index++
			}
		}

		out, err = place(ctx, tx, active, parent, group, index)
		if err != nil {
			return err
		}
		s.log.Debug("reordered item",
			zap.String("item_id", active.ID),
			zap.String("target_id", target.ID),
			zap.Bool("down", down))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
