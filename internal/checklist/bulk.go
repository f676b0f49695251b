package checklist

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/store"
	"github.com/listo-app/listo/internal/tree"
)

// SortScope selects what Sort rearranges.
type SortScope string

const (
	// SortGroups sorts items inside each group and moves loose root items
	// above the headers. Headers keep their relative order.
	SortGroups SortScope = "groups"
	// SortAll does what SortGroups does and also sorts the headers.
	SortAll SortScope = "all"
)

// ParseSortScope maps a client value to a scope. The empty string means
// SortGroups.
func ParseSortScope(v string) (SortScope, error) {
	switch SortScope(strings.ToLower(strings.TrimSpace(v))) {
	case "", SortGroups:
		return SortGroups, nil
	case SortAll:
		return SortAll, nil
	}
	return "", invalidf("unknown sort scope %q", v)
}

// CompleteAll marks every checkable item of a list completed and returns how
// many changed.
func (s *Service) CompleteAll(ctx context.Context, listID string) (int64, error) {
	return s.store.SetCompletedAll(ctx, listID, true)
}

// UncompleteAll clears the completed flag on every checkable item.
func (s *Service) UncompleteAll(ctx context.Context, listID string) (int64, error) {
	return s.store.SetCompletedAll(ctx, listID, false)
}

// ClearCompleted deletes completed items. Headers are never removed and the
// remaining items keep their positions.
func (s *Service) ClearCompleted(ctx context.Context, listID string) (int64, error) {
	n, err := s.store.DeleteCompletedItems(ctx, listID)
	if err != nil {
		return 0, err
	}
	s.log.Debug("cleared completed items", zap.String("list_id", listID), zap.Int64("count", n))
	return n, nil
}

// Nuke deletes every item of a list. The list itself is kept.
func (s *Service) Nuke(ctx context.Context, listID string) (int64, error) {
	n, err := s.store.DeleteListItems(ctx, listID)
	if err != nil {
		return 0, err
	}
	s.log.Info("nuked list", zap.String("list_id", listID), zap.Int64("count", n))
	return n, nil
}

// Sort orders items alphabetically, case-insensitively.
func (s *Service) Sort(ctx context.Context, listID string, scope SortScope) error {
	if scope != SortGroups && scope != SortAll {
		return invalidf("unknown sort scope %q", scope)
	}
	return s.store.InTx(ctx, func(tx store.Store) error {
		snap, err := loadSnapshot(ctx, tx, listID)
		if err != nil {
			return err
		}

		var loose, headers []model.Item
		for _, it := range snap.group("") {
			if it.IsHeader() {
				headers = append(headers, it)
			} else {
				loose = append(loose, it)
			}
		}
		alphabetize(loose)
		if scope == SortAll {
			alphabetize(headers)
		}

		positions := tree.Renumber(append(loose, headers...))
		for _, h := range headers {
			children := snap.group(h.ID)
			alphabetize(children)
			for id, p := range tree.Renumber(children) {
				positions[id] = p
			}
		}
		return tx.SetPositions(ctx, positions)
	})
}

// alphabetize sorts items by content, ignoring case and the header marker.
// Ties keep display order.
func alphabetize(items []model.Item) {
	key := func(it model.Item) string {
		if it.IsHeader() {
			return strings.ToLower(it.HeaderTitle())
		}
		return strings.ToLower(strings.TrimSpace(it.Content))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return key(items[i]) < key(items[j])
	})
}

// UngroupAll removes every header. Their items move to the root, and the
// whole list keeps its current display order.
func (s *Service) UngroupAll(ctx context.Context, listID string) error {
	return s.store.InTx(ctx, func(tx store.Store) error {
		snap, err := loadSnapshot(ctx, tx, listID)
		if err != nil {
			return err
		}

		var headers []string
		pos := 0
		for _, it := range snap.display() {
			if it.IsHeader() {
				headers = append(headers, it.ID)
				continue
			}
			if it.IsRoot() && it.Position == pos {
				pos++
				continue
			}
			it.ParentID = nil
			it.Position = pos
			if err := tx.UpdateItem(ctx, it); err != nil {
				return err
			}
			pos++
		}

		if _, err := tx.DeleteItems(ctx, headers); err != nil {
			return err
		}
		s.log.Debug("ungrouped list", zap.String("list_id", listID), zap.Int("headers", len(headers)))
		return nil
	})
}
