package checklist

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/store"
	"github.com/listo-app/listo/internal/tree"
)

// ApplyMode decides what happens to existing items when a generated item set
// is applied.
type ApplyMode string

const (
	// ApplyReplace treats the drafts as the complete new list. Existing items
	// missing from it are deleted and every group is renumbered in draft order.
	ApplyReplace ApplyMode = "replace"
	// ApplyAppend adds the new drafts after the existing items of their group
	// and leaves existing items alone.
	ApplyAppend ApplyMode = "append"
)

// ApplyResult summarizes an ApplyAI call. IDMap maps every placeholder id the
// model used to the id the item was stored under.
type ApplyResult struct {
	Created int               `json:"created"`
	Updated int               `json:"updated"`
	Deleted int               `json:"deleted"`
	IDMap   map[string]string `json:"id_map"`
}

// planned is a draft resolved against the current list.
type planned struct {
	item      model.Item
	existing  bool
	parentRef string
	position  int
	index     int
}

// ApplyAI writes a model-proposed item set to a list in one transaction.
//
// New headers are inserted before everything else so that drafts can refer
// to them by placeholder id. A parent that does not resolve to a header ends
// up at the root, and headers are always placed at the root.
func (s *Service) ApplyAI(ctx context.Context, listID string, drafts []model.Draft, mode ApplyMode) (*ApplyResult, error) {
	if mode != ApplyReplace && mode != ApplyAppend {
		return nil, invalidf("unknown apply mode %q", mode)
	}
	if _, err := s.EnsureList(ctx, listID); err != nil {
		return nil, err
	}

	res := &ApplyResult{IDMap: map[string]string{}}
	err := s.store.InTx(ctx, func(tx store.Store) error {
		snap, err := loadSnapshot(ctx, tx, listID)
		if err != nil {
			return err
		}

		plan, ids := s.resolve(snap, drafts, mode)
		for k, v := range ids {
			if model.IsPlaceholderID(k) {
				res.IDMap[k] = v
			}
		}

		assignPositions(snap, plan, mode)

		var headers, others []model.Item
		for _, p := range plan {
			if p.existing {
				continue
			}
			if p.item.IsHeader() {
				headers = append(headers, p.item)
			} else {
				others = append(others, p.item)
			}
		}
		if err := tx.CreateItems(ctx, headers); err != nil {
			return err
		}
		if err := tx.CreateItems(ctx, others); err != nil {
			return err
		}
		res.Created = len(headers) + len(others)

		kept := map[string]bool{}
		for _, p := range plan {
			if !p.existing {
				continue
			}
			kept[p.item.ID] = true
			if unchanged(snap.byID[p.item.ID], p.item) {
				continue
			}
			if err := tx.UpdateItem(ctx, p.item); err != nil {
				return err
			}
			res.Updated++
		}

		if mode == ApplyReplace {
			var gone []string
			for _, it := range snap.items {
				if !kept[it.ID] {
					gone = append(gone, it.ID)
				}
			}
			n, err := tx.DeleteItems(ctx, gone)
			if err != nil {
				return err
			}
			res.Deleted = int(n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("applied generated items",
		zap.String("list_id", listID),
		zap.String("mode", string(mode)),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("deleted", res.Deleted))
	return res, nil
}

// resolve turns drafts into items of the list. It returns the plan in draft
// order and the table from draft ids to stored ids.
func (s *Service) resolve(snap *snapshot, drafts []model.Draft, mode ApplyMode) ([]planned, map[string]string) {
	ids := map[string]string{}
	var plan []planned

	for i, d := range drafts {
		content := strings.TrimSpace(d.Content)
		if content == "" {
			continue
		}
		draftID := strings.TrimSpace(d.ID)
		if _, dup := ids[draftID]; dup && draftID != "" {
			continue
		}

		p := planned{position: d.Position, index: i}
		if d.ParentID != nil {
			p.parentRef = strings.TrimSpace(*d.ParentID)
		}

		if cur, ok := snap.byID[draftID]; ok && !model.IsPlaceholderID(draftID) {
			if mode == ApplyAppend {
				continue
			}
			p.item = cur
			p.existing = true
		} else {
			p.item = model.Item{ID: uuid.New().String(), ListID: snap.listID}
		}
		p.item.Content = content
		if d.Completed != nil {
			p.item.Completed = *d.Completed
		}
		if p.item.IsHeader() {
			p.item.Completed = false
		}
		if draftID != "" {
			ids[draftID] = p.item.ID
		}
		plan = append(plan, p)
	}

	// Whether each id a parent may point at is a header once applied.
	header := map[string]bool{}
	if mode == ApplyAppend {
		for _, it := range snap.items {
			header[it.ID] = it.IsHeader()
		}
	}
	for _, p := range plan {
		header[p.item.ID] = p.item.IsHeader()
	}

	for i := range plan {
		p := &plan[i]
		p.item.ParentID = nil
		if p.item.IsHeader() || p.parentRef == "" {
			continue
		}
		pid := p.parentRef
		if mapped, ok := ids[pid]; ok {
			pid = mapped
		}
		if pid != p.item.ID && header[pid] {
			p.item.ParentID = model.StringPtr(pid)
		}
	}
	return plan, ids
}

// assignPositions gives every planned item its position. In replace mode each
// group is numbered from zero in draft order; in append mode new items follow
// the existing members of their group.
func assignPositions(snap *snapshot, plan []planned, mode ApplyMode) {
	groups := map[string][]*planned{}
	var keys []string
	for i := range plan {
		p := &plan[i]
		if mode == ApplyAppend && p.existing {
			continue
		}
		g := p.item.Parent()
		if _, ok := groups[g]; !ok {
			keys = append(keys, g)
		}
		groups[g] = append(groups[g], p)
	}

	for _, g := range keys {
		members := groups[g]
		sort.SliceStable(members, func(i, j int) bool {
			if members[i].position != members[j].position {
				return members[i].position < members[j].position
			}
			return members[i].index < members[j].index
		})

		next := 0
		if mode == ApplyAppend {
			next = tree.NextPosition(snap.group(g))
		}
		for _, p := range members {
			p.item.Position = next
			next++
		}
	}
}

func unchanged(before, after model.Item) bool {
	return before.Content == after.Content &&
		before.Completed == after.Completed &&
		before.Parent() == after.Parent() &&
		before.Position == after.Position
}
