package templates

import (
	"github.com/google/uuid"

	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/tree"
)

// NewItemID is the id generator used for copied items.
func NewItemID() string {
	return uuid.New().String()
}

// CopyItems deep-copies src into listID. Every item gets a fresh id from
// newID and starts uncompleted; positions are kept as they are.
//
// Headers are copied in a first pass so the parent of every child can be
// translated to the new header id. A child whose parent was not copied as a
// header becomes a root item. The result is in display order, headers
// before the items that reference them.
func CopyItems(src []model.Item, listID string, newID func() string) []model.Item {
	if newID == nil {
		newID = NewItemID
	}
	ordered := tree.DisplayOrder(src)

	remap := make(map[string]string)
	out := make([]model.Item, 0, len(ordered))
	for _, it := range ordered {
		if !it.IsHeader() {
			continue
		}
		id := newID()
		remap[it.ID] = id
		out = append(out, model.Item{
			ID:       id,
			ListID:   listID,
			Content:  it.Content,
			Position: it.Position,
		})
	}

	for _, it := range ordered {
		if it.IsHeader() {
			continue
		}
		cp := model.Item{
			ID:       newID(),
			ListID:   listID,
			Content:  it.Content,
			Position: it.Position,
		}
		if pid, ok := remap[it.Parent()]; ok {
			cp.ParentID = &pid
		}
		out = append(out, cp)
	}
	return out
}

// fromDrafts turns generated drafts into the items of a new list. Positions
// follow the draft order, which keeps every group strictly ordered.
func fromDrafts(drafts []model.Draft, listID string) []model.Item {
	src := make([]model.Item, 0, len(drafts))
	for i, d := range drafts {
		id := d.ID
		if id == "" {
			id = NewItemID()
		}
		src = append(src, model.Item{
			ID:       id,
			Content:  d.Content,
			ParentID: d.ParentID,
			Position: i,
		})
	}
	return CopyItems(src, listID, nil)
}
