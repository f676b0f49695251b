// Package tree turns the flat, position-ordered item rows of a list into the
// one-level nested view and plans position changes for mutations on it.
package tree

import (
	"sort"

	"github.com/listo-app/listo/internal/model"
)

// Node is an item together with its ordered children. Only headers have
// children.
type Node struct {
	Item     model.Item `json:"item"`
	Children []Node     `json:"children"`
}

// Build nests items under their headers. An item whose parent does not
// resolve to a header of the given set is placed at the root. Roots and
// every children slice are sorted in display order. The input is not
// modified.
func Build(items []model.Item) []Node {
	headers := make(map[string]bool, len(items))
	for _, it := range items {
		if it.IsHeader() {
			headers[it.ID] = true
		}
	}

	var roots []model.Item
	children := map[string][]model.Item{}
	for _, it := range items {
		pid := it.Parent()
		if pid == "" || !headers[pid] || pid == it.ID || it.IsHeader() {
			roots = append(roots, it)
			continue
		}
		children[pid] = append(children[pid], it)
	}

	SortItems(roots)
	out := make([]Node, 0, len(roots))
	for _, it := range roots {
		n := Node{Item: it, Children: []Node{}}
		kids := children[it.ID]
		SortItems(kids)
		for _, ch := range kids {
			n.Children = append(n.Children, Node{Item: ch, Children: []Node{}})
		}
		out = append(out, n)
	}
	return out
}

// Flatten returns the items of a built tree in display order: each root
// followed by its children.
func Flatten(nodes []Node) []model.Item {
	var out []model.Item
	for _, n := range nodes {
		out = append(out, n.Item)
		for _, ch := range n.Children {
			out = append(out, ch.Item)
		}
	}
	return out
}

// DisplayOrder is Flatten(Build(items)).
func DisplayOrder(items []model.Item) []model.Item {
	return Flatten(Build(items))
}

// SortItems sorts items in place by position, then creation time, then id.
func SortItems(items []model.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return Less(items[i], items[j])
	})
}

// Less is the display-order comparator.
func Less(a, b model.Item) bool {
	if a.Position != b.Position {
		return a.Position < b.Position
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// Group returns the items of the sibling group identified by parentID ("" for
// root), as the tree builder would place them, in display order.
func Group(items []model.Item, parentID string) []model.Item {
	nodes := Build(items)
	if parentID == "" {
		out := make([]model.Item, 0, len(nodes))
		for _, n := range nodes {
			out = append(out, n.Item)
		}
		return out
	}
	for _, n := range nodes {
		if n.Item.ID != parentID {
			continue
		}
		out := make([]model.Item, 0, len(n.Children))
		for _, ch := range n.Children {
			out = append(out, ch.Item)
		}
		return out
	}
	return nil
}

// Counts is the progress summary of a list.
type Counts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Headers   int `json:"headers"`
}

// Count tallies checkable and completed items. Headers are counted
// separately and never contribute to progress.
func Count(items []model.Item) Counts {
	var c Counts
	for _, it := range items {
		if it.IsHeader() {
			c.Headers++
			continue
		}
		c.Total++
		if it.Completed {
			c.Completed++
		}
	}
	return c
}
