package tree

import "github.com/listo-app/listo/internal/model"

// Placement is the outcome of placing one item into a sibling group.
// Shifts holds the siblings that had to move to make room, keyed by id.
type Placement struct {
	Position int
	Shifts   map[string]int
}

// NextPosition returns the position that appends an item to group:
// one past the largest position, or 0 for an empty group.
func NextPosition(group []model.Item) int {
	if len(group) == 0 {
		return 0
	}
	max := group[0].Position
	for _, it := range group[1:] {
		if it.Position > max {
			max = it.Position
		}
	}
	return max + 1
}

// PlaceAt computes the position for an item inserted at index of group.
// group must be in display order and must not contain the item being placed.
//
// The item lands strictly between its new neighbours. At the head it takes
// min-1 and at the tail max+1. When the neighbours leave no integer gap the
// shortest run of following siblings is pushed up by one; nothing else is
// renumbered.
func PlaceAt(group []model.Item, index int) Placement {
	n := len(group)
	if index < 0 {
		index = 0
	}
	if index > n {
		index = n
	}

	switch {
	case n == 0:
		return Placement{Position: 0}
	case index == 0:
		return Placement{Position: group[0].Position - 1}
	case index == n:
		return Placement{Position: group[n-1].Position + 1}
	}

	prev := group[index-1].Position
	next := group[index].Position
	if next-prev > 1 {
		return Placement{Position: prev + (next-prev)/2}
	}

	pos := prev + 1
	shifts := map[string]int{}
	last := pos
	for _, sib := range group[index:] {
		if sib.Position > last {
			break
		}
		last++
		shifts[sib.ID] = last
	}
	return Placement{Position: pos, Shifts: shifts}
}

// Renumber assigns positions 0..n-1 to ordered and returns only the items
// whose position changes.
func Renumber(ordered []model.Item) map[string]int {
	out := map[string]int{}
	for i, it := range ordered {
		if it.Position != i {
			out[it.ID] = i
		}
	}
	return out
}

// IndexOf returns the index of id in items, or -1.
func IndexOf(items []model.Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Without returns a copy of items with id removed.
func Without(items []model.Item, id string) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// StrictlyOrdered reports whether positions increase strictly along items.
func StrictlyOrdered(items []model.Item) bool {
	for i := 1; i < len(items); i++ {
		if items[i].Position <= items[i-1].Position {
			return false
		}
	}
	return true
}
