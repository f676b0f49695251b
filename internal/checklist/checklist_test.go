package checklist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/listo-app/listo/internal/checklist"
	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/store"
	"github.com/listo-app/listo/internal/tree"
	"github.com/listo-app/listo/tests/testutil"
)

func newService(t *testing.T) (*checklist.Service, *store.SQLStore) {
	t.Helper()
	st := testutil.NewTestStore(t)
	return checklist.New(st, nil), st
}

// outline renders a list in display order, children indented by two spaces.
func outline(t *testing.T, st store.Store, listID string) []string {
	t.Helper()
	items, err := st.GetItems(context.Background(), listID)
	require.NoError(t, err)

	out := []string{}
	for _, n := range tree.Build(items) {
		out = append(out, n.Item.Content)
		for _, ch := range n.Children {
			out = append(out, "  "+ch.Item.Content)
		}
	}
	return out
}

// requireWellFormed checks that every group is strictly ordered, headers sit
// at the root and every parent is a header of the list.
func requireWellFormed(t *testing.T, st store.Store, listID string) {
	t.Helper()
	items, err := st.GetItems(context.Background(), listID)
	require.NoError(t, err)

	byID := map[string]model.Item{}
	for _, it := range items {
		byID[it.ID] = it
	}
	for _, it := range items {
		if it.IsRoot() {
			continue
		}
		require.False(t, it.IsHeader(), "header %q has a parent", it.Content)
		parent, ok := byID[it.Parent()]
		require.True(t, ok, "item %q has a dangling parent", it.Content)
		require.True(t, parent.IsHeader(), "item %q is nested under a non-header", it.Content)
	}

	roots := tree.Group(items, "")
	require.True(t, tree.StrictlyOrdered(roots), "root group not strictly ordered")
	for _, r := range roots {
		if r.IsHeader() {
			require.True(t, tree.StrictlyOrdered(tree.Group(items, r.ID)),
				"group %q not strictly ordered", r.Content)
		}
	}
}

func positions(t *testing.T, st store.Store, listID string, ids map[string]string, keys ...string) []int {
	t.Helper()
	byKey := testutil.ItemsByKey(t, st, listID, ids)
	out := make([]int, 0, len(keys))
	for _, k := range keys {
		it, ok := byKey[k]
		require.True(t, ok, "missing item %s", k)
		out = append(out, it.Position)
	}
	return out
}
