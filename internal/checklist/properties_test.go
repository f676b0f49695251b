package checklist_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/listo-app/listo/internal/checklist"
	"github.com/listo-app/listo/internal/model"
)

// TestRandomMutationsKeepGroupsOrdered runs a fixed pseudo-random sequence
// of mutations and checks the hierarchy after every step.
func TestRandomMutationsKeepGroupsOrdered(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	const listID = "fuzz"
	rng := rand.New(rand.NewSource(42))

	var seed []checklist.NewItem
	for i := 0; i < 4; i++ {
		seed = append(seed, checklist.NewItem{Content: fmt.Sprintf("# Group %d", i)})
		for j := 0; j < 3; j++ {
			seed = append(seed, checklist.NewItem{Content: fmt.Sprintf("Item %d.%d", i, j)})
		}
	}
	_, err := svc.AddItems(ctx, listID, seed)
	require.NoError(t, err)

	pick := func(items []model.Item) model.Item {
		return items[rng.Intn(len(items))]
	}

	for step := 0; step < 200; step++ {
		items, err := st.GetItems(ctx, listID)
		require.NoError(t, err)
		if len(items) < 2 {
			_, err := svc.AddItem(ctx, listID, checklist.NewItem{Content: fmt.Sprintf("Refill %d", step)})
			require.NoError(t, err)
			continue
		}

		it := pick(items)
		var opErr error
		switch op := rng.Intn(7); op {
		case 0:
			_, opErr = svc.Indent(ctx, it.ID)
		case 1:
			_, opErr = svc.Outdent(ctx, it.ID)
		case 2, 3:
			_, opErr = svc.Reorder(ctx, it.ID, pick(items).ID)
		case 4:
			in := checklist.NewItem{Content: fmt.Sprintf("Added %d", step)}
			if it.IsHeader() {
				in.ParentID = &it.ID
			}
			_, opErr = svc.AddItem(ctx, listID, in)
		case 5:
			opErr = svc.DeleteItem(ctx, it.ID)
		case 6:
			_, opErr = svc.MoveToRoot(ctx, it.ID)
		}
		require.NoError(t, opErr, "step %d", step)
		requireWellFormed(t, st, listID)
	}
}
