package tree

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listo-app/listo/internal/model"
)

func item(id, content, parent string, pos int) model.Item {
	return model.Item{
		ID:        id,
		ListID:    "list1",
		Content:   content,
		ParentID:  model.StringPtr(parent),
		Position:  pos,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// shape renders a tree as "id" for roots and "parent/child" for children.
func shape(nodes []Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Item.ID)
		for _, ch := range n.Children {
			out = append(out, n.Item.ID+"/"+ch.Item.ID)
		}
	}
	return out
}

func TestBuild(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		nodes := Build(nil)
		require.NotNil(t, nodes)
		assert.Empty(t, nodes)
	})

	t.Run("nests children under headers in position order", func(t *testing.T) {
		items := []model.Item{
			item("apples", "Apples", "produce", 2),
			item("loose", "Batteries", "", 1),
			item("bananas", "Bananas", "produce", 1),
			item("produce", "#Produce", "", 0),
		}
		got := shape(Build(items))
		want := []string{"produce", "produce/bananas", "produce/apples", "loose"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("tree mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unresolvable parents degrade to root", func(t *testing.T) {
		items := []model.Item{
			item("plain", "Bread", "", 0),
			item("orphan", "Eggs", "missing", 1),
			item("under-plain", "Butter", "plain", 2),
		}
		got := shape(Build(items))
		want := []string{"plain", "orphan", "under-plain"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("tree mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("headers never nest", func(t *testing.T) {
		items := []model.Item{
			item("a", "#A", "", 0),
			item("b", "#B", "a", 1),
		}
		assert.Equal(t, []string{"a", "b"}, shape(Build(items)))
	})

	t.Run("equal positions fall back to creation time then id", func(t *testing.T) {
		later := item("x", "X", "", 0)
		later.CreatedAt = later.CreatedAt.Add(time.Minute)
		items := []model.Item{later, item("b", "B", "", 0), item("a", "A", "", 0)}
		assert.Equal(t, []string{"a", "b", "x"}, shape(Build(items)))
	})

	t.Run("every item appears exactly once", func(t *testing.T) {
		items := []model.Item{
			item("h1", "#One", "", 0),
			item("c1", "c1", "h1", 0),
			item("h2", "#Two", "", 3),
			item("c2", "c2", "h2", 5),
			item("c3", "c3", "h1", 1),
			item("r1", "r1", "", 1),
			item("o1", "o1", "gone", 2),
		}
		flat := Flatten(Build(items))
		require.Len(t, flat, len(items))
		seen := map[string]int{}
		for _, it := range flat {
			seen[it.ID]++
		}
		for _, it := range items {
			assert.Equal(t, 1, seen[it.ID], it.ID)
		}
	})
}

func TestGroup(t *testing.T) {
	items := []model.Item{
		item("h", "#H", "", 0),
		item("c2", "c2", "h", 4),
		item("c1", "c1", "h", 2),
		item("r", "r", "", 1),
		item("o", "o", "nope", 2),
	}
	ids := func(items []model.Item) []string {
		var out []string
		for _, it := range items {
			out = append(out, it.ID)
		}
		return out
	}
	assert.Equal(t, []string{"h", "r", "o"}, ids(Group(items, "")))
	assert.Equal(t, []string{"c1", "c2"}, ids(Group(items, "h")))
	assert.Empty(t, Group(items, "r"))
}

func TestCount(t *testing.T) {
	items := []model.Item{
		item("h", "#H", "", 0),
		{ID: "a", Content: "a", Completed: true},
		{ID: "b", Content: "b"},
		{ID: "hc", Content: "#done header", Completed: true},
	}
	assert.Equal(t, Counts{Total: 2, Completed: 1, Headers: 2}, Count(items))
}
