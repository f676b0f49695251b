package httpapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listo-app/listo/internal/checklist"
	"github.com/listo-app/listo/internal/model"
)

func TestHealth(t *testing.T) {
	e := newEnv(t, nil)
	rec := e.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListLifecycle(t *testing.T) {
	e := newEnv(t, nil)

	rec := e.do(http.MethodGet, "/api/lists/groceries", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decodeBody[checklist.View](t, rec)
	assert.Equal(t, "groceries", view.List.ID)
	assert.Empty(t, view.Items)

	rec = e.do(http.MethodPatch, "/api/lists/groceries", map[string]interface{}{"title": "Groceries", "compact": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	list := decodeBody[model.List](t, rec)
	assert.Equal(t, "Groceries", list.Title)
	assert.True(t, list.Compact)

	rec = e.do(http.MethodPost, "/api/lists/groceries/items", map[string]string{"content": "# Dairy"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	header := decodeBody[model.Item](t, rec)
	assert.True(t, header.IsHeader())

	rec = e.do(http.MethodPost, "/api/lists/groceries/items", map[string]interface{}{
		"items": []map[string]interface{}{
			{"content": "Milk", "parent_id": header.ID},
			{"content": "Bread"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[struct {
		Items []model.Item `json:"items"`
	}](t, rec)
	require.Len(t, created.Items, 2)

	rec = e.do(http.MethodGet, "/api/lists/groceries", nil)
	view = decodeBody[checklist.View](t, rec)
	assert.Equal(t, []string{"# Dairy", "  Milk", "Bread"}, contents(view))
	assert.Equal(t, 2, view.Counts.Total)
}

func TestListValidation(t *testing.T) {
	e := newEnv(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"malformed list id", http.MethodGet, "/api/lists/bad%20id", nil},
		{"empty item", http.MethodPost, "/api/lists/l1/items", map[string]string{"content": " "}},
		{"no content", http.MethodPost, "/api/lists/l1/items", map[string]string{}},
		{"both shapes", http.MethodPost, "/api/lists/l1/items", map[string]interface{}{
			"content": "a", "items": []map[string]string{{"content": "b"}},
		}},
		{"unknown field", http.MethodPost, "/api/lists/l1/items", map[string]string{"text": "a"}},
		{"broken json", http.MethodPost, "/api/lists/l1/items", "{"},
		{"non-header parent", http.MethodPost, "/api/lists/l1/items", map[string]string{"content": "a", "parent_id": "nope"}},
		{"unknown action", http.MethodPost, "/api/lists/l1/actions", map[string]string{"action": "explode"}},
		{"bad sort scope", http.MethodPost, "/api/lists/l1/actions", map[string]string{"action": "sort", "scope": "nope"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := e.do(tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			body := decodeBody[errorResponse](t, rec)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestListActions(t *testing.T) {
	e := newEnv(t, nil)

	for _, c := range []string{"pear", "apple", "fig"} {
		rec := e.do(http.MethodPost, "/api/lists/l1/items", map[string]string{"content": c})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	type actionResponse struct {
		Affected int64          `json:"affected"`
		List     checklist.View `json:"list"`
	}

	rec := e.do(http.MethodPost, "/api/lists/l1/actions", map[string]string{"action": "sort"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[actionResponse](t, rec)
	assert.Equal(t, []string{"apple", "fig", "pear"}, contents(res.List))

	rec = e.do(http.MethodPost, "/api/lists/l1/actions", map[string]string{"action": "complete-all"})
	require.Equal(t, http.StatusOK, rec.Code)
	res = decodeBody[actionResponse](t, rec)
	assert.Equal(t, int64(3), res.Affected)
	assert.Equal(t, 3, res.List.Counts.Completed)

	rec = e.do(http.MethodPost, "/api/lists/l1/actions", map[string]string{"action": "uncomplete-all"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), decodeBody[actionResponse](t, rec).Affected)

	fig := res.List.Items[1].Item
	rec = e.do(http.MethodPost, "/api/items/"+fig.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(http.MethodPost, "/api/lists/l1/actions", map[string]string{"action": "clear-completed"})
	require.Equal(t, http.StatusOK, rec.Code)
	res = decodeBody[actionResponse](t, rec)
	assert.Equal(t, int64(1), res.Affected)
	assert.Equal(t, []string{"apple", "pear"}, contents(res.List))

	rec = e.do(http.MethodPost, "/api/lists/l1/actions", map[string]string{"action": "ungroup"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(http.MethodPost, "/api/lists/l1/actions", map[string]string{"action": "nuke"})
	require.Equal(t, http.StatusOK, rec.Code)
	res = decodeBody[actionResponse](t, rec)
	assert.Equal(t, int64(2), res.Affected)
	assert.Empty(t, res.List.Items)
}
