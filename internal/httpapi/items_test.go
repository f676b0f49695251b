package httpapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listo-app/listo/internal/checklist"
	"github.com/listo-app/listo/internal/model"
)

func addItem(t *testing.T, e *env, listID, content string, parent *string) model.Item {
	t.Helper()
	body := map[string]interface{}{"content": content}
	if parent != nil {
		body["parent_id"] = *parent
	}
	rec := e.do(http.MethodPost, "/api/lists/"+listID+"/items", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[model.Item](t, rec)
}

func getList(t *testing.T, e *env, listID string) checklist.View {
	t.Helper()
	rec := e.do(http.MethodGet, "/api/lists/"+listID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[checklist.View](t, rec)
}

func TestItemRoutes(t *testing.T) {
	e := newEnv(t, nil)

	h := addItem(t, e, "trip", "# Bags", nil)
	a := addItem(t, e, "trip", "Backpack", nil)
	b := addItem(t, e, "trip", "Tent", nil)

	rec := e.do(http.MethodPost, "/api/items/"+a.ID+"/indent", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, h.ID, decodeBody[model.Item](t, rec).Parent())

	rec = e.do(http.MethodPost, "/api/items/"+b.ID+"/move", map[string]string{"parent_id": h.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"# Bags", "  Backpack", "  Tent"}, contents(getList(t, e, "trip")))

	rec = e.do(http.MethodPost, "/api/items/"+b.ID+"/reorder", map[string]string{"target_id": a.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"# Bags", "  Tent", "  Backpack"}, contents(getList(t, e, "trip")))

	rec = e.do(http.MethodPost, "/api/items/"+a.ID+"/outdent", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"# Bags", "  Tent", "Backpack"}, contents(getList(t, e, "trip")))

	rec = e.do(http.MethodPost, "/api/items/"+b.ID+"/move", map[string]interface{}{"parent_id": nil})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decodeBody[model.Item](t, rec).IsRoot())

	rec = e.do(http.MethodPatch, "/api/items/"+a.ID, map[string]interface{}{"content": "Big backpack", "completed": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeBody[model.Item](t, rec)
	assert.Equal(t, "Big backpack", got.Content)
	assert.True(t, got.Completed)

	rec = e.do(http.MethodDelete, "/api/items/"+h.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"Big backpack", "Tent"}, contents(getList(t, e, "trip")))
}

func TestItemErrors(t *testing.T) {
	e := newEnv(t, nil)
	h := addItem(t, e, "trip", "# Bags", nil)
	a := addItem(t, e, "trip", "Backpack", &h.ID)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"toggle missing", http.MethodPost, "/api/items/missing/toggle", nil, http.StatusNotFound},
		{"toggle header", http.MethodPost, "/api/items/" + h.ID + "/toggle", nil, http.StatusBadRequest},
		{"complete header", http.MethodPatch, "/api/items/" + h.ID, map[string]bool{"completed": true}, http.StatusBadRequest},
		{"delete missing", http.MethodDelete, "/api/items/missing", nil, http.StatusNotFound},
		{"patch missing", http.MethodPatch, "/api/items/missing", map[string]string{"content": "x"}, http.StatusNotFound},
		{"patch nothing", http.MethodPatch, "/api/items/" + a.ID, map[string]string{}, http.StatusBadRequest},
		{"nested header", http.MethodPatch, "/api/items/" + a.ID, map[string]string{"content": "# Sub"}, http.StatusBadRequest},
		{"move header under header", http.MethodPost, "/api/items/" + h.ID + "/move", map[string]string{"parent_id": h.ID}, http.StatusBadRequest},
		{"reorder without target", http.MethodPost, "/api/items/" + a.ID + "/reorder", map[string]string{}, http.StatusBadRequest},
		{"reorder missing", http.MethodPost, "/api/items/missing/reorder", map[string]string{"target_id": a.ID}, http.StatusNotFound},
		{"wrong method", http.MethodGet, "/api/items/" + a.ID + "/toggle", nil, http.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := e.do(tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}
