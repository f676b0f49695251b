package httpapi_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listo-app/listo/internal/ai/aitest"
	"github.com/listo-app/listo/internal/checklist"
	"github.com/listo-app/listo/internal/model"
)

type aiResponse struct {
	Result      *checklist.ApplyResult `json:"result"`
	Suggestions []model.Draft          `json:"suggestions"`
	List        checklist.View         `json:"list"`
}

func strp(s string) *string { return &s }

func TestAIGenerate(t *testing.T) {
	fake := &aitest.Fake{Drafts: []model.Draft{
		{ID: "new_1", Content: "# Snacks"},
		{ID: "new_2", Content: "Chips", ParentID: strp("new_1")},
	}}
	e := newEnv(t, fake)
	addItem(t, e, "party", "Cups", nil)

	rec := e.do(http.MethodPost, "/api/ai", map[string]string{"action": "generate", "list_id": "party", "prompt": "snacks"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[aiResponse](t, rec)
	require.NotNil(t, res.Result)
	assert.Equal(t, 2, res.Result.Created)
	assert.Contains(t, res.Result.IDMap, "new_1")
	assert.Equal(t, []string{"Cups", "# Snacks", "  Chips"}, contents(res.List))
	assert.Equal(t, []string{"generate:snacks"}, fake.Calls())
}

func TestAIManipulate(t *testing.T) {
	fake := &aitest.Fake{}
	e := newEnv(t, fake)
	cups := addItem(t, e, "party", "cups", nil)
	addItem(t, e, "party", "plates", nil)

	fake.Drafts = []model.Draft{
		{ID: "new_1", Content: "# Tableware", Position: 0},
		{ID: cups.ID, Content: "Cups", ParentID: strp("new_1"), Position: 0},
	}
	rec := e.do(http.MethodPost, "/api/ai", map[string]string{"action": "manipulate", "list_id": "party", "instruction": "group it"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[aiResponse](t, rec)
	assert.Equal(t, 1, res.Result.Created)
	assert.Equal(t, 1, res.Result.Updated)
	assert.Equal(t, 1, res.Result.Deleted)
	assert.Equal(t, []string{"# Tableware", "  Cups"}, contents(res.List))

	// An empty answer never wipes the list.
	fake.Drafts = nil
	rec = e.do(http.MethodPost, "/api/ai", map[string]string{"action": "manipulate", "list_id": "party", "instruction": "oops"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeBody[errorResponse](t, rec).Error)
	assert.Equal(t, []string{"# Tableware", "  Cups"}, contents(getList(t, e, "party")))
}

func TestAISuggestAndDictation(t *testing.T) {
	fake := &aitest.Fake{Drafts: []model.Draft{{ID: "new_1", Content: "Napkins"}}}
	e := newEnv(t, fake)
	addItem(t, e, "party", "Cups", nil)

	rec := e.do(http.MethodPost, "/api/ai", map[string]string{"action": "suggest", "list_id": "party"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[aiResponse](t, rec)
	require.Len(t, res.Suggestions, 1)
	assert.Nil(t, res.Result)
	assert.Equal(t, []string{"Cups"}, contents(res.List), "suggestions are not applied")

	rec = e.do(http.MethodPost, "/api/ai", map[string]string{"action": "dictation", "list_id": "party", "text": "and napkins"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res = decodeBody[aiResponse](t, rec)
	assert.Equal(t, []string{"Cups", "Napkins"}, contents(res.List))
	assert.Equal(t, []string{"suggest:1", "dictate:and napkins"}, fake.Calls())
}

func TestAIErrors(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		e := newEnv(t, nil)
		rec := e.do(http.MethodPost, "/api/ai", map[string]string{"action": "generate", "list_id": "l", "prompt": "x"})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("upstream failure", func(t *testing.T) {
		e := newEnv(t, &aitest.Fake{Err: errors.New("quota exceeded")})
		rec := e.do(http.MethodPost, "/api/ai", map[string]string{"action": "generate", "list_id": "l", "prompt": "x"})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal error", decodeBody[errorResponse](t, rec).Error)
	})

	t.Run("validation", func(t *testing.T) {
		e := newEnv(t, &aitest.Fake{})
		for _, body := range []map[string]string{
			{"action": "generate", "list_id": "l"},
			{"action": "manipulate", "list_id": "l"},
			{"action": "dictation", "list_id": "l"},
			{"action": "summon", "list_id": "l"},
			{"action": "generate", "prompt": "x"},
		} {
			rec := e.do(http.MethodPost, "/api/ai", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "%v", body)
		}
	})
}
