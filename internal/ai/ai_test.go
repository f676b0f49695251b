package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listo-app/listo/internal/model"
)

func TestDecodeDrafts(t *testing.T) {
	t.Run("plain array", func(t *testing.T) {
		drafts, err := decodeDrafts(`[
			{"id":"new_1","content":"# Dairy","parent_id":null,"position":0},
			{"id":"abc","content":" Milk ","parent_id":"new_1","position":0,"completed":true}
		]`)
		require.NoError(t, err)
		require.Len(t, drafts, 2)
		assert.Nil(t, drafts[0].ParentID)
		assert.Nil(t, drafts[0].Completed)
		assert.Equal(t, "Milk", drafts[1].Content)
		require.NotNil(t, drafts[1].ParentID)
		assert.Equal(t, "new_1", *drafts[1].ParentID)
		require.NotNil(t, drafts[1].Completed)
		assert.True(t, *drafts[1].Completed)
	})

	t.Run("fenced and wrapped", func(t *testing.T) {
		drafts, err := decodeDrafts("```json\n{\"items\":[{\"content\":\"Tent\"}]}\n```")
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.True(t, model.IsPlaceholderID(drafts[0].ID))
	})

	t.Run("skips empty content and blank parents", func(t *testing.T) {
		drafts, err := decodeDrafts(`[{"id":"new_1","content":"  "},{"id":"new_2","content":"Rope","parent_id":""}]`)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Nil(t, drafts[0].ParentID)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := decodeDrafts("")
		assert.Error(t, err)
		_, err = decodeDrafts("not json")
		assert.Error(t, err)
	})
}

func TestDecodeTranslation(t *testing.T) {
	tr, err := decodeTranslation(`{"title":"Playa","description":"","contents":["# Ropa","Toalla"]}`, 2)
	require.NoError(t, err)
	assert.Equal(t, "Playa", tr.Title)
	assert.Equal(t, []string{"# Ropa", "Toalla"}, tr.Contents)

	_, err = decodeTranslation(`{"title":"Playa","contents":["Toalla"]}`, 2)
	assert.Error(t, err)
}

func TestPrompts(t *testing.T) {
	pid := "h"
	items := []model.Item{
		{ID: "h", Content: "# Dairy", Position: 0},
		{ID: "m", Content: "Milk", ParentID: &pid, Position: 0},
	}

	p := manipulatePrompt("sort by aisle", items)
	assert.Contains(t, p, "sort by aisle")
	assert.Contains(t, p, `"id":"m"`)
	assert.Contains(t, p, `"parent_id":"h"`)

	assert.NotContains(t, generatePrompt("beach trip", nil), "already contains")
	assert.Contains(t, generatePrompt("beach trip", items), "already contains")
	assert.Contains(t, dictatePrompt("eggs and bread", nil), "eggs and bread")
	assert.Contains(t, translatePrompt("Beach", "", []string{"Towel"}, "es"), `"es"`)
}

func TestDisabled(t *testing.T) {
	ctx := context.Background()
	var g Generator = Disabled{}

	_, err := g.Generate(ctx, "x", nil)
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = g.Manipulate(ctx, "x", nil)
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = g.Suggest(ctx, nil)
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = g.Dictate(ctx, "x", nil)
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = g.Translate(ctx, "t", "d", nil, "es")
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = NewGemini(ctx, model.AIConfig{}, nil)
	assert.ErrorIs(t, err, ErrDisabled)
}

// geminiServer answers every generateContent call with text and records the
// request bodies.
func geminiServer(t *testing.T, text string) (*httptest.Server, *[]string) {
	t.Helper()
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))

		resp := map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
				"finishReason": "STOP",
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &bodies
}

func TestGeminiGenerate(t *testing.T) {
	srv, bodies := geminiServer(t, `[{"id":"new_1","content":"Sunscreen","parent_id":null,"position":0}]`)

	g, err := NewGemini(context.Background(), model.AIConfig{APIKey: "test", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	drafts, err := g.Generate(context.Background(), "beach day", nil)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Sunscreen", drafts[0].Content)

	require.Len(t, *bodies, 1)
	assert.True(t, strings.Contains((*bodies)[0], "beach day"))
	assert.True(t, strings.Contains((*bodies)[0], "application/json"))
}

func TestGeminiTranslate(t *testing.T) {
	srv, _ := geminiServer(t, `{"title":"Playa","description":"Un día","contents":["Protector solar"]}`)

	g, err := NewGemini(context.Background(), model.AIConfig{APIKey: "test", BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	tr, err := g.Translate(context.Background(), "Beach", "A day", []string{"Sunscreen"}, "es")
	require.NoError(t, err)
	assert.Equal(t, "Playa", tr.Title)
	assert.Equal(t, []string{"Protector solar"}, tr.Contents)
}
