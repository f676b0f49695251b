package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/listo-app/listo/internal/ai"
	"github.com/listo-app/listo/internal/ai/aitest"
	"github.com/listo-app/listo/internal/checklist"
	"github.com/listo-app/listo/internal/httpapi"
	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/store"
	"github.com/listo-app/listo/internal/templates"
	"github.com/listo-app/listo/tests/testutil"
)

const adminSecret = "s3cret"

type env struct {
	t     *testing.T
	h     http.Handler
	store *store.SQLStore
	fake  *aitest.Fake
}

func newEnv(t *testing.T, gen ai.Generator) *env {
	t.Helper()
	st := testutil.NewTestStore(t)
	fake, _ := gen.(*aitest.Fake)

	srv := httpapi.New(httpapi.Deps{
		Lists:       checklist.New(st, nil),
		Templates:   templates.New(st, gen, model.TemplatesConfig{Languages: []string{"en", "es"}, TranslateConcurrency: 2}, nil),
		AI:          gen,
		Health:      st,
		AdminSecret: adminSecret,
	})
	return &env{t: t, h: srv.Handler(), store: st, fake: fake}
}

func (e *env) do(method, path string, body interface{}, header ...string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, req)
	return rec
}

func (e *env) admin(method, path string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.do(method, path, body, httpapi.AdminSecretHeader, adminSecret)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorResponse struct {
	Error string `json:"error"`
}

// contents flattens a list view into display-order strings, children
// indented by two spaces.
func contents(v checklist.View) []string {
	out := []string{}
	for _, n := range v.Items {
		out = append(out, n.Item.Content)
		for _, ch := range n.Children {
			out = append(out, "  "+ch.Item.Content)
		}
	}
	return out
}

func newRequest(method, path, body string) *http.Request {
	return httptest.NewRequest(method, path, bytes.NewBufferString(body))
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
