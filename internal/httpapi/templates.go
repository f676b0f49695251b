package httpapi

import (
	"net/http"
	"strings"

	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/store"
	"github.com/listo-app/listo/internal/templates"
)

func (s *Server) handleTemplatesList(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	lists, err := s.templates.Gallery(r.Context(), templates.GalleryFilter{
		Category: q.Get("category"),
		Language: q.Get("language"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": lists})
}

type createTemplateRequest struct {
	templates.Meta
	ListID string `json:"list_id"`
	Prompt string `json:"prompt"`
}

// handleTemplatesCreate submits a list as a template, or generates one from
// a prompt when no list_id is given.
func (s *Server) handleTemplatesCreate(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var (
		tpl *model.List
		err error
	)
	switch {
	case strings.TrimSpace(req.ListID) != "":
		tpl, err = s.templates.Submit(r.Context(), req.ListID, req.Meta)
	case strings.TrimSpace(req.Prompt) != "":
		tpl, err = s.templates.Generate(r.Context(), req.Prompt, req.Meta)
	default:
		err = badRequest("list_id or prompt is required")
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tpl)
}

func (s *Server) handleTemplateGet(w http.ResponseWriter, r *http.Request) {
	view, err := s.templates.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if view.Template.Status != model.TemplateStatusApproved {
		s.writeError(w, r, store.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleTemplateUse(w http.ResponseWriter, r *http.Request) {
	list, err := s.templates.Use(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (s *Server) handleAdminPending(w http.ResponseWriter, r *http.Request) {
	lists, err := s.templates.Pending(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": lists})
}

func (s *Server) handleAdminApprove(w http.ResponseWriter, r *http.Request) {
	res, err := s.templates.Approve(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAdminReject(w http.ResponseWriter, r *http.Request) {
	tpl, err := s.templates.Reject(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (s *Server) handleAdminDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
