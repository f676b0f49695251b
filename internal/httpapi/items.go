package httpapi

import (
	"net/http"
	"strings"

	"github.com/listo-app/listo/internal/model"
)

type itemPatchRequest struct {
	Content   *string `json:"content"`
	Completed *bool   `json:"completed"`
}

func (s *Server) handleItemPatch(w http.ResponseWriter, r *http.Request) {
	var req itemPatchRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Content == nil && req.Completed == nil {
		s.writeError(w, r, badRequest("nothing to update"))
		return
	}

	ctx := r.Context()
	id := r.PathValue("id")
	var (
		it  *model.Item
		err error
	)
	if req.Content != nil {
		if it, err = s.lists.UpdateContent(ctx, id, *req.Content); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if req.Completed != nil {
		if it, err = s.lists.SetCompleted(ctx, id, *req.Completed); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleItemDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.lists.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleItemToggle(w http.ResponseWriter, r *http.Request) {
	it, err := s.lists.Toggle(r.Context(), r.PathValue("id"))
	s.writeItem(w, r, it, err)
}

func (s *Server) handleItemIndent(w http.ResponseWriter, r *http.Request) {
	it, err := s.lists.Indent(r.Context(), r.PathValue("id"))
	s.writeItem(w, r, it, err)
}

func (s *Server) handleItemOutdent(w http.ResponseWriter, r *http.Request) {
	it, err := s.lists.Outdent(r.Context(), r.PathValue("id"))
	s.writeItem(w, r, it, err)
}

type moveRequest struct {
	ParentID *string `json:"parent_id"`
}

func (s *Server) handleItemMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	parent := ""
	if req.ParentID != nil {
		parent = strings.TrimSpace(*req.ParentID)
	}
	it, err := s.lists.Move(r.Context(), r.PathValue("id"), parent)
	s.writeItem(w, r, it, err)
}

type reorderRequest struct {
	TargetID string `json:"target_id"`
}

func (s *Server) handleItemReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.TargetID) == "" {
		s.writeError(w, r, badRequest("target_id is required"))
		return
	}
	it, err := s.lists.Reorder(r.Context(), r.PathValue("id"), req.TargetID)
	s.writeItem(w, r, it, err)
}

func (s *Server) writeItem(w http.ResponseWriter, r *http.Request, it *model.Item, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}
