package httpapi

import (
	"net/http"

	"github.com/listo-app/listo/internal/checklist"
)

func (s *Server) handleListGet(w http.ResponseWriter, r *http.Request) {
	view, err := s.lists.GetList(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleListPatch(w http.ResponseWriter, r *http.Request) {
	var patch checklist.ListPatch
	if err := decode(w, r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	list, err := s.lists.UpdateList(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type createItemsRequest struct {
	Content  *string             `json:"content"`
	ParentID *string             `json:"parent_id"`
	Items    []checklist.NewItem `json:"items"`
}

func (s *Server) handleItemsCreate(w http.ResponseWriter, r *http.Request) {
	var req createItemsRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	in := req.Items
	if req.Content != nil {
		if len(in) > 0 {
			s.writeError(w, r, badRequest("send either content or items"))
			return
		}
		in = []checklist.NewItem{{Content: *req.Content, ParentID: req.ParentID}}
	}
	if len(in) == 0 {
		s.writeError(w, r, badRequest("content is required"))
		return
	}

	items, err := s.lists.AddItems(r.Context(), r.PathValue("id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Content != nil {
		writeJSON(w, http.StatusCreated, items[0])
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"items": items})
}

type listActionRequest struct {
	Action string `json:"action"`
	Scope  string `json:"scope"`
}

type listActionResponse struct {
	Affected int64           `json:"affected"`
	List     *checklist.View `json:"list"`
}

func (s *Server) handleListAction(w http.ResponseWriter, r *http.Request) {
	var req listActionRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	id := r.PathValue("id")
	if _, err := s.lists.EnsureList(ctx, id); err != nil {
		s.writeError(w, r, err)
		return
	}

	var (
		n   int64
		err error
	)
	switch req.Action {
	case "complete-all":
		n, err = s.lists.CompleteAll(ctx, id)
	case "uncomplete-all":
		n, err = s.lists.UncompleteAll(ctx, id)
	case "clear-completed":
		n, err = s.lists.ClearCompleted(ctx, id)
	case "sort":
		var scope checklist.SortScope
		if scope, err = checklist.ParseSortScope(req.Scope); err == nil {
			err = s.lists.Sort(ctx, id, scope)
		}
	case "ungroup":
		err = s.lists.UngroupAll(ctx, id)
	case "nuke":
		n, err = s.lists.Nuke(ctx, id)
	default:
		err = badRequest("unknown action %q", req.Action)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.lists.GetList(ctx, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listActionResponse{Affected: n, List: view})
}
