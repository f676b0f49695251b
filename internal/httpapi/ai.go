package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/listo-app/listo/internal/checklist"
	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/tree"
)

type aiRequest struct {
	Action      string `json:"action"`
	ListID      string `json:"list_id"`
	Prompt      string `json:"prompt"`
	Instruction string `json:"instruction"`
	Text        string `json:"text"`
}

type aiResponse struct {
	Result      *checklist.ApplyResult `json:"result,omitempty"`
	Suggestions []model.Draft          `json:"suggestions,omitempty"`
	List        *checklist.View        `json:"list"`
}

// handleAI runs a model action against a list. generate and dictation add
// items, manipulate rewrites the list and suggest only returns proposals.
func (s *Server) handleAI(w http.ResponseWriter, r *http.Request) {
	var req aiRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	view, err := s.lists.GetList(ctx, req.ListID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items := tree.Flatten(view.Items)

	var (
		drafts []model.Draft
		mode   checklist.ApplyMode
	)
	switch req.Action {
	case "generate":
		if strings.TrimSpace(req.Prompt) == "" {
			s.writeError(w, r, badRequest("prompt is required"))
			return
		}
		drafts, err = s.gen.Generate(ctx, req.Prompt, items)
		mode = checklist.ApplyAppend
	case "manipulate":
		if strings.TrimSpace(req.Instruction) == "" {
			s.writeError(w, r, badRequest("instruction is required"))
			return
		}
		drafts, err = s.gen.Manipulate(ctx, req.Instruction, items)
		mode = checklist.ApplyReplace
	case "dictation":
		if strings.TrimSpace(req.Text) == "" {
			s.writeError(w, r, badRequest("text is required"))
			return
		}
		drafts, err = s.gen.Dictate(ctx, req.Text, items)
		mode = checklist.ApplyAppend
	case "suggest":
		drafts, err = s.gen.Suggest(ctx, items)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, aiResponse{Suggestions: drafts, List: view})
		return
	default:
		s.writeError(w, r, badRequest("unknown action %q", req.Action))
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if mode == checklist.ApplyReplace && len(drafts) == 0 && len(items) > 0 {
		// An empty answer would wipe the list; treat it as a failed call.
		s.log.Warn("model returned no items for manipulate", zap.String("list_id", req.ListID))
		s.writeError(w, r, errEmptyResult)
		return
	}

	res, err := s.lists.ApplyAI(ctx, req.ListID, drafts, mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err = s.lists.GetList(ctx, req.ListID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, aiResponse{Result: res, List: view})
}
