package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/listo-app/listo/internal/ai"
	"github.com/listo-app/listo/internal/checklist"
	"github.com/listo-app/listo/internal/store"
	"github.com/listo-app/listo/internal/templates"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&store.Error{Op: "get", Table: "items", ID: "x", Err: store.ErrNotFound}, http.StatusNotFound},
		{templates.ErrNotApproved, http.StatusNotFound},
		{badRequest("bad"), http.StatusBadRequest},
		{fmt.Errorf("%w: nested header", checklist.ErrInvalid), http.StatusBadRequest},
		{templates.ErrInvalid, http.StatusBadRequest},
		{fmt.Errorf("creating item: %w", fmt.Errorf("%w: items_list_id_fkey", store.ErrForeignKey)), http.StatusBadRequest},
		{fmt.Errorf("%w: lists_status_check", store.ErrConstraint), http.StatusBadRequest},
		{fmt.Errorf("%w: lists_pkey", store.ErrConflict), http.StatusConflict},
		{ai.ErrDisabled, http.StatusServiceUnavailable},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, statusOf(tc.err))
		})
	}
}
