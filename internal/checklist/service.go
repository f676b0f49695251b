// Package checklist implements the list and item mutations: inserts,
// completion, indent and outdent, moves, drag reordering, bulk list
// operations and applying AI-proposed item sets.
//
// Every mutation reads the list inside a store transaction, computes the new
// parent and position values, and writes them back in the same transaction.
package checklist

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/store"
	"github.com/listo-app/listo/internal/tree"
)

// ErrInvalid is returned for requests that would break the item hierarchy
// or carry malformed input.
var ErrInvalid = errors.New("invalid request")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

var listIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Service performs checklist operations against a store.
type Service struct {
	store store.Store
	log   *zap.Logger
}

// New creates a checklist service.
func New(s store.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: s, log: log.Named("checklist")}
}

// View is a list with its items nested for display.
type View struct {
	List   model.List  `json:"list"`
	Items  []tree.Node `json:"items"`
	Counts tree.Counts `json:"counts"`
}

// ValidListID reports whether id is acceptable as a client-chosen list id.
func ValidListID(id string) bool {
	return listIDPattern.MatchString(id)
}

// EnsureList returns the list with the given id, creating an empty one on
// first access.
func (s *Service) EnsureList(ctx context.Context, id string) (*model.List, error) {
	if !ValidListID(id) {
		return nil, invalidf("malformed list id %q", id)
	}

	list, err := s.store.GetListByID(ctx, id)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	list = &model.List{ID: id}
	if err := s.store.CreateList(ctx, list); err != nil {
		// Another client may have created it between the read and the insert.
		if errors.Is(err, store.ErrConflict) {
			return s.store.GetListByID(ctx, id)
		}
		return nil, err
	}
	s.log.Info("created list", zap.String("list_id", id))
	return list, nil
}

// GetList returns the list and its item tree, creating the list if needed.
func (s *Service) GetList(ctx context.Context, id string) (*View, error) {
	list, err := s.EnsureList(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.store.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &View{
		List:   *list,
		Items:  tree.Build(items),
		Counts: tree.Count(items),
	}, nil
}

// ListPatch carries the list attributes a client may change. Nil fields are
// left alone; an empty Theme clears the theme.
type ListPatch struct {
	Title         *string `json:"title"`
	Theme         *string `json:"theme"`
	HideCompleted *bool   `json:"hide_completed"`
	Compact       *bool   `json:"compact"`
}

// UpdateList applies patch to the list, creating the list if needed.
func (s *Service) UpdateList(ctx context.Context, id string, patch ListPatch) (*model.List, error) {
	list, err := s.EnsureList(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		list.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Theme != nil {
		list.Theme = model.StringPtr(strings.TrimSpace(*patch.Theme))
	}
	if patch.HideCompleted != nil {
		list.HideCompleted = *patch.HideCompleted
	}
	if patch.Compact != nil {
		list.Compact = *patch.Compact
	}
	if err := s.store.UpdateList(ctx, *list); err != nil {
		return nil, err
	}
	return s.store.GetListByID(ctx, id)
}
