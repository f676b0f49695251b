// Package templates implements template lists: submission from an existing
// list, AI generation, the review workflow with automatic translation, the
// public gallery and forking a template into a new list.
package templates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/listo-app/listo/internal/ai"
	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/store"
	"github.com/listo-app/listo/internal/tree"
)

// ErrInvalid is returned for malformed template requests.
var ErrInvalid = errors.New("invalid template request")

// ErrNotApproved is returned when forking a template that has not been
// approved.
var ErrNotApproved = errors.New("template is not approved")

// Meta is the descriptive data a template is submitted with.
type Meta struct {
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Category    string  `json:"category" yaml:"category"`
	Language    string  `json:"language" yaml:"language"`
	CreatorName string  `json:"creator_name" yaml:"creator_name"`
	Theme       *string `json:"theme" yaml:"theme"`
}

// View is a template with its item tree.
type View struct {
	Template model.List  `json:"template"`
	Items    []tree.Node `json:"items"`
}

// GalleryFilter narrows the public gallery.
type GalleryFilter struct {
	Category string
	Language string
	Limit    int
	Offset   int
}

// Service manages templates.
type Service struct {
	store       store.Store
	gen         ai.Generator
	languages   []string
	concurrency int
	log         *zap.Logger
}

// New creates a template service. gen may be nil, in which case generation
// and translation are unavailable.
func New(s store.Store, gen ai.Generator, cfg model.TemplatesConfig, log *zap.Logger) *Service {
	if gen == nil {
		gen = ai.Disabled{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	n := cfg.TranslateConcurrency
	if n <= 0 {
		n = 1
	}
	return &Service{
		store:       s,
		gen:         gen,
		languages:   cfg.Languages,
		concurrency: n,
		log:         log.Named("templates"),
	}
}

func (s *Service) defaultLanguage() string {
	if len(s.languages) > 0 {
		return s.languages[0]
	}
	return "en"
}

func (s *Service) newTemplate(meta Meta, status string) (*model.List, error) {
	title := strings.TrimSpace(meta.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalid)
	}
	lang := strings.ToLower(strings.TrimSpace(meta.Language))
	if lang == "" {
		lang = s.defaultLanguage()
	}
	return &model.List{
		ID:               model.NewListID(),
		Title:            title,
		Theme:            meta.Theme,
		IsTemplate:       true,
		TemplateCategory: model.StringPtr(strings.TrimSpace(meta.Category)),
		Description:      strings.TrimSpace(meta.Description),
		Status:           status,
		Language:         lang,
		CreatorName:      strings.TrimSpace(meta.CreatorName),
	}, nil
}

// Submit copies the items of listID into a new template awaiting review.
func (s *Service) Submit(ctx context.Context, listID string, meta Meta) (*model.List, error) {
	tpl, err := s.newTemplate(meta, model.TemplateStatusPending)
	if err != nil {
		return nil, err
	}

	err = s.store.InTx(ctx, func(tx store.Store) error {
		src, err := tx.GetListByID(ctx, listID)
		if err != nil {
			return err
		}
		if tpl.Theme == nil {
			tpl.Theme = src.Theme
		}
		items, err := tx.GetItems(ctx, listID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: list %s has no items", ErrInvalid, listID)
		}

		if err := tx.CreateList(ctx, tpl); err != nil {
			return err
		}
		return tx.CreateItems(ctx, CopyItems(items, tpl.ID, nil))
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("template submitted", zap.String("template_id", tpl.ID), zap.String("source_list_id", listID))
	return tpl, nil
}

// Generate asks the model for a template's items and stores the result as a
// new template awaiting review.
func (s *Service) Generate(ctx context.Context, prompt string, meta Meta) (*model.List, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt must not be empty", ErrInvalid)
	}
	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = prompt
	}
	tpl, err := s.newTemplate(meta, model.TemplateStatusPending)
	if err != nil {
		return nil, err
	}

	drafts, err := s.gen.Generate(ctx, prompt, nil)
	if err != nil {
		return nil, err
	}
	items := fromDrafts(drafts, tpl.ID)
	if len(items) == 0 {
		return nil, fmt.Errorf("generating template: model returned no items")
	}

	err = s.store.InTx(ctx, func(tx store.Store) error {
		if err := tx.CreateList(ctx, tpl); err != nil {
			return err
		}
		return tx.CreateItems(ctx, items)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("template generated", zap.String("template_id", tpl.ID), zap.Int("items", len(items)))
	return tpl, nil
}

// getTemplate loads a list and checks that it is a template.
func getTemplate(ctx context.Context, st store.Store, id string) (*model.List, error) {
	tpl, err := st.GetListByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tpl.IsTemplate {
		return nil, fmt.Errorf("template %s: %w", id, store.ErrNotFound)
	}
	return tpl, nil
}

// Get returns a template and its item tree.
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	tpl, err := getTemplate(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	items, err := s.store.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &View{Template: *tpl, Items: tree.Build(items)}, nil
}

// Use forks an approved template into a new list and returns the list.
func (s *Service) Use(ctx context.Context, templateID string) (*model.List, error) {
	var list *model.List
	err := s.store.InTx(ctx, func(tx store.Store) error {
		tpl, err := getTemplate(ctx, tx, templateID)
		if err != nil {
			return err
		}
		if tpl.Status != model.TemplateStatusApproved {
			return fmt.Errorf("template %s: %w", templateID, ErrNotApproved)
		}
		items, err := tx.GetItems(ctx, templateID)
		if err != nil {
			return err
		}

		list = &model.List{Title: tpl.Title, Theme: tpl.Theme}
		if err := tx.CreateList(ctx, list); err != nil {
			return err
		}
		if err := tx.CreateItems(ctx, CopyItems(items, list.ID, nil)); err != nil {
			return err
		}
		return tx.IncrementUseCount(ctx, templateID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("template used", zap.String("template_id", templateID), zap.String("list_id", list.ID))
	return list, nil
}

// Gallery lists approved templates, most used first.
func (s *Service) Gallery(ctx context.Context, f GalleryFilter) ([]model.List, error) {
	yes := true
	status := model.TemplateStatusApproved
	filter := store.ListFilter{
		IsTemplate: &yes,
		Status:     &status,
		SortBy:     "use_count",
		SortDesc:   true,
		Limit:      f.Limit,
		Offset:     f.Offset,
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		filter.Category = &c
	}
	if l := strings.ToLower(strings.TrimSpace(f.Language)); l != "" {
		filter.Language = &l
	}
	return s.store.GetLists(ctx, filter)
}

// Pending lists the templates awaiting review, oldest first.
func (s *Service) Pending(ctx context.Context) ([]model.List, error) {
	yes := true
	status := model.TemplateStatusPending
	return s.store.GetLists(ctx, store.ListFilter{
		IsTemplate: &yes,
		Status:     &status,
		SortBy:     "created_at",
	})
}

// Reject marks a template rejected.
func (s *Service) Reject(ctx context.Context, id string) (*model.List, error) {
	return s.setStatus(ctx, id, model.TemplateStatusRejected)
}

func (s *Service) setStatus(ctx context.Context, id, status string) (*model.List, error) {
	tpl, err := getTemplate(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	tpl.Status = status
	if err := s.store.UpdateList(ctx, *tpl); err != nil {
		return nil, err
	}
	s.log.Info("template status changed", zap.String("template_id", id), zap.String("status", status))
	return tpl, nil
}

// Delete removes a template and its items.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := getTemplate(ctx, s.store, id); err != nil {
		return err
	}
	if err := s.store.DeleteList(ctx, id); err != nil {
		return err
	}
	s.log.Info("template deleted", zap.String("template_id", id))
	return nil
}
