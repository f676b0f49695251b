package store

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/listo-app/listo/internal/model"
)

var listColumns = []string{
	"id", "title", "theme", "hide_completed", "compact",
	"is_template", "template_category", "description", "status",
	"use_count", "language", "translation_group_id", "creator_name",
	"created_at", "updated_at",
}

// CreateList inserts a new list. Generates a short ID if ID is empty and
// fills in the timestamps on the passed value.
func (s *SQLStore) CreateList(ctx context.Context, list *model.List) error {
	if list.ID == "" {
		list.ID = model.NewListID()
	}
	if list.Status != "" && !model.ValidTemplateStatus(list.Status) {
		return fmt.Errorf("invalid template status %q", list.Status)
	}
	now := time.Now().UTC()
	list.CreatedAt = now
	list.UpdatedAt = now

	_, err := s.exec(ctx, s.sb.Insert("lists").
		Columns(listColumns...).
		Values(
			list.ID, list.Title, list.Theme, list.HideCompleted, list.Compact,
			list.IsTemplate, list.TemplateCategory, list.Description, list.Status,
			list.UseCount, list.Language, list.TranslationGroupID, list.CreatorName,
			list.CreatedAt, list.UpdatedAt,
		))
	if err != nil {
		return wrap(err, "creating list", "lists", list.ID)
	}
	return nil
}

// UpdateList updates every mutable column of an existing list by ID.
func (s *SQLStore) UpdateList(ctx context.Context, list model.List) error {
	if list.Status != "" && !model.ValidTemplateStatus(list.Status) {
		return fmt.Errorf("invalid template status %q", list.Status)
	}
	n, err := s.exec(ctx, s.sb.Update("lists").
		SetMap(map[string]interface{}{
			"title":                list.Title,
			"theme":                list.Theme,
			"hide_completed":       list.HideCompleted,
			"compact":              list.Compact,
			"is_template":          list.IsTemplate,
			"template_category":    list.TemplateCategory,
			"description":          list.Description,
			"status":               list.Status,
			"use_count":            list.UseCount,
			"language":             list.Language,
			"translation_group_id": list.TranslationGroupID,
			"creator_name":         list.CreatorName,
			"updated_at":           time.Now().UTC(),
		}).
		Where(squirrel.Eq{"id": list.ID}))
	if err != nil {
		return wrap(err, "updating list", "lists", list.ID)
	}
	if n == 0 {
		return notFound("updating list", "lists", list.ID)
	}
	return nil
}

// DeleteList removes a list by ID. Cascades to its items.
func (s *SQLStore) DeleteList(ctx context.Context, id string) error {
	// Items go first so the self-referencing parent_id never blocks the delete.
	if _, err := s.exec(ctx, s.sb.Delete("items").Where(squirrel.Eq{"list_id": id})); err != nil {
		return wrap(err, "deleting list items", "items", id)
	}
	n, err := s.exec(ctx, s.sb.Delete("lists").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return wrap(err, "deleting list", "lists", id)
	}
	if n == 0 {
		return notFound("deleting list", "lists", id)
	}
	return nil
}

// GetListByID retrieves a single list by ID.
func (s *SQLStore) GetListByID(ctx context.Context, id string) (*model.List, error) {
	var list model.List
	err := s.get(ctx, &list, s.sb.Select(listColumns...).
		From("lists").
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, wrap(err, "getting list", "lists", id)
	}
	return &list, nil
}

// GetLists retrieves lists matching the filter.
func (s *SQLStore) GetLists(ctx context.Context, filter ListFilter) ([]model.List, error) {
	q := s.sb.Select(listColumns...).From("lists")

	if filter.IsTemplate != nil {
		q = q.Where(squirrel.Eq{"is_template": *filter.IsTemplate})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Category != nil {
		q = q.Where(squirrel.Eq{"template_category": *filter.Category})
	}
	if filter.Language != nil {
		q = q.Where(squirrel.Eq{"language": *filter.Language})
	}
	if filter.TranslationGroupID != nil {
		q = q.Where(squirrel.Eq{"translation_group_id": *filter.TranslationGroupID})
	}

	sortBy := "created_at"
	allowed := map[string]bool{
		"use_count":  true,
		"created_at": true,
		"updated_at": true,
		"title":      true,
	}
	if allowed[filter.SortBy] {
		sortBy = filter.SortBy
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	q = q.OrderBy(sortBy+" "+direction, "id ASC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	} else if filter.Offset > 0 {
		// SQLite accepts OFFSET only after a LIMIT.
		q = q.Limit(math.MaxInt32)
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	var lists []model.List
	if err := s.selectRows(ctx, &lists, q); err != nil {
		return nil, wrap(err, "querying lists", "lists", "")
	}
	return lists, nil
}

// IncrementUseCount bumps a template's use counter by one.
func (s *SQLStore) IncrementUseCount(ctx context.Context, id string) error {
	n, err := s.exec(ctx, s.sb.Update("lists").
		Set("use_count", squirrel.Expr("use_count + 1")).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return wrap(err, "incrementing use count", "lists", id)
	}
	if n == 0 {
		return notFound("incrementing use count", "lists", id)
	}
	return nil
}

// normalizeIDs trims ids and drops empties and duplicates.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
