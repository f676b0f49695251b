package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/listo-app/listo/internal/model"
)

var itemColumns = []string{
	"id", "list_id", "content", "completed", "parent_id",
	"position", "created_at", "updated_at",
}

// CreateItem inserts a new item. Generates a UUID if ID is empty and fills
// in the timestamps on the passed value.
func (s *SQLStore) CreateItem(ctx context.Context, item *model.Item) error {
	if err := prepareItem(item, time.Now().UTC()); err != nil {
		return err
	}

	_, err := s.exec(ctx, s.sb.Insert("items").
		Columns(itemColumns...).
		Values(itemValues(*item)...))
	if err != nil {
		return wrap(err, "creating item", "items", item.ID)
	}
	return nil
}

// CreateItems inserts a batch of items in a single statement, in slice
// order. Parents must precede their children in the slice. Items must
// already carry their IDs.
func (s *SQLStore) CreateItems(ctx context.Context, items []model.Item) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now().UTC()
	q := s.sb.Insert("items").Columns(itemColumns...)
	for i := range items {
		if items[i].ID == "" {
			return fmt.Errorf("creating items: item %d has no id", i)
		}
		if err := prepareItem(&items[i], now); err != nil {
			return err
		}
		q = q.Values(itemValues(items[i])...)
	}

	if _, err := s.exec(ctx, q); err != nil {
		return wrap(err, "creating items", "items", "")
	}
	return nil
}

// UpdateItem updates content, completion, parent and position of an item.
func (s *SQLStore) UpdateItem(ctx context.Context, item model.Item) error {
	if strings.TrimSpace(item.Content) == "" {
		return fmt.Errorf("item content must not be empty")
	}
	n, err := s.exec(ctx, s.sb.Update("items").
		Set("content", item.Content).
		Set("completed", item.Completed).
		Set("parent_id", item.ParentID).
		Set("position", item.Position).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": item.ID}))
	if err != nil {
		return wrap(err, "updating item", "items", item.ID)
	}
	if n == 0 {
		return notFound("updating item", "items", item.ID)
	}
	return nil
}

// DeleteItem removes an item by ID.
func (s *SQLStore) DeleteItem(ctx context.Context, id string) error {
	n, err := s.exec(ctx, s.sb.Delete("items").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return wrap(err, "deleting item", "items", id)
	}
	if n == 0 {
		return notFound("deleting item", "items", id)
	}
	return nil
}

// DeleteItems removes every item whose ID is in ids and reports how many
// rows went away.
func (s *SQLStore) DeleteItems(ctx context.Context, ids []string) (int64, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := s.exec(ctx, s.sb.Delete("items").Where(squirrel.Eq{"id": ids}))
	if err != nil {
		return 0, wrap(err, "deleting items", "items", "")
	}
	return n, nil
}

// GetItemByID retrieves a single item by ID.
func (s *SQLStore) GetItemByID(ctx context.Context, id string) (*model.Item, error) {
	var item model.Item
	err := s.get(ctx, &item, s.sb.Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, wrap(err, "getting item", "items", id)
	}
	return &item, nil
}

// GetItems returns all items of a list ordered by position.
func (s *SQLStore) GetItems(ctx context.Context, listID string) ([]model.Item, error) {
	items := []model.Item{}
	err := s.selectRows(ctx, &items, s.sb.Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"list_id": listID}).
		OrderBy("position ASC", "created_at ASC", "id ASC"))
	if err != nil {
		return nil, wrap(err, "querying items", "items", listID)
	}
	return items, nil
}

// SetPositions writes new positions for several items, one row at a time,
// in ascending id order.
func (s *SQLStore) SetPositions(ctx context.Context, positions map[string]int) error {
	if len(positions) == 0 {
		return nil
	}
	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	now := time.Now().UTC()
	for _, id := range ids {
		n, err := s.exec(ctx, s.sb.Update("items").
			Set("position", positions[id]).
			Set("updated_at", now).
			Where(squirrel.Eq{"id": id}))
		if err != nil {
			return wrap(err, "setting position", "items", id)
		}
		if n == 0 {
			return notFound("setting position", "items", id)
		}
	}
	return nil
}

// SetCompletedAll sets the completed flag on every non-header item of a list.
func (s *SQLStore) SetCompletedAll(ctx context.Context, listID string, completed bool) (int64, error) {
	n, err := s.exec(ctx, s.sb.Update("items").
		Set("completed", completed).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"list_id": listID}).
		Where(squirrel.NotEq{"completed": completed}).
		Where(squirrel.NotLike{"content": model.HeaderPrefix + "%"}))
	if err != nil {
		return 0, wrap(err, "setting completion", "items", listID)
	}
	return n, nil
}

// DeleteCompletedItems removes the completed, non-header items of a list.
// Remaining items keep their positions.
func (s *SQLStore) DeleteCompletedItems(ctx context.Context, listID string) (int64, error) {
	n, err := s.exec(ctx, s.sb.Delete("items").
		Where(squirrel.Eq{"list_id": listID, "completed": true}).
		Where(squirrel.NotLike{"content": model.HeaderPrefix + "%"}))
	if err != nil {
		return 0, wrap(err, "clearing completed items", "items", listID)
	}
	return n, nil
}

// DeleteListItems removes every item of a list.
func (s *SQLStore) DeleteListItems(ctx context.Context, listID string) (int64, error) {
	n, err := s.exec(ctx, s.sb.Delete("items").Where(squirrel.Eq{"list_id": listID}))
	if err != nil {
		return 0, wrap(err, "deleting list items", "items", listID)
	}
	return n, nil
}

// prepareItem validates an item and fills in defaults before insert.
func prepareItem(item *model.Item, now time.Time) error {
	if strings.TrimSpace(item.Content) == "" {
		return fmt.Errorf("item content must not be empty")
	}
	if strings.TrimSpace(item.ListID) == "" {
		return fmt.Errorf("item list id must not be empty")
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.ParentID != nil && *item.ParentID == "" {
		item.ParentID = nil
	}
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

func itemValues(item model.Item) []interface{} {
	return []interface{}{
		item.ID, item.ListID, item.Content, item.Completed, item.ParentID,
		item.Position, item.CreatedAt, item.UpdatedAt,
	}
}
