package store

import (
	"context"

	"github.com/listo-app/listo/internal/model"
)

// ListFilter controls filtering, sorting, and pagination for list queries.
type ListFilter struct {
	IsTemplate         *bool
	Status             *string
	Category           *string
	Language           *string
	TranslationGroupID *string
	SortBy             string // "use_count", "created_at", "updated_at", "title"
	SortDesc           bool
	Limit              int
	Offset             int
}

// Store defines the persistence interface for lists and their items.
//
// Every method issues independent statements. Callers that need several
// writes to land together wrap them in InTx and use the Store handed to the
// callback.
type Store interface {
	// === Lists ===

	CreateList(ctx context.Context, list *model.List) error
	UpdateList(ctx context.Context, list model.List) error
	DeleteList(ctx context.Context, id string) error
	GetListByID(ctx context.Context, id string) (*model.List, error)
	GetLists(ctx context.Context, filter ListFilter) ([]model.List, error)
	IncrementUseCount(ctx context.Context, id string) error

	// === Items ===

	CreateItem(ctx context.Context, item *model.Item) error
	CreateItems(ctx context.Context, items []model.Item) error
	UpdateItem(ctx context.Context, item model.Item) error
	DeleteItem(ctx context.Context, id string) error
	DeleteItems(ctx context.Context, ids []string) (int64, error)
	GetItemByID(ctx context.Context, id string) (*model.Item, error)
	GetItems(ctx context.Context, listID string) ([]model.Item, error)
	SetPositions(ctx context.Context, positions map[string]int) error
	SetCompletedAll(ctx context.Context, listID string, completed bool) (int64, error)
	DeleteCompletedItems(ctx context.Context, listID string) (int64, error)
	DeleteListItems(ctx context.Context, listID string) (int64, error)

	// === Transactions ===

	InTx(ctx context.Context, fn func(tx Store) error) error
}
