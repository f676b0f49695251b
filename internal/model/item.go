package model

import (
	"strings"
	"time"
)

// HeaderPrefix marks an item's content as a group header.
const HeaderPrefix = "#"

// PlaceholderPrefix marks ids the AI invents for items that do not exist yet.
const PlaceholderPrefix = "new_"

// Item is a single checklist row. Headers (content starting with "#") group
// the items whose ParentID points at them; nesting is one level deep.
type Item struct {
	ID        string    `json:"id" db:"id"`
	ListID    string    `json:"list_id" db:"list_id"`
	Content   string    `json:"content" db:"content"`
	Completed bool      `json:"completed" db:"completed"`
	ParentID  *string   `json:"parent_id" db:"parent_id"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsHeader reports whether the item is a group header.
func (i Item) IsHeader() bool {
	return IsHeaderContent(i.Content)
}

// HeaderTitle returns the content without the header marker.
func (i Item) HeaderTitle() string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(i.Content), HeaderPrefix))
}

// IsRoot reports whether the item sits at the top level of its list.
func (i Item) IsRoot() bool {
	return i.ParentID == nil || *i.ParentID == ""
}

// Parent returns the parent id, or "" for root items.
func (i Item) Parent() string {
	if i.ParentID == nil {
		return ""
	}
	return *i.ParentID
}

// IsHeaderContent reports whether content denotes a header.
func IsHeaderContent(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), HeaderPrefix)
}

// IsPlaceholderID reports whether id was invented by the AI for a new item.
func IsPlaceholderID(id string) bool {
	return strings.HasPrefix(id, PlaceholderPrefix)
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Draft is an item as proposed by the generative model. Existing items keep
// their ids; items that do not exist yet carry a "new_" placeholder id that
// other drafts may reference as ParentID.
type Draft struct {
	ID        string  `json:"id"`
	Content   string  `json:"content"`
	ParentID  *string `json:"parent_id"`
	Position  int     `json:"position"`
	Completed *bool   `json:"completed,omitempty"`
}
