package model

import (
	"time"

	"github.com/google/uuid"
)

// Template review status constants.
const (
	TemplateStatusDraft    = "draft"
	TemplateStatusPending  = "pending"
	TemplateStatusApproved = "approved"
	TemplateStatusRejected = "rejected"
)

// List is a named container of items. A list flagged IsTemplate doubles as a
// template and carries the review metadata below.
type List struct {
	ID    string  `json:"id" db:"id"`
	Title string  `json:"title" db:"title"`
	Theme *string `json:"theme,omitempty" db:"theme"`

	// Display flags controlled by whoever holds the link.
	HideCompleted bool `json:"hide_completed" db:"hide_completed"`
	Compact       bool `json:"compact" db:"compact"`

	IsTemplate         bool    `json:"is_template" db:"is_template"`
	TemplateCategory   *string `json:"template_category,omitempty" db:"template_category"`
	Description        string  `json:"description" db:"description"`
	Status             string  `json:"status,omitempty" db:"status"`
	UseCount           int     `json:"use_count" db:"use_count"`
	Language           string  `json:"language,omitempty" db:"language"`
	TranslationGroupID *string `json:"translation_group_id,omitempty" db:"translation_group_id"`
	CreatorName        string  `json:"creator_name,omitempty" db:"creator_name"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidTemplateStatus reports whether s is a known review status.
func ValidTemplateStatus(s string) bool {
	switch s {
	case TemplateStatusDraft, TemplateStatusPending,
		TemplateStatusApproved, TemplateStatusRejected:
		return true
	}
	return false
}

const (
	listIDLength = 10
	base36       = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// NewListID returns a short, lowercase, URL-safe list identifier.
func NewListID() string {
	id := uuid.New()
	b := make([]byte, listIDLength)
	for i := range b {
		b[i] = base36[int(id[i])%len(base36)]
	}
	return string(b)
}
