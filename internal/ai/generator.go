// Package ai talks to the generative-language model that drafts, reorganizes
// and translates checklist items.
package ai

import (
	"context"
	"errors"

	"github.com/listo-app/listo/internal/model"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("ai is not configured")

// Translation is a template's text rendered into another language. Contents
// line up index for index with the contents passed to Translate.
type Translation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Contents    []string `json:"contents"`
}

// Generator produces item drafts. Existing items are passed in and returned
// with their ids; new drafts carry "new_" placeholder ids and headers are
// drafts whose content starts with "#".
type Generator interface {
	// Generate drafts new items for prompt, avoiding what existing covers.
	Generate(ctx context.Context, prompt string, existing []model.Item) ([]model.Draft, error)

	// Manipulate applies instruction to items and returns the full new set.
	Manipulate(ctx context.Context, instruction string, items []model.Item) ([]model.Draft, error)

	// Suggest proposes a few items that fit next to items.
	Suggest(ctx context.Context, items []model.Item) ([]model.Draft, error)

	// Dictate turns a spoken transcript into new items.
	Dictate(ctx context.Context, transcript string, items []model.Item) ([]model.Draft, error)

	// Translate renders a template into lang.
	Translate(ctx context.Context, title, description string, contents []string, lang string) (*Translation, error)
}

// Disabled is the Generator used when no API key is configured. Every
// method returns ErrDisabled.
type Disabled struct{}

var _ Generator = Disabled{}

func (Disabled) Generate(context.Context, string, []model.Item) ([]model.Draft, error) {
	return nil, ErrDisabled
}

func (Disabled) Manipulate(context.Context, string, []model.Item) ([]model.Draft, error) {
	return nil, ErrDisabled
}

func (Disabled) Suggest(context.Context, []model.Item) ([]model.Draft, error) {
	return nil, ErrDisabled
}

func (Disabled) Dictate(context.Context, string, []model.Item) ([]model.Draft, error) {
	return nil, ErrDisabled
}

func (Disabled) Translate(context.Context, string, string, []string, string) (*Translation, error) {
	return nil, ErrDisabled
}
