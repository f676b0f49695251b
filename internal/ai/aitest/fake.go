// Package aitest provides a scripted ai.Generator for tests.
package aitest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/listo-app/listo/internal/ai"
	"github.com/listo-app/listo/internal/model"
)

// Fake returns canned drafts and records every call. It is safe for
// concurrent use.
type Fake struct {
	mu sync.Mutex

	// Drafts is returned by Generate, Manipulate, Suggest and Dictate.
	Drafts []model.Draft
	// Err, if set, is returned by every method.
	Err error
	// FailLanguages makes Translate fail for the listed languages.
	FailLanguages map[string]bool

	calls []string
}

var _ ai.Generator = (*Fake)(nil)

func (f *Fake) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.Err
}

// Calls returns the recorded calls as "method:arg" strings.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Fake) drafts() []model.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Draft(nil), f.Drafts...)
}

func (f *Fake) Generate(_ context.Context, prompt string, _ []model.Item) ([]model.Draft, error) {
	if err := f.record("generate:" + prompt); err != nil {
		return nil, err
	}
	return f.drafts(), nil
}

func (f *Fake) Manipulate(_ context.Context, instruction string, _ []model.Item) ([]model.Draft, error) {
	if err := f.record("manipulate:" + instruction); err != nil {
		return nil, err
	}
	return f.drafts(), nil
}

func (f *Fake) Suggest(_ context.Context, items []model.Item) ([]model.Draft, error) {
	if err := f.record(fmt.Sprintf("suggest:%d", len(items))); err != nil {
		return nil, err
	}
	return f.drafts(), nil
}

func (f *Fake) Dictate(_ context.Context, transcript string, _ []model.Item) ([]model.Draft, error) {
	if err := f.record("dictate:" + transcript); err != nil {
		return nil, err
	}
	return f.drafts(), nil
}

// Translate prefixes every string with "[lang] ".
func (f *Fake) Translate(_ context.Context, title, description string, contents []string, lang string) (*ai.Translation, error) {
	if err := f.record("translate:" + lang); err != nil {
		return nil, err
	}
	if f.FailLanguages[lang] {
		return nil, fmt.Errorf("translation into %s failed", lang)
	}

	tag := "[" + lang + "] "
	out := &ai.Translation{Title: tag + title, Description: tag + description}
	for _, c := range contents {
		if strings.HasPrefix(c, model.HeaderPrefix) {
			out.Contents = append(out.Contents, model.HeaderPrefix+" "+tag+strings.TrimSpace(strings.TrimPrefix(c, model.HeaderPrefix)))
			continue
		}
		out.Contents = append(out.Contents, tag+c)
	}
	return out, nil
}
