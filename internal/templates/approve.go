package templates

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/listo-app/listo/internal/ai"
	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/store"
)

// ApproveResult is the approved template and the translations created for
// it.
type ApproveResult struct {
	Template     model.List   `json:"template"`
	Translations []model.List `json:"translations"`
}

// Approve publishes a template and translates it into every configured
// language its translation group does not cover yet. Translation calls run
// concurrently; a failed translation is logged and skipped, and never undoes
// the approval.
func (s *Service) Approve(ctx context.Context, id string) (*ApproveResult, error) {
	tpl, err := getTemplate(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	tpl.Status = model.TemplateStatusApproved
	if tpl.TranslationGroupID == nil {
		group := tpl.ID
		tpl.TranslationGroupID = &group
	}
	if err := s.store.UpdateList(ctx, *tpl); err != nil {
		return nil, err
	}
	s.log.Info("template approved", zap.String("template_id", id))

	res := &ApproveResult{Template: *tpl, Translations: []model.List{}}

	missing, err := s.missingLanguages(ctx, tpl)
	if err != nil {
		s.log.Error("listing translations", zap.String("template_id", id), zap.Error(err))
		return res, nil
	}
	if len(missing) == 0 {
		return res, nil
	}

	items, err := s.store.GetItems(ctx, id)
	if err != nil {
		s.log.Error("loading template items", zap.String("template_id", id), zap.Error(err))
		return res, nil
	}

	for _, t := range s.translate(ctx, tpl, items, missing) {
		list, err := s.storeTranslation(ctx, tpl, items, t.lang, t.tr)
		if err != nil {
			s.log.Error("storing translation",
				zap.String("template_id", id), zap.String("language", t.lang), zap.Error(err))
			continue
		}
		res.Translations = append(res.Translations, *list)
	}
	return res, nil
}

// missingLanguages returns the configured languages with no template in
// tpl's translation group.
func (s *Service) missingLanguages(ctx context.Context, tpl *model.List) ([]string, error) {
	yes := true
	siblings, err := s.store.GetLists(ctx, store.ListFilter{
		IsTemplate:         &yes,
		TranslationGroupID: tpl.TranslationGroupID,
	})
	if err != nil {
		return nil, err
	}

	have := map[string]bool{tpl.Language: true}
	for _, l := range siblings {
		have[l.Language] = true
	}

	var missing []string
	for _, lang := range s.languages {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" || have[lang] {
			continue
		}
		have[lang] = true
		missing = append(missing, lang)
	}
	return missing, nil
}

type translated struct {
	lang string
	tr   *ai.Translation
}

// translate calls the model once per language, at most s.concurrency at a
// time, and returns the successful results in language order.
func (s *Service) translate(ctx context.Context, tpl *model.List, items []model.Item, langs []string) []translated {
	contents := make([]string, len(items))
	for i, it := range items {
		contents[i] = it.Content
	}

	results := make([]*ai.Translation, len(langs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, lang := range langs {
		g.Go(func() error {
			tr, err := s.gen.Translate(gctx, tpl.Title, tpl.Description, contents, lang)
			if err != nil {
				if errors.Is(err, ai.ErrDisabled) {
					return err
				}
				s.log.Warn("translation failed",
					zap.String("template_id", tpl.ID), zap.String("language", lang), zap.Error(err))
				return nil
			}
			if len(tr.Contents) != len(contents) {
				s.log.Warn("translation dropped items",
					zap.String("template_id", tpl.ID), zap.String("language", lang))
				return nil
			}
			results[i] = tr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Info("skipping translations", zap.String("template_id", tpl.ID), zap.Error(err))
		return nil
	}

	var out []translated
	for i, tr := range results {
		if tr != nil {
			out = append(out, translated{lang: langs[i], tr: tr})
		}
	}
	return out
}

// storeTranslation writes one translated sibling of tpl.
func (s *Service) storeTranslation(ctx context.Context, tpl *model.List, items []model.Item, lang string, tr *ai.Translation) (*model.List, error) {
	list := *tpl
	list.ID = model.NewListID()
	list.Language = lang
	list.UseCount = 0
	if t := strings.TrimSpace(tr.Title); t != "" {
		list.Title = t
	}
	list.Description = strings.TrimSpace(tr.Description)

	// Items and contents line up by index; CopyItems reorders, so translate
	// the source first.
	src := make([]model.Item, len(items))
	for i, it := range items {
		src[i] = it
		if c := strings.TrimSpace(tr.Contents[i]); c != "" && model.IsHeaderContent(c) == it.IsHeader() {
			src[i].Content = c
		}
	}

	err := s.store.InTx(ctx, func(tx store.Store) error {
		if err := tx.CreateList(ctx, &list); err != nil {
			return err
		}
		return tx.CreateItems(ctx, CopyItems(src, list.ID, nil))
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("template translated",
		zap.String("template_id", tpl.ID), zap.String("translation_id", list.ID), zap.String("language", lang))
	return &list, nil
}
