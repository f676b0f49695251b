package templates

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/store"
)

// SeedFile is the YAML layout of a template seed file:
//
//	templates:
//	  - title: Beach day
//	    category: travel
//	    language: en
//	    items:
//	      - Sunscreen
//	      - header: Food
//	        items: [Sandwiches, Water]
type SeedFile struct {
	Templates []SeedTemplate `yaml:"templates"`
}

// SeedTemplate is one template definition.
type SeedTemplate struct {
	Meta  `yaml:",inline"`
	Items []SeedItem `yaml:"items"`
}

// SeedItem is either a plain item, written as a string, or a header with
// nested items.
type SeedItem struct {
	Content string
	Header  string   `yaml:"header"`
	Items   []string `yaml:"items"`
}

// UnmarshalYAML accepts a scalar for plain items.
func (s *SeedItem) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&s.Content)
	}
	type plain SeedItem
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*s = SeedItem(p)
	return nil
}

// items flattens a template definition into items of listID.
func (t SeedTemplate) items(listID string) []model.Item {
	var out []model.Item
	root := 0
	for _, si := range t.Items {
		if si.Header == "" {
			if c := strings.TrimSpace(si.Content); c != "" {
				out = append(out, model.Item{ID: NewItemID(), ListID: listID, Content: c, Position: root})
				root++
			}
			continue
		}

		header := strings.TrimSpace(si.Header)
		if !model.IsHeaderContent(header) {
			header = model.HeaderPrefix + " " + header
		}
		h := model.Item{ID: NewItemID(), ListID: listID, Content: header, Position: root}
		root++
		out = append(out, h)
		for i, c := range si.Items {
			c = strings.TrimSpace(c)
			if c == "" || model.IsHeaderContent(c) {
				continue
			}
			pid := h.ID
			out = append(out, model.Item{ID: NewItemID(), ListID: listID, Content: c, ParentID: &pid, Position: i})
		}
	}
	return out
}

// Seed loads approved templates from a YAML stream. A template whose title
// already exists as a template in the same language is skipped. It returns
// the number of templates created.
func (s *Service) Seed(ctx context.Context, r io.Reader) (int, error) {
	var file SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return 0, fmt.Errorf("parsing seed file: %w", err)
	}

	created := 0
	for i, def := range file.Templates {
		tpl, err := s.newTemplate(def.Meta, model.TemplateStatusApproved)
		if err != nil {
			return created, fmt.Errorf("seed template %d: %w", i, err)
		}

		exists, err := s.templateExists(ctx, tpl.Title, tpl.Language)
		if err != nil {
			return created, err
		}
		if exists {
			s.log.Debug("seed template exists", zap.String("title", tpl.Title), zap.String("language", tpl.Language))
			continue
		}

		group := tpl.ID
		tpl.TranslationGroupID = &group
		items := def.items(tpl.ID)
		err = s.store.InTx(ctx, func(tx store.Store) error {
			if err := tx.CreateList(ctx, tpl); err != nil {
				return err
			}
			return tx.CreateItems(ctx, items)
		})
		if err != nil {
			return created, fmt.Errorf("seeding template %q: %w", tpl.Title, err)
		}
		created++
	}

	s.log.Info("seeded templates", zap.Int("created", created), zap.Int("defined", len(file.Templates)))
	return created, nil
}

// SeedPath is Seed reading from a file.
func (s *Service) SeedPath(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()
	return s.Seed(ctx, f)
}

func (s *Service) templateExists(ctx context.Context, title, lang string) (bool, error) {
	yes := true
	lists, err := s.store.GetLists(ctx, store.ListFilter{IsTemplate: &yes, Language: &lang})
	if err != nil {
		return false, err
	}
	for _, l := range lists {
		if strings.EqualFold(l.Title, title) {
			return true, nil
		}
	}
	return false, nil
}
