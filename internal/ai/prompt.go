package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/tree"
)

const itemFormat = `Respond with a JSON array only. Each element is an object with the keys
"id", "content", "parent_id", "position" and "completed".
- Keep the id of every existing item you return.
- Give every new item an id starting with "new_", for example "new_1".
- A header is an item whose content starts with "#". Headers are never nested.
- parent_id is null for top-level items, otherwise the id of a header
  (which may be a "new_" id of a header you are adding).
- position orders items within their group, starting at 0.`

const systemPrompt = `You organize simple checklists such as shopping lists, packing lists
and to-do lists. Items are short, concrete and written in the same language
as the user's text.

` + itemFormat

// wireItem is the item shape exchanged with the model.
type wireItem struct {
	ID        string  `json:"id"`
	Content   string  `json:"content"`
	ParentID  *string `json:"parent_id"`
	Position  int     `json:"position"`
	Completed *bool   `json:"completed,omitempty"`
}

func encodeItems(items []model.Item) string {
	out := make([]wireItem, 0, len(items))
	for _, it := range tree.DisplayOrder(items) {
		completed := it.Completed
		out = append(out, wireItem{
			ID:        it.ID,
			Content:   it.Content,
			ParentID:  it.ParentID,
			Position:  it.Position,
			Completed: &completed,
		})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func generatePrompt(prompt string, existing []model.Item) string {
	var sb strings.Builder
	sb.WriteString("Create checklist items for: ")
	sb.WriteString(strings.TrimSpace(prompt))
	sb.WriteString("\n\n")
	if len(existing) > 0 {
		sb.WriteString("The list already contains these items. Do not repeat them; ")
		sb.WriteString("you may place new items under the existing headers.\n")
		sb.WriteString(encodeItems(existing))
		sb.WriteString("\n\n")
	}
	sb.WriteString("Return only the new items.")
	return sb.String()
}

func manipulatePrompt(instruction string, items []model.Item) string {
	var sb strings.Builder
	sb.WriteString("Current list:\n")
	sb.WriteString(encodeItems(items))
	sb.WriteString("\n\nInstruction: ")
	sb.WriteString(strings.TrimSpace(instruction))
	sb.WriteString("\n\nReturn the complete list after applying the instruction. ")
	sb.WriteString("Items you leave out are deleted.")
	return sb.String()
}

func suggestPrompt(items []model.Item) string {
	var sb strings.Builder
	sb.WriteString("Current list:\n")
	sb.WriteString(encodeItems(items))
	sb.WriteString("\n\nSuggest up to five new items that are missing from this list. ")
	sb.WriteString("Return only the new items.")
	return sb.String()
}

func dictatePrompt(transcript string, items []model.Item) string {
	var sb strings.Builder
	sb.WriteString("The user dictated:\n")
	sb.WriteString(strings.TrimSpace(transcript))
	sb.WriteString("\n\nTurn every thing they mentioned into a separate item. ")
	if len(items) > 0 {
		sb.WriteString("The list already contains:\n")
		sb.WriteString(encodeItems(items))
		sb.WriteString("\nPlace new items under a matching existing header where one fits. ")
	}
	sb.WriteString("Return only the new items.")
	return sb.String()
}

const translateSystemPrompt = `You translate checklist templates. Respond with a JSON object with the keys
"title", "description" and "contents". "contents" is an array with exactly
one translated string per input string, in the same order. Keep a leading
"#" on headers.`

func translatePrompt(title, description string, contents []string, lang string) string {
	in, err := json.Marshal(Translation{Title: title, Description: description, Contents: contents})
	if err != nil {
		in = []byte("{}")
	}
	return fmt.Sprintf("Translate into the language with code %q:\n%s", lang, in)
}

// stripFence removes a Markdown code fence around a JSON payload.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// decodeDrafts parses the model's item array. An object wrapping the array
// under "items" is accepted too.
func decodeDrafts(text string) ([]model.Draft, error) {
	text = stripFence(text)
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}

	var raw []wireItem
	if strings.HasPrefix(text, "{") {
		var wrapped struct {
			Items []wireItem `json:"items"`
		}
		if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
			return nil, fmt.Errorf("decoding items: %w", err)
		}
		raw = wrapped.Items
	} else if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}

	drafts := make([]model.Draft, 0, len(raw))
	for i, w := range raw {
		content := strings.TrimSpace(w.Content)
		if content == "" {
			continue
		}
		id := strings.TrimSpace(w.ID)
		if id == "" {
			id = fmt.Sprintf("%sauto_%d", model.PlaceholderPrefix, i+1)
		}
		var parent *string
		if w.ParentID != nil {
			parent = model.StringPtr(strings.TrimSpace(*w.ParentID))
		}
		drafts = append(drafts, model.Draft{
			ID:        id,
			Content:   content,
			ParentID:  parent,
			Position:  w.Position,
			Completed: w.Completed,
		})
	}
	return drafts, nil
}

func decodeTranslation(text string, want int) (*Translation, error) {
	var tr Translation
	if err := json.Unmarshal([]byte(stripFence(text)), &tr); err != nil {
		return nil, fmt.Errorf("decoding translation: %w", err)
	}
	if len(tr.Contents) != want {
		return nil, fmt.Errorf("translation has %d contents, want %d", len(tr.Contents), want)
	}
	return &tr, nil
}
