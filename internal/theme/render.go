package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/listo-app/listo/internal/model"
	"github.com/listo-app/listo/internal/tree"
)

// RenderOptions tweak the printed list.
type RenderOptions struct {
	// ShowIDs appends each item's id, for use with the item commands.
	ShowIDs bool
}

// Render prints list and its item tree with palette p. The list's own
// display flags apply: completed items are skipped when HideCompleted is set
// and the blank line between header groups is dropped in Compact mode.
func Render(list model.List, nodes []tree.Node, p Palette, opts RenderOptions) string {
	var b strings.Builder

	title := list.Title
	if title == "" {
		title = list.ID
	}
	counts := tree.Count(tree.Flatten(nodes))
	b.WriteString(p.Title.Render(title))
	b.WriteString(" ")
	b.WriteString(p.Muted.Render(fmt.Sprintf("%d/%d done", counts.Completed, counts.Total)))
	b.WriteString("\n")

	var lines []string
	for i, n := range nodes {
		if n.Item.IsHeader() {
			if i > 0 && !list.Compact {
				lines = append(lines, "")
			}
			lines = append(lines, p.Header.Render(n.Item.HeaderTitle())+id(n.Item, p, opts))
			for _, ch := range n.Children {
				if list.HideCompleted && ch.Item.Completed {
					continue
				}
				lines = append(lines, "  "+line(ch.Item, p, opts))
			}
			continue
		}
		if list.HideCompleted && n.Item.Completed {
			continue
		}
		lines = append(lines, line(n.Item, p, opts))
	}

	if len(lines) == 0 {
		lines = append(lines, p.Muted.Render("no items"))
	}
	b.WriteString(p.Border.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	b.WriteString("\n")
	return b.String()
}

func line(it model.Item, p Palette, opts RenderOptions) string {
	if it.Completed {
		return "[x] " + p.Done.Render(it.Content) + id(it, p, opts)
	}
	return "[ ] " + p.Item.Render(it.Content) + id(it, p, opts)
}

func id(it model.Item, p Palette, opts RenderOptions) string {
	if !opts.ShowIDs {
		return ""
	}
	return " " + p.Muted.Render(it.ID)
}
