// Package theme holds the terminal palettes used when a list is printed from
// the command line. A palette is picked per list and passed explicitly to the
// renderer, so two lists with different themes can be rendered side by side.
package theme

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Default is the palette name used when a list has no theme or an unknown one.
const Default = "classic"

// Palette is the set of styles a list is rendered with.
type Palette struct {
	Name   string
	Title  lipgloss.Style
	Header lipgloss.Style
	Item   lipgloss.Style
	Done   lipgloss.Style
	Muted  lipgloss.Style
	Border lipgloss.Style
}

func newPalette(name string, accent, header lipgloss.AdaptiveColor) Palette {
	return Palette{
		Name: name,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(accent).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(header),
		Item: lipgloss.NewStyle().
			Foreground(ColorWhite),
		Done: lipgloss.NewStyle().
			Foreground(ColorGray).
			Strikethrough(true),
		Muted: lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true),
		Border: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent),
	}
}

var palettes = map[string]Palette{
	"classic": newPalette("classic", ColorBlue, ColorBlue),
	"forest":  newPalette("forest", ColorGreen, ColorGreen),
	"sunset":  newPalette("sunset", ColorOrange, ColorRed),
	"lemon":   newPalette("lemon", ColorYellow, ColorOrange),
	"grape":   newPalette("grape", ColorMagenta, ColorMagenta),
	"mono":    newPalette("mono", ColorGray, ColorWhite),
}

// Names returns the known palette names in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Valid reports whether name is a known palette.
func Valid(name string) bool {
	_, ok := palettes[strings.ToLower(name)]
	return ok
}

// For returns the palette for a list's theme, falling back to Default.
func For(name *string) Palette {
	if name != nil {
		if p, ok := palettes[strings.ToLower(*name)]; ok {
			return p
		}
	}
	return palettes[Default]
}
