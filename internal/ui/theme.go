package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background, behind the stack
	Surface    string // Header and footer bars
	Border     string
	Accent     string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Success string
	Warning string

	// Card colors. A card's own bgColor overrides CardFace.
	CardFace     string
	CardBack     string // back face of flip cards
	CardInk      string // text on dark faces
	CardInkDark  string // text on light faces
	ScratchCover string
	ImageBand    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	bar := lipgloss.Color(t.Surface)
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		Header: lipgloss.NewStyle().
			Background(bar).
			Foreground(lipgloss.Color(t.Text)),

		Footer: lipgloss.NewStyle().
			Background(bar).
			Foreground(lipgloss.Color(t.Muted)),

		Logo: lipgloss.NewStyle().
			Background(bar).
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Counter: lipgloss.NewStyle().
			Background(bar).
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style

	Text       lipgloss.Style
	MutedText  lipgloss.Style
	FaintText  lipgloss.Style
	AccentText lipgloss.Style

	Header  lipgloss.Style
	Footer  lipgloss.Style
	Logo    lipgloss.Style
	Counter lipgloss.Style
}

// inkFor picks the theme's text color that reads best on face.
func (t Theme) inkFor(face colorful.Color) colorful.Color {
	l, _, _ := face.Lab()
	if l > 0.6 {
		return parseColor(t.CardInkDark, colorful.Color{})
	}
	return parseColor(t.CardInk, colorful.Color{R: 1, G: 1, B: 1})
}

// Theme definitions

var themes = map[string]Theme{
	"Dracula": draculaTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Dracula", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func draculaTheme() Theme {
	// Official Dracula palette: https://draculatheme.com/spec
	return Theme{
		Name: "Dracula",

		Background: "#191A21", // BGDarker
		Surface:    "#282A36", // Background
		Border:     "#44475A", // Selection
		Accent:     "#BD93F9", // Purple

		Text:    "#F8F8F2", // Foreground
		Muted:   "#6272A4", // Comment
		Faint:   "#44475A",
		Success: "#50FA7B", // Green
		Warning: "#FFB86C", // Orange

		CardFace:     "#FF79C6", // Pink
		CardBack:     "#44475A",
		CardInk:      "#F8F8F2",
		CardInkDark:  "#21222C",
		ScratchCover: "#6272A4",
		ImageBand:    "#343746",
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		Border:     "#334155", // slate-700
		Accent:     "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500

		CardFace:     "#fda4af", // rose-300
		CardBack:     "#1e293b", // slate-800
		CardInk:      "#f8fafc", // slate-50
		CardInkDark:  "#0f172a", // slate-900
		ScratchCover: "#94a3b8", // slate-400
		ImageBand:    "#334155", // slate-700
	}
}
