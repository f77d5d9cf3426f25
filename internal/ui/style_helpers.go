package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// bgStyle renders bar segments on one shared background. lipgloss resets
// between styled segments otherwise leave unpainted gaps.
type bgStyle struct {
	bg lipgloss.Color
}

func newBgStyle(color string) bgStyle {
	return bgStyle{bg: lipgloss.Color(color)}
}

// Render renders text with style, spaces included, on the bar background.
func (b bgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	return style.Background(b.bg).Render(text)
}

// Spaces returns n styled spaces.
func (b bgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// Split lays left and right out on one line of width, padding between them.
// left is truncated first when both do not fit.
func (b bgStyle) Split(left, right string, width int) string {
	lw, rw := lipgloss.Width(left), lipgloss.Width(right)
	if lw+rw+1 > width {
		right, rw = "", 0
	}
	if lw > width {
		return b.Render(runewidth.Truncate(stripANSI(left), width, "…"), lipgloss.NewStyle())
	}
	return left + b.Spaces(width-lw-rw) + right
}

// stripANSI removes escape sequences so plain text can be re-truncated.
func stripANSI(s string) string {
	var out strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			out.WriteRune(r)
		}
	}
	return out.String()
}
