package ui

import "github.com/charmbracelet/lipgloss"

const logoText = "♥ swipedeck"

// renderHeader draws the top bar: logo and current card title on the left,
// the position counter on the right.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bar := newBgStyle(m.theme.Surface)

	left := bar.Render(" "+logoText+" ", styles.Logo)
	if top, ok := m.topCard(); ok && top.Title != "" {
		room := m.width - lipgloss.Width(left) - 12
		if room > 4 {
			left += bar.Render("· "+truncate(top.Title, room-2), styles.MutedText)
		}
	}

	right := ""
	if m.loaded {
		right = bar.Render(" "+m.deck.Counter()+" ", styles.Counter)
	}
	return bar.Split(left, right, m.width)
}

// renderFooter draws the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bar := newBgStyle(m.theme.Surface)

	h := m.help
	h.Width = max(m.width-2, 0)
	h.Styles.ShortKey = styles.AccentText.Background(bar.bg)
	h.Styles.ShortDesc = styles.MutedText.Background(bar.bg)
	h.Styles.ShortSeparator = styles.FaintText.Background(bar.bg)
	left := bar.Spaces(1) + h.ShortHelpView(m.keys.ShortHelp())

	right := ""
	if m.status != "" {
		right = bar.Render(" "+m.status+" ", styles.Footer)
	}
	return bar.Split(left, right, m.width)
}
