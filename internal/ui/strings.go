package ui

import (
	"net/url"
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncate shortens a string to the given display width, adding an ellipsis
// if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit == 1 {
		return "…"
	}
	return runewidth.Truncate(value, limit, "…")
}

// wrap breaks text into lines no wider than width, splitting on spaces and
// hard-breaking words that are too long on their own.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line, lineW := "", 0
		for _, w := range words {
			ww := runewidth.StringWidth(w)
			for ww > width {
				if lineW > 0 {
					lines = append(lines, line)
					line, lineW = "", 0
				}
				head := runewidth.Truncate(w, width, "")
				if head == "" {
					break
				}
				lines = append(lines, head)
				w = w[len(head):]
				ww = runewidth.StringWidth(w)
			}
			if ww == 0 {
				continue
			}
			switch {
			case lineW == 0:
				line, lineW = w, ww
			case lineW+1+ww <= width:
				line += " " + w
				lineW += 1 + ww
			default:
				lines = append(lines, line)
				line, lineW = w, ww
			}
		}
		if lineW > 0 {
			lines = append(lines, line)
		}
	}
	return lines
}

// centerOffset is the column at which s sits centred in width.
func centerOffset(s string, width int) int {
	return max((width-runewidth.StringWidth(s))/2, 0)
}

// imageLabel is the caption shown in place of a card image.
func imageLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "▣ image"
	}
	return "▣ " + strings.TrimPrefix(u.Host, "www.")
}
