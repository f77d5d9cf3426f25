package effects

import (
	"regexp"
	"strings"

	"github.com/rivo/uniseg"
)

// imageGlyph stands in for an embedded image without alt text.
const imageGlyph = "✦"

var (
	imgTag  = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	altAttr = regexp.MustCompile(`(?i)\balt\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// ParseMarkup splits particle markup into glyphs. Plain text yields one glyph
// per grapheme cluster, so emoji with variation selectors stay whole. Each
// <img> tag yields the first grapheme of its alt text, or a placeholder when
// it has none.
func ParseMarkup(markup string) []string {
	var glyphs []string
	rest := markup
	for {
		loc := imgTag.FindStringIndex(rest)
		if loc == nil {
			glyphs = appendGraphemes(glyphs, rest)
			return glyphs
		}
		glyphs = appendGraphemes(glyphs, rest[:loc[0]])
		glyphs = append(glyphs, imageAlt(rest[loc[0]:loc[1]]))
		rest = rest[loc[1]:]
	}
}

func imageAlt(tag string) string {
	m := altAttr.FindStringSubmatch(tag)
	if m == nil {
		return imageGlyph
	}
	alt, _, _, _ := uniseg.FirstGraphemeClusterInString(strings.TrimSpace(m[1]+m[2]), -1)
	if alt == "" {
		return imageGlyph
	}
	return alt
}

func appendGraphemes(dst []string, text string) []string {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		s := g.Str()
		if strings.TrimSpace(s) == "" {
			continue
		}
		dst = append(dst, s)
	}
	return dst
}
