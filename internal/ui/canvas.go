package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// cell is one terminal cell. A wide glyph occupies its own cell plus a
// continuation cell to the right.
type cell struct {
	glyph string
	fg    colorful.Color
	bg    colorful.Color
	bold  bool
	cont  bool
}

// canvas is a fixed-size grid of styled cells that renders to ANSI text.
type canvas struct {
	width, height int
	cells         []cell
}

func newCanvas(width, height int, bg colorful.Color) *canvas {
	width, height = max(width, 0), max(height, 0)
	c := &canvas{width: width, height: height, cells: make([]cell, width*height)}
	for i := range c.cells {
		c.cells[i] = cell{glyph: " ", fg: bg, bg: bg}
	}
	return c
}

func (c *canvas) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

func (c *canvas) at(x, y int) *cell {
	return &c.cells[y*c.width+x]
}

// overwide replaces glyphs too wide for a cell and its continuation.
const overwide = "?"

// put writes one grapheme at (x,y) and returns the number of cells it uses.
// A wide grapheme that does not fit before the right edge is replaced by a
// space; anything wider than two cells is replaced by overwide.
func (c *canvas) put(x, y int, glyph string, fg, bg colorful.Color, bold bool) int {
	w := runewidth.StringWidth(glyph)
	if w <= 0 {
		return 0
	}
	if w > 2 {
		glyph, w = overwide, 1
	}
	if !c.in(x, y) {
		return w
	}
	if w > 1 && !c.in(x+1, y) {
		glyph, w = " ", 1
	}
	c.clearWide(x, y)
	*c.at(x, y) = cell{glyph: glyph, fg: fg, bg: bg, bold: bold}
	if w > 1 {
		c.clearWide(x+1, y)
		*c.at(x+1, y) = cell{glyph: "", fg: fg, bg: bg, cont: true}
	}
	return w
}

// clearWide blanks the other half of a wide glyph overlapping (x,y).
func (c *canvas) clearWide(x, y int) {
	cur := c.at(x, y)
	switch {
	case cur.cont && c.in(x-1, y):
		head := c.at(x-1, y)
		head.glyph = " "
	case !cur.cont && runewidth.StringWidth(cur.glyph) > 1 && c.in(x+1, y):
		tail := c.at(x+1, y)
		tail.glyph, tail.cont = " ", false
	}
}

// text writes s starting at (x,y) and returns the columns consumed.
func (c *canvas) text(x, y int, s string, fg, bg colorful.Color, bold bool) int {
	col := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		col += c.put(x+col, y, g.Str(), fg, bg, bold)
	}
	return col
}

// fill paints a rectangle with spaces of bg.
func (c *canvas) fill(x, y, w, h int, bg colorful.Color) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			if c.in(col, row) {
				c.put(col, row, " ", bg, bg, false)
			}
		}
	}
}

// blit copies src onto c with its top-left at (x,y). shift offsets each source
// row horizontally; opacity and brightness tint the copied cells against what
// is already underneath.
func (c *canvas) blit(src *canvas, x, y int, shift func(row int) int, opacity, brightness float64) {
	if opacity <= 0 {
		return
	}
	for sy := 0; sy < src.height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= c.height {
			continue
		}
		dx0 := x
		if shift != nil {
			dx0 += shift(sy)
		}
		for sx := 0; sx < src.width; sx++ {
			s := src.at(sx, sy)
			if s.cont {
				continue
			}
			dx := dx0 + sx
			if !c.in(dx, dy) {
				continue
			}
			under := c.at(dx, dy).bg
			bg := composite(shade(s.bg, brightness), under, opacity)
			fg := composite(shade(s.fg, brightness), under, opacity)
			c.put(dx, dy, s.glyph, fg, bg, s.bold)
		}
	}
}

// Render returns the grid as lines joined by newlines, merging runs of equal
// style into one lipgloss render.
func (c *canvas) Render() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var style *cell
		flush := func() {
			if style == nil || run.Len() == 0 {
				return
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(style.fg.Hex())).
				Background(lipgloss.Color(style.bg.Hex())).
				Bold(style.bold).
				Render(run.String()))
			run.Reset()
		}
		for x := 0; x < c.width; x++ {
			cur := c.at(x, y)
			if cur.cont {
				continue
			}
			if style == nil || !sameStyle(*style, *cur) {
				flush()
				style = cur
			}
			run.WriteString(cur.glyph)
		}
		flush()
	}
	return b.String()
}

// plain returns the grid text without styling.
func (c *canvas) plain() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.width; x++ {
			b.WriteString(c.at(x, y).glyph)
		}
	}
	return b.String()
}

func sameStyle(a, b cell) bool {
	return a.bold == b.bold && a.fg.Hex() == b.fg.Hex() && a.bg.Hex() == b.bg.Hex()
}
