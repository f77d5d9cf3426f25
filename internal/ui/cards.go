package ui

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/swipedeck/internal/card"
	"github.com/five82/swipedeck/internal/scratch"
)

// faceState is the per-card interaction state that outlives a single frame.
type faceState struct {
	flipped bool
	surface *scratch.Surface
}

// faceLayout is the position of each part of a card, relative to its box.
type faceLayout struct {
	band  rect // image placeholder; zero height when the card has no image
	title int  // row of the title
	body  rect // text area, also the scratch area
}

func layoutFace(c card.Card, w, h int, showImage bool) faceLayout {
	inner := rect{x: 1, y: 1, w: max(w-2, 0), h: max(h-2, 0)}
	var l faceLayout
	row := inner.y
	if showImage && c.Image != "" && inner.h >= 6 {
		l.band = rect{x: inner.x, y: row, w: inner.w, h: inner.h / 3}
		row += l.band.h
	}
	l.title = row
	row += 2
	l.body = rect{x: inner.x + 1, y: row, w: max(inner.w-2, 0), h: max(inner.y+inner.h-row, 0)}
	return l
}

// cardPainter draws one card kind into a sprite.
type cardPainter interface {
	paint(dst *canvas, c card.Card, st *faceState, th Theme)
}

var painters = map[card.Kind]cardPainter{
	card.KindPlain:   plainPainter{},
	card.KindFlip:    flipPainter{},
	card.KindScratch: scratchPainter{},
}

// renderCard returns the sprite of c at w×h cells.
func renderCard(c card.Card, st *faceState, th Theme, w, h int) *canvas {
	if st == nil {
		st = &faceState{}
	}
	face := faceColor(c, th)
	sprite := newCanvas(w, h, face)
	painters[c.Kind()].paint(sprite, c, st, th)
	return sprite
}

func faceColor(c card.Card, th Theme) colorful.Color {
	return parseColor(c.BgColor, parseColor(th.CardFace, colorful.Color{R: 1, G: 0.5, B: 0.7}))
}

type plainPainter struct{}

func (plainPainter) paint(dst *canvas, c card.Card, _ *faceState, th Theme) {
	paintFront(dst, c, th, 0)
}

// paintFront draws the image band, title and text, leaving reserve rows free
// at the bottom of the body.
func paintFront(dst *canvas, c card.Card, th Theme, reserve int) faceLayout {
	face := faceColor(c, th)
	l := layoutFace(c, dst.width, dst.height, true)
	body := l.body
	body.h = max(body.h-reserve, 0)
	drawFrame(dst, face)
	drawBand(dst, l.band, c.Image, th)
	drawTitle(dst, l.title, c.Title, th.inkFor(face), face)
	drawBody(dst, body, c.Text, th.inkFor(face), face)
	return l
}

type flipPainter struct{}

func (flipPainter) paint(dst *canvas, c card.Card, st *faceState, th Theme) {
	if !st.flipped {
		face := faceColor(c, th)
		l := paintFront(dst, c, th, 1)
		if l.body.h > 1 {
			hint := truncate("⟲ double-click to flip", l.body.w)
			ink := composite(th.inkFor(face), face, 0.6)
			dst.text(l.body.x+centerOffset(hint, l.body.w), l.body.y+l.body.h-1, hint, ink, face, false)
		}
		return
	}
	back := parseColor(th.CardBack, black)
	dst.fill(0, 0, dst.width, dst.height, back)
	l := layoutFace(c, dst.width, dst.height, false)
	drawFrame(dst, back)
	text := c.FlipText
	if text == "" {
		text = c.Text
	}
	drawTitle(dst, l.title, c.Title, th.inkFor(back), back)
	drawBody(dst, l.body, text, th.inkFor(back), back)
}

type scratchPainter struct{}

func (scratchPainter) paint(dst *canvas, c card.Card, st *faceState, th Theme) {
	l := paintFront(dst, c, th, 0)
	cover := parseColor(th.ScratchCover, black)
	grain := lighten(cover, 0.15)
	for y := 0; y < l.body.h; y++ {
		for x := 0; x < l.body.w; x++ {
			if st.surface != nil && !coveredAt(st.surface, l.body, x, y) {
				continue
			}
			dst.put(l.body.x+x, l.body.y+y, "▒", grain, cover, false)
		}
	}
}

// coveredAt maps a body cell onto the surface, which may have been sized for
// a different box.
func coveredAt(s *scratch.Surface, body rect, x, y int) bool {
	sw, sh := s.Size()
	if sw == 0 || sh == 0 || body.w == 0 || body.h == 0 {
		return !s.Completed()
	}
	return s.Covered(x*sw/body.w, y*sh/body.h)
}

func drawFrame(dst *canvas, face colorful.Color) {
	w, h := dst.width, dst.height
	if w < 2 || h < 2 {
		return
	}
	edge := lighten(face, 0.35)
	dst.put(0, 0, "╭", edge, face, false)
	dst.put(w-1, 0, "╮", edge, face, false)
	dst.put(0, h-1, "╰", edge, face, false)
	dst.put(w-1, h-1, "╯", edge, face, false)
	for x := 1; x < w-1; x++ {
		dst.put(x, 0, "─", edge, face, false)
		dst.put(x, h-1, "─", edge, face, false)
	}
	for y := 1; y < h-1; y++ {
		dst.put(0, y, "│", edge, face, false)
		dst.put(w-1, y, "│", edge, face, false)
	}
}

func drawBand(dst *canvas, band rect, image string, th Theme) {
	if band.h == 0 {
		return
	}
	bg := parseColor(th.ImageBand, black)
	dst.fill(band.x, band.y, band.w, band.h, bg)
	label := truncate(imageLabel(image), band.w-2)
	ink := parseColor(th.Muted, colorful.Color{R: 0.6, G: 0.6, B: 0.6})
	dst.text(band.x+centerOffset(label, band.w), band.y+band.h/2, label, ink, bg, false)
}

func drawTitle(dst *canvas, row int, title string, ink, face colorful.Color) {
	w := dst.width - 4
	if row >= dst.height-1 || w <= 0 {
		return
	}
	title = truncate(title, w)
	dst.text(2+centerOffset(title, w), row, title, ink, face, true)
}

func drawBody(dst *canvas, body rect, text string, ink, face colorful.Color) {
	lines := wrap(text, body.w)
	for i, line := range lines {
		if i >= body.h {
			break
		}
		if i == body.h-1 && len(lines) > body.h {
			line = truncate(line+" …", body.w)
		}
		dst.text(body.x+centerOffset(line, body.w), body.y+i, line, ink, face, false)
	}
}
