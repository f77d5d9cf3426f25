package ui

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/swipedeck/internal/card"
	"github.com/five82/swipedeck/internal/effects"
	"github.com/five82/swipedeck/internal/gesture"
)

// drawStack paints the window back to front, so the top card lands last.
func drawStack(cv *canvas, st stage, window []card.Card, poses []gesture.Pose, faces map[int]*faceState, th Theme) {
	for j := min(len(window), len(poses)) - 1; j >= 0; j-- {
		p := poses[j]
		if p.Opacity <= 0 {
			continue
		}
		r := st.cardRect(p)
		if r.w < 2 || r.h < 2 {
			continue
		}
		sprite := renderCard(window[j], faces[window[j].ID], th, r.w, r.h)
		cv.blit(sprite, r.x, r.y, shear(p.Rotate, r.h), p.Opacity, p.Brightness)
	}
}

// drawParticles paints live particles over the stack.
func drawParticles(cv *canvas, particles []effects.Particle, now time.Time, ink colorful.Color) {
	for _, p := range particles {
		if p.Age(now) >= 1 {
			continue
		}
		x, y := int(math.Round(p.X)), int(math.Round(p.Y))
		if !cv.in(x, y) {
			continue
		}
		cv.put(x, y, p.Glyph, ink, cv.at(x, y).bg, false)
	}
}

// bodyRect returns the screen rectangle of the top card's text area when it
// rests at pose p.
func bodyRect(st stage, c card.Card, p gesture.Pose) rect {
	r := st.cardRect(p)
	l := layoutFace(c, r.w, r.h, true)
	return rect{x: r.x + l.body.x, y: r.y + l.body.y, w: l.body.w, h: l.body.h}
}
