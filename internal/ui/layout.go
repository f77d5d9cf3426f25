package ui

import (
	"math"
	"time"

	"github.com/five82/swipedeck/internal/gesture"
)

// Screen chrome.
const (
	headerHeight = 1
	footerHeight = 1
)

// Card box limits in cells.
const (
	minCardWidth  = 16
	maxCardWidth  = 56
	minCardHeight = 7
	maxCardHeight = 20
)

// Timing constants.
const (
	// frameInterval paces animation frames (~60fps).
	frameInterval = 16 * time.Millisecond
)

const (
	// cellAspect is the height of a cell relative to its width.
	cellAspect = 2.0
	// maxShear caps the rotation drawn as shear so tan stays finite.
	maxShear = 75.0
	// scratchRadius is the brush radius, in rows, of one scratch stroke.
	scratchRadius = 1
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && y >= r.y && x < r.x+r.w && y < r.y+r.h
}

// stage is the area between header and footer where the stack is drawn.
type stage struct {
	area         rect
	cardW, cardH int
}

func newStage(width, height int) stage {
	area := rect{x: 0, y: headerHeight, w: max(width, 0), h: max(height-headerHeight-footerHeight, 0)}
	cardW := clampInt(area.w*3/5, minCardWidth, maxCardWidth)
	cardH := clampInt(area.h-4, minCardHeight, maxCardHeight)
	return stage{area: area, cardW: min(cardW, area.w), cardH: min(cardH, area.h)}
}

// center returns the stage centre cell.
func (s stage) center() (float64, float64) {
	return float64(s.area.x) + float64(s.area.w)/2, float64(s.area.y) + float64(s.area.h)/2
}

// cardRect is the unrotated box of a card drawn with pose p.
func (s stage) cardRect(p gesture.Pose) rect {
	scale := math.Max(p.Scale, 0)
	w := int(math.Round(float64(s.cardW) * scale))
	h := int(math.Round(float64(s.cardH) * scale))
	cx, cy := s.center()
	return rect{
		x: int(math.Round(cx + p.X - float64(w)/2)),
		y: int(math.Round(cy + p.Y - float64(h)/2)),
		w: w,
		h: h,
	}
}

// shear approximates a rotation of degrees by shifting each of h rows
// horizontally: rows above the middle move with the rotation, rows below
// against it.
func shear(degrees float64, h int) func(row int) int {
	degrees = math.Max(-maxShear, math.Min(maxShear, degrees))
	if degrees == 0 || h <= 1 {
		return nil
	}
	t := math.Tan(degrees * math.Pi / 180)
	mid := float64(h-1) / 2
	return func(row int) int {
		return int(math.Round(-(float64(row) - mid) * t * cellAspect))
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
