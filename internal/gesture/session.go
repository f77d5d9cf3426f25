package gesture

import (
	"math"
	"time"
)

// Session is the state of one active drag. It is created on pointer-down and
// discarded on resolution.
type Session struct {
	OriginX float64
	OriginY float64
	DX      float64
	Started time.Time

	dragging bool
	lastX    float64

	ShakeCount         int
	LastShakeDirection int
	LastShakeX         float64
}

func newSession(x, y float64, at time.Time) *Session {
	return &Session{
		OriginX:    x,
		OriginY:    y,
		Started:    at,
		dragging:   true,
		lastX:      x,
		LastShakeX: x,
	}
}

// Dragging reports whether the session still accepts moves.
func (s *Session) Dragging() bool { return s != nil && s.dragging }

// move records a pointer sample and updates the reversal counter. The turning
// point of every reversal becomes the new reference; the reversal counts only
// when the stroke leading to it covered at least minStroke.
func (s *Session) move(x, minStroke float64) {
	s.DX = x - s.OriginX

	prev := s.lastX
	dir := sign(x - prev)
	s.lastX = x
	if dir == 0 {
		return
	}
	if s.LastShakeDirection == 0 {
		s.LastShakeDirection = dir
		return
	}
	if dir == s.LastShakeDirection {
		return
	}
	if math.Abs(prev-s.LastShakeX) >= minStroke {
		s.ShakeCount++
	}
	s.LastShakeDirection = dir
	s.LastShakeX = prev
}

func (s *Session) end() { s.dragging = false }
