// Package effects renders transient particle bursts over the card stack.
package effects

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/five82/swipedeck/internal/feedback"
)

const (
	burstSize    = 28
	particleLife = 1200 * time.Millisecond
	gravity      = 18.0 // cells per second squared
	minSpeed     = 8.0
	maxSpeed     = 26.0
	// Terminal cells are about twice as tall as wide.
	cellAspect = 0.5
)

// Ensure Field implements feedback.Particles at compile time.
var _ feedback.Particles = (*Field)(nil)

// Particle is one glyph in flight.
type Particle struct {
	Glyph string
	X, Y  float64
	VX    float64
	VY    float64
	Born  time.Time
	Life  time.Duration
}

// Age returns the fraction of the particle's life used at now.
func (p Particle) Age(now time.Time) float64 {
	if p.Life <= 0 {
		return 1
	}
	return math.Min(1, float64(now.Sub(p.Born))/float64(p.Life))
}

// Field holds live particles. It implements feedback.Particles.
type Field struct {
	width, height float64
	particles     []Particle
	last          time.Time
	rng           *rand.Rand
	now           func() time.Time
}

// NewField returns an empty field. The seed makes bursts reproducible.
func NewField(seed uint64) *Field {
	return &Field{
		width:  80,
		height: 24,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:    time.Now,
	}
}

// Resize sets the area bursts are centred in.
func (f *Field) Resize(width, height int) {
	if width > 0 {
		f.width = float64(width)
	}
	if height > 0 {
		f.height = float64(height)
	}
}

// TriggerParticles bursts the markup from the centre of the field.
func (f *Field) TriggerParticles(markup string) {
	f.Burst(markup, f.width/2, f.height/2, f.now())
}

// Burst spawns particles cycling through the glyphs of markup.
func (f *Field) Burst(markup string, x, y float64, now time.Time) {
	glyphs := ParseMarkup(markup)
	if len(glyphs) == 0 {
		return
	}
	if f.last.IsZero() || now.Before(f.last) {
		f.last = now
	}
	for i := range burstSize {
		angle := f.rng.Float64() * 2 * math.Pi
		speed := minSpeed + f.rng.Float64()*(maxSpeed-minSpeed)
		f.particles = append(f.particles, Particle{
			Glyph: glyphs[i%len(glyphs)],
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle)*speed*cellAspect - speed*0.3,
			Born:  now,
			Life:  particleLife,
		})
	}
}

// Step integrates motion up to now and drops expired particles.
func (f *Field) Step(now time.Time) {
	if len(f.particles) == 0 {
		f.last = now
		return
	}
	dt := now.Sub(f.last).Seconds()
	if dt < 0 {
		dt = 0
	}
	f.last = now

	alive := f.particles[:0]
	for _, p := range f.particles {
		if now.Sub(p.Born) >= p.Life {
			continue
		}
		p.VY += gravity * dt
		p.X += p.VX * dt
		p.Y += p.VY * dt
		alive = append(alive, p)
	}
	f.particles = alive
}

// Particles returns a copy of the live particles.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Active reports whether any particle is still alive.
func (f *Field) Active() bool { return len(f.particles) > 0 }
