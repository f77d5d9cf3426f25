// Package scratch models the scratch-to-reveal cover of a scratch card as a
// grid of covered cells.
package scratch

// DefaultThreshold is the uncovered fraction at which a surface completes.
const DefaultThreshold = 0.5

// Surface is a width×height grid that starts fully covered.
type Surface struct {
	width, height int
	covered       []bool
	remaining     int
	threshold     float64
	completed     bool
}

// New returns a covered surface. A threshold outside (0,1] uses
// DefaultThreshold.
func New(width, height int, threshold float64) *Surface {
	width, height = max(width, 0), max(height, 0)
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	covered := make([]bool, width*height)
	for i := range covered {
		covered[i] = true
	}
	return &Surface{
		width:     width,
		height:    height,
		covered:   covered,
		remaining: len(covered),
		threshold: threshold,
	}
}

// Size returns the grid dimensions.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Covered reports whether cell (x,y) is still covered. Cells outside the grid
// are uncovered.
func (s *Surface) Covered(x, y int) bool {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return false
	}
	return s.covered[y*s.width+x]
}

// Scratch uncovers every cell within radius of (x,y), treating cells as twice
// as tall as wide. It reports true on the call that completes the surface.
func (s *Surface) Scratch(x, y, radius int) bool {
	if s.completed || len(s.covered) == 0 {
		return false
	}
	radius = max(radius, 0)
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -2 * radius; dx <= 2*radius; dx++ {
			if dx*dx+4*dy*dy > 4*r2 {
				continue
			}
			s.uncover(x+dx, y+dy)
		}
	}
	if s.Progress() >= s.threshold {
		return s.complete()
	}
	return false
}

// Reveal uncovers everything. It reports true if this completed the surface.
func (s *Surface) Reveal() bool {
	if s.completed {
		return false
	}
	for i := range s.covered {
		s.covered[i] = false
	}
	s.remaining = 0
	return s.complete()
}

// Progress is the uncovered fraction in [0,1].
func (s *Surface) Progress() float64 {
	if len(s.covered) == 0 {
		return 1
	}
	return 1 - float64(s.remaining)/float64(len(s.covered))
}

// Completed reports whether the reveal already fired.
func (s *Surface) Completed() bool { return s.completed }

func (s *Surface) uncover(x, y int) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	i := y*s.width + x
	if s.covered[i] {
		s.covered[i] = false
		s.remaining--
	}
}

func (s *Surface) complete() bool {
	if s.completed {
		return false
	}
	s.completed = true
	return true
}
