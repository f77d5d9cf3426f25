package gesture

import "math"

// Pose is the visual transform of one stack layer. X and Y are in cells,
// Rotate in degrees.
type Pose struct {
	X          float64
	Y          float64
	Rotate     float64
	Scale      float64
	Opacity    float64
	Brightness float64
}

// Identity is the resting pose of the top card.
var Identity = Pose{Scale: 1, Opacity: 1, Brightness: 1}

// Lerp interpolates between a and b; t is clamped to [0,1].
func Lerp(a, b Pose, t float64) Pose {
	t = clamp(t, 0, 1)
	return Pose{
		X:          lerp(a.X, b.X, t),
		Y:          lerp(a.Y, b.Y, t),
		Rotate:     lerp(a.Rotate, b.Rotate, t),
		Scale:      lerp(a.Scale, b.Scale, t),
		Opacity:    lerp(a.Opacity, b.Opacity, t),
		Brightness: lerp(a.Brightness, b.Brightness, t),
	}
}

// ApproxEqual compares poses within eps on every component.
func ApproxEqual(a, b Pose, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps &&
		math.Abs(a.Y-b.Y) <= eps &&
		math.Abs(a.Rotate-b.Rotate) <= eps &&
		math.Abs(a.Scale-b.Scale) <= eps &&
		math.Abs(a.Opacity-b.Opacity) <= eps &&
		math.Abs(a.Brightness-b.Brightness) <= eps
}

// LayerStep describes how much each layer recedes from the one in front.
type LayerStep struct {
	Scale      float64
	OffsetY    float64
	Opacity    float64
	Brightness float64
}

// DefaultLayerStep matches a next card at scale 0.9 and half opacity two layers
// deep.
var DefaultLayerStep = LayerStep{Scale: 0.05, OffsetY: 1, Opacity: 0.25, Brightness: 0.15}

// RestingPoses returns the resting pose of layers 0..n-1. Deeper layers are
// smaller, lower, fainter and darker.
func RestingPoses(n int, step LayerStep) []Pose {
	out := make([]Pose, n)
	for j := range out {
		d := float64(j)
		out[j] = Pose{
			Y:          d * step.OffsetY,
			Scale:      clamp(1-d*step.Scale, 0.1, 1),
			Opacity:    clamp(1-d*step.Opacity, 0, 1),
			Brightness: clamp(1-d*step.Brightness, 0, 1),
		}
	}
	return out
}

// promoted returns the pose each layer takes once the stack moves forward: layer
// j adopts the resting pose of j-1. The top layer keeps its own entry.
func promoted(rest []Pose) []Pose {
	out := make([]Pose, len(rest))
	for j := range rest {
		if j == 0 {
			out[j] = rest[0]
			continue
		}
		out[j] = rest[j-1]
	}
	return out
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
