package gesture

import "time"

// EasingFunc maps linear progress in [0,1] to eased progress.
type EasingFunc func(t float64) float64

var (
	EaseLinear     EasingFunc = func(t float64) float64 { return t }
	EaseOutCubic   EasingFunc = func(t float64) float64 { u := t - 1; return u*u*u + 1 }
	EaseSmoothstep EasingFunc = func(t float64) float64 { return t * t * (3 - 2*t) }
)

// transition eases a whole stack from one set of poses to another.
type transition struct {
	from     []Pose
	to       []Pose
	start    time.Time
	duration time.Duration
	easing   EasingFunc
}

func newTransition(from, to []Pose, start time.Time, d time.Duration, easing EasingFunc) *transition {
	if easing == nil {
		easing = EaseOutCubic
	}
	return &transition{
		from:     clonePoses(from),
		to:       clonePoses(to),
		start:    start,
		duration: d,
		easing:   easing,
	}
}

func (tr *transition) progress(now time.Time) float64 {
	if tr.duration <= 0 {
		return 1
	}
	if now.Before(tr.start) {
		return 0
	}
	elapsed := now.Sub(tr.start)
	if elapsed >= tr.duration {
		return 1
	}
	return float64(elapsed) / float64(tr.duration)
}

func (tr *transition) at(now time.Time) []Pose {
	p := tr.progress(now)
	if p >= 1 {
		return clonePoses(tr.to)
	}
	e := tr.easing(p)
	out := make([]Pose, len(tr.to))
	for i := range out {
		out[i] = Lerp(tr.from[i], tr.to[i], e)
	}
	return out
}

func (tr *transition) done(now time.Time) bool { return tr.progress(now) >= 1 }

func clonePoses(in []Pose) []Pose {
	if in == nil {
		return nil
	}
	out := make([]Pose, len(in))
	copy(out, in)
	return out
}
