package gesture

import (
	"errors"
	"math"
	"time"
)

var (
	// ErrAttached is returned by Attach while a previous binding is still live.
	ErrAttached = errors.New("gesture: engine already attached")
	// ErrDetached is returned for input delivered to a torn-down binding.
	ErrDetached = errors.New("gesture: binding detached")
)

// Phase is the engine state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseResolving
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseResolving:
		return "resolving"
	default:
		return "idle"
	}
}

// Outcome classifies a finished gesture.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCancel
	OutcomeAdvance
	OutcomeSkip
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCancel:
		return "cancel"
	case OutcomeAdvance:
		return "advance"
	case OutcomeSkip:
		return "triggered-skip"
	default:
		return "none"
	}
}

// EventKind is the kind of pointer input.
type EventKind int

const (
	EventDown EventKind = iota
	EventMove
	EventUp
	// EventCancel covers pointer-cancel and focus loss. It resolves exactly
	// like EventUp.
	EventCancel
)

// Event is one pointer sample in cell coordinates.
type Event struct {
	Kind    EventKind
	X, Y    float64
	Primary bool // primary mouse button or first touch point
	At      time.Time
}

// Result reports what an event did.
type Result struct {
	Outcome   Outcome
	Direction int           // exit direction for advance and skip, -1 or 1
	Settle    time.Duration // delay before Binding.Settle; zero when nothing is pending
	Tap       bool
	DoubleTap bool
	Session   Session // the resolved session, zero unless Outcome != OutcomeNone
}

// Engine turns pointer input for the top card into poses for every layer of
// the stack and classifies each gesture.
type Engine struct {
	cfg    Config
	width  float64
	height float64

	phase   Phase
	session *Session
	binding *Binding
	nextID  uint64

	rest    []Pose
	poses   []Pose
	anim    *transition
	pending bool
	lastTap time.Time
}

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// New returns an idle, unattached engine.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg.normalized(), width: fallbackWidth, height: fallbackHeight}
}

// Config returns the normalized configuration in use.
func (e *Engine) Config() Config { return e.cfg }

// Resize sets the viewport size in cells.
func (e *Engine) Resize(width, height int) {
	if width > 0 {
		e.width = float64(width)
	}
	if height > 0 {
		e.height = float64(height)
	}
}

// Phase returns the current state.
func (e *Engine) Phase() Phase { return e.phase }

// ReleaseDistance is the |dx| at which a drag advances.
func (e *Engine) ReleaseDistance() float64 { return e.cfg.ReleaseFraction * e.width }

// Session returns the active drag, or nil.
func (e *Engine) Session() *Session { return e.session }

// Resting returns the resting poses of the attached layers.
func (e *Engine) Resting() []Pose { return clonePoses(e.rest) }

// Attach binds the engine to a fresh stack of n layers. Only one binding can be
// live; the previous one must be detached first.
func (e *Engine) Attach(layers int) (*Binding, error) {
	if e.binding != nil && e.binding.live {
		return nil, ErrAttached
	}
	e.nextID++
	e.rest = RestingPoses(layers, e.cfg.Layers)
	e.poses = clonePoses(e.rest)
	e.anim = nil
	e.session = nil
	e.pending = false
	e.lastTap = time.Time{}
	e.phase = PhaseIdle
	e.binding = &Binding{engine: e, id: e.nextID, layers: layers, live: true}
	return e.binding, nil
}

// Frame returns the poses to draw at now, advancing any running transition.
func (e *Engine) Frame(now time.Time) []Pose {
	if e.anim != nil {
		e.poses = e.anim.at(now)
		if e.anim.done(now) {
			e.anim = nil
		}
	}
	return clonePoses(e.poses)
}

// Animating reports whether Frame will change after now.
func (e *Engine) Animating(now time.Time) bool {
	return e.anim != nil && !e.anim.done(now)
}

func (e *Engine) down(ev Event) Result {
	if !ev.Primary || e.phase != PhaseIdle || len(e.rest) == 0 {
		return Result{}
	}
	if e.anim != nil {
		e.poses = e.anim.at(ev.At)
		e.anim = nil
	}
	e.session = newSession(ev.X, ev.Y, ev.At)
	e.phase = PhaseDragging
	return Result{}
}

func (e *Engine) move(ev Event) Result {
	if e.phase != PhaseDragging || !e.session.Dragging() {
		return Result{}
	}
	e.session.move(ev.X, e.cfg.ShakeMinStroke)
	e.layoutDrag(e.session.DX)
	return Result{}
}

// layoutDrag places the top card under the pointer and pulls each deeper layer
// toward the slot in front of it in proportion to the drag distance.
func (e *Engine) layoutDrag(dx float64) {
	progress := clamp(math.Abs(dx)/e.width, 0, 1)
	top := e.rest[0]
	top.X = dx
	top.Rotate = dx * e.cfg.RotationFactor
	e.poses[0] = top
	for j := 1; j < len(e.rest); j++ {
		e.poses[j] = Lerp(e.rest[j], e.rest[j-1], progress)
	}
}

func (e *Engine) release(ev Event) Result {
	if e.phase != PhaseDragging || !e.session.Dragging() {
		return Result{}
	}
	s := e.session
	s.end()
	e.session = nil

	res := Result{Session: *s}
	from := clonePoses(e.poses)
	var (
		to       []Pose
		duration time.Duration
	)

	switch {
	case s.ShakeCount >= e.cfg.ShakeTrigger:
		dir := sign(s.DX)
		if dir == 0 {
			dir = 1
		}
		to = promoted(e.rest)
		to[0] = Pose{
			X:          s.DX,
			Y:          -(e.height + e.rest[0].Y),
			Rotate:     float64(dir) * e.cfg.SkipRotation,
			Scale:      e.cfg.SkipScale,
			Opacity:    0,
			Brightness: 1,
		}
		duration = e.cfg.SkipSettle
		res.Outcome, res.Direction, res.Settle = OutcomeSkip, dir, duration
	case math.Abs(s.DX) >= e.ReleaseDistance():
		dir := sign(s.DX)
		to = e.exitTargets(dir)
		duration = e.cfg.AdvanceSettle
		res.Outcome, res.Direction, res.Settle = OutcomeAdvance, dir, duration
	default:
		to = clonePoses(e.rest)
		duration = e.cfg.ReturnDuration
		res.Outcome = OutcomeCancel
		if math.Abs(s.DX) <= e.cfg.TapSlop && s.ShakeCount == 0 {
			res.Tap = true
			if !e.lastTap.IsZero() && ev.At.Sub(e.lastTap) <= e.cfg.DoubleTapWindow {
				res.DoubleTap = true
				e.lastTap = time.Time{}
			} else {
				e.lastTap = ev.At
			}
		}
	}
	// Only consecutive taps pair up.
	if !res.Tap {
		e.lastTap = time.Time{}
	}

	e.anim = newTransition(from, to, ev.At, duration, EaseOutCubic)
	if res.Outcome == OutcomeCancel {
		e.phase = PhaseIdle
	} else {
		e.pending = true
		e.phase = PhaseResolving
	}
	return res
}

func (e *Engine) exitTargets(dir int) []Pose {
	to := promoted(e.rest)
	to[0] = Pose{
		X:          float64(dir) * e.width,
		Rotate:     float64(dir) * e.cfg.ExitRotation,
		Scale:      1,
		Opacity:    1,
		Brightness: 1,
	}
	return to
}

func (e *Engine) fling(dir int, now time.Time) Result {
	if e.phase != PhaseIdle || len(e.rest) == 0 || dir == 0 {
		return Result{}
	}
	if dir > 0 {
		dir = 1
	} else {
		dir = -1
	}
	e.lastTap = time.Time{}
	from := e.Frame(now)
	e.anim = newTransition(from, e.exitTargets(dir), now, e.cfg.AdvanceSettle, EaseOutCubic)
	e.pending = true
	e.phase = PhaseResolving
	return Result{Outcome: OutcomeAdvance, Direction: dir, Settle: e.cfg.AdvanceSettle}
}

func (e *Engine) settle() bool {
	if !e.pending {
		return false
	}
	e.pending = false
	e.phase = PhaseIdle
	return true
}

func (e *Engine) detach(b *Binding) {
	if e.binding != b {
		return
	}
	e.binding = nil
	e.session = nil
	e.pending = false
	e.anim = nil
	e.phase = PhaseIdle
}

// Binding is the input subscription of one render cycle. Input reaches the
// engine only through a live binding.
type Binding struct {
	engine *Engine
	id     uint64
	layers int
	live   bool
}

// ID identifies the render cycle the binding belongs to.
func (b *Binding) ID() uint64 { return b.id }

// Layers is the stack depth the binding was attached with.
func (b *Binding) Layers() int { return b.layers }

// Live reports whether the binding still receives input.
func (b *Binding) Live() bool { return b != nil && b.live }

// Detach tears the binding down. It is safe to call more than once.
func (b *Binding) Detach() {
	if b == nil || !b.live {
		return
	}
	b.live = false
	b.engine.detach(b)
}

// Handle feeds one pointer event to the engine.
func (b *Binding) Handle(ev Event) (Result, error) {
	if !b.Live() {
		return Result{}, ErrDetached
	}
	switch ev.Kind {
	case EventDown:
		return b.engine.down(ev), nil
	case EventMove:
		return b.engine.move(ev), nil
	case EventUp, EventCancel:
		return b.engine.release(ev), nil
	}
	return Result{}, nil
}

// Fling advances without a drag, as if the card were swiped toward dir.
func (b *Binding) Fling(dir int, now time.Time) (Result, error) {
	if !b.Live() {
		return Result{}, ErrDetached
	}
	return b.engine.fling(dir, now), nil
}

// Settle consumes a pending advance. It reports true exactly once per advance
// or skip outcome; the caller then advances the deck and rebinds.
func (b *Binding) Settle() bool {
	if !b.Live() {
		return false
	}
	return b.engine.settle()
}
