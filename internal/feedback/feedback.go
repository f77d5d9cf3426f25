// Package feedback defines the fire-and-forget hooks the deck calls on
// notable moments: haptic pulses and particle bursts.
package feedback

import (
	"log/slog"
	"strings"
	"time"
)

// Pattern is a vibration pattern of alternating on/off durations. A single
// entry is one pulse.
type Pattern []time.Duration

var (
	// PatternAdvance is the short pulse for an ordinary advance.
	PatternAdvance = Pattern{50 * time.Millisecond}
	// PatternSuccess marks a triggered skip or a completed scratch reveal.
	PatternSuccess = Pattern{100 * time.Millisecond, 50 * time.Millisecond, 100 * time.Millisecond}
)

// Haptics delivers vibration patterns. Implementations must never block or
// fail; unsupported devices ignore the call.
type Haptics interface {
	Vibrate(p Pattern)
}

// Particles renders a burst from markup mixing plain characters and embedded
// image tags.
type Particles interface {
	TriggerParticles(markup string)
}

var (
	_ Haptics = Nop{}
	_ Haptics = Log{}
)

// Nop ignores every pattern. Terminals have no vibration motor, so it is the
// default.
type Nop struct{}

func (Nop) Vibrate(Pattern) {}

// Log records patterns at debug level, useful when tuning gestures.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Vibrate(p Pattern) {
	if l.Logger == nil {
		return
	}
	l.Logger.Debug("haptic", "pattern", p.String())
}

func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, d := range p {
		parts[i] = d.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// ForMode returns the Haptics implementation named by a config value.
func ForMode(mode string, logger *slog.Logger) Haptics {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "log":
		return Log{Logger: logger}
	default:
		return Nop{}
	}
}
