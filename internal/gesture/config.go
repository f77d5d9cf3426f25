package gesture

import "time"

// Config holds the tunable thresholds of the engine.
type Config struct {
	// RotationFactor is degrees of rotation per cell of horizontal drag. Zero
	// disables rotation.
	RotationFactor float64
	// ReleaseFraction of the viewport width a drag must cover to advance.
	ReleaseFraction float64
	// ShakeMinStroke is the minimum travel, in cells, between two counted
	// direction reversals.
	ShakeMinStroke float64
	// ShakeTrigger reversals resolve the gesture as a triggered skip.
	ShakeTrigger int
	// TapSlop is the largest |dx| still treated as a tap.
	TapSlop         float64
	DoubleTapWindow time.Duration

	ExitRotation float64 // degrees, ordinary swipe exit
	SkipRotation float64 // degrees, shake exit
	SkipScale    float64

	AdvanceSettle  time.Duration
	SkipSettle     time.Duration
	ReturnDuration time.Duration

	Layers LayerStep
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		RotationFactor:  0.05,
		ReleaseFraction: 0.25,
		ShakeMinStroke:  3,
		ShakeTrigger:    5,
		TapSlop:         1,
		DoubleTapWindow: 400 * time.Millisecond,
		ExitRotation:    20,
		SkipRotation:    60,
		SkipScale:       0.3,
		AdvanceSettle:   300 * time.Millisecond,
		SkipSettle:      600 * time.Millisecond,
		ReturnDuration:  300 * time.Millisecond,
		Layers:          DefaultLayerStep,
	}
}

// normalized fills zero fields from DefaultConfig. RotationFactor is left
// alone: zero turns rotation off.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.ReleaseFraction <= 0 || c.ReleaseFraction > 1 {
		c.ReleaseFraction = d.ReleaseFraction
	}
	if c.ShakeMinStroke <= 0 {
		c.ShakeMinStroke = d.ShakeMinStroke
	}
	if c.ShakeTrigger <= 0 {
		c.ShakeTrigger = d.ShakeTrigger
	}
	if c.TapSlop < 0 {
		c.TapSlop = d.TapSlop
	}
	if c.DoubleTapWindow <= 0 {
		c.DoubleTapWindow = d.DoubleTapWindow
	}
	if c.ExitRotation == 0 {
		c.ExitRotation = d.ExitRotation
	}
	if c.SkipRotation == 0 {
		c.SkipRotation = d.SkipRotation
	}
	if c.SkipScale <= 0 {
		c.SkipScale = d.SkipScale
	}
	if c.AdvanceSettle <= 0 {
		c.AdvanceSettle = d.AdvanceSettle
	}
	if c.SkipSettle <= 0 {
		c.SkipSettle = d.SkipSettle
	}
	if c.ReturnDuration <= 0 {
		c.ReturnDuration = d.ReturnDuration
	}
	if c.Layers == (LayerStep{}) {
		c.Layers = d.Layers
	}
	return c
}
