package ui

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var black = colorful.Color{}

// parseColor reads a #rgb or #rrggbb string, returning fallback when it is not
// a valid hex color.
func parseColor(hex string, fallback colorful.Color) colorful.Color {
	hex = strings.TrimSpace(hex)
	if len(hex) == 4 && hex[0] == '#' {
		hex = "#" + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2) + strings.Repeat(hex[3:4], 2)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c
}

// shade darkens c toward black; brightness 1 leaves it unchanged.
func shade(c colorful.Color, brightness float64) colorful.Color {
	brightness = clampUnit(brightness)
	if brightness >= 1 {
		return c
	}
	return black.BlendRgb(c, brightness).Clamped()
}

// composite lays c over under with the given opacity.
func composite(c, under colorful.Color, opacity float64) colorful.Color {
	opacity = clampUnit(opacity)
	if opacity >= 1 {
		return c
	}
	return under.BlendRgb(c, opacity).Clamped()
}

// lighten moves c toward white by t.
func lighten(c colorful.Color, t float64) colorful.Color {
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, clampUnit(t)).Clamped()
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
