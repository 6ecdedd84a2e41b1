package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an sRGB color with a straight (non-premultiplied) alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

var (
	Transparent = Color{0, 0, 0, 0}
	Black       = Color{0, 0, 0, 1}
	White       = Color{255, 255, 255, 1}
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// IsTransparent reports whether painting the color has no visible effect.
func (c Color) IsTransparent() bool {
	return c.A <= 0
}

// RGBA returns the channels scaled to [0, 1], the form gg expects.
func (c Color) RGBA() (r, g, b, a float64) {
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0, c.A
}

// Hex formats the color as #rrggbb, or #rrggbbaa when not fully opaque.
func (c Color) Hex() string {
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	a := uint8(math.Round(math.Max(c.A, 0) * 255))
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, a)
}

var namedColors = map[string]Color{
	"red":     RGB(255, 0, 0),
	"green":   RGB(0, 128, 0),
	"blue":    RGB(0, 0, 255),
	"yellow":  RGB(255, 255, 0),
	"cyan":    RGB(0, 255, 255),
	"magenta": RGB(255, 0, 255),
	"white":   RGB(255, 255, 255),
	"black":   RGB(0, 0, 0),
	"gray":    RGB(128, 128, 128),
	"grey":    RGB(128, 128, 128),
	"orange":  RGB(255, 165, 0),
	"purple":  RGB(128, 0, 128),
	"pink":    RGB(255, 192, 203),
	"brown":   RGB(165, 42, 42),
	"lime":    RGB(0, 255, 0),
	"navy":    RGB(0, 0, 128),
	"teal":    RGB(0, 128, 128),
	"silver":  RGB(192, 192, 192),
}

// ParseColor parses a named color, "transparent", or a hex color in one of
// the forms #rgb, #rrggbb and #rrggbbaa.
func ParseColor(colorStr string) (Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))
	if colorStr == "transparent" || colorStr == "clear" {
		return Transparent, true
	}
	if strings.HasPrefix(colorStr, "#") {
		return parseHex(colorStr[1:])
	}
	color, ok := namedColors[colorStr]
	return color, ok
}

func parseHex(hex string) (Color, bool) {
	switch len(hex) {
	case 3:
		// #rgb expands each nibble
		expanded := make([]byte, 0, 6)
		for i := 0; i < 3; i++ {
			expanded = append(expanded, hex[i], hex[i])
		}
		hex = string(expanded)
	case 6, 8:
	default:
		return Color{}, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	if len(hex) == 6 {
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), true
	}
	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: float64(uint8(v)) / 255.0,
	}, true
}
