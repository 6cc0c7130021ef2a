package core

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is an 8-bit per channel RGB color
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// NewColor creates a new Color
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Scale multiplies every channel by t, clamping the result to [0, 255].
// Fractional parts are truncated.
func (c Color) Scale(t float64) Color {
	return Color{
		R: clampChannel(float64(c.R) * t),
		G: clampChannel(float64(c.G) * t),
		B: clampChannel(float64(c.B) * t),
	}
}

// Add returns the channel-wise sum, saturating at 255
func (c Color) Add(other Color) Color {
	return Color{
		R: uint8(min(int(c.R)+int(other.R), 255)),
		G: uint8(min(int(c.G)+int(other.G), 255)),
		B: uint8(min(int(c.B)+int(other.B), 255)),
	}
}

// RGBA converts the color to an opaque color.RGBA for image output
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Luminance returns the perceptual luminance in [0, 1]
// Uses Rec. 709 weights: 0.2126*R + 0.7152*G + 0.0722*B
func (c Color) Luminance() float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255.0
}

// Hex formats the color as #rrggbb
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHexColor parses a color in #rrggbb (or rrggbb) form
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: expected #rrggbb", s)
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
	}, nil
}

func clampChannel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
