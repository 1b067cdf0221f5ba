package mandel

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
)

// Color is an opaque RGB color. Each component is in the range [0, 1].
type Color struct {
	R, G, B float64
}

// RGB creates a color from [0, 1] components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// RGB8 creates a color from 8-bit components, normalizing each by 255.
// This is how color selections from UI controls enter the core.
func RGB8(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// ParseHex parses "#RGB" or "#RRGGBB" (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	hex := s
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint64
	var err error
	switch len(hex) {
	case 3:
		if r, err = strconv.ParseUint(hex[0:1], 16, 8); err != nil {
			break
		}
		if g, err = strconv.ParseUint(hex[1:2], 16, 8); err != nil {
			break
		}
		b, err = strconv.ParseUint(hex[2:3], 16, 8)
		r, g, b = r*17, g*17, b*17
	case 6:
		if r, err = strconv.ParseUint(hex[0:2], 16, 8); err != nil {
			break
		}
		if g, err = strconv.ParseUint(hex[2:4], 16, 8); err != nil {
			break
		}
		b, err = strconv.ParseUint(hex[4:6], 16, 8)
	default:
		return Color{}, fmt.Errorf("mandel: color %q: want #RGB or #RRGGBB", s)
	}
	if err != nil {
		return Color{}, fmt.Errorf("mandel: color %q: %w", s, err)
	}
	return RGB8(uint8(r), uint8(g), uint8(b)), nil
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	r, g, b := c.RGB8()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// RGB8 returns the color quantized to 8-bit components with rounding,
// the way a unorm render target stores it.
func (c Color) RGB8() (r, g, b uint8) {
	return unorm8(c.R), unorm8(c.G), unorm8(c.B)
}

// RGBA converts the color to an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	r, g, b := c.RGB8()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Mix blends c toward d by t using the GLSL mix definition c*(1-t) + d*t.
// The result equals c exactly at t == 0 and d exactly at t == 1.
func (c Color) Mix(d Color, t float64) Color {
	u := 1 - t
	return Color{
		R: c.R*u + d.R*t,
		G: c.G*u + d.G*t,
		B: c.B*u + d.B*t,
	}
}

// IsValid reports whether every component is a finite value in [0, 1].
func (c Color) IsValid() bool {
	return unit(c.R) && unit(c.G) && unit(c.B)
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

func unorm8(v float64) uint8 {
	if !(v > 0) { // also catches NaN
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
