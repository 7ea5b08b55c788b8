package raster

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an 8-bit-per-channel, non-premultiplied RGBA value. The
// rasterizer never looks inside it.
type Color struct {
	R, G, B, A uint8
}

// ErrBadHex is returned by ParseHex for malformed input.
var ErrBadHex = errors.New("raster: malformed hex color")

var _ color.Color = Color{}

// RGBA builds a Color from its four channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// White is opaque white.
func White() Color { return Color{255, 255, 255, 255} }

// Red is opaque red.
func Red() Color { return Color{255, 0, 0, 255} }

// Black is opaque black.
func Black() Color { return Color{0, 0, 0, 255} }

// Transparent is the zero Color.
func Transparent() Color { return Color{} }

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex formats c as "#rrggbbaa".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// FromColor converts any color.Color to a Color.
func FromColor(c color.Color) Color {
	if rc, ok := c.(Color); ok {
		return rc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa" (the leading '#' is
// optional). Colors without an alpha component are opaque.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrBadHex, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrBadHex, s)
	}
	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
