// Package raster draws straight line segments onto a pixel canvas using an
// integer Bresenham rasterizer that handles all octants and produces the
// same pixel set regardless of endpoint order.
package raster

import "image"

// Canvas is the pixel sink the rasterizer writes into. What happens to
// coordinates outside the canvas (drop, clamp, panic) is up to the
// implementation; the rasterizer never checks bounds itself.
type Canvas interface {
	SetPixel(x, y int, c Color)
}

// CanvasFunc adapts an ordinary function to the Canvas interface.
type CanvasFunc func(x, y int, c Color)

// SetPixel calls f(x, y, c).
func (f CanvasFunc) SetPixel(x, y int, c Color) { f(x, y, c) }

// Line rasterizes the segment (x0,y0)-(x1,y1) into dst, writing exactly
// one pixel of color c per unit step along the dominant axis.
func Line(dst Canvas, x0, y0, x1, y1 int, c Color) {
	Walk(x0, y0, x1, y1, func(x, y int) {
		dst.SetPixel(x, y, c)
	})
}

// Points returns the pixels Line would write, in the order it writes them.
// The order always runs along increasing dominant-axis coordinate, so it
// may start at either endpoint.
func Points(x0, y0, x1, y1 int) []image.Point {
	pts := make([]image.Point, 0, capHint(Steps(x0, y0, x1, y1)))
	Walk(x0, y0, x1, y1, func(x, y int) {
		pts = append(pts, image.Pt(x, y))
	})
	return pts
}

// maxPointsHint caps the slice Points preallocates; longer segments grow
// it by appending.
const maxPointsHint = 1 << 16

// capHint clamps a Steps result to a usable capacity. Steps is negative
// when a coordinate difference overflows int.
func capHint(n int) int {
	return min(max(n, 0), maxPointsHint)
}

// Steps returns the number of pixels a segment rasterizes to:
// max(|dx|, |dy|) + 1. Like Walk it assumes x1-x0 and y1-y0 fit in an
// int.
func Steps(x0, y0, x1, y1 int) int {
	return max(abs(x1-x0), abs(y1-y0)) + 1
}

// Walk calls fn once for every pixel on the segment (x0,y0)-(x1,y1).
//
// Steep lines iterate over y so near-vertical segments have no gaps, and
// endpoints are put in increasing order along the iterated axis so that
// A→B and B→A pick the same pixels. The error term is kept in units of
// 2·width, making the whole walk integer-only; the minor axis advances
// when the error strictly exceeds width and the remainder carries over.
//
// Coordinates may be negative or far outside any canvas, but the
// differences x1-x0 and y1-y0 must not overflow int. Walk makes
// Steps(x0, y0, x1, y1) calls to fn, so callers bound their inputs.
func Walk(x0, y0, x1, y1 int, fn func(x, y int)) {
	steep := abs(x1-x0) < abs(y1-y0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	width := x1 - x0
	height := y1 - y0
	derror := 2 * abs(height)
	ystep := 1
	if height < 0 {
		ystep = -1
	}

	errAcc := 0
	y := y0
	for i := 0; i <= width; i++ {
		x := x0 + i
		if steep {
			fn(y, x)
		} else {
			fn(x, y)
		}
		errAcc += derror
		if errAcc > width {
			y += ystep
			errAcc -= 2 * width
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
