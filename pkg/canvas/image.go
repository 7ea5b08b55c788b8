// Package canvas provides a fixed-size RGBA pixel grid that the line
// rasterizer draws into, plus the ways to get pixels out of it: image
// files (TGA, PNG, BMP, TIFF) and a Lipgloss-styled terminal preview.
//
// Rows are stored top to bottom in memory, row 0 first. Every output
// format writes memory row 0 as the top row of the picture, so callers
// that want the origin in the bottom-left corner call FlipVertically
// before persisting.
package canvas

import (
	"image"
	"image/color"

	"github.com/wesen/tinyraster/pkg/raster"
)

// Image is a W×H grid of colors in row-major order.
type Image struct {
	W, H int
	Pix  []raster.Color // Pix[y*W+x]
}

var (
	_ raster.Canvas = (*Image)(nil)
	_ image.Image   = (*Image)(nil)
)

// New creates an Image of the given size, filled with transparent black.
// Negative sizes are treated as zero.
func New(w, h int) *Image {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Image{W: w, H: h, Pix: make([]raster.Color, w*h)}
}

// InBounds reports whether (x, y) is inside the image.
func (m *Image) InBounds(x, y int) bool {
	return x >= 0 && x < m.W && y >= 0 && y < m.H
}

// SetPixel writes a single pixel. Out-of-bounds writes are silently
// dropped; no clamping takes place.
func (m *Image) SetPixel(x, y int, c raster.Color) {
	if m.InBounds(x, y) {
		m.Pix[y*m.W+x] = c
	}
}

// Get returns the pixel at (x, y), or the zero Color outside the image.
func (m *Image) Get(x, y int) raster.Color {
	if !m.InBounds(x, y) {
		return raster.Color{}
	}
	return m.Pix[y*m.W+x]
}

// Fill sets every pixel to c.
func (m *Image) Fill(c raster.Color) {
	for i := range m.Pix {
		m.Pix[i] = c
	}
}

// FlipVertically reverses the row order in place.
func (m *Image) FlipVertically() {
	for top, bot := 0, m.H-1; top < bot; top, bot = top+1, bot-1 {
		a := m.Pix[top*m.W : (top+1)*m.W]
		b := m.Pix[bot*m.W : (bot+1)*m.W]
		for x := range a {
			a[x], b[x] = b[x], a[x]
		}
	}
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.W, m.H) }

// At implements image.Image.
func (m *Image) At(x, y int) color.Color {
	c := m.Get(x, y)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ToImage copies the pixels into a new *image.NRGBA.
func (m *Image) ToImage() *image.NRGBA {
	img := image.NewNRGBA(m.Bounds())
	for i, c := range m.Pix {
		o := i * 4
		img.Pix[o+0] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = c.A
	}
	return img
}
