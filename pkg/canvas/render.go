package canvas

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/wesen/tinyraster/pkg/raster"
)

const halfBlock = "▀"

// cellPair is the (upper, lower) pixel pair shown by one terminal cell.
type cellPair struct {
	top, bottom raster.Color
}

// Render converts the image into a styled string for the terminal. Each
// character cell shows two pixel rows using an upper half block: the
// foreground is the upper pixel and the background the lower one.
// Fully transparent pixels, and the missing lower row of an odd-height
// image, show bg.
//
// Consecutive cells with the same pair are merged into runs and rendered
// with a single Style.Render() call per run.
//
// Rows are joined with "\n". An empty image returns "".
func (m *Image) Render(bg raster.Color) string {
	if m.W == 0 || m.H == 0 {
		return ""
	}

	pixel := func(x, y int) raster.Color {
		if y >= m.H {
			return bg
		}
		c := m.Pix[y*m.W+x]
		if c.A == 0 {
			return bg
		}
		return c
	}

	lines := make([]string, 0, (m.H+1)/2)
	for y := 0; y < m.H; y += 2 {
		var sb strings.Builder

		runStart := 0
		runPair := cellPair{pixel(0, y), pixel(0, y+1)}
		for x := 1; x <= m.W; x++ {
			var cur cellPair
			if x < m.W {
				cur = cellPair{pixel(x, y), pixel(x, y+1)}
			}
			if x == m.W || cur != runPair {
				style := lipgloss.NewStyle().
					Foreground(runPair.top).
					Background(runPair.bottom)
				sb.WriteString(style.Render(strings.Repeat(halfBlock, x-runStart)))
				runStart = x
				runPair = cur
			}
		}
		lines = append(lines, sb.String())
	}

	return strings.Join(lines, "\n")
}
