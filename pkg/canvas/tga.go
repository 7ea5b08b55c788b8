package canvas

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wesen/tinyraster/pkg/raster"
)

const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10

	// Image descriptor: origin in the top-left corner, plus 8 alpha bits
	// for 32-bit output.
	tgaTopLeft   = 0x20
	tgaAlphaBits = 0x08

	tgaMaxPacket = 128
)

// tgaFooter marks the file as TGA 2.0 (no extension or developer area).
var tgaFooter = []byte("\x00\x00\x00\x00\x00\x00\x00\x00TRUEVISION-XFILE.\x00")

// ErrTooLarge is returned by EncodeTGA when a side exceeds the 16-bit
// size fields of the TGA header.
var ErrTooLarge = errors.New("canvas: image too large for TGA")

// TGAOptions controls EncodeTGA.
type TGAOptions struct {
	// RLE enables run-length packets. Runs never cross a row boundary.
	RLE bool

	// Opaque writes 24-bit BGR pixels and drops the alpha channel.
	Opaque bool
}

// EncodeTGA writes m as a Truevision TGA file, 32-bit BGRA unless
// opts.Opaque selects 24-bit BGR.
func EncodeTGA(w io.Writer, m *Image, opts TGAOptions) error {
	if m.W > math.MaxUint16 || m.H > math.MaxUint16 {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, m.W, m.H)
	}
	bw := bufio.NewWriter(w)
	px := writeBGRA
	if opts.Opaque {
		px = writeBGR
	}

	var hdr [18]byte
	hdr[2] = tgaTrueColor
	if opts.RLE {
		hdr[2] = tgaTrueColorRLE
	}
	binary.LittleEndian.PutUint16(hdr[12:], uint16(m.W))
	binary.LittleEndian.PutUint16(hdr[14:], uint16(m.H))
	if opts.Opaque {
		hdr[16] = 24
		hdr[17] = tgaTopLeft
	} else {
		hdr[16] = 32
		hdr[17] = tgaTopLeft | tgaAlphaBits
	}
	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}

	for y := 0; y < m.H; y++ {
		row := m.Pix[y*m.W : (y+1)*m.W]
		var err error
		if opts.RLE {
			err = writeRLERow(bw, row, px)
		} else {
			for _, c := range row {
				if err = px(bw, c); err != nil {
					break
				}
			}
		}
		if err != nil {
			return err
		}
	}

	if _, err := bw.Write(tgaFooter); err != nil {
		return err
	}
	return bw.Flush()
}

func writeBGRA(w *bufio.Writer, c raster.Color) error {
	_, err := w.Write([]byte{c.B, c.G, c.R, c.A})
	return err
}

func writeBGR(w *bufio.Writer, c raster.Color) error {
	_, err := w.Write([]byte{c.B, c.G, c.R})
	return err
}

// writeRLERow emits run-length packets (header 0x80|n-1, one pixel) for
// repeats and raw packets (header n-1, n pixels) for everything else.
// Pixels are compared on all four channels even when px drops alpha.
func writeRLERow(w *bufio.Writer, row []raster.Color, px func(*bufio.Writer, raster.Color) error) error {
	for i := 0; i < len(row); {
		run := 1
		for i+run < len(row) && run < tgaMaxPacket && row[i+run] == row[i] {
			run++
		}
		if run > 1 {
			if err := w.WriteByte(0x80 | byte(run-1)); err != nil {
				return err
			}
			if err := px(w, row[i]); err != nil {
				return err
			}
			i += run
			continue
		}

		raw := 1
		for i+raw < len(row) && raw < tgaMaxPacket {
			if i+raw+1 < len(row) && row[i+raw] == row[i+raw+1] {
				break
			}
			raw++
		}
		if err := w.WriteByte(byte(raw - 1)); err != nil {
			return err
		}
		for _, c := range row[i : i+raw] {
			if err := px(w, c); err != nil {
				return err
			}
		}
		i += raw
	}
	return nil
}
