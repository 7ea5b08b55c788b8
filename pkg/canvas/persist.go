package canvas

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format names an output file format.
type Format string

const (
	FormatTGA  Format = "tga"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ErrUnknownFormat is returned for file extensions with no encoder.
var ErrUnknownFormat = errors.New("canvas: unknown image format")

// FormatFor picks the format from a file name's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tga":
		return FormatTGA, nil
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Encode writes m to w in the given format. TGA output is run-length
// encoded.
func (m *Image) Encode(w io.Writer, f Format) error {
	switch f {
	case FormatTGA:
		return EncodeTGA(w, m, TGAOptions{RLE: true})
	case FormatPNG:
		return png.Encode(w, m.ToImage())
	case FormatBMP:
		return bmp.Encode(w, m.ToImage())
	case FormatTIFF:
		return tiff.Encode(w, m.ToImage(), &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Persist writes m to path, choosing the format from the extension. The
// write is attempted once; a partially written file is left in place on
// error.
func (m *Image) Persist(path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("persist %s: %w", path, err)
	}
	if err := m.Encode(f, format); err != nil {
		_ = f.Close()
		return fmt.Errorf("persist %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("persist %s: %w", path, err)
	}
	return nil
}
