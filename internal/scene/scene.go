// Package scene runs small JavaScript programs (via Goja) that draw lines
// onto a canvas.
//
// Scripts see these globals:
//
//	width, height            canvas size in pixels
//	line(x0, y0, x1, y1, c)  rasterize a segment; c is a color name or hex
//	                         string and defaults to "white"
//	rgba(r, g, b, a)         build a hex color string; a defaults to 255
//	print(...)               append a line to the scene output
package scene

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"github.com/wesen/tinyraster/internal/logging"
	"github.com/wesen/tinyraster/pkg/raster"
)

// Demo draws the classic three test segments on a 100×100 canvas.
const Demo = `line(13, 20, 80, 40, "white");
line(20, 13, 40, 80, "red");
line(80, 20, 13, 20, "red");
`

var namedColors = map[string]raster.Color{
	"white": raster.White(),
	"red":   raster.Red(),
	"black": raster.Black(),
	"green": raster.RGBA(0, 255, 0, 255),
	"blue":  raster.RGBA(0, 0, 255, 255),
}

// Scene executes scripts against one canvas.
type Scene struct {
	dst     raster.Canvas
	runtime *goja.Runtime

	// Output collects print() calls.
	Output []string
	// Lines counts line() calls.
	Lines int
}

// New creates a scene drawing into dst, which covers width×height pixels.
func New(dst raster.Canvas, width, height int) *Scene {
	s := &Scene{
		dst:     dst,
		runtime: goja.New(),
	}
	rt := s.runtime

	_ = rt.Set("width", width)
	_ = rt.Set("height", height)

	_ = rt.Set("line", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 4 {
			panic(rt.NewTypeError("line: expected 4 coordinates, got %d arguments", len(call.Arguments)))
		}
		c := raster.White()
		if arg := call.Argument(4); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
			var err error
			if c, err = ParseColor(arg.String()); err != nil {
				panic(rt.NewTypeError("line: %v", err))
			}
		}
		x0 := int(call.Argument(0).ToInteger())
		y0 := int(call.Argument(1).ToInteger())
		x1 := int(call.Argument(2).ToInteger())
		y1 := int(call.Argument(3).ToInteger())
		raster.Line(s.dst, x0, y0, x1, y1, c)
		s.Lines++
		logging.Logger().Debug("scene line", "from", fmt.Sprintf("%d,%d", x0, y0), "to", fmt.Sprintf("%d,%d", x1, y1), "color", c.Hex())
		return goja.Undefined()
	})

	_ = rt.Set("rgba", func(call goja.FunctionCall) goja.Value {
		ch := func(i int, def int64) uint8 {
			arg := call.Argument(i)
			if goja.IsUndefined(arg) {
				return uint8(def)
			}
			return uint8(min(max(arg.ToInteger(), 0), 255))
		}
		c := raster.RGBA(ch(0, 0), ch(1, 0), ch(2, 0), ch(3, 255))
		return rt.ToValue(c.Hex())
	})

	_ = rt.Set("print", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		msg := strings.Join(parts, " ")
		s.Output = append(s.Output, msg)
		logging.Logger().Info("scene print", "msg", msg)
		return goja.Undefined()
	})

	return s
}

// Run executes src. The name is used in error messages. Cancelling ctx
// interrupts a running script; Run then returns ctx.Err().
func (s *Scene) Run(ctx context.Context, name, src string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() {
		s.runtime.Interrupt(ctx.Err())
	})
	defer stop()

	_, err := s.runtime.RunScript(name, src)
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) && ctx.Err() != nil {
			s.runtime.ClearInterrupt()
			return ctx.Err()
		}
		return fmt.Errorf("scene %s: %w", name, err)
	}
	logging.Logger().Debug("scene done", "name", name, "lines", s.Lines)
	return nil
}

// ParseColor accepts a color name (white, red, black, green, blue) or a
// hex string understood by raster.ParseHex.
func ParseColor(s string) (raster.Color, error) {
	if c, ok := namedColors[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return raster.ParseHex(strings.TrimSpace(s))
}
