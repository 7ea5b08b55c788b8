// Package wireframe projects a triangle mesh onto the screen and draws
// each triangle's edges with the line rasterizer.
package wireframe

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/wesen/tinyraster/internal/logging"
	"github.com/wesen/tinyraster/pkg/canvas"
	"github.com/wesen/tinyraster/pkg/mesh"
	"github.com/wesen/tinyraster/pkg/raster"
)

// MaxCoord bounds the model-space coordinates Render accepts. A segment
// between two accepted vertices rasterizes to at most
// MaxCoord·max(width, height)+1 pixels.
const MaxCoord = 1024

// ErrVertexRange is returned by Render for a vertex that is not finite or
// has |X| or |Y| above MaxCoord.
var ErrVertexRange = errors.New("wireframe: vertex coordinate out of range")

// Options tunes Render.
type Options struct {
	// Workers is the number of goroutines drawing segments. Values above
	// one wrap the destination with canvas.Synchronized.
	Workers int

	// UniqueEdges draws an edge shared by two triangles once instead of
	// once per triangle. The pixels are the same either way.
	UniqueEdges bool
}

// DefaultOptions draws every face edge on the calling goroutine.
func DefaultOptions() Options {
	return Options{Workers: 1}
}

// Project maps a model-space vertex in [-1, 1] to integer screen
// coordinates of a width×height canvas. Z is discarded.
func Project(v mesh.Vec3, width, height int) image.Point {
	return image.Pt(
		int((v.X+1)*float64(width)/2),
		int((v.Y+1)*float64(height)/2),
	)
}

type segment struct {
	a, b image.Point
}

// Render draws the wireframe of src into dst, which covers a width×height
// screen. Each triangle contributes its three edges. Vertices outside
// [-1, 1] project off-screen and are left to dst's bounds policy; see
// MaxCoord for the vertices that are rejected outright.
//
// The context is checked between segments; a cancelled render returns
// ctx.Err() with part of the wireframe drawn.
func Render(ctx context.Context, dst raster.Canvas, src mesh.Source, width, height int, c raster.Color, opts Options) error {
	segs, err := segments(src, width, height, opts.UniqueEdges)
	if err != nil {
		return err
	}

	workers := max(opts.Workers, 1)
	log := logging.Logger()
	log.Debug("wireframe render",
		"faces", src.NumFaces(),
		"segments", len(segs),
		"workers", workers,
		"size", fmt.Sprintf("%dx%d", width, height))

	if workers == 1 {
		return drawAll(ctx, dst, segs, c)
	}

	dst = canvas.Synchronized(dst)
	g, gctx := errgroup.WithContext(ctx)
	chunk := (len(segs) + workers - 1) / workers
	for start := 0; start < len(segs); start += chunk {
		part := segs[start:min(start+chunk, len(segs))]
		g.Go(func() error {
			return drawAll(gctx, dst, part, c)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func drawAll(ctx context.Context, dst raster.Canvas, segs []segment, c raster.Color) error {
	for _, s := range segs {
		if err := ctx.Err(); err != nil {
			return err
		}
		raster.Line(dst, s.a.X, s.a.Y, s.b.X, s.b.Y, c)
	}
	return nil
}

func segments(src mesh.Source, width, height int, unique bool) ([]segment, error) {
	n := src.NumVerts()
	screen := make([]image.Point, n)
	for i := range screen {
		v := src.Vert(i)
		if !inRange(v.X) || !inRange(v.Y) {
			return nil, fmt.Errorf("vertex %d (%g, %g): %w", i, v.X, v.Y, ErrVertexRange)
		}
		screen[i] = Project(v, width, height)
	}

	var segs []segment
	if unique {
		edges := mesh.Edges(src)
		segs = make([]segment, 0, len(edges))
		for _, e := range edges {
			if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
				return nil, fmt.Errorf("edge %d-%d: %w", e.From, e.To, mesh.ErrIndexRange)
			}
			segs = append(segs, segment{screen[e.From], screen[e.To]})
		}
		return segs, nil
	}

	segs = make([]segment, 0, 3*src.NumFaces())
	for i := 0; i < src.NumFaces(); i++ {
		f := src.Face(i)
		for _, v := range f {
			if v < 0 || v >= n {
				return nil, fmt.Errorf("face %d: %w: %d", i, mesh.ErrIndexRange, v)
			}
		}
		for j := 0; j < 3; j++ {
			segs = append(segs, segment{screen[f[j]], screen[f[(j+1)%3]]})
		}
	}
	return segs, nil
}

// inRange is false for NaN, which fails every comparison.
func inRange(f float64) bool {
	return math.Abs(f) <= MaxCoord
}
