// tinyraster draws lines onto a canvas and writes the result as an image.
// Without -model or -script it draws the three-segment demo scene.
//
// Run: GOWORK=off go run ./cmd/tinyraster/ -model head.obj -out out.tga
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	tea "charm.land/bubbletea/v2"

	"github.com/wesen/tinyraster/internal/logging"
	"github.com/wesen/tinyraster/internal/scene"
	"github.com/wesen/tinyraster/internal/viewer"
	"github.com/wesen/tinyraster/internal/wireframe"
	"github.com/wesen/tinyraster/pkg/canvas"
	"github.com/wesen/tinyraster/pkg/mesh"
	"github.com/wesen/tinyraster/pkg/raster"
)

type config struct {
	width, height int
	model         string
	script        string
	out           string
	color         string
	background    string
	workers       int
	uniqueEdges   bool
	noFlip        bool
	preview       bool
	view          bool
	verbose       bool
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("tinyraster", flag.ContinueOnError)
	fs.IntVar(&cfg.width, "width", 100, "canvas width in pixels")
	fs.IntVar(&cfg.height, "height", 100, "canvas height in pixels")
	fs.StringVar(&cfg.model, "model", "", "Wavefront OBJ file to draw as a wireframe")
	fs.StringVar(&cfg.script, "script", "", "JavaScript scene file")
	fs.StringVar(&cfg.out, "out", "output.tga", "output image (.tga, .png, .bmp, .tif)")
	fs.StringVar(&cfg.color, "color", "white", "wireframe color (name or hex)")
	fs.StringVar(&cfg.background, "bg", "#000000ff", "background color (name or hex)")
	fs.IntVar(&cfg.workers, "workers", runtime.GOMAXPROCS(0), "wireframe drawing goroutines")
	fs.BoolVar(&cfg.uniqueEdges, "unique-edges", false, "draw edges shared by two faces once")
	fs.BoolVar(&cfg.noFlip, "no-flip", false, "keep row 0 at the top of the output")
	fs.BoolVar(&cfg.preview, "preview", false, "print the image to the terminal")
	fs.BoolVar(&cfg.view, "view", false, "open the interactive viewer")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.width <= 0 || cfg.height <= 0 {
		return cfg, fmt.Errorf("canvas size must be positive, got %dx%d", cfg.width, cfg.height)
	}
	if cfg.model != "" && cfg.script != "" {
		return cfg, fmt.Errorf("-model and -script are mutually exclusive")
	}
	return cfg, nil
}

func draw(ctx context.Context, cfg config) (*canvas.Image, error) {
	fg, err := scene.ParseColor(cfg.color)
	if err != nil {
		return nil, fmt.Errorf("-color: %w", err)
	}
	bg, err := scene.ParseColor(cfg.background)
	if err != nil {
		return nil, fmt.Errorf("-bg: %w", err)
	}

	img := canvas.New(cfg.width, cfg.height)
	img.Fill(bg)

	switch {
	case cfg.model != "":
		m, err := mesh.LoadOBJ(cfg.model)
		if err != nil {
			return nil, err
		}
		opts := wireframe.Options{Workers: cfg.workers, UniqueEdges: cfg.uniqueEdges}
		if err := wireframe.Render(ctx, img, m, cfg.width, cfg.height, fg, opts); err != nil {
			return nil, err
		}

	case cfg.script != "":
		src, err := os.ReadFile(cfg.script)
		if err != nil {
			return nil, err
		}
		if err := scene.New(img, cfg.width, cfg.height).Run(ctx, cfg.script, string(src)); err != nil {
			return nil, err
		}

	default:
		if err := scene.New(img, cfg.width, cfg.height).Run(ctx, "demo", scene.Demo); err != nil {
			return nil, err
		}
	}

	if !cfg.noFlip {
		img.FlipVertically()
	}
	return img, nil
}

func run(ctx context.Context, args []string) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logging.SetLogger(log)

	img, err := draw(ctx, cfg)
	if err != nil {
		return err
	}

	if err := img.Persist(cfg.out); err != nil {
		return err
	}
	log.Info("image written", "path", cfg.out, "size", fmt.Sprintf("%dx%d", img.W, img.H))

	if cfg.preview {
		fmt.Println(img.Render(raster.Black()))
	}
	if cfg.view {
		// The image is already flipped for output; show it as stored.
		p := tea.NewProgram(viewer.New(cfg.out, img, raster.Black(), false))
		if _, err := p.Run(); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
