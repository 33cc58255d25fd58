// Command drawmatch scores a freehand drawing against reference shapes.
//
// The drawing and the references are SVG documents. Every subpath of the
// drawing is one stroke, in the drawing's own coordinates. References are
// fitted onto a canvas first, so that tessellation density is comparable.
//
// Usage:
//
//	drawmatch -drawing sketch.svg -ref circle.svg -ref square.svg
//	drawmatch -drawing sketch.svg -shapes ./shapes -ref circle -ref star -overlay out.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/felipemfpeixoto/drawmatch"
	"github.com/felipemfpeixoto/drawmatch/svg"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "drawmatch: %v\n", err)
		os.Exit(1)
	}
}

// stringList is a flag that may be given more than once.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

type config struct {
	drawing string
	refs    []string
	shapes  []string
	overlay string
	verbose bool

	opts   drawmatch.Options
	canvas svg.Canvas
	levels thresholds
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var (
		cfg    config
		refs   stringList
		shapes stringList
		canvas string
	)
	cfg.opts = drawmatch.DefaultOptions()
	cfg.canvas = svg.DefaultCanvas()
	cfg.levels = defaultThresholds()

	fs := flag.NewFlagSet("drawmatch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.drawing, "drawing", "", "SVG file holding the drawing's strokes")
	fs.Var(&refs, "ref", "reference shape: an SVG file, or a name looked up in -shapes (repeatable)")
	fs.Var(&shapes, "shapes", "directory searched for named references (repeatable)")
	fs.StringVar(&cfg.overlay, "overlay", "", "write a PNG of the best match's normalized points to this file")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	fs.IntVar(&cfg.opts.MaxPoints, "max-points", cfg.opts.MaxPoints, "samples per Bézier segment, minus one")
	fs.Float64Var(&cfg.opts.LineSpacing, "line-spacing", cfg.opts.LineSpacing, "canvas units per line sample")
	fs.Float64Var(&cfg.opts.LinearTolerance, "linear-tolerance", cfg.opts.LinearTolerance, "control point distance below which a cubic is a line")
	fs.IntVar(&cfg.opts.LinearSamples, "linear-samples", cfg.opts.LinearSamples, "samples for a cubic treated as a line")
	fs.IntVar(&cfg.opts.Workers, "workers", 0, "concurrent comparisons (0 for GOMAXPROCS)")
	fs.StringVar(&canvas, "canvas", "200x200", "canvas references are fitted onto, as WIDTHxHEIGHT")
	fs.Float64Var(&cfg.canvas.Fill, "fill", cfg.canvas.Fill, "fraction of the canvas a fitted reference occupies")
	fs.Float64Var(&cfg.levels.match, "match", cfg.levels.match, "largest distance reported as a match")
	fs.Float64Var(&cfg.levels.close, "close", cfg.levels.close, "largest distance reported as close")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.drawing == "" {
		return cfg, errors.New("-drawing is required")
	}
	if len(refs) == 0 {
		return cfg, errors.New("at least one -ref is required")
	}
	if cfg.levels.close < cfg.levels.match {
		return cfg, fmt.Errorf("-close %g is below -match %g", cfg.levels.close, cfg.levels.match)
	}
	w, h, err := parseCanvas(canvas)
	if err != nil {
		return cfg, err
	}
	cfg.canvas.Width, cfg.canvas.Height = w, h
	cfg.refs, cfg.shapes = refs, shapes
	return cfg, nil
}

func parseCanvas(s string) (w, h float64, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("canvas %q: expected WIDTHxHEIGHT", s)
	}
	if w, err = strconv.ParseFloat(strings.TrimSpace(ws), 64); err != nil {
		return 0, 0, fmt.Errorf("canvas width: %w", err)
	}
	if h, err = strconv.ParseFloat(strings.TrimSpace(hs), 64); err != nil {
		return 0, 0, fmt.Errorf("canvas height: %w", err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("canvas %q: dimensions must be positive", s)
	}
	return w, h, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	drawmatch.SetLogger(logger)
	defer drawmatch.SetLogger(nil)

	drawing, err := loadDrawing(cfg.drawing)
	if err != nil {
		return err
	}
	if len(drawing) == 0 {
		logger.Warn("drawing has no strokes", "file", cfg.drawing)
	}

	shapes, err := loadReferences(cfg, logger)
	if err != nil {
		return err
	}
	refs := make(map[string]drawmatch.Drawing, len(shapes))
	for name, s := range shapes {
		refs[name] = s.Strokes
	}

	matches, err := drawmatch.Rank(ctx, drawing, refs, cfg.opts)
	if err != nil {
		return err
	}

	best := drawmatch.CompareReport(drawing, refs[matches[0].Name], cfg.opts)
	logger.Debug("compared best match", "name", matches[0].Name, "elapsed", best.Elapsed)
	if err := printReport(stdout, matches, matches[0].Name, best, cfg.levels); err != nil {
		return err
	}

	if cfg.overlay != "" {
		if err := writeOverlay(cfg.overlay, best, overlaySize); err != nil {
			return err
		}
		logger.Info("wrote overlay", "file", cfg.overlay)
	}
	return nil
}

// loadDrawing reads the drawing's strokes without fitting them, so that they
// are tessellated in the coordinates they were captured in.
func loadDrawing(path string) (drawmatch.Drawing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening drawing: %w", err)
	}
	defer f.Close()

	doc, err := svg.ParseSvgFromReader(f, path, 0)
	if err != nil {
		return nil, err
	}
	return doc.Strokes(), nil
}

// loadReferences loads every -ref. A value ending in .svg or containing a
// path separator is a file; anything else is looked up in the -shapes
// directories. References without geometry are kept and never match.
func loadReferences(cfg config, logger *slog.Logger) (map[string]svg.Shape, error) {
	out := make(map[string]svg.Shape, len(cfg.refs))
	for _, ref := range cfg.refs {
		var (
			shape svg.Shape
			err   error
		)
		if strings.HasSuffix(ref, ".svg") || strings.ContainsRune(ref, os.PathSeparator) {
			shape, err = svg.LoadFile(ref, cfg.canvas)
		} else {
			shape, err = svg.Find(ref, cfg.shapes, cfg.canvas)
		}
		switch {
		case errors.Is(err, svg.ErrNoPaths):
			logger.Warn("reference has no paths", "ref", ref)
		case err != nil:
			return nil, fmt.Errorf("loading reference %s: %w", ref, err)
		}
		if _, dup := out[shape.Name]; dup {
			return nil, fmt.Errorf("duplicate reference name %q", shape.Name)
		}
		out[shape.Name] = shape
	}
	return out, nil
}
