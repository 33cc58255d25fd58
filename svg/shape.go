package svg

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/felipemfpeixoto/drawmatch"
)

var (
	// ErrShapeNotFound is returned when no file exists for a shape.
	ErrShapeNotFound = errors.New("shape not found")

	// ErrNoPaths is returned when a document contains no usable geometry.
	ErrNoPaths = errors.New("no valid paths")
)

// Canvas describes the area reference shapes are fitted into.
type Canvas struct {
	Width  float64
	Height float64

	// Fill is the fraction of the canvas the shape's larger dimension
	// occupies after fitting.
	Fill float64
}

// DefaultCanvas returns a 200×200 canvas filled to 90%.
func DefaultCanvas() Canvas {
	return Canvas{Width: 200, Height: 200, Fill: 0.9}
}

func (c Canvas) withDefaults() Canvas {
	d := DefaultCanvas()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.Fill <= 0 {
		c.Fill = d.Fill
	}
	return c
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max drawmatch.Point
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

// Union returns the smallest box containing b and p.
func (b Box) Union(p drawmatch.Point) Box {
	return Box{
		Min: drawmatch.Pt(math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y)),
		Max: drawmatch.Pt(math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y)),
	}
}

// Bounds returns the bounding box of the control points of every stroke in
// canvas space. The boolean is false if the drawing has no points.
func Bounds(d drawmatch.Drawing) (Box, bool) {
	var b Box
	ok := false
	add := func(p drawmatch.Point) {
		if !ok {
			b, ok = Box{Min: p, Max: p}, true
			return
		}
		b = b.Union(p)
	}
	for _, s := range d {
		for _, c := range s.Path {
			c = c.Transform(s.Transform)
			switch c.Kind {
			case drawmatch.MoveToKind, drawmatch.LineToKind:
				add(c.P0)
			case drawmatch.QuadToKind:
				add(c.P0)
				add(c.P1)
			case drawmatch.CubicToKind:
				add(c.P0)
				add(c.P1)
				add(c.P2)
			}
		}
	}
	return b, ok
}

// Shape is a reference shape fitted onto a canvas.
type Shape struct {
	Name    string
	Strokes drawmatch.Drawing

	// Bounds is the bounding box of the shape before fitting.
	Bounds Box

	// Fit is the transform that was appended to every stroke.
	Fit drawmatch.Affine
}

// FitTransform returns the transform that scales a shape with bounds b
// uniformly to fill canvas and centers it. A box with no extent is only
// centered.
func FitTransform(b Box, canvas Canvas) drawmatch.Affine {
	canvas = canvas.withDefaults()
	w, h := b.Width(), b.Height()

	var s float64
	switch {
	case w > 0 && h > 0:
		s = math.Min(canvas.Width/w, canvas.Height/h)
	case w > 0:
		s = canvas.Width / w
	case h > 0:
		s = canvas.Height / h
	default:
		s = 1
	}
	if w > 0 || h > 0 {
		s *= canvas.Fill
	}

	offX := (canvas.Width-w*s)/2 - b.Min.X*s
	offY := (canvas.Height-h*s)/2 - b.Min.Y*s
	return drawmatch.Scale(s, s).Then(drawmatch.Translate(offX, offY))
}

// NewShape fits strokes onto canvas. If strokes is empty the shape is empty
// and ErrNoPaths is returned; the empty shape is still safe to compare
// against.
func NewShape(name string, strokes drawmatch.Drawing, canvas Canvas) (Shape, error) {
	b, ok := Bounds(strokes)
	if !ok {
		return Shape{Name: name}, fmt.Errorf("shape %s: %w", name, ErrNoPaths)
	}

	fit := FitTransform(b, canvas)
	fitted := make(drawmatch.Drawing, len(strokes))
	for i, s := range strokes {
		fitted[i] = drawmatch.Stroke{Path: s.Path, Transform: s.Transform.Then(fit)}
	}
	drawmatch.Logger().Debug("loaded shape", "name", name, "strokes", len(fitted),
		"width", b.Width(), "height", b.Height())
	return Shape{Name: name, Strokes: fitted, Bounds: b, Fit: fit}, nil
}

// Load reads an SVG document and fits it onto canvas.
func Load(r io.Reader, name string, canvas Canvas) (Shape, error) {
	doc, err := ParseSvgFromReader(r, name, 0)
	if err != nil {
		return Shape{Name: name}, err
	}
	return NewShape(name, doc.Strokes(), canvas)
}

// LoadFile reads the SVG document at path and fits it onto canvas. The shape
// is named after the file without its extension.
func LoadFile(path string, canvas Canvas) (Shape, error) {
	name := shapeName(path)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Shape{Name: name}, fmt.Errorf("%s: %w", path, ErrShapeNotFound)
		}
		return Shape{Name: name}, fmt.Errorf("opening shape: %w", err)
	}
	defer f.Close()
	return Load(f, name, canvas)
}

// Find looks for name.svg in each of dirs in turn and loads the first match.
func Find(name string, dirs []string, canvas Canvas) (Shape, error) {
	for _, dir := range dirs {
		p := filepath.Join(dir, name+".svg")
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p, canvas)
		}
	}
	return Shape{Name: name}, fmt.Errorf("%s in %v: %w", name, dirs, ErrShapeNotFound)
}

func shapeName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
