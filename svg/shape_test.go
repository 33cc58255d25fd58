package svg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipemfpeixoto/drawmatch"
)

const (
	circleSvg = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">
	<circle cx="32" cy="32" r="30" fill="none" stroke="black"/>
</svg>`
	lineSvg = `<svg xmlns="http://www.w3.org/2000/svg">
	<path d="M0 0 L100 100"/>
</svg>`
)

func TestFitTransform(t *testing.T) {
	fit := FitTransform(Box{Min: pt(0, 0), Max: pt(100, 50)}, DefaultCanvas())
	assert.Equal(t, pt(10, 55), fit.Apply(pt(0, 0)))
	assert.Equal(t, pt(190, 145), fit.Apply(pt(100, 50)))

	// Offset boxes land in the same place.
	fit = FitTransform(Box{Min: pt(-50, 10), Max: pt(50, 60)}, DefaultCanvas())
	assert.Equal(t, pt(10, 55), fit.Apply(pt(-50, 10)))
	assert.Equal(t, pt(100, 100), fit.Apply(pt(0, 35)))

	// A point is centered without scaling.
	fit = FitTransform(Box{Min: pt(3, 4), Max: pt(3, 4)}, Canvas{})
	assert.Equal(t, pt(100, 100), fit.Apply(pt(3, 4)))
	assert.Equal(t, pt(101, 100), fit.Apply(pt(4, 4)))

	// A vertical line fills the canvas height.
	fit = FitTransform(Box{Min: pt(0, 0), Max: pt(0, 10)}, Canvas{Width: 100, Height: 100, Fill: 1})
	assert.Equal(t, pt(50, 0), fit.Apply(pt(0, 0)))
	assert.Equal(t, pt(50, 100), fit.Apply(pt(0, 10)))
}

func TestBounds(t *testing.T) {
	_, ok := Bounds(nil)
	assert.False(t, ok)

	b, ok := Bounds(drawmatch.Drawing{
		{Path: drawmatch.Path{move(pt(0, 0)), cubic(pt(-5, 20), pt(5, 30), pt(10, 10))}},
		{Path: drawmatch.Path{move(pt(1, 1)), line(pt(2, 2))}, Transform: drawmatch.Translate(100, 0)},
	})
	require.True(t, ok)
	assert.Equal(t, Box{Min: pt(-5, 0), Max: pt(102, 30)}, b)
	assert.Equal(t, 107.0, b.Width())
	assert.Equal(t, 30.0, b.Height())
}

func TestLoad(t *testing.T) {
	shape, err := Load(strings.NewReader(lineSvg), "line", DefaultCanvas())
	require.NoError(t, err)
	assert.Equal(t, "line", shape.Name)
	assert.Equal(t, Box{Min: pt(0, 0), Max: pt(100, 100)}, shape.Bounds)
	require.Len(t, shape.Strokes, 1)

	s := shape.Strokes[0]
	assert.InDelta(t, 10, s.Transform.Apply(s.Path[0].P0).X, 1e-9)
	assert.InDelta(t, 190, s.Transform.Apply(s.Path[1].P0).Y, 1e-9)
}

func TestLoadEmpty(t *testing.T) {
	shape, err := Load(strings.NewReader(`<svg><g><text>hi</text></g></svg>`), "empty", DefaultCanvas())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPaths))
	assert.Equal(t, "empty", shape.Name)
	assert.Empty(t, shape.Strokes)

	drawing := drawmatch.Drawing{{Path: drawmatch.Path{move(pt(0, 0)), line(pt(1, 1))}}}
	assert.Equal(t, drawmatch.Unbounded, drawmatch.Compare(drawing, shape.Strokes, drawmatch.DefaultOptions()))
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(strings.NewReader(`<svg><path`), "broken", DefaultCanvas())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoPaths))
}

func TestLoadFileAndFind(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "circle.svg"), []byte(circleSvg), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(other, "line.svg"), []byte(lineSvg), 0o644))

	shape, err := LoadFile(filepath.Join(dir, "circle.svg"), DefaultCanvas())
	require.NoError(t, err)
	assert.Equal(t, "circle", shape.Name)
	require.Len(t, shape.Strokes, 1)

	_, err = LoadFile(filepath.Join(dir, "square.svg"), DefaultCanvas())
	assert.True(t, errors.Is(err, ErrShapeNotFound))

	shape, err = Find("line", []string{dir, other}, DefaultCanvas())
	require.NoError(t, err)
	assert.Equal(t, "line", shape.Name)

	_, err = Find("square", []string{dir, other}, DefaultCanvas())
	assert.True(t, errors.Is(err, ErrShapeNotFound))
}

func TestLoadedShapesCompare(t *testing.T) {
	opts := drawmatch.DefaultOptions()
	circle, err := Load(strings.NewReader(circleSvg), "circle", DefaultCanvas())
	require.NoError(t, err)
	line, err := Load(strings.NewReader(lineSvg), "line", DefaultCanvas())
	require.NoError(t, err)

	// A freehand circle drawn somewhere else on the canvas at another size.
	drawn := drawmatch.Drawing{{
		Path:      (&Circle{Cx: "0", Cy: "0", Radius: "1"}).Strokes(drawmatch.Identity())[0].Path,
		Transform: drawmatch.Scale(45, 45).Then(drawmatch.Translate(60, 140)),
	}}

	toCircle := drawmatch.Compare(drawn, circle.Strokes, opts)
	toLine := drawmatch.Compare(drawn, line.Strokes, opts)
	assert.InDelta(t, 0, toCircle, 1e-6)
	assert.Greater(t, toLine, 0.5)

	matches, err := drawmatch.Rank(t.Context(), drawn, map[string]drawmatch.Drawing{
		"circle": circle.Strokes,
		"line":   line.Strokes,
	}, opts)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "circle", matches[0].Name)
}
