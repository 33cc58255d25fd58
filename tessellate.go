package drawmatch

import (
	"context"
	"log/slog"
	"math"
)

// Tessellate converts path into a single ordered point sequence.
//
// Every drawing command starts from the last point already emitted. Lines
// are sampled proportionally to their length so that straight and curved
// sections end up with comparable point density. Quadratic and cubic Béziers
// are sampled at opts.MaxPoints+1 evenly spaced parameter values, both ends
// included. A cubic whose control points both lie within
// opts.LinearTolerance of its chord is sampled as a line with
// opts.LinearSamples points instead.
//
// ClosePath and unknown command kinds produce no points. Drawing commands
// that appear before the first MoveTo have no start point and are skipped.
func Tessellate(path Path, opts Options) Points {
	t := tessellator{opts: opts.withDefaults()}
	for _, c := range path {
		t.step(c)
	}
	t.logStats()
	return t.out
}

// tessellator is the accumulator threaded through the commands of a path.
// The current point is always the last element of out.
type tessellator struct {
	opts Options
	out  Points

	moves, lines, quads, cubics, linearized, skipped int
}

func (t *tessellator) current() (Point, bool) {
	if len(t.out) == 0 {
		return Point{}, false
	}
	return t.out[len(t.out)-1], true
}

func (t *tessellator) step(c Command) {
	if c.Kind == MoveToKind {
		t.out = append(t.out, c.P0)
		t.moves++
		return
	}

	from, ok := t.current()
	if !ok {
		if _, draws := c.End(); draws {
			t.skipped++
		}
		return
	}

	switch c.Kind {
	case LineToKind:
		t.out = appendLine(t.out, from, c.P0, lineSamples(from, c.P0, t.opts.LineSpacing, lineSampleLimit*t.opts.MaxPoints))
		t.lines++
	case QuadToKind:
		t.out = appendQuad(t.out, from, c.P0, c.P1, t.opts.MaxPoints)
		t.quads++
	case CubicToKind:
		if isLinearCubic(from, c.P0, c.P1, c.P2, t.opts.LinearTolerance) {
			t.out = appendLine(t.out, from, c.P2, t.opts.LinearSamples)
			t.linearized++
			return
		}
		t.out = appendCubic(t.out, from, c.P0, c.P1, c.P2, t.opts.MaxPoints)
		t.cubics++
	}
}

func (t *tessellator) logStats() {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug("tessellated path",
		slog.Int("moves", t.moves),
		slog.Int("lines", t.lines),
		slog.Int("quads", t.quads),
		slog.Int("cubics", t.cubics),
		slog.Int("linearized", t.linearized),
		slog.Int("skipped", t.skipped),
		slog.Int("points", len(t.out)))
}

// lineSampleLimit bounds the samples of one line, in multiples of
// Options.MaxPoints. Lines longer than the canvas, as in unfitted drawings,
// would otherwise allocate without bound.
const lineSampleLimit = 10

// lineSamples returns the number of samples for a straight segment from a to
// b: one per spacing units of length, never fewer than 2 and never more than
// limit.
func lineSamples(a, b Point, spacing float64, limit int) int {
	limit = max(limit, 2)
	n := math.Ceil(a.Distance(b) / spacing)
	switch {
	case math.IsNaN(n) || n < 2:
		return 2
	case n > float64(limit):
		return limit
	}
	return int(n)
}

// appendLine appends n ≥ 2 evenly spaced samples from a to b, both
// included. The last sample is exactly b.
func appendLine(out Points, a, b Point, n int) Points {
	last := float64(n - 1)
	for i := 0; i < n-1; i++ {
		out = append(out, a.Lerp(b, float64(i)/last))
	}
	return append(out, b)
}

// isLinearCubic reports whether both control points lie closer than tol to
// the line through p0 and p3.
func isLinearCubic(p0, p1, p2, p3 Point, tol float64) bool {
	return distToLine(p1, p0, p3) < tol && distToLine(p2, p0, p3) < tol
}

// evalQuad evaluates the quadratic Bézier (p0, p1, p2) at t.
func evalQuad(p0, p1, p2 Point, t float64) Point {
	mt := 1 - t
	a := mt * mt
	b := 2 * mt * t
	c := t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y,
	}
}

// evalCubic evaluates the cubic Bézier (p0, p1, p2, p3) at t.
func evalCubic(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

func appendQuad(out Points, p0, p1, p2 Point, n int) Points {
	for i := 0; i <= n; i++ {
		out = append(out, evalQuad(p0, p1, p2, float64(i)/float64(n)))
	}
	return out
}

func appendCubic(out Points, p0, p1, p2, p3 Point, n int) Points {
	for i := 0; i <= n; i++ {
		out = append(out, evalCubic(p0, p1, p2, p3, float64(i)/float64(n)))
	}
	return out
}
