package drawmatch

import (
	"math"
	"time"
)

// Report holds every intermediate of a comparison, for callers that want to
// inspect or visualize more than the final distance.
type Report struct {
	// DrawingPoints and ReferencePoints are the number of tessellated points
	// before normalization.
	DrawingPoints   int
	ReferencePoints int

	Drawing   Normalized
	Reference Normalized

	// Forward is the Fréchet distance with the reference in its own order,
	// Reversed with the reference traversed backwards.
	Forward  float64
	Reversed float64

	// Distance is min(Forward, Reversed), or Unbounded if either side had
	// no points.
	Distance float64

	Elapsed time.Duration
}

// Matched reports whether both sides produced points, that is, whether
// Distance is a real distance rather than Unbounded.
func (r Report) Matched() bool {
	return r.Distance != Unbounded
}

// Compare returns the mirror-invariant Fréchet distance between a drawing
// and a reference shape. It is Unbounded if either side yields no points.
func Compare(drawing, reference Drawing, opts Options) float64 {
	return comparePoints(drawing.Points(opts), reference.Points(opts))
}

// ComparePoints is like Compare but takes the reference as an already
// tessellated point sequence in canvas space.
func ComparePoints(drawing Drawing, reference Points, opts Options) float64 {
	return comparePoints(drawing.Points(opts), reference)
}

func comparePoints(a, b Points) float64 {
	if len(a) == 0 || len(b) == 0 {
		return Unbounded
	}
	return Distance(Normalize(a), Normalize(b))
}

// CompareReport runs the same pipeline as Compare and returns all of its
// intermediates.
func CompareReport(drawing, reference Drawing, opts Options) Report {
	start := time.Now()
	a := drawing.Points(opts)
	b := reference.Points(opts)

	r := Report{
		DrawingPoints:   len(a),
		ReferencePoints: len(b),
		Drawing:         Normalize(a),
		Reference:       Normalize(b),
	}
	r.Forward, r.Reversed = distances(r.Drawing.Points, r.Reference.Points)
	r.Distance = math.Min(r.Forward, r.Reversed)
	r.Elapsed = time.Since(start)
	return r
}
