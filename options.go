package drawmatch

// Defaults for Options. They are calibrated for a canvas of roughly 200×200
// units and must be scaled along with the canvas.
const (
	DefaultMaxPoints       = 100
	DefaultLinearTolerance = 1.0
	DefaultLineSpacing     = 2.0
	DefaultLinearSamples   = 10
)

// Options controls tessellation fidelity and ranking parallelism.
//
// The zero value is usable; every non-positive field falls back to its
// default.
type Options struct {
	// MaxPoints is N in the N+1 samples taken for every quadratic and cubic
	// Bézier segment.
	MaxPoints int

	// LinearTolerance is the distance, in canvas units, below which both
	// control points of a cubic must lie from its chord for the cubic to be
	// tessellated as a straight line.
	LinearTolerance float64

	// LineSpacing is the canvas distance covered by one sample of a LineTo.
	LineSpacing float64

	// LinearSamples is the fixed number of samples emitted for a cubic that
	// was reclassified as a line.
	LinearSamples int

	// Workers bounds the number of concurrent comparisons in Rank. Zero
	// means GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		MaxPoints:       DefaultMaxPoints,
		LinearTolerance: DefaultLinearTolerance,
		LineSpacing:     DefaultLineSpacing,
		LinearSamples:   DefaultLinearSamples,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxPoints < 1 {
		o.MaxPoints = DefaultMaxPoints
	}
	if o.LinearTolerance <= 0 {
		o.LinearTolerance = DefaultLinearTolerance
	}
	if o.LineSpacing <= 0 {
		o.LineSpacing = DefaultLineSpacing
	}
	if o.LinearSamples < 2 {
		o.LinearSamples = DefaultLinearSamples
	}
	if o.Workers < 0 {
		o.Workers = 0
	}
	return o
}
