package drawmatch

import "math"

// Normalized is a point set with its centroid moved to the origin and its
// largest coordinate magnitude scaled to 1.
type Normalized struct {
	Points Points

	// Centroid is the mean of the input points.
	Centroid Point

	// Scale is the factor the centered points were divided by. It is always
	// positive.
	Scale float64
}

// Normalize makes pts invariant to translation and uniform scaling.
//
// If all points coincide the scale is 1 and every output point is the
// origin. An empty input yields an empty result with the origin as centroid
// and a scale of 1.
func Normalize(pts Points) Normalized {
	if len(pts) == 0 {
		return Normalized{Points: Points{}, Scale: 1}
	}

	c := pts.Centroid()
	centered := make(Points, len(pts))
	var scale float64
	for i, p := range pts {
		q := Point{X: p.X - c.X, Y: p.Y - c.Y}
		centered[i] = q
		scale = math.Max(scale, math.Max(math.Abs(q.X), math.Abs(q.Y)))
	}
	if scale == 0 {
		Logger().Debug("normalizing zero-extent point set", "points", len(pts))
		scale = 1
	}

	for i, q := range centered {
		centered[i] = Point{X: q.X / scale, Y: q.Y / scale}
	}
	return Normalized{Points: centered, Centroid: c, Scale: scale}
}
