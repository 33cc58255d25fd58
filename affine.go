package drawmatch

import (
	"math"

	mt "github.com/rustyoz/Mtransform"
)

// Affine is a 2D affine transformation, stored as the 3×3 matrix
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// The zero value is not a valid transformation; strokes treat it as the
// identity.
type Affine struct {
	m mt.Transform
}

// Identity returns the identity transformation.
func Identity() Affine {
	return Affine{m: mt.Identity()}
}

// NewAffine returns the transformation mapping (x, y) to
// (a·x + c·y + e, b·x + d·y + f). The coefficient order follows the SVG
// matrix(a b c d e f) notation.
func NewAffine(a, b, c, d, e, f float64) Affine {
	var m mt.Transform
	m[0][0], m[0][1], m[0][2] = a, c, e
	m[1][0], m[1][1], m[1][2] = b, d, f
	m[2][2] = 1
	return Affine{m: m}
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Affine {
	return NewAffine(1, 0, 0, 1, tx, ty)
}

// Scale returns a scaling by sx along x and sy along y.
func Scale(sx, sy float64) Affine {
	return NewAffine(sx, 0, 0, sy, 0, 0)
}

// Rotate returns a rotation by th radians around the origin.
func Rotate(th float64) Affine {
	s, c := math.Sincos(th)
	return NewAffine(c, s, -s, c, 0, 0)
}

// Coefficients returns the six coefficients in SVG matrix order.
func (aff Affine) Coefficients() [6]float64 {
	return [6]float64{aff.m[0][0], aff.m[1][0], aff.m[0][1], aff.m[1][1], aff.m[0][2], aff.m[1][2]}
}

// IsZero reports whether aff is the zero value.
func (aff Affine) IsZero() bool {
	return aff.m == mt.Transform{}
}

// IsIdentity reports whether aff is the identity transformation.
func (aff Affine) IsIdentity() bool {
	return aff.m == mt.Identity()
}

// orIdentity maps the zero value to the identity.
func (aff Affine) orIdentity() Affine {
	if aff.IsZero() {
		return Identity()
	}
	return aff
}

// Then returns the transformation that applies aff first and next second.
func (aff Affine) Then(next Affine) Affine {
	return Affine{m: mt.MultiplyTransforms(next.orIdentity().m, aff.orIdentity().m)}
}

// Apply maps pt through the transformation.
func (aff Affine) Apply(pt Point) Point {
	m := aff.orIdentity().m
	x, y := m.Apply(pt.X, pt.Y)
	return Point{X: x, Y: y}
}
