package drawmatch

import "math"

// Unbounded is the distance reported when either side of a comparison has
// no points. It ranks after every real distance.
const Unbounded = math.MaxFloat64

// Frechet returns the discrete Fréchet distance between a and b, or
// Unbounded if either is empty.
//
// The full len(a)×len(b) coupling table is computed; time and memory are
// O(len(a)·len(b)).
func Frechet(a, b Points) float64 {
	m, n := len(a), len(b)
	if m == 0 || n == 0 {
		return Unbounded
	}

	// ca[i*n+j] is the coupling distance of the prefixes a[:i+1] and b[:j+1].
	ca := make([]float64, m*n)
	ca[0] = a[0].Distance(b[0])
	for j := 1; j < n; j++ {
		ca[j] = math.Max(ca[j-1], a[0].Distance(b[j]))
	}
	for i := 1; i < m; i++ {
		row := ca[i*n : (i+1)*n]
		prev := ca[(i-1)*n : i*n]
		row[0] = math.Max(prev[0], a[i].Distance(b[0]))
		for j := 1; j < n; j++ {
			reach := min(prev[j], prev[j-1], row[j-1])
			row[j] = math.Max(a[i].Distance(b[j]), reach)
		}
	}
	return ca[m*n-1]
}

// Distance compares two normalized point sets. It returns the smaller of the
// Fréchet distances of a against b and of a against b traversed backwards,
// so the direction in which a stroke was drawn does not matter.
//
// If either set is empty the result is Unbounded.
func Distance(a, b Normalized) float64 {
	forward, reversed := distances(a.Points, b.Points)
	return math.Min(forward, reversed)
}

// distances returns the Fréchet distance of a against b and against b
// reversed.
func distances(a, b Points) (forward, reversed float64) {
	if len(a) == 0 || len(b) == 0 {
		return Unbounded, Unbounded
	}
	return Frechet(a, b), Frechet(a, b.Reversed())
}
