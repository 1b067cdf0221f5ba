package mandel

import "math"

const (
	// HardCap bounds the escape loop independently of MaxIterations. Some
	// parallel targets require statically bounded loops. It must be at least
	// MaxIterationsLimit or deep iteration counts would silently truncate.
	HardCap = 10000

	// EscapeRadius is the orbit magnitude beyond which a point has escaped.
	EscapeRadius = 2.0
)

// Compile-time check: HardCap >= MaxIterationsLimit.
var _ [HardCap - MaxIterationsLimit]struct{}

// PixelResult is the escape-time outcome for one point.
type PixelResult struct {
	// Iterations is the number of orbit updates performed.
	Iterations int

	// Escaped reports whether |z| exceeded EscapeRadius before the budget ran out.
	Escaped bool
}

// Iterate runs the escape-time loop for c.
//
// The orbit starts at z = 0. Before each update the loop stops if it has
// already performed maxIterations updates or if |z| > EscapeRadius. An orbit
// sitting exactly on the radius keeps iterating.
//
// maxIterations must be >= 1; the Controller clamp guarantees it.
func Iterate(c complex128, maxIterations int) PixelResult {
	var zr, zi float64
	cr, ci := real(c), imag(c)
	n := 0
	for i := 0; i < HardCap; i++ {
		if i >= maxIterations {
			break
		}
		if math.Sqrt(zr*zr+zi*zi) > EscapeRadius {
			return PixelResult{Iterations: n, Escaped: true}
		}
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		n++
	}
	return PixelResult{Iterations: n}
}

// ColorMix returns the gradient position of r, iterations / maxIterations.
// It is in [0, 1] whenever maxIterations >= 1.
func ColorMix(r PixelResult, maxIterations int) float64 {
	return float64(r.Iterations) / float64(maxIterations)
}

// Shade blends the three stops at gradient position m: first linearly from
// stop 1 to stop 2, then toward stop 3 by sqrt(m).
func Shade(m float64, stops [3]Color) Color {
	c := stops[0].Mix(stops[1], m)
	return c.Mix(stops[2], math.Sqrt(m))
}

// Evaluate computes the final color for c. It has no side effects and may
// run concurrently for any number of pixels.
func Evaluate(c complex128, maxIterations int, stops [3]Color) Color {
	return Shade(ColorMix(Iterate(c, maxIterations), maxIterations), stops)
}
