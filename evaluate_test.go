package mandel

import (
	"math"
	"testing"
)

func TestIterateBoundaryOrbitDoesNotEscape(t *testing.T) {
	// The orbit of -2 is 0, -2, 2, 2, ... and sits exactly on the escape
	// radius, which is not "beyond" it.
	for _, maxIter := range []int{1, 2, 3, 100, MaxIterationsLimit} {
		r := Iterate(complex(-2, 0), maxIter)
		if r.Escaped || r.Iterations != maxIter {
			t.Errorf("Iterate(-2, %d) = %+v, want %d iterations, not escaped", maxIter, r, maxIter)
		}
	}
}

func TestIterateEscapes(t *testing.T) {
	tests := []struct {
		c    complex128
		want int
	}{
		{complex(2, 2), 1},
		{complex(3, 0), 1},
		{complex(1, 0), 3}, // 0, 1, 2, 5
		{complex(0.5, 0.5), 5},
	}
	for _, tt := range tests {
		r := Iterate(tt.c, 500)
		if !r.Escaped || r.Iterations != tt.want {
			t.Errorf("Iterate(%v) = %+v, want escape after %d", tt.c, r, tt.want)
		}
	}
}

func TestIterateInteriorRunsFullBudget(t *testing.T) {
	for _, c := range []complex128{0, complex(-0.5, 0), complex(-1, 0), complex(0, 1)} {
		r := Iterate(c, 500)
		if r.Escaped || r.Iterations != 500 {
			t.Errorf("Iterate(%v) = %+v, want 500 iterations, not escaped", c, r)
		}
	}
}

func TestColorMixInUnitInterval(t *testing.T) {
	for _, maxIter := range []int{1, 7, 500, MaxIterationsLimit} {
		for re := -2.5; re <= 1.5; re += 0.25 {
			for im := -1.5; im <= 1.5; im += 0.25 {
				m := ColorMix(Iterate(complex(re, im), maxIter), maxIter)
				if m < 0 || m > 1 {
					t.Fatalf("ColorMix(%v, %d) = %v, outside [0, 1]", complex(re, im), maxIter, m)
				}
			}
		}
	}
}

func TestShadeEndpoints(t *testing.T) {
	stops := [3]Color{RGB8(0, 7, 100), RGB8(237, 255, 255), RGB8(0, 2, 0)}
	if got := Shade(0, stops); got != stops[0] {
		t.Errorf("Shade(0) = %+v, want stop 1 %+v", got, stops[0])
	}
	if got := Shade(1, stops); got != stops[2] {
		t.Errorf("Shade(1) = %+v, want stop 3 %+v", got, stops[2])
	}
}

func TestEvaluateInteriorIsStop3(t *testing.T) {
	stops := DefaultPalette().Stops
	if got := Evaluate(complex(-0.5, 0), 500, stops); got != stops[2] {
		t.Errorf("Evaluate(-0.5+0i) = %+v, want stop 3 %+v", got, stops[2])
	}
}

func TestEvaluateFastEscapeNearStop1(t *testing.T) {
	stops := [3]Color{RGB(1, 0, 0), RGB(0, 1, 0), RGB(0, 0, 1)}
	got := Evaluate(complex(2, 2), MaxIterationsLimit, stops)
	const tol = 0.02
	if math.Abs(got.R-1) > tol || got.G > tol || got.B > tol {
		t.Errorf("Evaluate(2+2i) = %+v, want about stop 1 %+v", got, stops[0])
	}
}

func TestEvaluateIsPure(t *testing.T) {
	stops := DefaultPalette().Stops
	c := complex(-0.743643887, 0.131825904)
	a := Evaluate(c, 1000, stops)
	b := Evaluate(c, 1000, stops)
	if a != b {
		t.Errorf("Evaluate not deterministic: %+v vs %+v", a, b)
	}
}
