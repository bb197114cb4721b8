package eq

import (
	"math"
	"testing"
)

func TestFloat32Ulps(t *testing.T) {
	next := func(x float32, n int) float32 {
		bits := math.Float32bits(x)
		return math.Float32frombits(bits + uint32(n))
	}

	tests := []struct {
		x, y float32
		n    int32
		ok   bool
	} {
		{1.0, 1.0, 0, true},
		{1.0, next(1.0, 1), 1, true},
		{1.0, next(1.0, 11), 10, false},
		{-1.0, -1.0, 0, true},
		{1.0, -1.0, 10, false},
		{0.0, float32(math.Copysign(0, -1)), 0, true},
		{100.5, 100.5, 0, true},
	}

	for i := range tests {
		if got := Float32Ulps(tests[i].x, tests[i].y, tests[i].n); got !=
			tests[i].ok {
			t.Errorf("%d) Float32Ulps(%g, %g, %d) = %v, expected %v.",
				i, tests[i].x, tests[i].y, tests[i].n, got, tests[i].ok)
		}
		if got := Float32Ulps(tests[i].y, tests[i].x, tests[i].n); got !=
			tests[i].ok {
			t.Errorf("%d) Float32Ulps is not symmetric for (%g, %g).",
				i, tests[i].x, tests[i].y)
		}
	}
}

func TestFloat32Eps(t *testing.T) {
	tests := []struct {
		x, y, eps float32
		ok        bool
	} {
		{1.0, 1.005, 0.01, true},
		{1.0, 1.02, 0.01, false},
		{-1.0, -1.005, 0.01, true},
		{0, 0, 0, true},
	}

	for i := range tests {
		if got := Float32Eps(tests[i].x, tests[i].y, tests[i].eps); got !=
			tests[i].ok {
			t.Errorf("%d) Float32Eps(%g, %g, %g) = %v, expected %v.",
				i, tests[i].x, tests[i].y, tests[i].eps, got, tests[i].ok)
		}
	}
}

func TestBytes(t *testing.T) {
	if !Bytes([]byte{ 1, 2, 3 }, []byte{ 1, 2, 3 }) {
		t.Errorf("equal byte arrays compared as different.")
	}
	if Bytes([]byte{ 1, 2, 3 }, []byte{ 1, 2 }) {
		t.Errorf("arrays of different lengths compared as equal.")
	}
	if Bytes([]byte{ 1, 2, 3 }, []byte{ 1, 2, 4 }) {
		t.Errorf("different byte arrays compared as equal.")
	}
}

func TestFloat32sEps(t *testing.T) {
	x := []float32{ 1, 2, 3 }
	if !Float32sEps(x, []float32{ 1.001, 1.999, 3 }, 0.01) {
		t.Errorf("arrays within eps compared as different.")
	}
	if Float32sEps(x, []float32{ 1.1, 2, 3 }, 0.01) {
		t.Errorf("arrays outside eps compared as equal.")
	}
	if Float32sEps(x, []float32{ 1, 2 }, 0.01) {
		t.Errorf("arrays of different lengths compared as equal.")
	}
}
