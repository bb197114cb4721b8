/*package eq is a simple package for telling whether two values are close
enough to count as equal.*/
package eq

import (
	"math"
)

// Float32Ulps returns true if x and y are within n representable float32
// values of one another. Floats with the same sign are ordered by their bit
// patterns, so the distance between two of them is the difference of their
// bits reinterpreted as signed integers.
func Float32Ulps(x, y float32, n int32) bool {
	xi := int32(math.Float32bits(x))
	yi := int32(math.Float32bits(y))
	if (xi < 0) != (yi < 0) {
		// Opposite signs: only +0 and -0 compare equal.
		return x == y
	}
	d := xi - yi
	if d < 0 { d = -d }
	return d <= n
}

// Float32Eps returns true if x and y are within eps of one another.
func Float32Eps(x, y, eps float32) bool {
	return x-y <= eps && y-x <= eps
}

// Bytes returns true if two []byte arrays are the same and false otherwise.
func Bytes(x, y []byte) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float32s returns true if two []float32 arrays are the same and false
// otherwise.
func Float32s(x, y []float32) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float32sEps returns true if the two []float32 arrays are within eps of one
// another and false otherwise.
func Float32sEps(x, y []float32, eps float32) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i]+eps < y[i] || x[i]-eps > y[i] {
			return false
		}
	}
	return true
}
