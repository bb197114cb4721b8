/*package rng provides the seeded random number generator behind the
sampling and twist operations. Runs with the same seed draw the same
sequence, so subsampling a file twice keeps the same records.*/
package rng

import (
	"math"
)

var (
	xorshiftMaxUint = float64(math.MaxUint32)
)

// RNG is an xorshift random number generator. It is not thread safe.
type RNG struct {
	w, x, y, z uint32
}

// New returns an RNG initialized with the given seed.
func New(seed uint64) *RNG {
	return &RNG{ uint32(seed), 123456789, 362436069, 521288629 }
}

// Uniform generates a single random number in the range [0, 1).
func (gen *RNG) Uniform() float64 {
	t := gen.x ^ (gen.x << 11)
	gen.x, gen.y, gen.z = gen.y, gen.z, gen.w
	gen.w = gen.w ^ (gen.w >> 19) ^ (t ^ (t >> 8))
	res := float64(math.MaxUint32-gen.w) / xorshiftMaxUint
	if res == 1.0 { return gen.Uniform() }
	return res
}

// Bool returns true with probability 1/n.
func (gen *RNG) Bool(n uint32) bool {
	return gen.Uniform()*float64(n) < 1.0
}

// Angle returns a rotation angle drawn uniformly from [0, 2*pi).
func (gen *RNG) Angle() float64 {
	return 2 * math.Pi * gen.Uniform()
}
