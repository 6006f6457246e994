// Package random provides the single seedable stream that every randomized
// step of a tick draws from. Callers pass the stream explicitly; there is no
// package-level generator.
package random

import "math/rand/v2"

// Stream is a uniform generator over a PCG source. It is not safe for
// concurrent use; a level owns exactly one.
type Stream struct {
	src *rand.PCG
	rng *rand.Rand
}

// New seeds a stream. Equal seeds produce equal sequences.
func New(seed uint64) *Stream {
	src := rand.NewPCG(seed, 0)
	return &Stream{src: src, rng: rand.New(src)}
}

// Clone returns an independent stream positioned at the same state.
func (s *Stream) Clone() *Stream {
	src := *s.src
	return &Stream{src: &src, rng: rand.New(&src)}
}

// Float64 returns a uniform value in [lo, hi). An empty range yields lo.
func (s *Stream) Float64(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// Uint32 returns a uniform value in [lo, hi). An empty range yields lo.
func (s *Stream) Uint32(lo, hi uint32) uint32 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Uint32N(hi-lo)
}

// Signed returns a uniform value in [-1, 1), the deviation factor used by
// particle dispersion.
func (s *Stream) Signed() float64 {
	return s.Float64(-1, 1)
}
