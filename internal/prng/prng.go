package prng

import "math/rand"

// increment is the odd Weyl-sequence step added to the state on every draw.
const increment uint32 = 0x6D2B79F5

// Source is a seeded 32-bit counter hash (mulberry32). A Source is not safe
// for concurrent use: draw order determines every value derived from it.
type Source struct {
	state  uint32
	seed   uint32
	seeded bool
}

// New returns a Source whose sequence is fully determined by seed.
// Only the low 32 bits of seed are used.
func New(seed int64) *Source {
	s := uint32(seed)
	return &Source{state: s, seed: s, seeded: true}
}

// NewUnseeded returns a Source started from an ambient random seed.
// Two unseeded sources produce different sequences with overwhelming probability.
func NewUnseeded() *Source {
	s := rand.Uint32()
	return &Source{state: s, seed: s}
}

// Seed returns the 32-bit seed the source was started from.
func (s *Source) Seed() uint32 { return s.seed }

// Seeded reports whether the caller supplied the seed.
func (s *Source) Seeded() bool { return s.seeded }

// Float64 returns the next value in [0,1).
func (s *Source) Float64() float64 {
	s.state += increment
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Uniform returns a value in [lo,hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.Float64()
}

// Noise returns a value in [-magnitude,+magnitude).
func (s *Source) Noise(magnitude float64) float64 {
	return (s.Float64()*2 - 1) * magnitude
}
