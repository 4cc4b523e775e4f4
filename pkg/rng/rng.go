// Package rng provides the deterministic pseudo-random source behind the
// synthetic reference population. Given the same seed the stream is
// bit-for-bit identical across platforms and runs, so a population can be
// regenerated on demand without shifting the ground truth a session was
// ranked against. Uniformity and reproducibility are the only guarantees;
// nothing here is cryptographic.
package rng

import "math"

// stateIncrement is the fixed odd constant added to the state each step.
const stateIncrement = 0x6D2B79F5

// twoPow32 normalizes a 32-bit word into [0, 1).
const twoPow32 = 1 << 32

// Source is a 32-bit mixing generator. Each step adds a fixed constant to
// the state, runs two xorshift/multiply rounds, and finishes with one more
// xorshift. Not safe for concurrent use; callers own one Source per stream.
type Source struct {
	state uint32
}

// New returns a Source seeded with seed. Equal seeds yield equal streams.
func New(seed uint32) *Source {
	return &Source{state: seed}
}

// Uint32 advances the state and returns the next 32-bit word.
func (s *Source) Uint32() uint32 {
	s.state += stateIncrement
	z := s.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return z ^ (z >> 14)
}

// Float64 returns the next uniform value in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Uint32()) / twoPow32
}

// Norm returns an approximately standard-normal deviate using the cosine
// branch of the Box-Muller transform. Two uniforms are consumed per call;
// a uniform that lands exactly on 0 is redrawn so the log never sees it.
// The paired sine-branch value is discarded rather than cached, keeping the
// draw-consumption order fixed and easy to reproduce.
func (s *Source) Norm() float64 {
	u := s.Float64()
	for u == 0 {
		u = s.Float64()
	}
	v := s.Float64()
	for v == 0 {
		v = s.Float64()
	}
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}
