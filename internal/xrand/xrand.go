// Package xrand provides a tiny, explicitly seeded xorshift32 generator for
// deterministic synthetic datasets. It is caller-owned state, not a global:
// every test or tool constructs its own instance.
package xrand

// DefaultSeed is the conventional seed for reproducible test datasets.
const DefaultSeed = 0x12345678

// Source is a xorshift32 pseudorandom number generator.
type Source struct {
	state uint32
}

// New returns a generator seeded with seed; a zero seed is replaced with
// DefaultSeed since xorshift has a zero fixed point.
func New(seed uint32) *Source {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Source{state: seed}
}

// Uint32 advances the generator and returns the next value.
func (s *Source) Uint32() uint32 {
	x := s.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	s.state = x
	return x
}

// Intn returns a value in [0, n). n must be positive.
func (s *Source) Intn(n int) int {
	return int(s.Uint32() % uint32(n))
}

// Float32 returns a value in [0, 1]; float32 rounding can land exactly on 1.
func (s *Source) Float32() float32 {
	return float32(s.Uint32()-1) / float32(0xffffffff)
}
