package breakout

// Random is the randomness the simulation consumes: launch angles, brick
// jitter, drop rolls and particle bursts.
type Random interface {
	Float64() float64 // uniform in [0, 1)
	Intn(n int) int   // uniform in [0, n)
}

// SimpleRNG is a small seeded pseudo-random number generator.
// Uses a 64-bit LCG and returns the high bits, which are the well-mixed ones.
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Next() >> 11) % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// centered returns a value uniform in [-width/2, width/2).
func centered(rng Random, width float64) float64 {
	return (rng.Float64() - 0.5) * width
}
