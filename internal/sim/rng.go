package sim

import "math/rand"

// RNG is the host-provided randomness source (spec.md §5 "random_int(min,
// max) uniform inclusive"). Intn(n) returns a uniform value in [0,n). The
// engine never seeds it.
type RNG interface {
	Intn(n int) int
}

// defaultRNG wraps its own seeded math/rand.Rand for hosts that don't
// inject their own source.
type defaultRNG struct {
	r *rand.Rand
}

// NewDefaultRNG returns an RNG seeded by the caller. Hosts that want
// deterministic runs should supply their own seed.
func NewDefaultRNG(seed int64) RNG {
	return defaultRNG{r: rand.New(rand.NewSource(seed))}
}

func (d defaultRNG) Intn(n int) int {
	return d.r.Intn(n)
}
