// Package randutil wraps a seeded PRNG so a stream of random values is
// reproducible from one seed. No other package in this module imports
// it.
package randutil

import "math/rand"

// RNG is a deterministic random source, safe to reseed for a fresh,
// reproducible stream.
type RNG struct {
	r *rand.Rand
}

// New returns an RNG seeded with seed.
func New(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Intn returns a random int in [0,n).
func (g *RNG) Intn(n int) int { return g.r.Intn(n) }

// Uint64 returns a random uint64 spanning the full range.
func (g *RNG) Uint64() uint64 { return g.r.Uint64() }

// NonZeroMod returns a random value in [1,mod), or 0 when mod <= 1.
func (g *RNG) NonZeroMod(mod uint64) uint64 {
	if mod <= 1 {
		return 0
	}
	v := g.r.Uint64() % (mod - 1)
	return v + 1
}
