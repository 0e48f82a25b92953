package modular

import (
	"math/big"

	"github.com/tuneinsight/lattigo/v4/ring"
)

// BatchedRNS packs a coefficient vector into 4 parallel residue limbs,
// one per prime: every limb is a ring.Poly sharing the same
// dimension, so the 4 primes' reductions run elementwise in lockstep
// exactly the way lattigo's RNS machinery is built to do, even though
// no NTT is performed here (N is only used as a flat limb width, not
// a transform length).
type BatchedRNS struct {
	rng    *ring.Ring
	primes []uint64
}

// NewBatchedRNS builds a 4-prime batch sized for n coefficients. n is
// rounded up internally by ring.NewRing's own power-of-two requirement.
func NewBatchedRNS(n int, primes [4]uint64) (*BatchedRNS, error) {
	dim := 1
	for dim < n {
		dim <<= 1
	}
	r, err := ring.NewRing(dim, primes[:])
	if err != nil {
		return nil, err
	}
	return &BatchedRNS{rng: r, primes: primes[:]}, nil
}

// Pack reduces each coefficient of coeffs modulo all 4 primes at once,
// returning one ring.Poly whose Coeffs[i] holds the residues mod
// primes[i].
func (b *BatchedRNS) Pack(coeffs []*big.Int) *ring.Poly {
	p := b.rng.NewPoly()
	for i, prime := range b.primes {
		qi := new(big.Int).SetUint64(prime)
		for j, c := range coeffs {
			p.Coeffs[i][j] = new(big.Int).Mod(c, qi).Uint64()
		}
	}
	return p
}

// Unpack extracts the residues for limb i (the i-th prime) as a plain
// uint64 slice, ready to feed into a field.Prime reduction for that
// prime's F4 run.
func (b *BatchedRNS) Unpack(p *ring.Poly, limb int) []uint64 {
	return append([]uint64(nil), p.Coeffs[limb]...)
}

// Primes returns the 4 primes this batch was built for.
func (b *BatchedRNS) Primes() []uint64 { return b.primes }
