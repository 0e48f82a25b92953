package groebner

import (
	"math/big"

	"groebner/modular"
)

// QPoly is the ℚ wire format: Nums[i]/Dens[i] is the coefficient of
// Monoms[i] (Dens[i] always positive, need not be 1 or share a common
// value across terms).
type QPoly struct {
	Monoms [][]uint32
	Nums   []*big.Int
	Dens   []*big.Int
}

func validateQ(polys []QPoly, nvars int) error {
	if len(polys) == 0 {
		return ErrEmptyInput
	}
	for _, p := range polys {
		if len(p.Monoms) != len(p.Nums) || len(p.Monoms) != len(p.Dens) {
			return ErrInconsistentVars
		}
		for _, m := range p.Monoms {
			if len(m) != nvars {
				return ErrInconsistentVars
			}
		}
	}
	return nil
}

// clearDenominators scales each polynomial's numerators by the LCM of
// its own denominators, producing the integer input the multi-modular
// driver works in.
func clearDenominators(polys []QPoly) []modular.IntegerPoly {
	out := make([]modular.IntegerPoly, len(polys))
	for i, p := range polys {
		den := big.NewInt(1)
		for _, d := range p.Dens {
			den = lcmQ(den, d)
		}
		coeffs := make([]*big.Int, len(p.Nums))
		for k := range p.Nums {
			scale := new(big.Int).Div(den, p.Dens[k])
			coeffs[k] = new(big.Int).Mul(p.Nums[k], scale)
		}
		out[i] = modular.IntegerPoly{Monoms: p.Monoms, Coeffs: coeffs}
	}
	return out
}

func lcmQ(a, b *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, a, b)
	return new(big.Int).Mul(new(big.Int).Div(a, g), b)
}

// GroebnerQ computes a Gröbner basis of polys over ℚ: denominators are
// cleared up front, then the multi-modular driver runs F4 over a
// growing batch of lucky primes, CRT-combines the surviving per-prime
// bases, and rational-reconstructs the result. o.Reduced is not
// consulted: every per-prime basis is standardized (non-redundant,
// sorted, monic) and no inter-reduction pass is run. o.Modular
// selects between a plain per-prime F4 run and LearnAndApply, which learns a trace on the first prime and replays
// it (falling back to a full run on divergence) for the rest of the
// batch.
func GroebnerQ(polys []QPoly, o Options) ([]modular.RationalPoly, error) {
	if len(polys) == 0 {
		return nil, ErrEmptyInput
	}
	nvars := len(polys[0].Monoms[0])
	if err := validateQ(polys, nvars); err != nil {
		return nil, err
	}

	input := clearDenominators(polys)
	cfg := modular.Config{
		NVars:      nvars,
		Ordering:   o.Ordering,
		Strategy:   o.Selection,
		MaxPairs:   o.MaxPairs,
		Seed:       o.Seed,
		Threaded:   o.Threaded,
		BatchSize0: 2,
		Batched:    o.Batched,
		LearnApply: o.Modular == LearnAndApply,
	}
	return modular.Run(cfg, input), nil
}
