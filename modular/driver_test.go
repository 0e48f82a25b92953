package modular

import (
	"math/big"
	"testing"

	"groebner/monomial"
	"groebner/pairselect"
)

// y, xy+x over Q: the same hand-traced example used elsewhere in this
// module, lifted to integer coefficients with no denominators to
// clear. Its reduced lex Gröbner basis is {x, y}.
func sampleIntegerInput() []IntegerPoly {
	return []IntegerPoly{
		{Monoms: [][]uint32{{0, 1}}, Coeffs: []*big.Int{big.NewInt(1)}},
		{Monoms: [][]uint32{{1, 1}, {1, 0}}, Coeffs: []*big.Int{big.NewInt(1), big.NewInt(1)}},
	}
}

func TestRunReconstructsSmallIntegerBasis(t *testing.T) {
	cfg := Config{
		NVars:      2,
		Ordering:   monomial.Lex,
		Strategy:   pairselect.Normal,
		Seed:       1,
		BatchSize0: 1,
	}

	result := Run(cfg, sampleIntegerInput())
	if len(result) != 2 {
		t.Fatalf("len(result) = %d want 2", len(result))
	}

	sawX, sawY := false, false
	for _, p := range result {
		if len(p.Monoms) != 1 || len(p.Coeffs) != 1 {
			t.Fatalf("expected each basis element reduced to a single monomial, got %+v", p)
		}
		if p.Den.Cmp(big.NewInt(1)) != 0 || p.Coeffs[0].Cmp(big.NewInt(1)) != 0 {
			t.Fatalf("coefficient = %s/%s want 1/1", p.Coeffs[0].String(), p.Den.String())
		}
		exp := p.Monoms[0]
		switch {
		case exp[0] == 1 && exp[1] == 0:
			sawX = true
		case exp[0] == 0 && exp[1] == 1:
			sawY = true
		}
	}
	if !sawX || !sawY {
		t.Fatalf("expected both x and y in the reconstructed basis, got %+v", result)
	}
}

func TestRunThreadedReturnsFullBasis(t *testing.T) {
	cfg := Config{
		NVars:      2,
		Ordering:   monomial.Lex,
		Strategy:   pairselect.Normal,
		Seed:       1,
		BatchSize0: 2,
		Threaded:   true,
	}
	result := Run(cfg, sampleIntegerInput())
	if len(result) != 2 {
		t.Fatalf("len(result) = %d want 2", len(result))
	}
}

// 2x-1 over Q reduces (monic) to x-1/2: a one-generator basis whose
// only nontrivial coefficient is not an integer, exercising the
// shared-denominator path instead of the all-integral fast case.
func TestRunReconstructsNonIntegralBasis(t *testing.T) {
	cfg := Config{
		NVars:      1,
		Ordering:   monomial.Lex,
		Strategy:   pairselect.Normal,
		Seed:       1,
		BatchSize0: 1,
	}
	input := []IntegerPoly{
		{Monoms: [][]uint32{{1}, {0}}, Coeffs: []*big.Int{big.NewInt(2), big.NewInt(-1)}},
	}

	result := Run(cfg, input)
	if len(result) != 1 {
		t.Fatalf("len(result) = %d want 1", len(result))
	}
	p := result[0]
	if len(p.Coeffs) != 2 {
		t.Fatalf("len(p.Coeffs) = %d want 2", len(p.Coeffs))
	}
	// leading coefficient must be exactly 1 (monic).
	if p.Coeffs[0].Cmp(p.Den) != 0 {
		t.Fatalf("leading coefficient %s/%s is not 1", p.Coeffs[0], p.Den)
	}
	// constant term must be exactly -1/2: cross-multiply to avoid
	// assuming a canonical denominator.
	lhs := new(big.Int).Mul(p.Coeffs[1], big.NewInt(2))
	rhs := new(big.Int).Mul(big.NewInt(-1), p.Den)
	if lhs.Cmp(rhs) != 0 {
		t.Fatalf("constant term %s/%s is not -1/2", p.Coeffs[1], p.Den)
	}
}

func TestCombineBasesPreservesMonoms(t *testing.T) {
	oldPolys := []IntegerPoly{{Monoms: [][]uint32{{1, 0}}, Coeffs: []*big.Int{big.NewInt(3)}}}
	newPolys := []IntegerPoly{{Monoms: [][]uint32{{1, 0}}, Coeffs: []*big.Int{big.NewInt(4)}}}
	combined := combineBases(oldPolys, big.NewInt(5), newPolys, big.NewInt(7))
	if len(combined) != 1 {
		t.Fatalf("len(combined) = %d want 1", len(combined))
	}
	if combined[0].Monoms[0][0] != 1 || combined[0].Monoms[0][1] != 0 {
		t.Fatalf("combineBases must preserve the original monomial list")
	}
	c := combined[0].Coeffs[0]
	if new(big.Int).Mod(c, big.NewInt(5)).Cmp(big.NewInt(3)) != 0 {
		t.Fatalf("combined coefficient does not reduce to 3 mod 5")
	}
	if new(big.Int).Mod(c, big.NewInt(7)).Cmp(big.NewInt(4)) != 0 {
		t.Fatalf("combined coefficient does not reduce to 4 mod 7")
	}
}
