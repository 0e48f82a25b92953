package modular

import "math/big"

// RationalPoly is a polynomial with rational coefficients sharing one
// denominator: term i has coefficient Coeffs[i]/Den. Den is always
// positive.
type RationalPoly struct {
	Monoms [][]uint32
	Coeffs []*big.Int
	Den    *big.Int
}

// lcm returns the least common multiple of a and b (both positive).
func lcm(a, b *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, a, b)
	return new(big.Int).Mul(new(big.Int).Div(a, g), b)
}

// Reconstruct recovers (n, d) with n ≡ a*d (mod m), 0 < d, and
// |n|, d ≤ bound (callers pass bound in since it is fixed once per
// reconstruction attempt, not per coefficient). It runs the extended
// Euclidean algorithm on (m, a), tracking the Bezout pair across
// iterations the same way a canonical extended-gcd routine does, but
// stops at the first remainder below bound instead of running to a
// gcd of 1.
func Reconstruct(a, m, bound *big.Int) (n, d *big.Int, ok bool) {
	r0, r1 := new(big.Int).Set(m), new(big.Int).Mod(a, m)
	t0, t1 := big.NewInt(0), big.NewInt(1)

	for r1.CmpAbs(bound) > 0 {
		if r1.Sign() == 0 {
			return nil, nil, false
		}
		q := new(big.Int).Div(r0, r1)
		r0, r1 = r1, new(big.Int).Sub(r0, new(big.Int).Mul(q, r1))
		t0, t1 = t1, new(big.Int).Sub(t0, new(big.Int).Mul(q, t1))
	}

	if t1.Sign() == 0 || new(big.Int).Abs(t1).Cmp(bound) > 0 {
		return nil, nil, false
	}

	n, d = r1, t1
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	if g.Cmp(big.NewInt(1)) != 0 {
		n.Div(n, g)
		d.Div(d, g)
	}
	return n, d, true
}

// Bound returns the √(M/2) rational-reconstruction cutoff for modulus
// m.
func Bound(m *big.Int) *big.Int {
	half := new(big.Int).Rsh(m, 1)
	return new(big.Int).Sqrt(half)
}
