package modular

import "math/big"

// Recompose performs Garner recomposition: given residues[i] ≡ x (mod
// moduli[i]) for pairwise coprime moduli, returns the unique x in
// [0, Π moduli). Here it combines a basis coefficient's residues
// across lucky primes rather than RNS polynomial limbs.
func Recompose(residues, moduli []*big.Int) *big.Int {
	x := new(big.Int).Set(residues[0])
	m := new(big.Int).Set(moduli[0])
	tmp := new(big.Int)
	for i := 1; i < len(residues); i++ {
		t := new(big.Int).Sub(residues[i], x)
		t.Mod(t, moduli[i])
		inv := new(big.Int).ModInverse(m, moduli[i])
		t.Mul(t, inv)
		t.Mod(t, moduli[i])
		tmp.Mul(m, t)
		x.Add(x, tmp)
		m.Mul(m, moduli[i])
	}
	return x
}

// CombineCoefficientwise runs Garner's algorithm coefficientwise over
// two parallel slices, combining a basis already known modulo
// oldModulus with a fresh residue vector known modulo p. Returns the
// combined coefficients (each in [0, oldModulus*p)) and the new
// modulus.
func CombineCoefficientwise(oldCoeffs []*big.Int, oldModulus *big.Int, newResidues []*big.Int, p *big.Int) ([]*big.Int, *big.Int) {
	out := make([]*big.Int, len(oldCoeffs))
	for i := range oldCoeffs {
		out[i] = Recompose([]*big.Int{oldCoeffs[i], newResidues[i]}, []*big.Int{oldModulus, p})
	}
	newModulus := new(big.Int).Mul(oldModulus, p)
	return out, newModulus
}
