// Package field implements the Z/pZ coefficient arithmetic the F4
// inner loop runs over. Mul reduces every product with a single
// 128-bit division. MulShoup uses a precomputed Shoup constant for
// repeated multiplication by one fixed scalar, the shape of a
// Macaulay-matrix row reduction that multiplies every entry of the
// pivot row by the same ratio l[c]/u[c]. A Prime records a Backend
// (Deferred or Barrett), but both arithmetic paths behave the same
// whichever backend was chosen.
package field

import (
	"errors"
	"math/big"
	"math/bits"
)

// Elem is an element of Z/pZ, always kept fully reduced.
type Elem uint64

// Backend selects the reduction strategy used by Mul.
type Backend int

const (
	Deferred Backend = iota
	Barrett
)

// ErrInvalidModulus signals a modulus unsuitable for this field: zero,
// one, or too wide to fit the 63-bit budget this package works within.
var ErrInvalidModulus = errors.New("field: invalid modulus")

// Prime is a Z/pZ field for a fixed prime p (primality is the
// caller's responsibility; the lucky-prime stream in package modular
// only ever proposes primes).
type Prime struct {
	P       uint64
	backend Backend
}

// NewPrime constructs a field modulo p using the requested backend.
// Any p in [2, 2^63) is accepted with either backend.
func NewPrime(p uint64, backend Backend) (*Prime, error) {
	if p < 2 || p >= 1<<63 {
		return nil, ErrInvalidModulus
	}
	return &Prime{P: p, backend: backend}, nil
}

// Char returns the field's characteristic.
func (f *Prime) Char() uint64 { return f.P }

// FromUint64 reduces x into the field.
func (f *Prime) FromUint64(x uint64) Elem { return Elem(x % f.P) }

// Add returns a+b mod p.
func (f *Prime) Add(a, b Elem) Elem {
	v := uint64(a) + uint64(b)
	if v >= f.P {
		v -= f.P
	}
	return Elem(v)
}

// Sub returns a-b mod p.
func (f *Prime) Sub(a, b Elem) Elem {
	if a >= b {
		return Elem(uint64(a) - uint64(b))
	}
	return Elem(f.P - uint64(b) + uint64(a))
}

// Neg returns -a mod p.
func (f *Prime) Neg(a Elem) Elem {
	if a == 0 {
		return 0
	}
	return Elem(f.P - uint64(a))
}

// Mul returns a*b mod p via a 128-bit product and one division, exact
// for any p within the 63-bit budget; the field's backend does not
// change it. For repeated multiplication by the same scalar see
// MulShoup.
func (f *Prime) Mul(a, b Elem) Elem {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	_, rem := bits.Div64(hi, lo, f.P)
	return Elem(rem)
}

// ShoupPrecompute returns the precomputed high word needed to
// multiply repeatedly by m modulo p in MulShoup.
func (f *Prime) ShoupPrecompute(m Elem) uint64 {
	num := new(big.Int).Lsh(big.NewInt(int64(m)), 64)
	num.Div(num, new(big.Int).SetUint64(f.P))
	return num.Uint64()
}

// MulShoup multiplies a by m using the precomputed Shoup constant for
// m (from ShoupPrecompute), the fast path for scaling a whole
// Macaulay-matrix row by a single ratio.
func (f *Prime) MulShoup(a, m Elem, mShoup uint64) Elem {
	hi, _ := bits.Mul64(uint64(a), mShoup)
	r := uint64(a)*uint64(m) - hi*f.P
	if r >= f.P {
		r -= f.P
	}
	return Elem(r)
}

// Inv returns the multiplicative inverse of a (a must be non-zero),
// via Fermat's little theorem, cheap relative to the extended
// Euclidean algorithm given Mul is already a single wide-division.
func (f *Prime) Inv(a Elem) Elem {
	return f.Pow(a, f.P-2)
}

// Pow computes a^e mod p by square-and-multiply.
func (f *Prime) Pow(a Elem, e uint64) Elem {
	result := Elem(1 % f.P)
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = f.Mul(result, base)
		}
		base = f.Mul(base, base)
		e >>= 1
	}
	return result
}

// IsZero reports whether a is the additive identity.
func IsZero(a Elem) bool { return a == 0 }
