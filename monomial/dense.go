package monomial

// Dense is a plain exponent vector, one uint32 per variable. It is the
// reference representation: slower than Packed but able to express
// any supported ordering, including weighted/product orders.
type Dense struct {
	Exp []uint32
	deg uint32
}

// NewDense builds a Dense monomial from a coefficient vector, checking
// that the total degree does not overflow.
func NewDense(e []uint32) (Dense, error) {
	sum, err := sumDegree(e)
	if err != nil {
		return Dense{}, err
	}
	exp := append([]uint32(nil), e...)
	return Dense{Exp: exp, deg: uint32(sum)}, nil
}

// NVars reports the number of variables the monomial is expressed in.
func (a Dense) NVars() int { return len(a.Exp) }

// TotalDegree returns the cached total degree.
func (a Dense) TotalDegree() uint32 { return a.deg }

// Mul returns a*b, erroring on overflow of any component or the total
// degree.
func (a Dense) Mul(b Dense) (Dense, error) {
	out := make([]uint32, len(a.Exp))
	var sum uint64
	for i := range a.Exp {
		v := uint64(a.Exp[i]) + uint64(b.Exp[i])
		if v > (1<<32)-1 {
			return Dense{}, ErrOverflow
		}
		out[i] = uint32(v)
		sum += v
	}
	if sum > (1<<32)-1 {
		return Dense{}, ErrOverflow
	}
	return Dense{Exp: out, deg: uint32(sum)}, nil
}

// Quo returns a/b. The caller must guarantee b divides a.
func (a Dense) Quo(b Dense) Dense {
	out := make([]uint32, len(a.Exp))
	var sum uint64
	for i := range a.Exp {
		out[i] = a.Exp[i] - b.Exp[i]
		sum += uint64(out[i])
	}
	return Dense{Exp: out, deg: uint32(sum)}
}

// LCM returns the least common multiple (componentwise max).
func (a Dense) LCM(b Dense) (Dense, error) {
	out := make([]uint32, len(a.Exp))
	var sum uint64
	for i := range a.Exp {
		m := a.Exp[i]
		if b.Exp[i] > m {
			m = b.Exp[i]
		}
		out[i] = m
		sum += uint64(m)
	}
	if sum > (1<<32)-1 {
		return Dense{}, ErrOverflow
	}
	return Dense{Exp: out, deg: uint32(sum)}, nil
}

// IsDivisibleBy reports whether b divides a, i.e. a_i >= b_i for all i.
func (a Dense) IsDivisibleBy(b Dense) bool {
	for i := range a.Exp {
		if a.Exp[i] < b.Exp[i] {
			return false
		}
	}
	return true
}

// DivideWith reports whether b divides a and, if so, also returns a/b.
func (a Dense) DivideWith(b Dense) (Dense, bool) {
	if !a.IsDivisibleBy(b) {
		return Dense{}, false
	}
	return a.Quo(b), true
}

// Hash computes the inner product of the exponent vector with hv,
// modulo mod. Callers (the hashtable) choose hv so that
// Hash(a*b) == Hash(a)+Hash(b) (mod mod).
func (a Dense) Hash(hv []uint64, mod uint64) uint64 {
	var h uint64
	for i, e := range a.Exp {
		h += uint64(e) * hv[i]
	}
	if mod != 0 {
		h %= mod
	}
	return h
}

// Less compares a and b under ord. Weighted ordering falls back to Lex
// tie-breaking after comparing the supplied weighted degree.
func Less(a, b Dense, ord Ordering, weights []uint32) bool {
	switch ord {
	case Lex:
		return lessLex(a.Exp, b.Exp)
	case DegLex:
		if a.deg != b.deg {
			return a.deg < b.deg
		}
		return lessLex(a.Exp, b.Exp)
	case Weighted:
		wa, wb := weightedDegree(a.Exp, weights), weightedDegree(b.Exp, weights)
		if wa != wb {
			return wa < wb
		}
		return lessLex(a.Exp, b.Exp)
	default: // DegRevLex
		if a.deg != b.deg {
			return a.deg < b.deg
		}
		return lessDegRevLex(a.Exp, b.Exp)
	}
}

func lessLex(a, b []uint32) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// lessDegRevLex implements the reverse-lex tie-break: scanning from
// the last variable to the first, the monomial with the *smaller*
// exponent at the last differing position is the greater one.
func lessDegRevLex(a, b []uint32) bool {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

func weightedDegree(e, w []uint32) uint64 {
	var s uint64
	for i := range e {
		s += uint64(e[i]) * uint64(w[i])
	}
	return s
}
