// Package groebner is the public facade: Options construction, the
// core operations (Groebner, NormalForm, IsGroebner, GroebnerLearn,
// GroebnerApply) and the input/output polynomial types.
package groebner

import (
	"errors"

	"groebner/field"
	"groebner/monomial"
	"groebner/pairselect"
)

// LinalgBackend selects the matrix reducer.
type LinalgBackend int

const (
	LinalgAuto LinalgBackend = iota
	LinalgDeterministic
	LinalgRandomized
)

// ArithmeticBackend selects the field.Prime reduction strategy.
type ArithmeticBackend int

const (
	ArithmeticAuto ArithmeticBackend = iota
	ArithmeticSigned
	ArithmeticUnsigned
	ArithmeticFloating
)

// ModularStrategy selects the ℚ driver's approach.
type ModularStrategy int

const (
	ClassicModular ModularStrategy = iota
	LearnAndApply
)

// Options are the recognized configuration keys: a constructor that
// rejects nonsensical combinations up front, plus copy-on-write With*
// methods for the rest.
type Options struct {
	Ordering   monomial.Ordering
	Reduced    bool
	Arithmetic ArithmeticBackend
	Linalg     LinalgBackend
	MaxPairs   int
	Selection  pairselect.Strategy
	Homogenize bool
	Modular    ModularStrategy
	Batched    bool
	Threaded   bool
	Certify    bool
	Seed       int64
	Sweep      bool

	// Check requests NormalForm verify basisPolys is actually a
	// Gröbner basis before reducing.
	Check bool
}

// ErrInvalidOptions signals an Options value that fails validation.
var ErrInvalidOptions = errors.New("groebner: invalid options")

// NewOptions returns the default options for ordering ord: reduced
// output, automatic linear-algebra backend (LinalgAuto), normal
// selection, no pair cap.
func NewOptions(ord monomial.Ordering) (Options, error) {
	if ord < monomial.DegRevLex || ord > monomial.Weighted {
		return Options{}, ErrInvalidOptions
	}
	return Options{
		Ordering:  ord,
		Reduced:   true,
		Linalg:    LinalgAuto,
		Selection: pairselect.Normal,
		Seed:      1,
	}, nil
}

// WithMaxPairs returns a copy capped at n pairs per iteration.
func (o Options) WithMaxPairs(n int) Options {
	cp := o
	cp.MaxPairs = n
	return cp
}

// WithSelection returns a copy using the given pair-selection strategy.
func (o Options) WithSelection(s pairselect.Strategy) Options {
	cp := o
	cp.Selection = s
	return cp
}

// WithLinalg returns a copy using the given linear-algebra backend.
func (o Options) WithLinalg(b LinalgBackend) Options {
	cp := o
	cp.Linalg = b
	return cp
}

// WithSeed returns a copy seeded for RNG reproducibility.
func (o Options) WithSeed(seed int64) Options {
	cp := o
	cp.Seed = seed
	return cp
}

// WithModular returns a copy using the given ℚ strategy.
func (o Options) WithModular(m ModularStrategy) Options {
	cp := o
	cp.Modular = m
	return cp
}

// WithThreaded returns a copy with multi-modular parallelism toggled.
func (o Options) WithThreaded(t bool) Options {
	cp := o
	cp.Threaded = t
	return cp
}

// FieldFor builds a field.Prime for p honoring o.Arithmetic:
// ArithmeticAuto and ArithmeticUnsigned pick field.Deferred;
// ArithmeticSigned picks field.Barrett. "floating" has no meaning for
// an exact Z/pZ field and is treated as unsigned.
func (o Options) FieldFor(p uint64) (*field.Prime, error) {
	backend := field.Deferred
	if o.Arithmetic == ArithmeticSigned {
		backend = field.Barrett
	}
	return field.NewPrime(p, backend)
}
