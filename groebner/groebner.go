package groebner

import (
	"errors"

	"groebner/basis"
	"groebner/f4"
	"groebner/field"
	"groebner/hashtable"
	"groebner/matrix"
	"groebner/symbolic"
	"groebner/trace"
)

// Poly is the wire format: parallel monomial/coefficient vectors,
// monomials in descending input order, coefficients nonzero and
// already reduced modulo the working field.
type Poly struct {
	Monoms [][]uint32
	Coeffs []field.Elem
}

// Sentinel errors for malformed or unsatisfiable input.
var (
	ErrEmptyInput        = errors.New("groebner: empty polynomial list")
	ErrInconsistentVars  = errors.New("groebner: inconsistent variable count")
	ErrNotAGroebnerBasis = errors.New("groebner: basis is not a Groebner basis")
)

func validate(polys []Poly, nvars int) error {
	if len(polys) == 0 {
		return ErrEmptyInput
	}
	for _, p := range polys {
		if len(p.Monoms) != len(p.Coeffs) {
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

func linalgMode(o Options, fld *field.Prime) matrix.Mode {
	backend := o.Linalg
	if backend == LinalgAuto {
		backend = LinalgDeterministic
		if fld.Char() >= 500 {
			backend = LinalgRandomized
		}
	}
	if backend == LinalgRandomized {
		return matrix.ModeRandomized
	}
	return matrix.ModeDeterministic
}

// buildRun seeds a fresh hashtable and basis/pairset from polys, ready
// to feed to f4.Run.
func buildRun(polys []Poly, nvars int, fld *field.Prime, o Options) (*hashtable.Table, *basis.Basis, *basis.Pairset, error) {
	ht := hashtable.New(nvars, o.Ordering, o.Seed)
	ht.Weights = weightsFor(o)

	b := basis.New()
	for _, p := range polys {
		monoms := make([]hashtable.MonomId, len(p.Monoms))
		for i, exp := range p.Monoms {
			id, err := ht.Insert(exp)
			if err != nil {
				return nil, nil, nil, err
			}
			monoms[i] = id
		}
		coeffs := append([]field.Elem(nil), p.Coeffs...)
		b.Add(monoms, coeffs)
	}
	ps := basis.NewPairset()
	return ht, b, ps, nil
}

func weightsFor(o Options) []uint32 { return nil } // weighted ordering support point; unused by lex/deglex/degrevlex

// Groebner computes a Gröbner basis of polys under a single prime
// field. When o.Reduced is set the result is standardized: only
// non-redundant elements, sorted ascending by leading monomial, each
// monic. No separate inter-reduction pass is run, so trailing terms are
// not reduced against the other elements' leading terms.
func Groebner(polys []Poly, fld *field.Prime, o Options) ([]Poly, error) {
	if len(polys) == 0 {
		return nil, ErrEmptyInput
	}
	nvars := len(polys[0].Monoms[0])
	if err := validate(polys, nvars); err != nil {
		return nil, err
	}

	ht, b, ps, err := buildRun(polys, nvars, fld, o)
	if err != nil {
		return nil, err
	}

	cfg := f4.Config{Ht: ht, Field: fld, Strategy: o.Selection, MaxPairs: o.MaxPairs, Mode: linalgMode(o, fld)}
	result, _, err := f4.Run(cfg, b, ps)
	if err != nil {
		return nil, err
	}

	if o.Reduced {
		result = result.Standardize(ht, fld)
	}
	return toPolys(ht, result), nil
}

// IsGroebner reports whether polys already forms a Gröbner basis:
// build the pairset, and reduce every S-polynomial with
// ModeIsGroebner's early-exit.
func IsGroebner(polys []Poly, fld *field.Prime, o Options) (bool, error) {
	nvars := len(polys[0].Monoms[0])
	if err := validate(polys, nvars); err != nil {
		return false, err
	}
	ht, b, ps, err := buildRun(polys, nvars, fld, o)
	if err != nil {
		return false, err
	}
	basis.Update(b, ps, ht)
	if ps.Len() == 0 {
		return true, nil
	}

	for _, p := range ps.Pairs {
		m := matrix.New()
		symbolHt := hashtable.NewSecondary(ht)
		state := symbolic.NewState(ht, symbolHt)
		addSPairRow(ht, b, m, state, p.Poly1, p.Lcm)
		addSPairRow(ht, b, m, state, p.Poly2, p.Lcm)
		symbolic.Run(m, b, state)
		m.EnumerateColumns(symbolHt, state.Queued())

		result := matrix.Reduce(m, fld, matrix.ModeIsGroebner, nil)
		if !result.IsGroebner {
			return false, nil
		}
	}
	return true, nil
}

// addSPairRow is IsGroebner's analogue of the f4 driver's addLowerRow:
// translate basis polynomial g, multiplied up to lcm, into a lower row.
func addSPairRow(ht *hashtable.Table, b *basis.Basis, m *matrix.Matrix, state *symbolic.State, g int, lcm hashtable.MonomId) {
	lg := b.LeadMonom(g)
	lcmExp := ht.Exp(lcm)
	lgExp := ht.Exp(lg)
	multExp := make([]uint32, len(lcmExp))
	for i := range lcmExp {
		multExp[i] = lcmExp[i] - lgExp[i]
	}
	terms := make([]hashtable.MonomId, len(b.Monoms[g]))
	for k, t := range b.Monoms[g] {
		id, err := state.Translate(t, multExp)
		if err != nil {
			panic(err)
		}
		terms[k] = id
		state.Enqueue(id)
	}
	m.AddLower(matrix.TermRow{Terms: terms, Coeffs: append([]field.Elem(nil), b.Coeffs[g]...), FromBasis: g})
}

// NormalForm reduces every polynomial in polys to normal form modulo
// basisPolys: a single matrix with no upper/pivot promotion, exporting
// residues. When o.Check is set, basisPolys is verified to actually be
// a Gröbner basis first.
func NormalForm(polys []Poly, basisPolys []Poly, fld *field.Prime, o Options) ([]Poly, error) {
	nvars := len(basisPolys[0].Monoms[0])
	if err := validate(basisPolys, nvars); err != nil {
		return nil, err
	}
	if o.Check {
		ok, err := IsGroebner(basisPolys, fld, o)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotAGroebnerBasis
		}
	}

	ht, b, ps, err := buildRun(basisPolys, nvars, fld, o)
	if err != nil {
		return nil, err
	}
	basis.Update(b, ps, ht)

	m := matrix.New()
	symbolHt := hashtable.NewSecondary(ht)
	state := symbolic.NewState(ht, symbolHt)
	for _, p := range polys {
		monoms := make([]hashtable.MonomId, len(p.Monoms))
		for i, exp := range p.Monoms {
			id, err := symbolHt.Insert(exp)
			if err != nil {
				return nil, err
			}
			monoms[i] = id
			state.Enqueue(id)
		}
		m.AddLower(matrix.TermRow{Terms: monoms, Coeffs: append([]field.Elem(nil), p.Coeffs...), FromBasis: -1})
	}
	// symbolic preprocessing finds every reducer row the basis offers
	// for polys' terms (and their own expansion closure); without it
	// Reduce would have no upper rows to eliminate against.
	symbolic.Run(m, b, state)
	m.EnumerateColumns(symbolHt, state.Queued())
	result := matrix.Reduce(m, fld, matrix.ModeNormalForm, nil)

	out := make([]Poly, len(result.Residues))
	for i, row := range result.Residues {
		monoms := make([][]uint32, len(row.Cols))
		for k, c := range row.Cols {
			monoms[k] = append([]uint32(nil), symbolHt.Exp(m.MonomOf(c))...)
		}
		out[i] = Poly{Monoms: monoms, Coeffs: append([]field.Elem(nil), row.Coeffs...)}
	}
	return out, nil
}

// GroebnerLearn computes a basis exactly like Groebner but also
// returns the trace recorded along the way, for later GroebnerApply
// calls against structurally identical input.
func GroebnerLearn(polys []Poly, fld *field.Prime, o Options) ([]Poly, *trace.ComputationTrace, error) {
	nvars := len(polys[0].Monoms[0])
	if err := validate(polys, nvars); err != nil {
		return nil, nil, err
	}
	ht, b, ps, err := buildRun(polys, nvars, fld, o)
	if err != nil {
		return nil, nil, err
	}
	cfg := f4.Config{Ht: ht, Field: fld, Strategy: o.Selection, MaxPairs: o.MaxPairs, Mode: linalgMode(o, fld)}
	result, tr, err := f4.Run(cfg, b, ps)
	if err != nil {
		return nil, tr, err
	}
	tr.Immutable.PolyRepresentation = "dense"
	tr.Fingerprint = trace.Fingerprint(nvars, o.Ordering.String(), exponentsOf(polys))
	if o.Reduced {
		result = result.Standardize(ht, fld)
	}
	return toPolys(ht, result), tr, nil
}

// GroebnerApply replays a trace recorded by GroebnerLearn against
// structurally identical input: it reselects the recorded pair
// blocks, rebuilds each iteration's matrix from the recorded reducer
// choices and column permutation instead of rediscovering them, and
// only re-runs linear algebra over polys' own coefficients. If the
// fingerprint disagrees, or replay itself diverges from what was
// learned (a recorded reducer no longer exists, or a pivot count
// disagrees), it returns ok=false and the partial basis replay reached
// rather than an error, matching the multi-modular driver's
// unlucky-prime recovery path; callers should fall back to Groebner.
func GroebnerApply(tr *trace.ComputationTrace, polys []Poly, fld *field.Prime, o Options) (bool, []Poly) {
	nvars := len(polys[0].Monoms[0])
	if err := validate(polys, nvars); err != nil {
		return false, nil
	}
	fp := trace.Fingerprint(nvars, o.Ordering.String(), exponentsOf(polys))
	if fp != tr.Fingerprint {
		return false, nil
	}

	ht, b, ps, err := buildRun(polys, nvars, fld, o)
	if err != nil {
		return false, nil
	}
	cfg := f4.Config{Ht: ht, Field: fld, Strategy: o.Selection, MaxPairs: o.MaxPairs, Mode: linalgMode(o, fld)}
	result, ok := f4.Apply(cfg, b, ps, tr)
	if !ok {
		return false, toPolys(ht, result)
	}
	if o.Reduced {
		result = result.Standardize(ht, fld)
	}
	return true, toPolys(ht, result)
}

func exponentsOf(polys []Poly) [][][]uint32 {
	out := make([][][]uint32, len(polys))
	for i, p := range polys {
		out[i] = p.Monoms
	}
	return out
}

// toPolys exports a basis's non-redundant members (redundant entries
// carry no reduction power of their own and are never part of any
// basis a caller should see, reduced or not).
func toPolys(ht *hashtable.Table, b *basis.Basis) []Poly {
	out := make([]Poly, len(b.NonRedundant))
	for outIdx, i := range b.NonRedundant {
		monoms := make([][]uint32, len(b.Monoms[i]))
		for k, id := range b.Monoms[i] {
			monoms[k] = append([]uint32(nil), ht.Exp(id)...)
		}
		out[outIdx] = Poly{Monoms: monoms, Coeffs: append([]field.Elem(nil), b.Coeffs[i]...)}
	}
	return out
}
