package groebner

import (
	"testing"

	"groebner/field"
	"groebner/monomial"
)

func testField(t *testing.T) *field.Prime {
	t.Helper()
	f, err := field.NewPrime(13, field.Deferred)
	if err != nil {
		t.Fatalf("NewPrime: %v", err)
	}
	return f
}

// y, xy+x reduces (y divides the xy term of the second generator) to
// the trivial lex Gröbner basis {x, y}.
func sampleInput() []Poly {
	return []Poly{
		{Monoms: [][]uint32{{0, 1}}, Coeffs: []field.Elem{1}},         // y
		{Monoms: [][]uint32{{1, 1}, {1, 0}}, Coeffs: []field.Elem{1, 1}}, // xy + x
	}
}

func monomSet(polys []Poly) map[[2]uint32]field.Elem {
	out := make(map[[2]uint32]field.Elem)
	for _, p := range polys {
		out[[2]uint32{p.Monoms[0][0], p.Monoms[0][1]}] = p.Coeffs[0]
	}
	return out
}

func TestGroebnerReducesToXAndY(t *testing.T) {
	fld := testField(t)
	opts, err := NewOptions(monomial.Lex)
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}

	result, err := Groebner(sampleInput(), fld, opts)
	if err != nil {
		t.Fatalf("Groebner: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("len(result) = %d want 2", len(result))
	}
	set := monomSet(result)
	if c, ok := set[[2]uint32{1, 0}]; !ok || c != 1 {
		t.Fatalf("expected a monic x term in the basis, got %+v", result)
	}
	if c, ok := set[[2]uint32{0, 1}]; !ok || c != 1 {
		t.Fatalf("expected a monic y term in the basis, got %+v", result)
	}
}

func TestIsGroebnerRejectsUnreducedInput(t *testing.T) {
	fld := testField(t)
	opts, err := NewOptions(monomial.Lex)
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}

	ok, err := IsGroebner(sampleInput(), fld, opts)
	if err != nil {
		t.Fatalf("IsGroebner: %v", err)
	}
	if ok {
		t.Fatalf("{y, xy+x} is not a Groebner basis: its S-polynomial reduces to -x, not 0")
	}
}

func TestIsGroebnerAcceptsReducedBasis(t *testing.T) {
	fld := testField(t)
	opts, err := NewOptions(monomial.Lex)
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}

	reduced, err := Groebner(sampleInput(), fld, opts)
	if err != nil {
		t.Fatalf("Groebner: %v", err)
	}
	ok, err := IsGroebner(reduced, fld, opts)
	if err != nil {
		t.Fatalf("IsGroebner: %v", err)
	}
	if !ok {
		t.Fatalf("the output of Groebner must itself be a Groebner basis")
	}
}

func TestNormalFormReducesByY(t *testing.T) {
	fld := testField(t)
	opts, err := NewOptions(monomial.Lex)
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}

	xyPlusX := []Poly{{Monoms: [][]uint32{{1, 1}, {1, 0}}, Coeffs: []field.Elem{1, 1}}}
	y := []Poly{{Monoms: [][]uint32{{0, 1}}, Coeffs: []field.Elem{1}}}

	out, err := NormalForm(xyPlusX, y, fld, opts)
	if err != nil {
		t.Fatalf("NormalForm: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d want 1", len(out))
	}
	residue := out[0]
	if len(residue.Monoms) != 1 || residue.Monoms[0][0] != 1 || residue.Monoms[0][1] != 0 {
		t.Fatalf("residue = %+v, want the single term x", residue)
	}
	if residue.Coeffs[0] != 1 {
		t.Fatalf("residue coefficient = %d want 1", residue.Coeffs[0])
	}
}

func TestNormalFormCheckRejectsNonGroebnerBasis(t *testing.T) {
	fld := testField(t)
	opts, err := NewOptions(monomial.Lex)
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}
	opts.Check = true

	_, err = NormalForm(sampleInput(), sampleInput(), fld, opts)
	if err != ErrNotAGroebnerBasis {
		t.Fatalf("err = %v want ErrNotAGroebnerBasis", err)
	}
}

func TestGroebnerLearnApplyRoundTrip(t *testing.T) {
	fld := testField(t)
	opts, err := NewOptions(monomial.Lex)
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}

	learned, tr, err := GroebnerLearn(sampleInput(), fld, opts)
	if err != nil {
		t.Fatalf("GroebnerLearn: %v", err)
	}

	ok, applied := GroebnerApply(tr, sampleInput(), fld, opts)
	if !ok {
		t.Fatalf("GroebnerApply should succeed against the structurally identical input it was learned on")
	}
	if len(applied) != len(learned) {
		t.Fatalf("applied result has %d polynomials, learned has %d", len(applied), len(learned))
	}
}

func TestGroebnerApplyRejectsStructuralMismatch(t *testing.T) {
	fld := testField(t)
	opts, err := NewOptions(monomial.Lex)
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}

	_, tr, err := GroebnerLearn(sampleInput(), fld, opts)
	if err != nil {
		t.Fatalf("GroebnerLearn: %v", err)
	}

	differentShape := []Poly{
		{Monoms: [][]uint32{{0, 1}, {0, 0}}, Coeffs: []field.Elem{1, 1}}, // y + 1, different term count
		{Monoms: [][]uint32{{1, 1}, {1, 0}}, Coeffs: []field.Elem{1, 1}},
	}
	ok, _ := GroebnerApply(tr, differentShape, fld, opts)
	if ok {
		t.Fatalf("GroebnerApply must reject input with a different structural fingerprint")
	}
}

func TestValidateRejectsEmptyInput(t *testing.T) {
	fld := testField(t)
	opts, _ := NewOptions(monomial.Lex)
	if _, err := Groebner(nil, fld, opts); err != ErrEmptyInput {
		t.Fatalf("err = %v want ErrEmptyInput", err)
	}
}

func TestNewOptionsRejectsInvalidOrdering(t *testing.T) {
	if _, err := NewOptions(monomial.Ordering(99)); err != ErrInvalidOptions {
		t.Fatalf("err = %v want ErrInvalidOptions", err)
	}
}
