package symbolic

import (
	"testing"

	"groebner/basis"
	"groebner/field"
	"groebner/hashtable"
	"groebner/matrix"
	"groebner/monomial"
)

func TestRunFindsReducerAndExpandsQueue(t *testing.T) {
	primary := hashtable.New(1, monomial.Lex, 1)
	one, _ := primary.Insert([]uint32{0})
	x1, _ := primary.Insert([]uint32{1})
	x2, _ := primary.Insert([]uint32{2})

	fld, _ := field.NewPrime(13, field.Deferred)
	b := basis.New()
	b.Add([]hashtable.MonomId{x1, one}, []field.Elem{1, fld.Neg(1)}) // x - 1
	b.RefreshNonRedundant(primary)

	symbolHt := hashtable.NewSecondary(primary)
	state := NewState(primary, symbolHt)
	localX2, err := state.Translate(x2, []uint32{0})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	state.Enqueue(localX2)

	m := matrix.New()
	Run(m, b, state)

	// x*(x-1) reduces x^2 and introduces x, which x-1 itself then reduces.
	if len(m.UpperTerms) != 2 {
		t.Fatalf("expected two upper rows (x*(x-1) reducing x^2, then x-1 reducing x), got %d", len(m.UpperTerms))
	}
	row := m.UpperTerms[0]
	if symbolHt.Exp(row.Terms[0])[0] != 2 {
		t.Fatalf("reducer row's leading term should be x^2, got exponent %v", symbolHt.Exp(row.Terms[0]))
	}
	// x*(x-1) = x^2 - x: the reducer row must also have queued x.
	found := false
	for _, id := range state.Queued() {
		if symbolHt.Exp(id)[0] == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("Run should have enqueued the x term introduced by multiplying the reducer up")
	}
}

func TestRunLeavesUnreducibleMonomialWithoutPivot(t *testing.T) {
	primary := hashtable.New(2, monomial.Lex, 1)
	x1, _ := primary.Insert([]uint32{1, 0})
	y1, _ := primary.Insert([]uint32{0, 1})

	b := basis.New()
	b.Add([]hashtable.MonomId{x1}, []field.Elem{1})
	b.RefreshNonRedundant(primary)

	symbolHt := hashtable.NewSecondary(primary)
	state := NewState(primary, symbolHt)
	localY, err := state.Translate(y1, []uint32{0, 0})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	state.Enqueue(localY)

	m := matrix.New()
	Run(m, b, state)

	if len(m.UpperTerms) != 0 {
		t.Fatalf("y is not divisible by x, expected no reducer row, got %d", len(m.UpperTerms))
	}
	if symbolHt.Hashvalue(localY).Flag == hashtable.FlagPivot {
		t.Fatalf("y should remain unflagged as a pivot since no reducer was found")
	}
}
