package pairselect

import (
	"testing"

	"groebner/basis"
	"groebner/hashtable"
	"groebner/monomial"
)

func TestSelectPicksMinimumDegreeBlock(t *testing.T) {
	ht := hashtable.New(2, monomial.Lex, 1)
	low, _ := ht.Insert([]uint32{1, 0})
	high, _ := ht.Insert([]uint32{3, 2})

	ps := basis.NewPairset()
	ps.Add(basis.SPair{Poly1: 0, Poly2: 1, Lcm: high, Deg: 5})
	ps.Add(basis.SPair{Poly1: 0, Poly2: 2, Lcm: low, Deg: 1})

	block := Select(ps, ht, Normal, 0)
	if len(block.Indices) != 1 || block.Indices[0] != 1 {
		t.Fatalf("Select = %v want the single lowest-degree pair (index 1)", block.Indices)
	}
	if block.UsedStrategy != Normal {
		t.Fatalf("UsedStrategy = %v want Normal", block.UsedStrategy)
	}
}

func TestSelectSugarFallsBackToNormal(t *testing.T) {
	ht := hashtable.New(1, monomial.Lex, 1)
	lcm, _ := ht.Insert([]uint32{1})
	ps := basis.NewPairset()
	ps.Add(basis.SPair{Poly1: 0, Poly2: 1, Lcm: lcm, Deg: 1})

	block := Select(ps, ht, Sugar, 0)
	if block.UsedStrategy != Normal {
		t.Fatalf("Sugar must report falling back to Normal, got %v", block.UsedStrategy)
	}
}

func TestSelectMaxPairsDoesNotSplitLcmClass(t *testing.T) {
	ht := hashtable.New(1, monomial.Lex, 1)
	lcm, _ := ht.Insert([]uint32{1})

	ps := basis.NewPairset()
	ps.Add(basis.SPair{Poly1: 0, Poly2: 1, Lcm: lcm, Deg: 1})
	ps.Add(basis.SPair{Poly1: 0, Poly2: 2, Lcm: lcm, Deg: 1})
	ps.Add(basis.SPair{Poly1: 0, Poly2: 3, Lcm: lcm, Deg: 1})

	block := Select(ps, ht, Normal, 1)
	if len(block.Indices) != 3 {
		t.Fatalf("maxPairs=1 should still keep the whole shared-lcm class, got %d", len(block.Indices))
	}
}

func TestReducerForPicksLowestIndexedDivisor(t *testing.T) {
	ht := hashtable.New(1, monomial.Lex, 1)
	x1, _ := ht.Insert([]uint32{1})
	x2, _ := ht.Insert([]uint32{2})

	b := basis.New()
	b.Add([]hashtable.MonomId{x1}, nil)
	b.Add([]hashtable.MonomId{x2}, nil)
	b.RefreshNonRedundant(ht)

	g, ok := ReducerFor(b, ht, x2)
	if !ok {
		t.Fatalf("expected a reducer for x^2")
	}
	if g != 0 {
		t.Fatalf("ReducerFor = %d want 0 (x, the lowest-indexed divisor)", g)
	}
}

func TestReducerForNoDivisor(t *testing.T) {
	ht := hashtable.New(2, monomial.Lex, 1)
	x1, _ := ht.Insert([]uint32{1, 0})
	y1, _ := ht.Insert([]uint32{0, 1})

	b := basis.New()
	b.Add([]hashtable.MonomId{x1}, nil)
	b.RefreshNonRedundant(ht)

	if _, ok := ReducerFor(b, ht, y1); ok {
		t.Fatalf("y should not be reducible by x")
	}
}
