package basis

import (
	"testing"

	"groebner/field"
	"groebner/hashtable"
	"groebner/monomial"
)

func TestAddAndLeadMonom(t *testing.T) {
	ht := hashtable.New(1, monomial.Lex, 1)
	x2, _ := ht.Insert([]uint32{2})
	x1, _ := ht.Insert([]uint32{1})

	b := New()
	idx := b.Add([]hashtable.MonomId{x2, x1}, []field.Elem{1, 5})
	if idx != 0 {
		t.Fatalf("first Add returned index %d want 0", idx)
	}
	if b.NFilled() != 1 {
		t.Fatalf("NFilled() = %d want 1", b.NFilled())
	}
	if b.LeadMonom(0) != x2 {
		t.Fatalf("LeadMonom(0) = %d want %d", b.LeadMonom(0), x2)
	}
}

func TestMakeMonic(t *testing.T) {
	fld, _ := field.NewPrime(7, field.Deferred)
	ht := hashtable.New(1, monomial.Lex, 1)
	m, _ := ht.Insert([]uint32{1})

	b := New()
	b.Add([]hashtable.MonomId{m}, []field.Elem{3})
	b.MakeMonic(0, fld)
	if b.Coeffs[0][0] != 1 {
		t.Fatalf("leading coefficient after MakeMonic = %d want 1", b.Coeffs[0][0])
	}
}

func TestStandardizeSortsAndDropsRedundant(t *testing.T) {
	fld, _ := field.NewPrime(13, field.Deferred)
	ht := hashtable.New(1, monomial.Lex, 1)
	x2, _ := ht.Insert([]uint32{2})
	x1, _ := ht.Insert([]uint32{1})

	b := New()
	b.Add([]hashtable.MonomId{x2}, []field.Elem{2})
	b.Add([]hashtable.MonomId{x1}, []field.Elem{3})
	b.IsRedundant[0] = true
	b.RefreshNonRedundant(ht)

	out := b.Standardize(ht, fld)
	if out.NFilled() != 1 {
		t.Fatalf("Standardize kept %d polynomials want 1", out.NFilled())
	}
	if out.LeadMonom(0) != x1 {
		t.Fatalf("Standardize kept the wrong polynomial")
	}
	if out.Coeffs[0][0] != 1 {
		t.Fatalf("Standardize did not make the surviving polynomial monic")
	}
}
