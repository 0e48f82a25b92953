package matrix

import (
	"testing"

	"groebner/field"
	"groebner/hashtable"
	"groebner/monomial"
)

func TestEnumerateColumnsDescendingOrder(t *testing.T) {
	ht := hashtable.New(1, monomial.Lex, 1)
	x0, _ := ht.Insert([]uint32{0})
	x1, _ := ht.Insert([]uint32{1})
	x2, _ := ht.Insert([]uint32{2})

	m := New()
	m.AddLower(TermRow{Terms: []hashtable.MonomId{x2, x0}, Coeffs: []field.Elem{1, 2}, FromBasis: -1})
	m.EnumerateColumns(ht, []hashtable.MonomId{x0, x1, x2})

	if m.Columns[0] != x2 || m.Columns[len(m.Columns)-1] != x0 {
		t.Fatalf("columns not in descending order: %v", m.Columns)
	}
	row := m.Lower[0]
	if row.Cols[0] != m.ColumnOf(x2) || row.Cols[1] != m.ColumnOf(x0) {
		t.Fatalf("row columns = %v, want [col(x^2) col(1)]", row.Cols)
	}
	if m.MonomOf(m.ColumnOf(x1)) != x1 {
		t.Fatalf("MonomOf(ColumnOf(x)) should round-trip to x")
	}
}

func TestColumnOfPanicsOnUnknownId(t *testing.T) {
	ht := hashtable.New(1, monomial.Lex, 1)
	id, _ := ht.Insert([]uint32{0})
	unregistered, _ := ht.Insert([]uint32{1})

	m := New()
	m.EnumerateColumns(ht, []hashtable.MonomId{id})

	defer func() {
		if recover() == nil {
			t.Fatalf("ColumnOf should panic for a monomial that was never enumerated")
		}
	}()
	m.ColumnOf(unregistered)
}
