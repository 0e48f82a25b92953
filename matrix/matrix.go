// Package matrix implements the Macaulay matrix: a sparse-row matrix
// split into an "upper" half (rows whose leading column is a known
// pivot) and a "lower" half (rows still to be reduced), plus the
// column enumeration that assigns each monomial in a symbolic
// hashtable a column index.
package matrix

import (
	"errors"
	"sort"

	"groebner/field"
	"groebner/hashtable"
)

// TermRow is a Macaulay-matrix row expressed over the symbolic
// hashtable's monomial ids, before column indices have been assigned.
// Terms[k] carries coefficient Coeffs[k]. FromBasis records which
// basis polynomial (if any) this row is a multiple of, so the F4
// driver can turn a surviving residue back into a new basis
// polynomial without a side table.
type TermRow struct {
	Terms     []hashtable.MonomId
	Coeffs    []field.Elem
	FromBasis int // -1 if this row has no basis provenance
}

// Row is a TermRow after EnumerateColumns has translated monomial ids
// to column indices; Cols is sorted to match Matrix.Columns order
// (descending), and for an upper row Cols[0] is its pivot column.
type Row struct {
	Cols      []int
	Coeffs    []field.Elem
	FromBasis int
}

// Matrix is the Macaulay matrix for one F4 iteration.
type Matrix struct {
	UpperTerms []TermRow
	LowerTerms []TermRow

	Upper []Row
	Lower []Row

	// Columns, descending under the table's ordering; Columns[0] is
	// the largest monomial, column 0 in every row's Cols.
	Columns []hashtable.MonomId
	colOf   map[hashtable.MonomId]int
}

// New returns an empty matrix.
func New() *Matrix { return &Matrix{} }

// AddUpper appends a reducer row (pivot column known: Terms[0]).
func (m *Matrix) AddUpper(r TermRow) { m.UpperTerms = append(m.UpperTerms, r) }

// AddLower appends a row still to be reduced.
func (m *Matrix) AddLower(r TermRow) { m.LowerTerms = append(m.LowerTerms, r) }

// EnumerateColumns sorts every monomial in ids descending under
// symbolHt's ordering, assigns column indices, and translates every
// pending TermRow into a column-indexed Row.
func (m *Matrix) EnumerateColumns(symbolHt *hashtable.Table, ids []hashtable.MonomId) {
	cols := append([]hashtable.MonomId(nil), ids...)
	sort.Slice(cols, func(i, j int) bool {
		return symbolHt.Less(cols[j], cols[i]) // descending
	})
	m.Columns = cols
	m.colOf = make(map[hashtable.MonomId]int, len(cols))
	for i, id := range cols {
		m.colOf[id] = i
	}

	m.Upper = make([]Row, len(m.UpperTerms))
	for i, tr := range m.UpperTerms {
		m.Upper[i] = m.finalize(tr)
	}
	m.Lower = make([]Row, len(m.LowerTerms))
	for i, tr := range m.LowerTerms {
		m.Lower[i] = m.finalize(tr)
	}
}

// ErrBadPermutation signals a column permutation that does not cover
// exactly the ids it was given, one-to-one.
var ErrBadPermutation = errors.New("matrix: invalid column permutation")

// SetColumns is EnumerateColumns' replay counterpart: instead of
// sorting ids under symbolHt's ordering, it assigns column indices
// from perm[i] for ids[i] directly, the permutation learned and
// recorded from an earlier run over the same monomial shape.
func (m *Matrix) SetColumns(symbolHt *hashtable.Table, ids []hashtable.MonomId, perm []int) error {
	if len(ids) != len(perm) {
		return ErrBadPermutation
	}
	ncols := len(ids)
	cols := make([]hashtable.MonomId, ncols)
	seen := make([]bool, ncols)
	m.colOf = make(map[hashtable.MonomId]int, ncols)
	for i, id := range ids {
		c := perm[i]
		if c < 0 || c >= ncols || seen[c] {
			return ErrBadPermutation
		}
		seen[c] = true
		cols[c] = id
		m.colOf[id] = c
	}
	m.Columns = cols

	m.Upper = make([]Row, len(m.UpperTerms))
	for i, tr := range m.UpperTerms {
		m.Upper[i] = m.finalize(tr)
	}
	m.Lower = make([]Row, len(m.LowerTerms))
	for i, tr := range m.LowerTerms {
		m.Lower[i] = m.finalize(tr)
	}
	return nil
}

func (m *Matrix) finalize(tr TermRow) Row {
	cols := make([]int, len(tr.Terms))
	for i, id := range tr.Terms {
		cols[i] = m.ColumnOf(id)
	}
	return Row{Cols: cols, Coeffs: append([]field.Elem(nil), tr.Coeffs...), FromBasis: tr.FromBasis}
}

// ColumnOf returns the column index assigned to id (panics if id was
// never registered, which would indicate a bug in symbolic
// preprocessing).
func (m *Matrix) ColumnOf(id hashtable.MonomId) int {
	c, ok := m.colOf[id]
	if !ok {
		panic("matrix: monomial has no assigned column")
	}
	return c
}

// MonomOf is the inverse of ColumnOf: the monomial id assigned to a
// column, used to translate a reduced row's columns back into
// monomials for a new basis polynomial.
func (m *Matrix) MonomOf(col int) hashtable.MonomId { return m.Columns[col] }

// Shape returns (nup, nlow, ncols), the shape recorded into the trace.
func (m *Matrix) Shape() (int, int, int) {
	return len(m.Upper), len(m.Lower), len(m.Columns)
}
