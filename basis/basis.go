// Package basis holds the Basis (generating set under construction)
// and Pairset (pending S-pair queue), plus the Gebauer–Möller update
// step that keeps them consistent after an F4 iteration.
package basis

import (
	"groebner/field"
	"groebner/hashtable"
)

// Basis stores polynomials as parallel vectors of (monomial-id list,
// coefficient list), the first element of each pair always the
// leading term.
type Basis struct {
	Monoms [][]hashtable.MonomId
	Coeffs [][]field.Elem

	IsRedundant  []bool
	NonRedundant []int
	Divmasks     []uint32

	NProcessed    int
	NNonRedundant int
}

// New returns an empty basis.
func New() *Basis { return &Basis{} }

// NFilled is the number of polynomials ever added, redundant or not.
func (b *Basis) NFilled() int { return len(b.Monoms) }

// Add appends a new polynomial, returning its index. monoms[0] must be
// the leading term and coeffs[0] the leading coefficient.
func (b *Basis) Add(monoms []hashtable.MonomId, coeffs []field.Elem) int {
	b.Monoms = append(b.Monoms, monoms)
	b.Coeffs = append(b.Coeffs, coeffs)
	b.IsRedundant = append(b.IsRedundant, false)
	return len(b.Monoms) - 1
}

// LeadMonom returns the leading monomial id of polynomial i.
func (b *Basis) LeadMonom(i int) hashtable.MonomId { return b.Monoms[i][0] }

// MakeMonic scales polynomial i so its leading coefficient is 1.
func (b *Basis) MakeMonic(i int, f *field.Prime) {
	lc := b.Coeffs[i][0]
	if lc == 1 {
		return
	}
	inv := f.Inv(lc)
	for j, c := range b.Coeffs[i] {
		b.Coeffs[i][j] = f.Mul(c, inv)
	}
}

// RefreshNonRedundant rebuilds NonRedundant and Divmasks from
// IsRedundant; called after redundancy marks change.
func (b *Basis) RefreshNonRedundant(ht *hashtable.Table) {
	b.NonRedundant = b.NonRedundant[:0]
	b.Divmasks = b.Divmasks[:0]
	for i := 0; i < len(b.Monoms); i++ {
		if b.IsRedundant[i] {
			continue
		}
		b.NonRedundant = append(b.NonRedundant, i)
		b.Divmasks = append(b.Divmasks, ht.Divmask(b.LeadMonom(i)))
	}
	b.NNonRedundant = len(b.NonRedundant)
}

// Standardize compacts the basis to its non-redundant entries,
// contiguous and sorted ascending by leading monomial, each made
// monic. It returns a new Basis; the receiver is left untouched so
// callers can still refer to old indices (e.g. from a Pairset) until
// they drop them.
func (b *Basis) Standardize(ht *hashtable.Table, f *field.Prime) *Basis {
	idx := append([]int(nil), b.NonRedundant...)
	for i := range idx {
		for j := i + 1; j < len(idx); j++ {
			if ht.Less(b.LeadMonom(idx[j]), b.LeadMonom(idx[i])) {
				idx[i], idx[j] = idx[j], idx[i]
			}
		}
	}
	out := New()
	for _, i := range idx {
		monoms := append([]hashtable.MonomId(nil), b.Monoms[i]...)
		coeffs := append([]field.Elem(nil), b.Coeffs[i]...)
		out.Add(monoms, coeffs)
		out.MakeMonic(len(out.Monoms)-1, f)
	}
	out.NProcessed = out.NFilled()
	out.RefreshNonRedundant(ht)
	return out
}
