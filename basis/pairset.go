package basis

import "groebner/hashtable"

// SPair is a critical pair between basis polynomials Poly1 and Poly2.
// An Lcm of 0 marks a pair that Gebauer–Möller pruning discarded; the
// pairset is compacted (such pairs physically removed) after pruning.
type SPair struct {
	Poly1, Poly2 int
	Lcm          hashtable.MonomId
	Deg          uint32
}

// Pairset is the queue of pending S-pairs.
type Pairset struct {
	Pairs []SPair
}

// NewPairset returns an empty pairset.
func NewPairset() *Pairset { return &Pairset{} }

// Len is the number of live pairs.
func (ps *Pairset) Len() int { return len(ps.Pairs) }

// Add appends a pair.
func (ps *Pairset) Add(p SPair) { ps.Pairs = append(ps.Pairs, p) }

// Compact drops every pair whose Lcm has been zeroed out by pruning.
func (ps *Pairset) Compact() {
	out := ps.Pairs[:0]
	for _, p := range ps.Pairs {
		if p.Lcm != 0 {
			out = append(out, p)
		}
	}
	ps.Pairs = out
}

// RemoveBlock deletes the pairs at the given indices (in any order)
// via shift-compaction.
func (ps *Pairset) RemoveBlock(indices []int) {
	if len(indices) == 0 {
		return
	}
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	out := ps.Pairs[:0]
	for i, p := range ps.Pairs {
		if !drop[i] {
			out = append(out, p)
		}
	}
	ps.Pairs = out
}
