package modular

import (
	"sort"

	"groebner/basis"
	"groebner/hashtable"
)

// Shape is a basis's leading-monomial multiset, the thing that must
// agree across lucky primes; coefficients are deliberately not part
// of it.
type Shape struct {
	leads [][]uint32
}

// ShapeOf extracts the shape of a standardized basis.
func ShapeOf(b *basis.Basis, ht *hashtable.Table) Shape {
	leads := make([][]uint32, b.NFilled())
	for i := 0; i < b.NFilled(); i++ {
		leads[i] = append([]uint32(nil), ht.Exp(b.LeadMonom(i))...)
	}
	sort.Slice(leads, func(i, j int) bool { return lexLess(leads[i], leads[j]) })
	return Shape{leads: leads}
}

func lexLess(a, b []uint32) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func (s Shape) equal(o Shape) bool {
	if len(s.leads) != len(o.leads) {
		return false
	}
	for i := range s.leads {
		if len(s.leads[i]) != len(o.leads[i]) {
			return false
		}
		for j := range s.leads[i] {
			if s.leads[i][j] != o.leads[i][j] {
				return false
			}
		}
	}
	return true
}

// MajorityVote groups shapes by equality and returns the indices
// belonging to the largest group. A prime whose basis shape disagrees
// with that group is unlucky and must be discarded before CRT
// combination.
func MajorityVote(shapes []Shape) []int {
	type group struct {
		shape   Shape
		members []int
	}
	var groups []group
	for i, s := range shapes {
		placed := false
		for gi := range groups {
			if groups[gi].shape.equal(s) {
				groups[gi].members = append(groups[gi].members, i)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, group{shape: s, members: []int{i}})
		}
	}
	best := 0
	for i, g := range groups {
		if len(g.members) > len(groups[best].members) {
			best = i
		}
	}
	return groups[best].members
}
