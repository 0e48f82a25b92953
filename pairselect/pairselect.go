// Package pairselect implements critical-pair selection: choosing the
// minimum-degree block of S-pairs to process in one F4 iteration.
package pairselect

import (
	"sort"

	"groebner/basis"
	"groebner/hashtable"
)

// Strategy is the selection policy. Sugar is accepted but always
// falls back to Normal; the fallback is explicit rather than a silent
// alias, so Select reports which strategy it actually ran via
// Block.UsedStrategy.
type Strategy int

const (
	Normal Strategy = iota
	Sugar
)

// Block is the selected set of pairs for one iteration.
type Block struct {
	Indices      []int // indices into the pairset's Pairs slice, removed by the caller afterward
	UsedStrategy Strategy
}

// Select picks the minimum-degree block (stable-sorted by
// (lcm, poly1, poly2) for determinism), optionally capped by maxPairs,
// in which case the cap is extended to include every pair sharing the
// lcm of the last selected one, so a partial lcm class is never split
// across iterations.
func Select(ps *basis.Pairset, ht *hashtable.Table, strategy Strategy, maxPairs int) Block {
	used := Normal // Sugar is declared but always runs as Normal.

	n := len(ps.Pairs)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := ps.Pairs[order[a]], ps.Pairs[order[b]]
		if pa.Deg != pb.Deg {
			return pa.Deg < pb.Deg
		}
		if pa.Lcm != pb.Lcm {
			return ht.Less(pa.Lcm, pb.Lcm)
		}
		if pa.Poly1 != pb.Poly1 {
			return pa.Poly1 < pb.Poly1
		}
		return pa.Poly2 < pb.Poly2
	})
	if n == 0 {
		return Block{UsedStrategy: used}
	}

	minDeg := ps.Pairs[order[0]].Deg
	end := 0
	for end < n && ps.Pairs[order[end]].Deg == minDeg {
		end++
	}

	if maxPairs > 0 && end > maxPairs {
		cut := maxPairs
		lastLcm := ps.Pairs[order[cut-1]].Lcm
		for cut < end && ps.Pairs[order[cut]].Lcm == lastLcm {
			cut++
		}
		end = cut
	}

	return Block{Indices: order[:end], UsedStrategy: used}
}

// ReducerFor picks the lowest-indexed non-redundant generator whose
// leading monomial divides lcm: the upper row's reducer for an lcm
// class.
func ReducerFor(b *basis.Basis, ht *hashtable.Table, lcm hashtable.MonomId) (int, bool) {
	for _, g := range b.NonRedundant {
		if ht.Divides(b.LeadMonom(g), lcm) {
			return g, true
		}
	}
	return 0, false
}
