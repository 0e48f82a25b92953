package basis

import "groebner/hashtable"

// Update runs the Gebauer-Moller step for the basis elements added
// since the last call (indices [b.NProcessed, b.NFilled())), inserting
// surviving S-pairs into ps and marking redundant basis elements along
// the way.
func Update(b *Basis, ps *Pairset, ht *hashtable.Table) {
	start := b.NProcessed
	end := b.NFilled()
	for i := start; i < end; i++ {
		addOne(b, ps, ht, i)
	}
	b.NProcessed = end
	ps.Compact()
	b.RefreshNonRedundant(ht)
}

func addOne(b *Basis, ps *Pairset, ht *hashtable.Table, i int) {
	li := b.LeadMonom(i)

	// Step 1: redundancy test against existing non-redundant elements.
	// A redundant i is still excluded from ReducerFor/findReducer once
	// RefreshNonRedundant runs (it adds no new reduction power of its
	// own), but it must still generate S-pairs below: unlike a pivot
	// promoted through matrix reduction (whose leading term is
	// guaranteed new by construction), a raw input generator can have
	// a divisible leading term while still carrying trailing terms
	// (e.g. xy+x against y) that only an S-pair reduction recovers.
	for _, j := range liveNonRedundant(b, i) {
		if j == i {
			continue
		}
		if ht.Divides(b.LeadMonom(j), li) {
			b.IsRedundant[i] = true
			break
		}
	}

	// Step 2/3: candidate pairs against existing non-redundant
	// elements, with Gebauer–Möller pruning.
	type cand struct {
		j   int
		lcm hashtable.MonomId
		deg uint32
	}
	var cands []cand
	for _, j := range liveNonRedundant(b, i) {
		if j == i {
			continue
		}
		lj := b.LeadMonom(j)
		lcm, err := ht.LCM(li, lj)
		if err != nil {
			continue
		}
		cands = append(cands, cand{j: j, lcm: lcm, deg: ht.Deg(lcm)})
	}

	// Buchberger's first criterion: coprime leading terms never need a
	// pair (their S-polynomial always reduces to zero).
	coprime := func(a, bb hashtable.MonomId) bool {
		lcm, err := ht.LCM(a, bb)
		if err != nil {
			return false
		}
		return ht.Deg(lcm) == ht.Deg(a)+ht.Deg(bb)
	}

	keep := make([]bool, len(cands))
	for k := range cands {
		keep[k] = true
	}
	for k, c := range cands {
		if coprime(li, b.LeadMonom(c.j)) {
			keep[k] = false
			continue
		}
		// M/F criterion: drop (j,i) if some other surviving candidate's
		// lcm strictly divides c.lcm at no greater degree.
		for k2, c2 := range cands {
			if k2 == k || !keep[k2] {
				continue
			}
			if c2.lcm != c.lcm && ht.Divides(c2.lcm, c.lcm) && c2.deg <= c.deg {
				keep[k] = false
				break
			}
		}
	}

	// Tie-break equal lcms: keep the one with the smaller (poly1,poly2).
	for k1 := range cands {
		if !keep[k1] {
			continue
		}
		for k2 := k1 + 1; k2 < len(cands); k2++ {
			if !keep[k2] || cands[k1].lcm != cands[k2].lcm {
				continue
			}
			a1, b1 := orderedPair(cands[k1].j, i)
			a2, b2 := orderedPair(cands[k2].j, i)
			if lexGreater(a1, b1, a2, b2) {
				keep[k1] = false
			} else {
				keep[k2] = false
			}
		}
	}

	for k, c := range cands {
		if !keep[k] {
			continue
		}
		p1, p2 := orderedPair(c.j, i)
		ps.Add(SPair{Poly1: p1, Poly2: p2, Lcm: c.lcm, Deg: c.deg})
	}

	// Step 2 (Buchberger LCM criterion) against the existing pairset:
	// drop any pending pair (a,b) whose lcm is divisible by li and
	// whose degree exceeds max(deg(lcm(a,li)), deg(lcm(b,li))).
	for idx := range ps.Pairs {
		p := &ps.Pairs[idx]
		if p.Lcm == 0 || p.Poly1 == i || p.Poly2 == i {
			continue
		}
		if !ht.Divides(li, p.Lcm) {
			continue
		}
		la := b.LeadMonom(p.Poly1)
		lb := b.LeadMonom(p.Poly2)
		lcmA, errA := ht.LCM(la, li)
		lcmB, errB := ht.LCM(lb, li)
		if errA != nil || errB != nil {
			continue
		}
		degA, degB := ht.Deg(lcmA), ht.Deg(lcmB)
		maxDeg := degA
		if degB > maxDeg {
			maxDeg = degB
		}
		if p.Deg > maxDeg {
			p.Lcm = 0
		}
	}

	// Step 4: mark old non-redundant polynomials whose lead becomes
	// divisible by li as redundant.
	for _, j := range liveNonRedundant(b, i) {
		if j == i {
			continue
		}
		if ht.Divides(li, b.LeadMonom(j)) {
			b.IsRedundant[j] = true
		}
	}
}

func liveNonRedundant(b *Basis, upTo int) []int {
	out := make([]int, 0, upTo)
	for j := 0; j <= upTo; j++ {
		if j < len(b.IsRedundant) && !b.IsRedundant[j] {
			out = append(out, j)
		}
	}
	return out
}

func orderedPair(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}

func lexGreater(a1, b1, a2, b2 int) bool {
	if a1 != a2 {
		return a1 > a2
	}
	return b1 > b2
}
