// Package symbolic implements symbolic preprocessing: for every
// monomial that will occur in the matrix, find a basis divisor and
// register the corresponding multiple as an upper (reducer) row.
//
// Identifiers are never shared between the primary hashtable and a
// per-iteration secondary ("symbolic") hashtable; every monomial a row
// touches is translated, by re-inserting its exponent vector, from
// primary into symbolHt the first time it is seen.
package symbolic

import (
	"groebner/basis"
	"groebner/field"
	"groebner/hashtable"
	"groebner/matrix"
)

// State carries the queue of symbolHt ids still to be processed and
// the dedup set guarding it; it is created fresh per iteration.
type State struct {
	symbolHt *hashtable.Table
	primary  *hashtable.Table
	queue    []hashtable.MonomId
	queued   map[hashtable.MonomId]bool
	choices  []Choice
}

// Choice records one reducer decision made by Run: the queue position
// of the monomial being processed and the basis index chosen as its
// reducer. Recording these lets a later Apply replay the same choices
// instead of searching the basis again.
type Choice struct {
	QueuePos int
	BasisIdx int
}

// Choices returns every reducer decision Run has made so far, in the
// order it made them.
func (s *State) Choices() []Choice {
	return append([]Choice(nil), s.choices...)
}

// NewState returns preprocessing state for one F4 iteration.
func NewState(primary, symbolHt *hashtable.Table) *State {
	return &State{primary: primary, symbolHt: symbolHt, queued: make(map[hashtable.MonomId]bool)}
}

// Enqueue adds a symbolHt id to the processing queue, deduplicated.
func (s *State) Enqueue(id hashtable.MonomId) {
	if !s.queued[id] {
		s.queued[id] = true
		s.queue = append(s.queue, id)
	}
}

// Queued returns every distinct symbolHt id seen so far, in the order
// it was first queued: the column set Run's caller enumerates.
func (s *State) Queued() []hashtable.MonomId {
	return append([]hashtable.MonomId(nil), s.queue...)
}

// Translate maps a (primary id, multiplier exponent) pair into
// symbolHt, inserting the product monomial there. It does not queue
// the result; callers that want it processed must also call Enqueue.
func (s *State) Translate(primaryId hashtable.MonomId, multExp []uint32) (hashtable.MonomId, error) {
	exp := s.primary.Exp(primaryId)
	prod := make([]uint32, len(exp))
	for i := range exp {
		prod[i] = exp[i] + multExp[i]
	}
	return s.symbolHt.Insert(prod)
}

// SeedRow translates a row of primary-table monomial ids (a lower row
// being added to the matrix) into symbolHt ids, queuing every term.
func (s *State) SeedRow(terms []hashtable.MonomId) []hashtable.MonomId {
	zero := make([]uint32, s.primary.NVars)
	out := make([]hashtable.MonomId, len(terms))
	for i, id := range terms {
		localId, err := s.Translate(id, zero)
		if err != nil {
			panic(err)
		}
		out[i] = localId
		s.Enqueue(localId)
	}
	return out
}

// Run processes the queue to fixpoint, searching the basis for a
// reducer of every pivot-unknown monomial and appending the resulting
// upper TermRow to m. findReducer does the divmask-filtered,
// lowest-index-wins search.
func Run(m *matrix.Matrix, b *basis.Basis, s *State) {
	for i := 0; i < len(s.queue); i++ {
		id := s.queue[i]
		hv := s.symbolHt.Hashvalue(id)
		if hv.Flag == hashtable.FlagPivot {
			continue
		}

		target := s.symbolHt.Exp(id)
		g, ok := findReducer(b, s.primary, target, hv.Divmask)
		if !ok {
			continue // stays FlagUnknownPivot -> non-pivot column
		}
		s.choices = append(s.choices, Choice{QueuePos: i, BasisIdx: g})

		lg := b.LeadMonom(g)
		lgExp := s.primary.Exp(lg)
		multExp := make([]uint32, len(target))
		for k := range target {
			multExp[k] = target[k] - lgExp[k]
		}

		terms := make([]hashtable.MonomId, len(b.Monoms[g]))
		for k, t := range b.Monoms[g] {
			localId, err := s.Translate(t, multExp)
			if err != nil {
				panic(err)
			}
			terms[k] = localId
			s.Enqueue(localId)
		}

		s.symbolHt.SetFlag(id, hashtable.FlagPivot)
		coeffs := append([]field.Elem(nil), b.Coeffs[g]...)
		m.AddUpper(matrix.TermRow{Terms: terms, Coeffs: coeffs, FromBasis: g})
	}
}

// ReplayRun is Run's replay counterpart: instead of searching the
// basis for a reducer, it looks up the basis index recorded for each
// queue position and trusts it. It reports false the moment a recorded
// choice no longer makes sense against b (an out-of-range basis index,
// or a multiplier exponent that would go negative), the signal for
// the caller to fall back to a full Run.
func ReplayRun(m *matrix.Matrix, b *basis.Basis, s *State, choices []Choice) bool {
	chosen := make(map[int]int, len(choices))
	for _, c := range choices {
		chosen[c.QueuePos] = c.BasisIdx
	}

	for i := 0; i < len(s.queue); i++ {
		id := s.queue[i]
		hv := s.symbolHt.Hashvalue(id)
		if hv.Flag == hashtable.FlagPivot {
			continue
		}

		g, ok := chosen[i]
		if !ok {
			continue // recorded as a non-pivot column
		}
		if g < 0 || g >= len(b.Monoms) {
			return false
		}

		target := s.symbolHt.Exp(id)
		lg := b.LeadMonom(g)
		lgExp := s.primary.Exp(lg)
		multExp := make([]uint32, len(target))
		for k := range target {
			if target[k] < lgExp[k] {
				return false
			}
			multExp[k] = target[k] - lgExp[k]
		}

		terms := make([]hashtable.MonomId, len(b.Monoms[g]))
		for k, t := range b.Monoms[g] {
			localId, err := s.Translate(t, multExp)
			if err != nil {
				return false
			}
			terms[k] = localId
			s.Enqueue(localId)
		}

		s.symbolHt.SetFlag(id, hashtable.FlagPivot)
		coeffs := append([]field.Elem(nil), b.Coeffs[g]...)
		m.AddUpper(matrix.TermRow{Terms: terms, Coeffs: coeffs, FromBasis: g})
	}
	return true
}

// findReducer searches the basis (divmask-filtered, lowest index
// wins) for a non-redundant generator whose leading monomial divides
// target.
func findReducer(b *basis.Basis, primary *hashtable.Table, target []uint32, targetMask uint32) (int, bool) {
	for i, g := range b.NonRedundant {
		if b.Divmasks[i]&^targetMask != 0 {
			continue
		}
		lg := primary.Exp(b.LeadMonom(g))
		if divides(lg, target) {
			return g, true
		}
	}
	return 0, false
}

func divides(a, b []uint32) bool {
	for i := range a {
		if b[i] < a[i] {
			return false
		}
	}
	return true
}
