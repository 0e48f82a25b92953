// Package f4 drives the main loop: pick a block of critical pairs,
// build a Macaulay matrix from them via symbolic preprocessing,
// reduce it, and fold surviving pivots back into the basis, repeating
// until the pairset is empty.
package f4

import (
	"errors"

	"groebner/basis"
	"groebner/field"
	"groebner/hashtable"
	"groebner/matrix"
	"groebner/pairselect"
	"groebner/symbolic"
	"groebner/trace"
)

// MaxIterations bounds a run so a malformed input (or a bug) can never
// loop forever.
const MaxIterations = 10000

// ErrIterationCap is returned when a run does not converge within
// MaxIterations iterations.
var ErrIterationCap = errors.New("f4: exceeded iteration cap")

// Config bundles the knobs a caller can set per run.
type Config struct {
	Ht         *hashtable.Table
	Field      *field.Prime
	Strategy   pairselect.Strategy
	MaxPairs   int // 0 = no cap
	Mode       matrix.Mode
	RNGCombine func(n int) []field.Elem
}

// Run executes the main loop to completion (empty pairset), returning
// the final basis (not yet standardized; callers call
// Basis.Standardize themselves) and the trace recorded along the way.
func Run(cfg Config, b *basis.Basis, ps *basis.Pairset) (*basis.Basis, *trace.ComputationTrace, error) {
	tr := trace.New(cfg.Ht.NVars, [32]byte{})
	basis.Update(b, ps, cfg.Ht)

	for iter := 0; ; iter++ {
		if iter >= MaxIterations {
			return b, tr, ErrIterationCap
		}
		if ps.Len() == 0 {
			return b, tr, nil
		}

		block := pairselect.Select(ps, cfg.Ht, cfg.Strategy, cfg.MaxPairs)
		if len(block.Indices) == 0 {
			return b, tr, nil
		}

		rec := runIteration(cfg, b, ps, block)
		tr.AddIteration(rec)

		ps.RemoveBlock(block.Indices)
		basis.Update(b, ps, cfg.Ht)
	}
}

// runIteration builds and reduces the matrix for one selected block,
// folding any new pivots into the basis, and returns the trace record
// for replay.
func runIteration(cfg Config, b *basis.Basis, ps *basis.Pairset, block pairselect.Block) trace.IterationRecord {
	m := matrix.New()
	symbolHt := hashtable.NewSecondary(cfg.Ht)
	state := symbolic.NewState(cfg.Ht, symbolHt)

	for _, pi := range block.Indices {
		p := ps.Pairs[pi]
		addLowerRow(cfg, b, m, state, p.Poly1, p.Lcm)
		addLowerRow(cfg, b, m, state, p.Poly2, p.Lcm)
	}

	symbolic.Run(m, b, state)

	queued := state.Queued()
	m.EnumerateColumns(symbolHt, queued)

	colPerm := make([]int, len(queued))
	for i, id := range queued {
		colPerm[i] = m.ColumnOf(id)
	}

	result := matrix.Reduce(m, cfg.Field, cfg.Mode, cfg.RNGCombine)

	for _, row := range result.NewPivots {
		addPivotToBasis(cfg.Ht, symbolHt, m, b, row)
	}

	choices := state.Choices()
	reducerChoices := make([]trace.ReducerChoice, len(choices))
	for i, c := range choices {
		reducerChoices[i] = trace.ReducerChoice{QueuePos: c.QueuePos, BasisIdx: c.BasisIdx}
	}

	return trace.IterationRecord{
		PairBlock:         append([]int(nil), block.Indices...),
		ReducerChoices:    reducerChoices,
		ColumnPermutation: colPerm,
		Shape:             shapeOf(m),
		Empty:             len(result.NewPivots) == 0,
		UsefulRows:        append([]int(nil), result.UsefulRows...),
	}
}

// Apply replays a previously learned trace against a basis and
// pairset built from structurally identical input: it reselects each
// recorded pair block, rebuilds upper rows from the recorded reducer
// choices instead of searching the basis, reuses the recorded column
// permutation instead of sorting, and only re-runs linear algebra with
// the caller's own field and coefficients. It returns ok=false (and
// the basis as far as replay got) the moment the trace stops matching
// the replay: a recorded reducer index that no longer exists in b, or
// a pivot count that disagrees with what was learned. Callers should
// fall back to Run on a false result.
func Apply(cfg Config, b *basis.Basis, ps *basis.Pairset, tr *trace.ComputationTrace) (*basis.Basis, bool) {
	basis.Update(b, ps, cfg.Ht)

	for _, rec := range tr.Iterations {
		for _, pi := range rec.PairBlock {
			if pi < 0 || pi >= len(ps.Pairs) {
				return b, false
			}
		}

		if rec.Empty {
			ps.RemoveBlock(rec.PairBlock)
			basis.Update(b, ps, cfg.Ht)
			continue
		}

		m := matrix.New()
		symbolHt := hashtable.NewSecondary(cfg.Ht)
		state := symbolic.NewState(cfg.Ht, symbolHt)

		for _, pi := range rec.PairBlock {
			p := ps.Pairs[pi]
			addLowerRow(cfg, b, m, state, p.Poly1, p.Lcm)
			addLowerRow(cfg, b, m, state, p.Poly2, p.Lcm)
		}

		choices := make([]symbolic.Choice, len(rec.ReducerChoices))
		for i, rc := range rec.ReducerChoices {
			choices[i] = symbolic.Choice{QueuePos: rc.QueuePos, BasisIdx: rc.BasisIdx}
		}
		if !symbolic.ReplayRun(m, b, state, choices) {
			return b, false
		}

		queued := state.Queued()
		if len(queued) != len(rec.ColumnPermutation) {
			return b, false
		}
		if err := m.SetColumns(symbolHt, queued, rec.ColumnPermutation); err != nil {
			return b, false
		}

		nup, nlow, ncols := m.Shape()
		if nup != rec.Shape.NUpper || nlow != rec.Shape.NLower || ncols != rec.Shape.NCols {
			return b, false
		}

		result := matrix.Reduce(m, cfg.Field, cfg.Mode, cfg.RNGCombine)
		if len(result.NewPivots) != len(rec.UsefulRows) {
			return b, false
		}

		for _, row := range result.NewPivots {
			addPivotToBasis(cfg.Ht, symbolHt, m, b, row)
		}

		ps.RemoveBlock(rec.PairBlock)
		basis.Update(b, ps, cfg.Ht)
	}

	return b, true
}

// addLowerRow translates polynomial g, multiplied up to lcm, into a
// lower TermRow and registers it with both the matrix and the
// symbolic-preprocessing queue.
func addLowerRow(cfg Config, b *basis.Basis, m *matrix.Matrix, state *symbolic.State, g int, lcm hashtable.MonomId) {
	lg := b.LeadMonom(g)
	lcmExp := cfg.Ht.Exp(lcm)
	lgExp := cfg.Ht.Exp(lg)
	multExp := make([]uint32, len(lcmExp))
	for i := range lcmExp {
		multExp[i] = lcmExp[i] - lgExp[i]
	}

	shifted := make([]hashtable.MonomId, len(b.Monoms[g]))
	for k, t := range b.Monoms[g] {
		id, err := state.Translate(t, multExp)
		if err != nil {
			panic(err)
		}
		shifted[k] = id
		state.Enqueue(id)
	}

	coeffs := append([]field.Elem(nil), b.Coeffs[g]...)
	m.AddLower(matrix.TermRow{Terms: shifted, Coeffs: coeffs, FromBasis: g})
}

// addPivotToBasis turns a reduced row back into a monic basis
// polynomial, re-expressed over the primary table.
func addPivotToBasis(primary, symbolHt *hashtable.Table, m *matrix.Matrix, b *basis.Basis, row matrix.Row) {
	monoms := make([]hashtable.MonomId, len(row.Cols))
	for i, c := range row.Cols {
		localId := m.MonomOf(c)
		exp := symbolHt.Exp(localId)
		id, err := primary.Insert(exp)
		if err != nil {
			panic(err)
		}
		monoms[i] = id
	}
	b.Add(monoms, append([]field.Elem(nil), row.Coeffs...))
}

func shapeOf(m *matrix.Matrix) trace.Shape {
	nup, nlow, ncols := m.Shape()
	return trace.Shape{NUpper: nup, NLower: nlow, NCols: ncols}
}
