// Package trace implements the ComputationTrace: learn records the
// discrete decisions of one F4 run; apply replays them against a
// structurally identical input, skipping discovery work and only
// re-running linear algebra with new coefficients.
package trace

// IterationRecord is everything Learn records for one F4 iteration.
type IterationRecord struct {
	// PairBlock is the set of pairset indices selected that
	// iteration, recorded so Apply can reselect without resorting.
	PairBlock []int

	// ReducerChoices is the sequence of (monomial position in
	// insertion order, chosen basis index) pairs symbolic
	// preprocessing made, in the order the monomials were queued.
	ReducerChoices []ReducerChoice

	// ColumnPermutation is symbolHt id (by queue position) -> column
	// index, recorded so Apply can reuse it verbatim.
	ColumnPermutation []int

	Shape Shape

	// Empty is true iff this iteration produced no new pivot rows;
	// Apply then drops the iteration's pair block without building a
	// matrix.
	Empty bool

	// UsefulRows are the indices, within the iteration's lower half,
	// of rows that yielded a non-zero pivot. Apply still reduces every
	// lower row and checks its new-pivot count against len(UsefulRows).
	UsefulRows []int
}

// ReducerChoice records one symbolic-preprocessing decision.
type ReducerChoice struct {
	QueuePos int
	BasisIdx int
}

// Shape is a Macaulay matrix's dimensions.
type Shape struct {
	NUpper, NLower, NCols int
}

// Immutable records describe the input itself, fixed for the whole
// run.
type Immutable struct {
	InputPermutation  []int
	HomogenizeApplied bool
	SortPermutation   []int
	PolyRepresentation string
}

// ComputationTrace is the opaque, caller-owned record of one learn
// run. It is consumed read-only by Apply; its internal layout is not
// meant to be serialized across versions.
type ComputationTrace struct {
	Iterations []IterationRecord
	Immutable  Immutable

	// Fingerprint binds this trace to the input it was learned on, so
	// Apply can cheaply reject a structurally different input before
	// doing any replay work.
	Fingerprint [32]byte
	NVars       int
}

// New returns an empty trace ready to be filled in by the learn path.
func New(nvars int, fp [32]byte) *ComputationTrace {
	return &ComputationTrace{NVars: nvars, Fingerprint: fp}
}

// AddIteration appends one iteration's record.
func (t *ComputationTrace) AddIteration(r IterationRecord) {
	t.Iterations = append(t.Iterations, r)
}
