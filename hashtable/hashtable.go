// Package hashtable implements the monomial hashtable: an
// open-addressed map from exponent vector to a stable small integer
// identifier (MonomId), plus the per-identifier scratch state
// (Hashvalue) used during symbolic preprocessing.
//
// A primary table is long-lived for one F4 run (basis monomials, all
// lcms). Secondary tables are created per iteration for symbolic
// preprocessing and share the primary's hash vector, divmap and
// ordering so identifiers computed against one are hash-compatible
// with (but never interchangeable with) the other.
package hashtable

import (
	"errors"
	"math/rand"

	"groebner/monomial"
)

// MonomId is a stable identifier assigned on first insertion. It is
// never reused within the lifetime of a Table.
type MonomId int32

// Flag is scratch state used only during symbolic preprocessing.
type Flag uint8

const (
	FlagNonPivot Flag = iota
	FlagUnknownPivot
	FlagPivot
)

// Hashvalue is the per-identifier record described in the data model.
type Hashvalue struct {
	Hash    uint64
	Divmask uint32
	Deg     uint32
	Flag    Flag
}

// ErrArity signals a monomial whose length disagrees with the table's
// variable count.
var ErrArity = errors.New("hashtable: exponent vector has the wrong arity")

// Table is the open-addressed monomial hashtable.
type Table struct {
	NVars    int
	Ordering monomial.Ordering
	Weights  []uint32

	hashVector []uint64
	divmap     monomial.DivMap

	exps [][]uint32
	hv   []Hashvalue

	index    []int32 // bucket -> MonomId+1, 0 = empty
	capacity uint64
}

const initialCapacity = 64

// New creates a primary hashtable for nvars variables under ord, with
// a hash vector seeded from seed.
func New(nvars int, ord monomial.Ordering, seed int64) *Table {
	r := rand.New(rand.NewSource(seed))
	hv := make([]uint64, nvars)
	for i := range hv {
		hv[i] = r.Uint64() | 1 // odd, avoids an all-even hash vector
	}
	return &Table{
		NVars:      nvars,
		Ordering:   ord,
		hashVector: hv,
		divmap:     monomial.NewDivMap(nvars, 32),
		index:      make([]int32, initialCapacity),
		capacity:   initialCapacity,
	}
}

// NewSecondary creates a table that shares primary's hash vector,
// divmap and ordering, so hashes and comparisons made against it are
// cross-compatible with primary. Identifiers are NOT shared.
func NewSecondary(primary *Table) *Table {
	return &Table{
		NVars:      primary.NVars,
		Ordering:   primary.Ordering,
		Weights:    primary.Weights,
		hashVector: primary.hashVector,
		divmap:     primary.divmap,
		index:      make([]int32, initialCapacity),
		capacity:   initialCapacity,
	}
}

// Load is the number of distinct monomials stored so far.
func (t *Table) Load() int { return len(t.exps) }

func (t *Table) rawHash(exp []uint32) uint64 {
	var h uint64
	for i, e := range exp {
		h += uint64(e) * t.hashVector[i]
	}
	return h
}

// HashProduct computes the hash of a*b from the hashes of a and b
// without materializing the product monomial, per the linear-hash
// invariant hash(a*b) = hash(a)+hash(b).
func HashProduct(ha, hb uint64) uint64 { return ha + hb }

func equalExp(a, b []uint32) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func degreeOf(exp []uint32) uint32 {
	var d uint64
	for _, e := range exp {
		d += uint64(e)
	}
	return uint32(d)
}

// EnsureCapacity guarantees the table can absorb k more insertions
// without growing mid-batch.
func (t *Table) EnsureCapacity(k int) {
	for uint64(len(t.exps)+k) > t.capacity/2 {
		t.grow()
	}
}

func (t *Table) grow() {
	newCap := t.capacity * 2
	newIndex := make([]int32, newCap)
	mask := newCap - 1
	for id := range t.exps {
		idx := t.hv[id].Hash & mask
		for newIndex[idx] != 0 {
			idx = (idx + 1) & mask
		}
		newIndex[idx] = int32(id) + 1
	}
	t.index = newIndex
	t.capacity = newCap
}

// Insert returns the MonomId of exp, assigning a new one on first
// sight. Id 0 is reserved as "no monomial" (a zeroed Lcm field marks a
// pruned S-pair), so identifiers start at 1. The invariant "load <
// capacity after Insert" is maintained by growing (doubling) whenever
// load would exceed capacity/2.
func (t *Table) Insert(exp []uint32) (MonomId, error) {
	if len(exp) != t.NVars {
		return 0, ErrArity
	}
	t.EnsureCapacity(1)
	h := t.rawHash(exp)
	mask := t.capacity - 1
	idx := h & mask
	for {
		slot := t.index[idx]
		if slot == 0 {
			break
		}
		id := MonomId(slot)
		if equalExp(t.exps[id-1], exp) {
			return id, nil
		}
		idx = (idx + 1) & mask
	}
	id := MonomId(len(t.exps) + 1)
	stored := append([]uint32(nil), exp...)
	t.exps = append(t.exps, stored)
	t.hv = append(t.hv, Hashvalue{
		Hash:    h,
		Divmask: t.divmap.Divmask(exp),
		Deg:     degreeOf(exp),
		Flag:    FlagUnknownPivot,
	})
	t.index[idx] = int32(id)
	return id, nil
}

// InsertProduct inserts a*b, given as an already-computed exponent
// vector (the caller's monomial layer has done the multiplication);
// it is otherwise a plain Insert.
func (t *Table) InsertProduct(exp []uint32) (MonomId, error) {
	return t.Insert(exp)
}

// Exp returns the exponent vector of id.
func (t *Table) Exp(id MonomId) []uint32 { return t.exps[id-1] }

// Hashvalue returns the scratch record of id.
func (t *Table) Hashvalue(id MonomId) Hashvalue { return t.hv[id-1] }

// SetFlag updates the scratch flag of id.
func (t *Table) SetFlag(id MonomId, f Flag) { t.hv[id-1].Flag = f }

// Deg returns the cached total degree of id.
func (t *Table) Deg(id MonomId) uint32 { return t.hv[id-1].Deg }

// Divmask returns the cached divmask of id.
func (t *Table) Divmask(id MonomId) uint32 { return t.hv[id-1].Divmask }

// Less compares two identifiers under the table's ordering.
func (t *Table) Less(a, b MonomId) bool {
	da, err := monomial.NewDense(t.exps[a-1])
	if err != nil {
		panic(err)
	}
	db, err := monomial.NewDense(t.exps[b-1])
	if err != nil {
		panic(err)
	}
	return monomial.Less(da, db, t.Ordering, t.Weights)
}

// Divides reports whether the monomial of id `divisor` divides that
// of `dividend`, prefiltering with the divmask before the exact check.
func (t *Table) Divides(divisor, dividend MonomId) bool {
	if !monomial.MaybeDivides(t.Divmask(divisor), t.Divmask(dividend)) {
		return false
	}
	a, b := t.exps[dividend-1], t.exps[divisor-1]
	for i := range a {
		if a[i] < b[i] {
			return false
		}
	}
	return true
}

// LCM computes the lcm of two identifiers' monomials, inserting the
// result (possibly newly) and returning its id.
func (t *Table) LCM(a, b MonomId) (MonomId, error) {
	ea, eb := t.exps[a-1], t.exps[b-1]
	out := make([]uint32, len(ea))
	for i := range ea {
		m := ea[i]
		if eb[i] > m {
			m = eb[i]
		}
		out[i] = m
	}
	return t.Insert(out)
}

// Mul computes a*b as an exponent vector, inserts it, and returns its
// id together with the combined hash (useful to callers that want to
// avoid recomputation downstream).
func (t *Table) Mul(a, b MonomId) (MonomId, uint64, error) {
	ea, eb := t.exps[a-1], t.exps[b-1]
	out := make([]uint32, len(ea))
	for i := range ea {
		out[i] = ea[i] + eb[i]
	}
	h := HashProduct(t.hv[a-1].Hash, t.hv[b-1].Hash)
	id, err := t.Insert(out)
	return id, h, err
}

// Quo computes a/b as an exponent vector and inserts it. The caller
// must guarantee b divides a.
func (t *Table) Quo(a, b MonomId) (MonomId, error) {
	ea, eb := t.exps[a-1], t.exps[b-1]
	out := make([]uint32, len(ea))
	for i := range ea {
		out[i] = ea[i] - eb[i]
	}
	return t.Insert(out)
}
