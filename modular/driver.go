// Package modular implements the multi-modular driver for rational
// coefficients: clear denominators, run F4 modulo a growing batch of
// lucky primes, CRT-combine surviving bases, and rational-reconstruct
// the result.
package modular

import (
	"math/big"
	"sync"

	"groebner/basis"
	"groebner/f4"
	"groebner/field"
	"groebner/hashtable"
	"groebner/matrix"
	"groebner/monomial"
	"groebner/pairselect"
	"groebner/trace"
)

// IntegerPoly is a polynomial with arbitrary-precision integer
// coefficients, the shape the driver works in once denominators have
// been cleared. Monoms[i] corresponds to Coeffs[i]; Monoms[0] is the
// leading term under the run's ordering.
type IntegerPoly struct {
	Monoms [][]uint32
	Coeffs []*big.Int
}

// Config bundles the fixed parameters of a multi-modular run.
type Config struct {
	NVars    int
	Ordering monomial.Ordering
	Strategy pairselect.Strategy
	MaxPairs int
	Seed     int64
	Threaded bool
	// BatchSize0 is the first batch's prime count; it grows
	// geometrically (roughly x2) on each unsuccessful attempt.
	BatchSize0 int
	// Batched enables the 4-prime SIMD residue packing of BatchedRNS
	// for the coefficient-reduction step; it does not change which
	// primes are chosen, only how their residues are computed.
	Batched bool
	// LearnApply, when true, runs F4 via learn on the first prime and
	// replays the recorded trace (skipping pair selection and symbolic
	// preprocessing's search) for every later prime, falling back to a
	// full run for any prime where replay diverges.
	LearnApply bool
}

// learnState shares one trace, learned from whichever prime reaches it
// first, across every worker in a Run.
type learnState struct {
	mu sync.Mutex
	tr *trace.ComputationTrace
}

func (ls *learnState) get() *trace.ComputationTrace {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.tr
}

func (ls *learnState) setIfAbsent(tr *trace.ComputationTrace) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.tr == nil {
		ls.tr = tr
	}
}

// primeOutcome is one worker's result for one prime.
type primeOutcome struct {
	prime uint64
	shape Shape
	polys []IntegerPoly // coefficients are residues in [0,prime), still *big.Int for uniform CRT plumbing
}

// Run executes the driver to convergence, returning the rational
// basis as soon as every coefficient reconstructs within the bound;
// no further correctness check is run on the result. It never
// returns an error for an unlucky prime, it simply keeps growing the
// prime batch.
func Run(cfg Config, input []IntegerPoly) []RationalPoly {
	leadCoeffs := make([]uint64, 0, len(input))
	for _, p := range input {
		if len(p.Coeffs) == 0 {
			continue
		}
		if p.Coeffs[0].IsUint64() {
			leadCoeffs = append(leadCoeffs, p.Coeffs[0].Uint64())
		}
	}

	stream := NewPrimeStream(1 << 20)
	var streamMu sync.Mutex
	nextPrime := func() uint64 {
		streamMu.Lock()
		defer streamMu.Unlock()
		return stream.Next(leadCoeffs)
	}

	batchSize := cfg.BatchSize0
	if batchSize <= 0 {
		batchSize = 1
	}

	modulus := big.NewInt(1)
	var combined []IntegerPoly
	ls := &learnState{}

	for {
		outcomes := runBatch(cfg, input, batchSize, nextPrime, ls)
		shapes := make([]Shape, len(outcomes))
		for i, o := range outcomes {
			shapes[i] = o.shape
		}
		lucky := MajorityVote(shapes)

		for _, idx := range lucky {
			o := outcomes[idx]
			p := new(big.Int).SetUint64(o.prime)
			if modulus.Cmp(big.NewInt(1)) == 0 {
				combined = o.polys
				modulus.Set(p)
				continue
			}
			combined = combineBases(combined, modulus, o.polys, p)
			modulus.Mul(modulus, p)
		}

		if len(combined) > 0 {
			if result, ok := tryReconstruct(combined, modulus); ok {
				return result
			}
		}
		batchSize *= 2
	}
}

func runBatch(cfg Config, input []IntegerPoly, batchSize int, nextPrime func() uint64, ls *learnState) []primeOutcome {
	if cfg.Batched && batchSize >= 4 {
		out := make([]primeOutcome, 0, batchSize)
		for len(out)+4 <= batchSize {
			var primes [4]uint64
			for i := range primes {
				primes[i] = nextPrime()
			}
			out = append(out, runPrimeBatch4(cfg, input, primes, ls)...)
		}
		for len(out) < batchSize {
			out = append(out, runOnePrime(cfg, input, nextPrime(), ls))
		}
		return out
	}

	out := make([]primeOutcome, batchSize)
	if !cfg.Threaded {
		for i := 0; i < batchSize; i++ {
			out[i] = runOnePrime(cfg, input, nextPrime(), ls)
		}
		return out
	}

	var wg sync.WaitGroup
	for i := 0; i < batchSize; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			out[i] = runOnePrime(cfg, input, nextPrime(), ls)
		}()
	}
	wg.Wait()
	return out
}

// runPrimeBatch4 reduces input's coefficients modulo 4 primes at once
// via BatchedRNS, then runs F4 separately per prime (the algorithm
// itself has no 4-wide structure; only the reduction step does).
func runPrimeBatch4(cfg Config, input []IntegerPoly, primes [4]uint64, ls *learnState) []primeOutcome {
	maxCoeffs := 0
	for _, poly := range input {
		if len(poly.Coeffs) > maxCoeffs {
			maxCoeffs = len(poly.Coeffs)
		}
	}
	batch, err := NewBatchedRNS(maxCoeffs, primes)
	if err != nil {
		out := make([]primeOutcome, 4)
		for i, p := range primes {
			out[i] = runOnePrime(cfg, input, p, ls)
		}
		return out
	}

	residuesByPoly := make([][4][]uint64, len(input))
	for pi, poly := range input {
		packed := batch.Pack(poly.Coeffs)
		for limb := range primes {
			residuesByPoly[pi][limb] = batch.Unpack(packed, limb)[:len(poly.Coeffs)]
		}
	}

	out := make([]primeOutcome, 4)
	for limb, p := range primes {
		reduced := make([]IntegerPoly, len(input))
		for pi, poly := range input {
			coeffs := make([]*big.Int, len(poly.Coeffs))
			for k := range poly.Coeffs {
				coeffs[k] = new(big.Int).SetUint64(residuesByPoly[pi][limb][k])
			}
			reduced[pi] = IntegerPoly{Monoms: poly.Monoms, Coeffs: coeffs}
		}
		out[limb] = runOnePrimePrereduced(cfg, reduced, p, ls)
	}
	return out
}

// runOnePrime owns its own hashtable, field and basis: the only state
// shared with its siblings is the prime stream (locked), the learn
// trace (locked) and the output slot it was assigned.
func runOnePrime(cfg Config, input []IntegerPoly, p uint64, ls *learnState) primeOutcome {
	modP := new(big.Int).SetUint64(p)
	reduced := make([]IntegerPoly, len(input))
	for i, poly := range input {
		coeffs := make([]*big.Int, len(poly.Coeffs))
		for k, c := range poly.Coeffs {
			coeffs[k] = new(big.Int).Mod(c, modP)
		}
		reduced[i] = IntegerPoly{Monoms: poly.Monoms, Coeffs: coeffs}
	}
	return runOnePrimePrereduced(cfg, reduced, p, ls)
}

// runOnePrimePrereduced runs F4 for prime p, assuming input's
// coefficients are already reduced into [0,p). When cfg.LearnApply is
// set, it replays ls's trace instead of a full run once one exists,
// falling back to a full learn run (recording the trace for the rest
// of the batch if none was recorded yet) when replay fails.
func runOnePrimePrereduced(cfg Config, input []IntegerPoly, p uint64, ls *learnState) primeOutcome {
	ht := hashtable.New(cfg.NVars, cfg.Ordering, cfg.Seed)
	fld, err := field.NewPrime(p, field.Deferred)
	if err != nil {
		return primeOutcome{prime: p}
	}
	b, err := seedBasis(ht, fld, input)
	if err != nil {
		return primeOutcome{prime: p}
	}
	cfgRun := f4.Config{Ht: ht, Field: fld, Strategy: cfg.Strategy, MaxPairs: cfg.MaxPairs, Mode: matrix.ModeDeterministic}

	var result *basis.Basis
	if cfg.LearnApply {
		if tr := ls.get(); tr != nil {
			if replayed, ok := f4.Apply(cfgRun, b, basis.NewPairset(), tr); ok {
				result = replayed
			}
		}
		if result == nil {
			// A failed replay attempt above may have mutated b in
			// place; start over with fresh state for the full run.
			ht = hashtable.New(cfg.NVars, cfg.Ordering, cfg.Seed)
			if b, err = seedBasis(ht, fld, input); err != nil {
				return primeOutcome{prime: p}
			}
			cfgRun.Ht = ht
		}
	}
	if result == nil {
		var learned *trace.ComputationTrace
		result, learned, _ = f4.Run(cfgRun, b, basis.NewPairset())
		if cfg.LearnApply {
			ls.setIfAbsent(learned)
		}
	}
	std := result.Standardize(ht, fld)

	polys := make([]IntegerPoly, std.NFilled())
	for i := 0; i < std.NFilled(); i++ {
		monoms := append([][]uint32(nil), expsOf(ht, std.Monoms[i])...)
		coeffs := make([]*big.Int, len(std.Coeffs[i]))
		for k, c := range std.Coeffs[i] {
			coeffs[k] = new(big.Int).SetUint64(uint64(c))
		}
		polys[i] = IntegerPoly{Monoms: monoms, Coeffs: coeffs}
	}

	return primeOutcome{prime: p, shape: ShapeOf(std, ht), polys: polys}
}

// seedBasis inserts input's monomials into ht and adds each polynomial
// to a fresh Basis, reducing coefficients into fld. A polynomial whose
// leading coefficient vanished mod fld's characteristic is dropped:
// that prime turned out unlucky, and the resulting shape mismatch
// against the majority vote discards the whole outcome.
func seedBasis(ht *hashtable.Table, fld *field.Prime, input []IntegerPoly) (*basis.Basis, error) {
	b := basis.New()
	for _, poly := range input {
		monoms := make([]hashtable.MonomId, len(poly.Monoms))
		coeffs := make([]field.Elem, len(poly.Coeffs))
		for i, exp := range poly.Monoms {
			id, err := ht.Insert(exp)
			if err != nil {
				return nil, err
			}
			monoms[i] = id
			coeffs[i] = fld.FromUint64(poly.Coeffs[i].Uint64())
		}
		if coeffs[0] == 0 {
			continue
		}
		b.Add(monoms, coeffs)
	}
	return b, nil
}

func expsOf(ht *hashtable.Table, ids []hashtable.MonomId) [][]uint32 {
	out := make([][]uint32, len(ids))
	for i, id := range ids {
		out[i] = append([]uint32(nil), ht.Exp(id)...)
	}
	return out
}

// combineBases CRT-combines two per-prime bases that are already
// known to share a leading-monomial shape, position by position.
func combineBases(oldPolys []IntegerPoly, oldModulus *big.Int, newPolys []IntegerPoly, p *big.Int) []IntegerPoly {
	out := make([]IntegerPoly, len(oldPolys))
	for i := range oldPolys {
		n := len(oldPolys[i].Coeffs)
		if i >= len(newPolys) || len(newPolys[i].Coeffs) != n {
			out[i] = oldPolys[i]
			continue
		}
		combined, _ := CombineCoefficientwise(oldPolys[i].Coeffs, oldModulus, newPolys[i].Coeffs, p)
		out[i] = IntegerPoly{Monoms: oldPolys[i].Monoms, Coeffs: combined}
	}
	return out
}

// tryReconstruct attempts rational reconstruction of every
// coefficient; it only reports success if every coefficient
// reconstructs within bound. Per-coefficient denominators need not
// agree: each polynomial's numerators are rescaled to the LCM of its
// own coefficients' denominators, so the result carries one shared
// denominator per polynomial rather than requiring an integral basis.
func tryReconstruct(polys []IntegerPoly, modulus *big.Int) ([]RationalPoly, bool) {
	bound := Bound(modulus)
	out := make([]RationalPoly, len(polys))
	for i, poly := range polys {
		ns := make([]*big.Int, len(poly.Coeffs))
		ds := make([]*big.Int, len(poly.Coeffs))
		den := big.NewInt(1)
		for k, c := range poly.Coeffs {
			n, d, ok := Reconstruct(c, modulus, bound)
			if !ok {
				return nil, false
			}
			ns[k] = n
			ds[k] = d
			den = lcm(den, d)
		}
		coeffs := make([]*big.Int, len(ns))
		for k := range ns {
			scale := new(big.Int).Div(den, ds[k])
			coeffs[k] = new(big.Int).Mul(ns[k], scale)
		}
		out[i] = RationalPoly{Monoms: poly.Monoms, Coeffs: coeffs, Den: den}
	}
	return out, true
}
