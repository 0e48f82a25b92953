package matrix

import "groebner/field"

// Mode selects what the reducer is trying to accomplish; all four
// modes share the same inner elimination loop.
type Mode int

const (
	ModeDeterministic Mode = iota
	ModeRandomized
	ModeNormalForm
	ModeIsGroebner
)

// Result is the outcome of reducing a Matrix's lower half against its
// upper half (and, for ModeDeterministic/ModeRandomized, against
// newly-promoted lower rows too).
type Result struct {
	// NewPivots are rows that became new pivots (promoted to upper);
	// their Cols[0] was not an upper pivot column when reduction
	// reached them.
	NewPivots []Row
	// Residues are reduced rows for ModeNormalForm (always returned,
	// zero or not): the caller wants every residue, not just pivots.
	Residues []Row
	// IsGroebner is only meaningful for ModeIsGroebner.
	IsGroebner bool
	// UsefulRows are the indices, within the lower half passed to
	// Reduce, of rows that yielded a non-zero pivot (ModeDeterministic
	// and ModeRandomized only); a trace replay compares its own pivot
	// count against their number.
	UsefulRows []int
}

// Reduce runs row-echelon elimination. f is the coefficient field; rng
// supplies random non-zero combiners for ModeRandomized (nil is fine
// for the other modes). ModeRandomized is refused (falls back to
// ModeDeterministic) when char(F) < 500.
func Reduce(m *Matrix, f *field.Prime, mode Mode, rngCombine func(n int) []field.Elem) Result {
	if mode == ModeRandomized && f.Char() < 500 {
		mode = ModeDeterministic
	}

	ncols := len(m.Columns)
	pivotOf := make([]int, ncols) // column -> index into upper (1-based), 0 = none
	for ui, row := range m.Upper {
		if len(row.Cols) == 0 {
			continue
		}
		pivotOf[row.Cols[0]] = ui + 1
	}

	lower := m.Lower
	if mode == ModeRandomized {
		lower = combineRows(lower, ncols, f, rngCombine)
	}

	var result Result
	upper := append([]Row(nil), m.Upper...)

	for li, row := range lower {
		dense := expand(row, ncols, f)
		srcRow := row.FromBasis

		for {
			lead := leadingCol(dense)
			if lead < 0 {
				break
			}
			ui := pivotOf[lead]
			if ui == 0 {
				break
			}
			pivotRow := upper[ui-1]
			eliminate(dense, pivotRow, f)
		}

		lead := leadingCol(dense)
		reduced := collapse(dense, ncols)
		reduced.FromBasis = srcRow

		switch mode {
		case ModeIsGroebner:
			if lead >= 0 {
				return Result{IsGroebner: false}
			}
		case ModeNormalForm:
			result.Residues = append(result.Residues, reduced)
		default: // deterministic / randomized
			if lead < 0 {
				continue // reduces to zero, dropped
			}
			pivotOf[lead] = len(upper) + 1
			upper = append(upper, reduced)
			result.NewPivots = append(result.NewPivots, reduced)
			result.UsefulRows = append(result.UsefulRows, li)
		}
	}

	if mode == ModeIsGroebner {
		result.IsGroebner = true
	}
	return result
}

func leadingCol(dense []field.Elem) int {
	for i, v := range dense {
		if !field.IsZero(v) {
			return i
		}
	}
	return -1
}

func expand(r Row, ncols int, f *field.Prime) []field.Elem {
	dense := make([]field.Elem, ncols)
	for k, c := range r.Cols {
		dense[c] = f.Add(dense[c], r.Coeffs[k])
	}
	return dense
}

func collapse(dense []field.Elem, ncols int) Row {
	var cols []int
	var coeffs []field.Elem
	for c := 0; c < ncols; c++ {
		if !field.IsZero(dense[c]) {
			cols = append(cols, c)
			coeffs = append(coeffs, dense[c])
		}
	}
	return Row{Cols: cols, Coeffs: coeffs, FromBasis: -1}
}

// eliminate subtracts (dense[pivot.Cols[0]] / pivot.Coeffs[0]) * pivot
// from dense, using the Shoup fast-multiply-by-fixed-scalar path since
// every non-zero entry of pivot gets scaled by the same ratio.
func eliminate(dense []field.Elem, pivot Row, f *field.Prime) {
	lead := pivot.Cols[0]
	ratio := f.Mul(dense[lead], f.Inv(pivot.Coeffs[0]))
	if field.IsZero(ratio) {
		return
	}
	shoup := f.ShoupPrecompute(ratio)
	for k, c := range pivot.Cols {
		dense[c] = f.Sub(dense[c], f.MulShoup(pivot.Coeffs[k], ratio, shoup))
	}
}

// combineRows implements the randomized backend's row-batching: every
// output row is a random non-zero linear combination of a batch of
// input rows sharing the same leading column region. Batches here are
// taken in fixed groups of up to 4 to keep the implementation simple;
// correctness only needs the row count reduced before elimination, not
// a specific batch size.
func combineRows(rows []Row, ncols int, f *field.Prime, rngCombine func(n int) []field.Elem) []Row {
	const batch = 4
	var out []Row
	for start := 0; start < len(rows); start += batch {
		end := start + batch
		if end > len(rows) {
			end = len(rows)
		}
		group := rows[start:end]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		coeffs := rngCombine(len(group))
		dense := make([]field.Elem, ncols)
		for gi, r := range group {
			scalar := coeffs[gi]
			if field.IsZero(scalar) {
				continue
			}
			for k, c := range r.Cols {
				dense[c] = f.Add(dense[c], f.Mul(scalar, r.Coeffs[k]))
			}
		}
		row := collapse(dense, ncols)
		row.FromBasis = -1
		out = append(out, row)
	}
	return out
}
