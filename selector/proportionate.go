package selector

import (
	"fmt"
	"math"

	"github.com/sw965/deepgrid/mathx/randx"
	"github.com/sw965/omw/mathx"
)

// Proportionate draws one index with probability relative[i]/total
// (roulette-wheel selection).
//
// A single-individual cell returns 0 without drawing. A zero total means every
// individual sits on the cell floor, and the index is drawn uniformly.
// Otherwise r is drawn from [0, total) and the first index whose cumulative
// weight exceeds r wins. The walk never passes the last positive weight, so
// rounding in the cumulative sum can neither leave the cell nor land on a
// zero-weight individual.
//
// It panics when size, relative and total do not satisfy the contract of
// Relative: size >= 1, len(relative) == size, non-negative finite weights.
func Proportionate(size int, relative []float64, total float64, rng randx.Source) int {
	mustBeWheel(size, relative, total)
	if size == 1 {
		return 0
	}
	if total == 0 {
		return rng.IntN(size)
	}

	r := randx.Float64n(rng, total)
	last := lastPositive(relative)
	idx := 0
	value := relative[0]
	// Stops on the first cumulative weight strictly above r. The historical
	// walk (value < r, clamped to size-1) stops on ties at r instead, so
	// LegacyPolicy does not reproduce it when r lands exactly on a boundary.
	for value <= r && idx < last {
		idx++
		value += relative[idx]
	}
	return idx
}

// ExponentialProportionate is Proportionate with exponential weights: the
// cumulative product of exp(relative[i]) is walked against a draw from
// [0, exp(total)), so index k wins once exp(S_k) exceeds the draw, S_k being
// the prefix sum of relative. Index 0 therefore wins with probability
// exp(relative[0]-total) and index k>0 with exp(S_k-total)-exp(S_{k-1}-total).
//
// exp(total) overflows float64 for totals above ~709, so the walk runs in log
// space: with u uniform in [0,1), the condition exp(S_k) > u*exp(total)
// becomes S_k > total+log(u). No intermediate value can become Inf or NaN.
func ExponentialProportionate(size int, relative []float64, total float64, rng randx.Source) int {
	mustBeWheel(size, relative, total)
	if size == 1 {
		return 0
	}
	if total == 0 {
		return rng.IntN(size)
	}

	// log(0) = -Inf selects index 0, which matches a zero draw on the linear scale.
	threshold := total + math.Log(rng.Float64())
	last := lastPositive(relative)
	idx := 0
	prefix := relative[0]
	// Same boundary rule as Proportionate; the historical walk differs only
	// when exp(S_k) equals the draw exactly.
	for prefix <= threshold && idx < last {
		idx++
		prefix += relative[idx]
	}
	return idx
}

func lastPositive(relative []float64) int {
	for i := len(relative) - 1; i > 0; i-- {
		if relative[i] > 0 {
			return i
		}
	}
	return 0
}

func mustBeWheel(size int, relative []float64, total float64) {
	if size < 1 {
		panic(fmt.Sprintf("BUG: selection from a cell of size %d", size))
	}
	if len(relative) != size {
		panic(fmt.Sprintf("BUG: relative fitness length (%d) does not match cell size (%d)", len(relative), size))
	}
	if total < 0 || mathx.IsNaN(total) || mathx.IsInf(total, 0) {
		panic(fmt.Sprintf("BUG: invalid total fitness %.6g", total))
	}
	for i, v := range relative {
		if v < 0 || mathx.IsNaN(v) || mathx.IsInf(v, 0) {
			panic(fmt.Sprintf("BUG: invalid relative fitness %.6g at index %d", v, i))
		}
	}
}
