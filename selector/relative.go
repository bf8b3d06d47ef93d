package selector

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// RelativeFitness holds each individual's margin above the cell floor and their sum.
// Scale is the power of two the margins were multiplied by; it is 1 unless the
// margins or their sum would overflow float64.
type RelativeFitness struct {
	Total         float64
	PerIndividual []float64
	Scale         float64
}

// Relative shifts every fitness in cell by the floor chosen by baseline.
// It panics on an empty cell.
//
// Finite fitness values can still have a margin or a sum above
// math.MaxFloat64, e.g. [-1e308, 1e308]. In that case every margin is halved
// until the total is finite again. Halving is exact, so the worst individual
// keeps a margin of exactly 0 and linear selection probabilities are unchanged.
// Infinite fitness values are saturated to ±math.MaxFloat64 first.
func Relative[I Individual](cell []I, baseline BaselinePolicy) RelativeFitness {
	if len(cell) == 0 {
		panic("BUG: relative fitness of an empty cell")
	}

	fs := fitnesses(cell)
	for i, f := range fs {
		fs[i] = max(-math.MaxFloat64, min(f, math.MaxFloat64))
	}
	floor := baseline.floor(fs)
	per := make([]float64, len(fs))
	for scale := 1.0; ; scale /= 2 {
		copy(per, fs)
		if scale != 1 {
			floats.Scale(scale, per)
		}
		floats.AddConst(-floor*scale, per)
		total := floats.Sum(per)
		if !math.IsInf(total, 0) {
			return RelativeFitness{Total: total, PerIndividual: per, Scale: scale}
		}
	}
}

func (b BaselinePolicy) floor(fs []float64) float64 {
	least := floats.Min(fs)
	switch b {
	case BaselineMin:
		return least
	case BaselineLegacy:
		return min(1, least)
	case BaselineZeroClamped:
		return min(0, least)
	default:
		panic(fmt.Sprintf("BUG: unknown baseline policy %d", b))
	}
}
