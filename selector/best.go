package selector

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// BestIndex returns the index of the individual with the highest fitness.
// Ties keep the earliest index. An empty cell yields 0, so callers must check
// the size themselves. Under BestLegacy the running best starts at zero and
// a cell whose fitness values are all negative always yields 0.
func BestIndex[I Individual](cell []I, best BestPolicy) int {
	if len(cell) == 0 {
		return 0
	}

	fs := fitnesses(cell)
	switch best {
	case BestMax:
		return floats.MaxIdx(fs)
	case BestLegacy:
		bestFitness := 0.0
		idx := 0
		for i, f := range fs {
			if f > bestFitness {
				bestFitness = f
				idx = i
			}
		}
		return idx
	default:
		panic(fmt.Sprintf("BUG: unknown best policy %d", best))
	}
}
