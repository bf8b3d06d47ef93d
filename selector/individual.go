// Package selector implements fitness-proportionate parent selection inside a
// single cell of a quality-diversity archive.
// A cell is borrowed read-only for the duration of one call; results are copies.
//
// Package selector は QD アーカイブの1セル内における適応度比例選択を提供します。
// セルは1回の呼び出しの間だけ読み取り専用で借用され、結果はコピーで返されます。
package selector

import (
	"fmt"

	"github.com/sw965/omw/mathx"
	"golang.org/x/exp/constraints"
)

// Individual is the only capability the selectors need from a candidate solution.
type Individual interface {
	Fitness() float64
}

// Scalar is a bare fitness value usable as an Individual.
type Scalar float64

func (s Scalar) Fitness() float64 {
	return float64(s)
}

// Scalars adapts a raw fitness slice to a cell.
func Scalars[F constraints.Float](fs []F) []Scalar {
	ss := make([]Scalar, len(fs))
	for i, f := range fs {
		ss[i] = Scalar(f)
	}
	return ss
}

func fitnesses[I Individual](cell []I) []float64 {
	fs := make([]float64, len(cell))
	for i, ind := range cell {
		f := ind.Fitness()
		if mathx.IsNaN(f) {
			panic(fmt.Sprintf("BUG: fitness of individual %d is NaN", i))
		}
		fs[i] = f
	}
	return fs
}
