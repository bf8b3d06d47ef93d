// Package ga is a minimal generational engine whose parents are drawn by a
// selector.Selector, treating the whole population as one cell.
package ga

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/sw965/deepgrid/selector"
	"github.com/sw965/omw/slicesx"
)

type Individual[T any] []T
type Population[T any] []Individual[T]

type Evaluator[T any] func(Individual[T]) float64

// Scored is an evaluated individual; a slice of them is a selector cell.
type Scored[T any] struct {
	Individual Individual[T]
	Value      float64
}

func (s Scored[T]) Fitness() float64 {
	return s.Value
}

type CrossOperator[T any] func(Individual[T], Individual[T], *rand.Rand) (Individual[T], Individual[T], error)

func UniformCrossOperator[T any](parent1, parent2 Individual[T], rng *rand.Rand) (Individual[T], Individual[T], error) {
	n := len(parent1)
	if n != len(parent2) {
		return nil, nil, fmt.Errorf("parent lengths differ: %d != %d", n, len(parent2))
	}

	child1 := make(Individual[T], n)
	child2 := make(Individual[T], n)
	for i := range parent1 {
		if rng.Float64() < 0.5 {
			child1[i] = parent1[i]
			child2[i] = parent2[i]
		} else {
			child1[i] = parent2[i]
			child2[i] = parent1[i]
		}
	}
	return child1, child2, nil
}

type MutationOperator[T any] func(Individual[T], *rand.Rand) Individual[T]

type Engine[T any] struct {
	Evaluator        Evaluator[T]
	Selector         *selector.Selector[Scored[T]]
	CrossOperator    CrossOperator[T]
	MutationOperator MutationOperator[T]
	CrossPercent     float64
	MutationPercent  float64
	// EliteNum individuals are copied unchanged into the next generation.
	// The first of them is always the cell champion reported by Selector.Best.
	EliteNum int
}

func (e *Engine[T]) validate(n int) error {
	if e.Evaluator == nil {
		return fmt.Errorf("evaluator is required")
	}
	if e.Selector == nil {
		return fmt.Errorf("selector is required")
	}
	if e.CrossPercent > 0 && e.CrossOperator == nil {
		return fmt.Errorf("cross operator is required when CrossPercent > 0")
	}
	if e.MutationPercent > 0 && e.MutationOperator == nil {
		return fmt.Errorf("mutation operator is required when MutationPercent > 0")
	}
	if e.CrossPercent < 0 || e.MutationPercent < 0 || e.CrossPercent+e.MutationPercent > 1 {
		return fmt.Errorf("invalid operator rates: cross=%.3g mutation=%.3g", e.CrossPercent, e.MutationPercent)
	}
	if n == 0 {
		return fmt.Errorf("initial population must not be empty")
	}
	if e.EliteNum < 0 || e.EliteNum > n {
		return fmt.Errorf("invalid elite count: %d (population %d)", e.EliteNum, n)
	}
	return nil
}

func (e *Engine[T]) Evaluate(pop Population[T]) []Scored[T] {
	cell := make([]Scored[T], len(pop))
	for i, ind := range pop {
		cell[i] = Scored[T]{Individual: ind, Value: e.Evaluator(ind)}
	}
	return cell
}

func values[T any](cell []Scored[T]) []float64 {
	vs := make([]float64, len(cell))
	for i, s := range cell {
		vs[i] = s.Value
	}
	return vs
}

func (e *Engine[T]) elites(cell []Scored[T]) Population[T] {
	if e.EliteNum == 0 {
		return nil
	}
	champion := e.Selector.Best(cell)
	elites := make(Population[T], 0, e.EliteNum)
	elites = append(elites, slices.Clone(cell[champion].Individual))

	order := slicesx.Argsort(values(cell))
	for i := len(order) - 1; i >= 0 && len(elites) < e.EliteNum; i-- {
		if order[i] == champion {
			continue
		}
		elites = append(elites, slices.Clone(cell[order[i]].Individual))
	}
	return elites
}

// Run evolves init for the given number of generations and returns the final
// population ordered from best to worst.
func (e *Engine[T]) Run(init Population[T], generation int, rng *rand.Rand) (Population[T], error) {
	n := len(init)
	if err := e.validate(n); err != nil {
		return nil, err
	}
	current := init

	for g := 0; g < generation; g++ {
		cell := e.Evaluate(current)
		next := e.elites(cell)

		for len(next) < n {
			t := rng.Float64()
			switch {
			case t < e.CrossPercent:
				parent1 := cell[e.Selector.Select(cell, rng)].Individual
				parent2 := cell[e.Selector.Select(cell, rng)].Individual
				child1, child2, err := e.CrossOperator(parent1, parent2, rng)
				if err != nil {
					return nil, fmt.Errorf("generation %d: %w", g, err)
				}
				next = append(next, child1)
				if len(next) < n {
					next = append(next, child2)
				}
			case t < e.CrossPercent+e.MutationPercent:
				parent := cell[e.Selector.Select(cell, rng)].Individual
				next = append(next, e.MutationOperator(parent, rng))
			default:
				parent := cell[e.Selector.Select(cell, rng)].Individual
				next = append(next, slices.Clone(parent))
			}
		}
		current = next
	}

	cell := e.Evaluate(current)
	order := slicesx.Argsort(values(cell))
	final := make(Population[T], 0, n)
	for i := len(order) - 1; i >= 0; i-- {
		final = append(final, cell[order[i]].Individual)
	}
	return final, nil
}
