package selector

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/sw965/deepgrid/mathx/randx"
	"github.com/sw965/omw/parallel"
)

// Wheel is the signature shared by Proportionate and ExponentialProportionate.
type Wheel func(size int, relative []float64, total float64, rng randx.Source) int

// Selector binds a Policy to the selection operations of one cell type.
// It holds no per-call state and may be shared between goroutines as long as
// each goroutine draws from its own Source.
type Selector[I Individual] struct {
	policy Policy
	wheel  Wheel
	logger *slog.Logger
}

type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger reports degenerate selection branches at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func NewSelector[I Individual](policy Policy, opts ...Option) (*Selector[I], error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("new selector: %w", err)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	var wheel Wheel
	switch policy.Mode {
	case ModeLinear:
		wheel = Proportionate
	case ModeExponential:
		wheel = ExponentialProportionate
	}

	return &Selector[I]{
		policy: policy,
		wheel:  wheel,
		logger: o.logger.With("mode", policy.Mode.String()),
	}, nil
}

func (s *Selector[I]) Policy() Policy {
	return s.policy
}

func (s *Selector[I]) Relative(cell []I) RelativeFitness {
	return Relative(cell, s.policy.Baseline)
}

// Select draws the index of one parent from cell. It panics on an empty cell.
func (s *Selector[I]) Select(cell []I, rng randx.Source) int {
	rf := s.Relative(cell)
	if rf.Total == 0 && len(cell) > 1 {
		s.logger.Debug("all individuals on the cell floor, drawing uniformly", "size", len(cell))
	}
	return s.wheel(len(cell), rf.PerIndividual, rf.Total, rng)
}

// Best returns the index of the champion of cell, or 0 for an empty cell.
func (s *Selector[I]) Best(cell []I) int {
	return BestIndex(cell, s.policy.Best)
}

// SelectCells draws one index per cell, spreading the cells over len(rngs)
// workers. Worker w draws only from rngs[w].
func (s *Selector[I]) SelectCells(cells [][]I, rngs []*rand.Rand) ([]int, error) {
	p := len(rngs)
	if p == 0 {
		return nil, fmt.Errorf("at least one random source is required")
	}
	for i, rng := range rngs {
		if rng == nil {
			return nil, fmt.Errorf("random source %d is nil", i)
		}
	}
	for i, cell := range cells {
		if len(cell) == 0 {
			return nil, fmt.Errorf("cell %d is empty", i)
		}
	}

	idxs := make([]int, len(cells))
	if len(cells) == 0 {
		return idxs, nil
	}
	err := parallel.For(len(cells), p, func(workerId, idx int) error {
		idxs[idx] = s.Select(cells[idx], rngs[workerId])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idxs, nil
}
