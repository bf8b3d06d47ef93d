// Package randx provides the random-source capability consumed by the selectors.
//
// Package randx はセレクタが利用する乱数源を提供します。
package randx

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/seehuhn/mt19937"
	"github.com/sw965/omw/mathx/randx"
)

// Source is the minimal random capability a selection call draws from.
// *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// Float64n returns a uniform value in [0, bound).
func Float64n(src Source, bound float64) float64 {
	return src.Float64() * bound
}

// Locked guards a single generator shared between goroutines.
type Locked struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewLocked(rng *rand.Rand) *Locked {
	if rng == nil {
		panic("BUG: NewLocked requires a non-nil generator")
	}
	return &Locked{rng: rng}
}

func (l *Locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.IntN(n)
}

func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

// NewMT19937 returns a generator driven by a seeded Mersenne Twister, for
// runs that must be reproducible against MT19937-seeded experiments.
func NewMT19937(seed int64) *rand.Rand {
	mt := mt19937.New()
	mt.Seed(seed)
	return rand.New(mt)
}

// NewWorkers returns p independent generators, one per worker goroutine.
func NewWorkers(p int) ([]*rand.Rand, error) {
	if p <= 0 {
		return nil, fmt.Errorf("worker count must be positive: p=%d", p)
	}
	return randx.NewPCGs(p), nil
}

// NewSeededWorkers returns p PCG generators derived deterministically from seed.
func NewSeededWorkers(p int, seed uint64) ([]*rand.Rand, error) {
	if p <= 0 {
		return nil, fmt.Errorf("worker count must be positive: p=%d", p)
	}
	rngs := make([]*rand.Rand, p)
	for i := range rngs {
		rngs[i] = rand.New(rand.NewPCG(seed, uint64(i)))
	}
	return rngs, nil
}
