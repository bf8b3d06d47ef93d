package selector_test

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/sw965/deepgrid/selector"
	"gonum.org/v1/gonum/floats"
)

func TestRelative(t *testing.T) {
	tests := []struct {
		name     string
		fs       []float64
		baseline selector.BaselinePolicy
		want     []float64
		total    float64
	}{
		{"min/positive", []float64{3, 7, 2}, selector.BaselineMin, []float64{1, 5, 0}, 6},
		{"min/negative", []float64{-3, -1, -5}, selector.BaselineMin, []float64{2, 4, 0}, 6},
		{"min/single", []float64{4}, selector.BaselineMin, []float64{0}, 0},
		{"legacy/positive", []float64{3, 7, 2}, selector.BaselineLegacy, []float64{2, 6, 1}, 9},
		{"legacy/negative", []float64{-3, -1, -5}, selector.BaselineLegacy, []float64{2, 4, 0}, 6},
		{"legacy/straddling", []float64{0.5, 2}, selector.BaselineLegacy, []float64{0, 1.5}, 1.5},
		{"zero-clamped/positive", []float64{3, 7, 2}, selector.BaselineZeroClamped, []float64{3, 7, 2}, 12},
		{"zero-clamped/negative", []float64{-3, -1, -5}, selector.BaselineZeroClamped, []float64{2, 4, 0}, 6},
		// Margins that overflow float64 are halved.
		{"min/overflowing margin", []float64{-1e308, 1e308}, selector.BaselineMin, []float64{0, 1e308}, 1e308},
		{"min/overflowing total", []float64{1e308, 1e308, -1}, selector.BaselineMin, []float64{5e307, 5e307, 0}, 1e308},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := selector.Relative(selector.Scalars(tc.fs), tc.baseline)
			if !slices.Equal(got.PerIndividual, tc.want) {
				t.Errorf("PerIndividual = %v, want %v", got.PerIndividual, tc.want)
			}
			if got.Total != tc.total {
				t.Errorf("Total = %v, want %v", got.Total, tc.total)
			}
		})
	}
}

func TestRelativeInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 500; trial++ {
		n := 1 + rng.IntN(20)
		fs := make([]float64, n)
		for i := range fs {
			fs[i] = (rng.Float64() - 0.5) * 200
		}

		rf := selector.Relative(selector.Scalars(fs), selector.BaselineMin)
		if len(rf.PerIndividual) != n {
			t.Fatalf("len(PerIndividual) = %d, want %d", len(rf.PerIndividual), n)
		}
		if m := floats.Min(rf.PerIndividual); m != 0 {
			t.Fatalf("min relative fitness = %v, want 0 (fitness %v)", m, fs)
		}
		sum := 0.0
		for _, v := range rf.PerIndividual {
			if v < 0 {
				t.Fatalf("negative relative fitness %v (fitness %v)", v, fs)
			}
			sum += v
		}
		if !floats.EqualWithinAbsOrRel(sum, rf.Total, 1e-9, 1e-12) {
			t.Fatalf("Total = %v, sum = %v", rf.Total, sum)
		}
	}
}

func TestRelativeScale(t *testing.T) {
	tests := []struct {
		name  string
		fs    []float64
		scale float64
	}{
		{"finite", []float64{3, 7, 2}, 1},
		{"overflowing margin", []float64{-1e308, 1e308}, 0.5},
		{"overflowing total", []float64{1e308, 1e308, 1e308, -1e308}, 0.25},
		{"infinite fitness", []float64{math.Inf(-1), 0, math.Inf(1)}, 0.25},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rf := selector.Relative(selector.Scalars(tc.fs), selector.BaselineMin)
			if rf.Scale != tc.scale {
				t.Errorf("Scale = %v, want %v", rf.Scale, tc.scale)
			}
			if math.IsInf(rf.Total, 0) || math.IsNaN(rf.Total) {
				t.Fatalf("Total = %v, want finite", rf.Total)
			}
			if m := floats.Min(rf.PerIndividual); m != 0 {
				t.Errorf("min relative fitness = %v, want 0", m)
			}
		})
	}
}

func TestRelativeFloat32Cell(t *testing.T) {
	cell := selector.Scalars([]float32{-1.5, 0.5, -0.5})
	rf := selector.Relative(cell, selector.BaselineMin)
	want := []float64{0, 2, 1}
	if !slices.Equal(rf.PerIndividual, want) {
		t.Errorf("PerIndividual = %v, want %v", rf.PerIndividual, want)
	}
}

func TestRelativePanics(t *testing.T) {
	tests := []struct {
		name string
		cell []selector.Scalar
	}{
		{"empty", nil},
		{"nan", selector.Scalars([]float64{1, math.NaN()})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			selector.Relative(tc.cell, selector.BaselineMin)
		})
	}
}

func TestRelativeDoesNotAliasCell(t *testing.T) {
	cell := selector.Scalars([]float64{2, 4})
	rf := selector.Relative(cell, selector.BaselineMin)
	rf.PerIndividual[0] = 100
	if cell[0] != 2 {
		t.Errorf("cell mutated through result: %v", cell)
	}
}
