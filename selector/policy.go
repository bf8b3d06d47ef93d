package selector

import (
	"errors"
	"fmt"

	"github.com/sw965/omw/encoding/jsonx"
)

// Mode chooses how relative fitness is turned into selection weights.
type Mode int

const (
	ModeLinear Mode = iota
	ModeExponential
)

var modeNames = map[Mode]string{
	ModeLinear:      "linear",
	ModeExponential: "exponential",
}

// BaselinePolicy chooses the floor subtracted by Relative.
type BaselinePolicy int

const (
	// BaselineMin uses the worst fitness of the cell, so the worst individual
	// always has relative fitness 0.
	BaselineMin BaselinePolicy = iota
	// BaselineLegacy seeds the minimum with 1, i.e. min(1, worst). Cells whose
	// worst fitness exceeds 1 get a floor of 1 and no zero entry.
	BaselineLegacy
	// BaselineZeroClamped uses min(0, worst).
	BaselineZeroClamped
)

var baselineNames = map[BaselinePolicy]string{
	BaselineMin:         "min",
	BaselineLegacy:      "legacy",
	BaselineZeroClamped: "zero-clamped",
}

// BestPolicy chooses the initial running best of BestIndex.
type BestPolicy int

const (
	// BestMax starts from -Inf and finds the true maximum.
	BestMax BestPolicy = iota
	// BestLegacy starts from (0, 0).
	BestLegacy
)

var bestNames = map[BestPolicy]string{
	BestMax:    "max",
	BestLegacy: "legacy",
}

func (m Mode) String() string {
	return enumString(modeNames, m)
}

func (m Mode) MarshalText() ([]byte, error) {
	return enumMarshal(modeNames, m)
}

func (m *Mode) UnmarshalText(text []byte) error {
	return enumUnmarshal(modeNames, m, text)
}

func (b BaselinePolicy) String() string {
	return enumString(baselineNames, b)
}

func (b BaselinePolicy) MarshalText() ([]byte, error) {
	return enumMarshal(baselineNames, b)
}

func (b *BaselinePolicy) UnmarshalText(text []byte) error {
	return enumUnmarshal(baselineNames, b, text)
}

func (b BestPolicy) String() string {
	return enumString(bestNames, b)
}

func (b BestPolicy) MarshalText() ([]byte, error) {
	return enumMarshal(bestNames, b)
}

func (b *BestPolicy) UnmarshalText(text []byte) error {
	return enumUnmarshal(bestNames, b, text)
}

// ParseMode parses the text form of a Mode ("linear" or "exponential").
func ParseMode(s string) (Mode, error) {
	var m Mode
	err := m.UnmarshalText([]byte(s))
	return m, err
}

func enumString[E ~int](names map[E]string, e E) string {
	if s, ok := names[e]; ok {
		return s
	}
	return fmt.Sprintf("%T(%d)", e, e)
}

func enumMarshal[E ~int](names map[E]string, e E) ([]byte, error) {
	s, ok := names[e]
	if !ok {
		return nil, fmt.Errorf("unknown %T: %d", e, e)
	}
	return []byte(s), nil
}

func enumUnmarshal[E ~int](names map[E]string, e *E, text []byte) error {
	for k, v := range names {
		if v == string(text) {
			*e = k
			return nil
		}
	}
	return fmt.Errorf("unknown %T: %q", *e, text)
}

// Policy is the full configuration of a Selector. The zero value equals
// DefaultPolicy.
type Policy struct {
	Mode     Mode           `json:"mode"`
	Baseline BaselinePolicy `json:"baseline"`
	Best     BestPolicy     `json:"best"`
}

// DefaultPolicy uses linear weights over a true-minimum floor and a true-maximum best.
func DefaultPolicy() Policy {
	return Policy{Mode: ModeLinear, Baseline: BaselineMin, Best: BestMax}
}

// LegacyPolicy reproduces the historical behavior: floor seeded with 1 and
// best seeded with 0.
func LegacyPolicy() Policy {
	return Policy{Mode: ModeLinear, Baseline: BaselineLegacy, Best: BestLegacy}
}

// Validate reports every field holding an unknown enum value.
func (p Policy) Validate() error {
	var errs []error
	if _, ok := modeNames[p.Mode]; !ok {
		errs = append(errs, fmt.Errorf("invalid mode: %d", p.Mode))
	}
	if _, ok := baselineNames[p.Baseline]; !ok {
		errs = append(errs, fmt.Errorf("invalid baseline policy: %d", p.Baseline))
	}
	if _, ok := bestNames[p.Best]; !ok {
		errs = append(errs, fmt.Errorf("invalid best policy: %d", p.Best))
	}
	return errors.Join(errs...)
}

// LoadPolicyJSON reads a Policy from a JSON file and validates it.
func LoadPolicyJSON(path string) (Policy, error) {
	p, err := jsonx.Load[Policy](path)
	if err != nil {
		return Policy{}, fmt.Errorf("load selection policy %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, fmt.Errorf("load selection policy %s: %w", path, err)
	}
	return p, nil
}

// SaveJSON writes a valid Policy to path as JSON.
func (p Policy) SaveJSON(path string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return jsonx.Save[Policy](p, path)
}
