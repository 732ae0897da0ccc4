package core

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidConfig is returned by NewGenerator for unusable settings.
var ErrInvalidConfig = errors.New("core: invalid generator config")

// DefaultEps keeps normalized rates finite for zero counts.
const DefaultEps = 1e-8

// NormalizeFunc turns a (numerator, denominator) counter pair into a rate.
type NormalizeFunc func(numerator, denominator, eps float64) float64

// Ratio is numerator / (denominator + eps).
func Ratio(numerator, denominator, eps float64) float64 {
	return numerator / (denominator + eps)
}

// Clipped is Ratio clamped to [0, 1].
func Clipped(numerator, denominator, eps float64) float64 {
	return math.Min(1, math.Max(0, Ratio(numerator, denominator, eps)))
}

var normalizers = map[string]NormalizeFunc{
	"ratio":   Ratio,
	"clipped": Clipped,
}

// LookupNormalizer resolves a normalizer by name. The empty name is "ratio".
func LookupNormalizer(name string) (NormalizeFunc, error) {
	if name == "" {
		name = "ratio"
	}
	fn, ok := normalizers[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown normalizer %q (known: %v)", ErrInvalidConfig, name, NormalizerNames())
	}
	return fn, nil
}

func NormalizerNames() []string {
	names := make([]string, 0, len(normalizers))
	for name := range normalizers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GeneratorConfig is fixed for the lifetime of a Generator.
type GeneratorConfig struct {
	// NoAttributes is the number of distinct attribute slots every entry covers.
	NoAttributes int
	Eps          float64
	Normalize    NormalizeFunc
	// MaxAttempts bounds the restarts of GenerateEntry. Zero means unbounded.
	MaxAttempts int
}

// Validate checks the value ranges NewGenerator relies on.
func (c GeneratorConfig) Validate() error {
	if c.NoAttributes < 2 {
		return fmt.Errorf("%w: no_attributes must be at least 2, got %d", ErrInvalidConfig, c.NoAttributes)
	}
	if c.Normalize == nil {
		return fmt.Errorf("%w: normalize function is required", ErrInvalidConfig)
	}
	if c.Eps < 0 || math.IsNaN(c.Eps) {
		return fmt.Errorf("%w: eps must be non-negative, got %v", ErrInvalidConfig, c.Eps)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("%w: max_attempts must be non-negative, got %d", ErrInvalidConfig, c.MaxAttempts)
	}
	return nil
}
