// Package sampler draws elements at random in proportion to their weights.
package sampler

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// ErrInvalidWeights is returned when weights are negative, not finite, or
// sum to zero, so no probability distribution can be formed.
var ErrInvalidWeights = errors.New("sampler: invalid weights")

// Rand is the source draws are taken from. *rand.Rand satisfies it.
type Rand = rand.Source

// WeightFunc returns the unnormalized weight of a candidate.
type WeightFunc[T any] func(T) float64

// SampleWeighted picks one candidate with probability weight(c)/sum(weights).
// The weight source is explicit so callers decide whether weights come from
// the candidates themselves or from a wider table. An empty candidate list
// yields ok == false without drawing.
func SampleWeighted[T any](rng Rand, candidates []T, weight WeightFunc[T]) (chosen T, ok bool, err error) {
	if len(candidates) == 0 {
		return chosen, false, nil
	}

	weights, total, err := collect(candidates, weight)
	if err != nil {
		return chosen, false, err
	}

	// Only positive weights enter the sampler, so a zero-weight candidate
	// can never be drawn.
	index := make([]int, 0, len(weights))
	positive := make([]float64, 0, len(weights))
	for i, w := range weights {
		if w > 0 {
			index = append(index, i)
			positive = append(positive, w)
		}
	}

	i, ok := sampleuv.NewWeighted(positive, rng).Take()
	if !ok {
		return chosen, false, fmt.Errorf("%w: total weight %v too small to draw from", ErrInvalidWeights, total)
	}
	return candidates[index[i]], true, nil
}

// Normalize returns weight(c) for each candidate divided by their sum.
func Normalize[T any](candidates []T, weight WeightFunc[T]) ([]float64, error) {
	probs, total, err := collect(candidates, weight)
	if err != nil {
		return nil, err
	}
	floats.Scale(1/total, probs)
	return probs, nil
}

func collect[T any](candidates []T, weight WeightFunc[T]) ([]float64, float64, error) {
	weights := make([]float64, len(candidates))
	for i, c := range candidates {
		w := weight(c)
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, 0, fmt.Errorf("%w: weight %v at index %d", ErrInvalidWeights, w, i)
		}
		weights[i] = w
	}
	total := floats.Sum(weights)
	if total == 0 || math.IsInf(total, 0) {
		return nil, 0, fmt.Errorf("%w: weights sum to %v", ErrInvalidWeights, total)
	}
	return weights, total, nil
}
