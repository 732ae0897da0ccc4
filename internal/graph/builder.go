package graph

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrInvalidOptions is returned by BuildSynthetic for out-of-range options.
var ErrInvalidOptions = errors.New("graph: invalid synthetic options")

// SyntheticOptions describes a random attributed graph: Attributes slots with
// Values values each. Every pair of nodes from different slots is connected
// with probability Density.
type SyntheticOptions struct {
	Attributes int     `yaml:"attributes"`
	Values     int     `yaml:"values"`
	Density    float64 `yaml:"density"`
	Seed       int64   `yaml:"seed"`
}

// BuildSynthetic constructs a random graph with plausible click/sale counters.
// Node and edge weights are proportional to their observation counts.
func BuildSynthetic(opts SyntheticOptions) (*Graph, error) {
	if opts.Attributes < 1 || opts.Values < 1 {
		return nil, fmt.Errorf("%w: need at least one attribute and one value, got %d/%d",
			ErrInvalidOptions, opts.Attributes, opts.Values)
	}
	if opts.Density < 0 || opts.Density > 1 || math.IsNaN(opts.Density) {
		return nil, fmt.Errorf("%w: density %v outside [0, 1]", ErrInvalidOptions, opts.Density)
	}

	rng := rand.New(rand.NewPCG(uint64(opts.Seed), 0))
	g := New()

	// 1. Nodes
	ctr := make(map[string]float64)
	for a := 0; a < opts.Attributes; a++ {
		for v := 0; v < opts.Values; v++ {
			id := Encode(a, float64(v))
			count := float64(100 + rng.IntN(900))
			rate := rng.Float64() * 0.2
			ctr[id] = rate
			if err := g.AddNode(id, observe(rng, count, rate)); err != nil {
				return nil, err
			}
		}
	}

	// 2. Cross-attribute edges
	ids := g.NodeIDs()
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			if g.nodes[a].Attribute == g.nodes[b].Attribute {
				continue
			}
			if rng.Float64() >= opts.Density {
				continue
			}
			upper := math.Min(g.nodes[a].Stats.Count, g.nodes[b].Stats.Count)
			count := math.Max(1, math.Floor(upper*(0.1+0.9*rng.Float64())))
			rate := (ctr[a] + ctr[b]) / 2
			if err := g.AddEdge(a, b, observe(rng, count, rate)); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

func observe(rng *rand.Rand, count, ctr float64) Stats {
	clicks := math.Round(count * ctr)
	sales := math.Round(clicks * rng.Float64() * 0.3)
	return Stats{Clicks: clicks, Sales: sales, Count: count, Prob: count}
}
