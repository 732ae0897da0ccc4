package core

import (
	"testing"

	"github.com/25smoking/aggsynth/internal/graph"
	"github.com/stretchr/testify/require"
)

var uniform = graph.Stats{Clicks: 10, Sales: 2, Count: 100, Prob: 1}

// valueOf makes feature values reveal their attribute: attribute a, value v
// encodes as a*10+v.
func valueOf(attr, v int) float64 { return float64(attr*10 + v) }

// crossGraph connects every pair of nodes with different attributes.
// Nodes listed in isolated get no edges at all.
func crossGraph(t *testing.T, attrs, values int, isolated ...string) *graph.Graph {
	t.Helper()
	g := graph.New()
	for a := 0; a < attrs; a++ {
		for v := 0; v < values; v++ {
			require.NoError(t, g.AddNode(graph.Encode(a, valueOf(a, v)), uniform))
		}
	}

	skip := map[string]bool{}
	for _, id := range isolated {
		skip[id] = true
	}
	ids := g.NodeIDs()
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			na, _ := g.Node(a)
			nb, _ := g.Node(b)
			if na.Attribute == nb.Attribute || skip[a] || skip[b] {
				continue
			}
			require.NoError(t, g.AddEdge(a, b, uniform))
		}
	}
	return g
}

func newTestGenerator(t *testing.T, g *graph.Graph, noAttributes int, opts ...Option) *Generator {
	t.Helper()
	opts = append([]Option{WithSeed(1)}, opts...)
	gen, err := NewGenerator(g, GeneratorConfig{
		NoAttributes: noAttributes,
		Eps:          DefaultEps,
		Normalize:    Ratio,
	}, opts...)
	require.NoError(t, err)
	return gen
}

func withMaxAttempts(n int) Option {
	return func(g *Generator) { g.cfg.MaxAttempts = n }
}
