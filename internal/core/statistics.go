package core

import (
	"errors"
	"fmt"

	"github.com/25smoking/aggsynth/internal/graph"
)

// ErrEmptyPath is returned when statistics are requested for a path with no steps.
var ErrEmptyPath = errors.New("core: empty path")

// StatisticNames labels the components of a statistic vector, in order.
var StatisticNames = []string{"prob_click", "prob_sale"}

// Aggregator turns raw click/sale counters into normalized rates.
type Aggregator struct {
	Eps       float64
	Normalize NormalizeFunc
}

// ElementStatistic returns [clicks/count, sales/count] under the configured
// normalization. Zero counts are left to the normalizer's eps handling.
func (a Aggregator) ElementStatistic(s graph.Stats) []float64 {
	return []float64{
		a.Normalize(s.Clicks, s.Count, a.Eps),
		a.Normalize(s.Sales, s.Count, a.Eps),
	}
}

// PathStatistic averages ElementStatistic over every edge traversed and every
// node visited by p.
func (a Aggregator) PathStatistic(g *graph.Graph, p *Path) ([]float64, error) {
	if p.Len() == 0 {
		return nil, ErrEmptyPath
	}

	sum := make([]float64, len(StatisticNames))
	add := func(s graph.Stats) {
		for i, v := range a.ElementStatistic(s) {
			sum[i] += v
		}
	}

	for _, step := range p.Steps() {
		e, ok := g.Edge(step.From, step.To)
		if !ok {
			return nil, fmt.Errorf("%w: %s-%s", graph.ErrEdgeNotFound, step.From, step.To)
		}
		add(e.Stats)
	}
	for _, id := range p.Nodes() {
		n, ok := g.Node(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", graph.ErrNodeNotFound, id)
		}
		add(n.Stats)
	}

	elements := float64(p.Len() + len(p.Nodes()))
	for i := range sum {
		sum[i] /= elements
	}
	return sum, nil
}
