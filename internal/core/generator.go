package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/25smoking/aggsynth/internal/graph"
	"github.com/25smoking/aggsynth/internal/sampler"
	"go.uber.org/zap"
)

var (
	// ErrEmptyGraph is returned when the graph has no nodes to start from.
	ErrEmptyGraph = errors.New("core: graph has no nodes")

	// ErrRetriesExhausted is returned by GenerateEntry once MaxAttempts walks
	// have all ended early.
	ErrRetriesExhausted = errors.New("core: retries exhausted")
)

// Entry is one generated sample: attribute values sorted by attribute id,
// and the aggregate statistic vector (see StatisticNames).
type Entry struct {
	Features []float64
	Targets  []float64
}

// Counters track generator activity for reporting.
type Counters struct {
	Entries  int `json:"entries"`
	Attempts int `json:"attempts"`
	DeadEnds int `json:"dead_ends"`
}

// Generator samples attribute-consistent random walks from a read-only graph.
// It owns its random source and is not safe for concurrent use.
type Generator struct {
	graph    *graph.Graph
	cfg      GeneratorConfig
	agg      Aggregator
	rng      sampler.Rand
	log      *zap.Logger
	counters Counters
}

type Option func(*Generator)

func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithSeed makes the generator reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewPCG(uint64(seed), 0)) }
}

// WithRand replaces the random source, mostly for tests.
func WithRand(r sampler.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// NewGenerator validates cfg against g. A graph with fewer attribute slots
// than cfg.NoAttributes can never yield an entry and is rejected up front.
func NewGenerator(g *graph.Graph, cfg GeneratorConfig, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if g == nil || g.NodeCount() == 0 {
		return nil, ErrEmptyGraph
	}
	if slots := len(g.Attributes()); slots < cfg.NoAttributes {
		return nil, fmt.Errorf("%w: graph has %d attribute slots, need %d", ErrInvalidConfig, slots, cfg.NoAttributes)
	}

	gen := &Generator{
		graph: g,
		cfg:   cfg,
		agg:   Aggregator{Eps: cfg.Eps, Normalize: cfg.Normalize},
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(gen)
	}
	return gen, nil
}

func (gen *Generator) Config() GeneratorConfig { return gen.cfg }

func (gen *Generator) Counters() Counters { return gen.counters }

// NextEdge draws the next step from node from. A candidate neighbour is
// viable when its attribute slot is unused by p and it is adjacent to every
// node already in p. ok is false when nothing is viable.
func (gen *Generator) NextEdge(from string, p *Path) (step graph.Step, ok bool, err error) {
	var fromAttr int
	if p.Len() == 0 {
		n, found := gen.graph.Node(from)
		if !found {
			return step, false, fmt.Errorf("%w: %s", graph.ErrNodeNotFound, from)
		}
		fromAttr = n.Attribute
	}

	var viable []graph.Step
	for _, s := range gen.graph.IncidentSteps(from) {
		n, _ := gen.graph.Node(s.To)
		// The start node is not in p until the first step is appended.
		if p.Len() == 0 && n.Attribute == fromAttr {
			continue
		}
		if gen.isViable(n, p) {
			viable = append(viable, s)
		}
	}

	return sampler.SampleWeighted(gen.rng, viable, gen.edgeWeight)
}

func (gen *Generator) isViable(candidate *graph.Node, p *Path) bool {
	if p.HasAttribute(candidate.Attribute) {
		return false
	}
	for _, id := range p.Nodes() {
		if !gen.graph.HasEdge(candidate.ID, id) {
			return false
		}
	}
	return true
}

// edgeWeight looks weights up in the full edge table.
func (gen *Generator) edgeWeight(s graph.Step) float64 {
	e, ok := gen.graph.Edge(s.From, s.To)
	if !ok {
		return 0
	}
	return e.Stats.Prob
}

func (gen *Generator) nodeWeight(id string) float64 {
	n, ok := gen.graph.Node(id)
	if !ok {
		return 0
	}
	return n.Stats.Prob
}

// BuildEntryPath walks from initial until the path spans NoAttributes nodes
// or no viable step remains. A short path signals a dead end.
func (gen *Generator) BuildEntryPath(initial string) (*Path, error) {
	p := &Path{}
	from := initial
	for p.Len() < gen.cfg.NoAttributes-1 {
		step, ok, err := gen.NextEdge(from, p)
		if err != nil {
			return nil, err
		}
		if !ok {
			return p, nil
		}
		if err := p.Append(step); err != nil {
			return nil, err
		}
		from = step.To
	}
	return p, nil
}

// GenerateEntry restarts the walk from a freshly sampled node until a full
// path is found. With MaxAttempts == 0 the loop is unbounded and only ctx can
// stop it on a poorly connected graph.
func (gen *Generator) GenerateEntry(ctx context.Context) (Entry, error) {
	nodes := gen.graph.NodeIDs()
	want := gen.cfg.NoAttributes - 1

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return Entry{}, err
		}
		if gen.cfg.MaxAttempts > 0 && attempt > gen.cfg.MaxAttempts {
			return Entry{}, fmt.Errorf("%w: no path of %d steps after %d attempts",
				ErrRetriesExhausted, want, gen.cfg.MaxAttempts)
		}
		gen.counters.Attempts++

		start, ok, err := sampler.SampleWeighted(gen.rng, nodes, gen.nodeWeight)
		if err != nil {
			return Entry{}, fmt.Errorf("failed to sample start node: %w", err)
		}
		if !ok {
			return Entry{}, ErrEmptyGraph
		}

		p, err := gen.BuildEntryPath(start)
		if err != nil {
			return Entry{}, err
		}
		if p.Len() != want {
			gen.counters.DeadEnds++
			gen.log.Debug("dead end",
				zap.String("start", start),
				zap.Int("length", p.Len()),
				zap.Int("attempt", attempt),
			)
			continue
		}

		entry, err := gen.entryFor(p)
		if err != nil {
			return Entry{}, err
		}
		gen.counters.Entries++
		return entry, nil
	}
}

func (gen *Generator) entryFor(p *Path) (Entry, error) {
	nodes := make([]*graph.Node, 0, len(p.Nodes()))
	for _, id := range p.Nodes() {
		n, ok := gen.graph.Node(id)
		if !ok {
			return Entry{}, fmt.Errorf("%w: %s", graph.ErrNodeNotFound, id)
		}
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Attribute < nodes[j].Attribute })

	features := make([]float64, len(nodes))
	for i, n := range nodes {
		features[i] = n.Value
	}

	targets, err := gen.agg.PathStatistic(gen.graph, p)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Features: features, Targets: targets}, nil
}
