package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrNodeNotFound is returned when an edge references an unknown node.
	ErrNodeNotFound = errors.New("graph: node not found")

	// ErrEdgeNotFound is returned when a step has no matching edge.
	ErrEdgeNotFound = errors.New("graph: edge not found")

	// ErrSelfLoop is returned when both edge endpoints are the same node.
	ErrSelfLoop = errors.New("graph: self-loop not allowed")
)

// Stats holds the observed counters of a node or an edge.
// Prob is the unnormalized weight used when sampling the element.
type Stats struct {
	Clicks float64 `yaml:"clicks"`
	Sales  float64 `yaml:"sales"`
	Count  float64 `yaml:"count"`
	Prob   float64 `yaml:"prob"`
}

type Node struct {
	ID        string
	Attribute int
	Value     float64
	Stats     Stats
}

// Edge is an undirected edge. A and B are stored in insertion order.
type Edge struct {
	A     string
	B     string
	Stats Stats
}

// Other returns the endpoint of e opposite to id.
func (e *Edge) Other(id string) string {
	if e.A == id {
		return e.B
	}
	return e.A
}

// Step is one oriented traversal of an undirected edge.
type Step struct {
	From string
	To   string
}

type edgeKey struct{ a, b string }

func keyOf(a, b string) edgeKey {
	if b < a {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Graph is an undirected attributed graph. It is built once and then only
// read; it is not safe for concurrent mutation.
type Graph struct {
	nodes map[string]*Node
	order []string
	edges []*Edge
	index map[edgeKey]*Edge
	adj   map[string][]*Edge
}

func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		order: make([]string, 0),
		edges: make([]*Edge, 0),
		index: make(map[edgeKey]*Edge),
		adj:   make(map[string][]*Edge),
	}
}

// AddNode inserts a node, decoding its attribute slot from the id.
// Re-adding an existing node replaces its stats.
func (g *Graph) AddNode(id string, stats Stats) error {
	if n, exists := g.nodes[id]; exists {
		n.Stats = stats
		return nil
	}
	attr, val, err := Decode(id)
	if err != nil {
		return err
	}
	g.nodes[id] = &Node{ID: id, Attribute: attr, Value: val, Stats: stats}
	g.order = append(g.order, id)
	return nil
}

// AddEdge connects two existing nodes. Re-adding an edge replaces its stats.
func (g *Graph) AddEdge(a, b string, stats Stats) error {
	if a == b {
		return fmt.Errorf("%w: %s", ErrSelfLoop, a)
	}
	for _, id := range []string{a, b} {
		if _, ok := g.nodes[id]; !ok {
			return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
		}
	}
	k := keyOf(a, b)
	if e, ok := g.index[k]; ok {
		e.Stats = stats
		return nil
	}
	e := &Edge{A: a, B: b, Stats: stats}
	g.index[k] = e
	g.edges = append(g.edges, e)
	g.adj[a] = append(g.adj[a], e)
	g.adj[b] = append(g.adj[b], e)
	return nil
}

func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeIDs returns node ids in insertion order. The slice must not be modified.
func (g *Graph) NodeIDs() []string {
	return g.order
}

// Edges returns all edges in insertion order. The slice must not be modified.
func (g *Graph) Edges() []*Edge {
	return g.edges
}

func (g *Graph) Edge(a, b string) (*Edge, bool) {
	e, ok := g.index[keyOf(a, b)]
	return e, ok
}

func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.index[keyOf(a, b)]
	return ok
}

// IncidentSteps lists every edge touching id, oriented away from id.
func (g *Graph) IncidentSteps(id string) []Step {
	adj := g.adj[id]
	steps := make([]Step, 0, len(adj))
	for _, e := range adj {
		steps = append(steps, Step{From: id, To: e.Other(id)})
	}
	return steps
}

func (g *Graph) NodeCount() int { return len(g.order) }

func (g *Graph) EdgeCount() int { return len(g.edges) }

// Attributes returns the number of nodes per attribute id.
func (g *Graph) Attributes() map[int]int {
	seen := make(map[int]int)
	for _, id := range g.order {
		seen[g.nodes[id].Attribute]++
	}
	return seen
}
