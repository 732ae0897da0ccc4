package core

import (
	"github.com/25smoking/aggsynth/internal/graph"
)

// Path accumulates a walk through the graph. Nodes and Attributes are kept
// parallel; both are empty until the first step is appended.
type Path struct {
	steps      []graph.Step
	nodes      []string
	attributes []int
}

// NewPath builds a path from a contiguous chain of steps. Contiguity
// (steps[i].To == steps[i+1].From) is the caller's responsibility.
func NewPath(steps ...graph.Step) (*Path, error) {
	p := &Path{}
	for _, s := range steps {
		if err := p.Append(s); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Append records a step. The first step also records its From node.
func (p *Path) Append(s graph.Step) error {
	to, err := graph.Attribute(s.To)
	if err != nil {
		return err
	}
	if len(p.steps) == 0 {
		from, err := graph.Attribute(s.From)
		if err != nil {
			return err
		}
		p.nodes = append(p.nodes, s.From)
		p.attributes = append(p.attributes, from)
	}
	p.nodes = append(p.nodes, s.To)
	p.attributes = append(p.attributes, to)
	p.steps = append(p.steps, s)
	return nil
}

// Len is the number of steps.
func (p *Path) Len() int { return len(p.steps) }

func (p *Path) Steps() []graph.Step { return p.steps }

func (p *Path) Nodes() []string { return p.nodes }

func (p *Path) Attributes() []int { return p.attributes }

func (p *Path) HasAttribute(attr int) bool {
	for _, a := range p.attributes {
		if a == attr {
			return true
		}
	}
	return false
}
