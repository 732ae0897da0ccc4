package graph

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type document struct {
	Nodes []nodeRecord `yaml:"nodes"`
	Edges []edgeRecord `yaml:"edges"`
}

type nodeRecord struct {
	ID    string `yaml:"id"`
	Stats `yaml:",inline"`
}

type edgeRecord struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Stats `yaml:",inline"`
}

// ReadYAML decodes a graph document of the form
//
//	nodes: [{id, clicks, sales, count, prob}, ...]
//	edges: [{from, to, clicks, sales, count, prob}, ...]
func ReadYAML(r io.Reader) (*Graph, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse graph: %w", err)
	}
	return doc.build()
}

func (doc *document) build() (*Graph, error) {
	g := New()
	for _, n := range doc.Nodes {
		if err := g.AddNode(n.ID, n.Stats); err != nil {
			return nil, err
		}
	}
	for _, e := range doc.Edges {
		if err := g.AddEdge(e.From, e.To, e.Stats); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Graph) WriteYAML(w io.Writer) error {
	doc := document{
		Nodes: make([]nodeRecord, 0, len(g.order)),
		Edges: make([]edgeRecord, 0, len(g.edges)),
	}
	for _, id := range g.order {
		doc.Nodes = append(doc.Nodes, nodeRecord{ID: id, Stats: g.nodes[id].Stats})
	}
	for _, e := range g.edges {
		doc.Edges = append(doc.Edges, edgeRecord{From: e.A, To: e.B, Stats: e.Stats})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	return enc.Close()
}

func LoadYAML(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph file: %w", err)
	}
	defer f.Close()
	return ReadYAML(f)
}

func (g *Graph) SaveYAML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create graph file: %w", err)
	}
	if err := g.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
