package graph

import (
	"fmt"
	"io"
	"strings"
)

var attributePalette = []string{
	"#e1f5fe", // Light Blue
	"#fff3e0", // Light Orange
	"#f3e5f5", // Light Purple
	"#e8f5e9", // Light Green
	"#fffde7", // Light Yellow
	"#fce4ec", // Light Pink
}

// ExportDOT writes the graph in Graphviz DOT format to the writer.
// Nodes are coloured by attribute slot and edges are labelled with their
// observed click-through rate.
func (g *Graph) ExportDOT(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "graph Attributes {"); err != nil {
		return err
	}

	fmt.Fprintln(w, "  layout=circo;")
	fmt.Fprintln(w, "  node [shape=box, style=filled, fontname=\"Arial\"];")
	fmt.Fprintln(w, "  edge [fontname=\"Arial\", fontsize=10];")

	for _, id := range g.order {
		n := g.nodes[id]
		color := "white"
		if n.Attribute >= 0 {
			color = attributePalette[n.Attribute%len(attributePalette)]
		}
		label := fmt.Sprintf("%s\nclicks=%g sales=%g count=%g", n.ID, n.Stats.Clicks, n.Stats.Sales, n.Stats.Count)
		label = strings.ReplaceAll(label, "\"", "\\\"")
		label = strings.ReplaceAll(label, "\n", "\\n")
		if _, err := fmt.Fprintf(w, "  \"%s\" [label=\"%s\", fillcolor=\"%s\"];\n", n.ID, label, color); err != nil {
			return err
		}
	}

	for _, e := range g.edges {
		ctr := 0.0
		if e.Stats.Count > 0 {
			ctr = e.Stats.Clicks / e.Stats.Count
		}
		if _, err := fmt.Fprintf(w, "  \"%s\" -- \"%s\" [label=\"%.3f\"];\n", e.A, e.B, ctr); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "}"); err != nil {
		return err
	}
	return nil
}
