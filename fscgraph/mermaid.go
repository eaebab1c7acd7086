package fscgraph

import (
	"fmt"
	"io"
)

// WriteMermaidStateDiagram writes the controller as a Mermaid
// stateDiagram-v2 whose initial state is the smallest memory value. States
// are named m0, m1, ... since Mermaid ids cannot be bare numbers.
func (g *Graph) WriteMermaidStateDiagram(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "stateDiagram-v2"); err != nil {
		return err
	}
	if len(g.Nodes) > 0 {
		if _, err := fmt.Fprintf(w, "  [*] --> m%d\n\n", g.Nodes[0]); err != nil {
			return err
		}
	}
	for _, m := range g.Nodes {
		if _, err := fmt.Fprintf(w, "  m%d: %d\n", m, m); err != nil {
			return err
		}
	}
	for _, e := range g.Edges {
		if _, err := fmt.Fprintf(w, "  m%d --> m%d: %s\n", e.From, e.To, g.EdgeLabel(e)); err != nil {
			return err
		}
	}
	return nil
}
