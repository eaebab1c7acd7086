package fscgraph

import (
	"fmt"
	"html"
	"strings"
)

// GenerateGraphviz returns the DOT source of the controller: one ellipse per
// memory value, one labelled edge per (memory, next memory, action) and a
// legend cluster. The layout engine is fdp.
func (g *Graph) GenerateGraphviz() string {
	var sb strings.Builder

	sb.WriteString("digraph FSC {\n")
	sb.WriteString("  layout=fdp;\n")
	sb.WriteString("  splines=true;\n")
	sb.WriteString("  nodesep=1;\n")
	sb.WriteString("  sep=10;\n")
	sb.WriteString("\n")

	for _, m := range g.Nodes {
		fmt.Fprintf(&sb, "  \"%d\" [label=\"%d\", shape=ellipse];\n", m, m)
	}
	sb.WriteString("\n")

	for _, e := range g.Edges {
		fmt.Fprintf(&sb, "  \"%d\" -> \"%d\" [label=\"%s\"];\n", e.From, e.To, g.EdgeLabel(e))
	}
	sb.WriteString("\n")

	sb.WriteString("  subgraph cluster_legend {\n")
	sb.WriteString("    label=\"Legend\";\n")
	sb.WriteString("    fontsize=20;\n")
	sb.WriteString("    fontcolor=blue;\n")
	fmt.Fprintf(&sb, "    legend [label=%s, shape=plaintext];\n", g.htmlLegend())
	sb.WriteString("  }\n")

	sb.WriteString("}\n")
	return sb.String()
}

// htmlLegend is the legend as a Graphviz HTML-like label.
func (g *Graph) htmlLegend() string {
	var sb strings.Builder
	sb.WriteString(`<<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">`)
	sb.WriteString(`<TR><TD><B>Symbol</B></TD><TD><B>Observation</B></TD></TR>`)
	for _, row := range g.ObservationLegend() {
		fmt.Fprintf(&sb, "<TR><TD>%s</TD><TD>%s</TD></TR>", html.EscapeString(row.Symbol), html.EscapeString(row.Name))
	}
	sb.WriteString(`<TR><TD><B>Symbol</B></TD><TD><B>Action</B></TD></TR>`)
	for _, row := range g.ActionLegend() {
		fmt.Fprintf(&sb, "<TR><TD>%s</TD><TD>%s</TD></TR>", html.EscapeString(row.Symbol), html.EscapeString(row.Name))
	}
	sb.WriteString(`</TABLE>>`)
	return sb.String()
}
