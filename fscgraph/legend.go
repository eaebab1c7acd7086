package fscgraph

import (
	"fmt"
	"strings"
)

// LegendRow maps a short symbol to the observation or action it stands for.
type LegendRow struct {
	Symbol string
	Name   string
}

func (g *Graph) ObservationLegend() []LegendRow {
	return legendRows(g.Observations, g.ObservationSymbol)
}

func (g *Graph) ActionLegend() []LegendRow {
	return legendRows(g.Actions, g.ActionSymbol)
}

func legendRows(names []string, symbol func(string) string) []LegendRow {
	rows := make([]LegendRow, len(names))
	for i, n := range names {
		rows[i] = LegendRow{Symbol: symbol(n), Name: n}
	}
	return rows
}

// GenerateLegendTable returns the legend as two markdown tables,
// observations first.
func (g *Graph) GenerateLegendTable() string {
	var sb strings.Builder

	sb.WriteString("| Symbol | Observation |\n")
	sb.WriteString("|--------|-------------|\n")
	for _, row := range g.ObservationLegend() {
		fmt.Fprintf(&sb, "| %s | %s |\n", row.Symbol, escapeCell(row.Name))
	}
	sb.WriteString("\n")

	sb.WriteString("| Symbol | Action |\n")
	sb.WriteString("|--------|--------|\n")
	for _, row := range g.ActionLegend() {
		fmt.Fprintf(&sb, "| %s | %s |\n", row.Symbol, escapeCell(row.Name))
	}
	return sb.String()
}

// GenerateTransitionTable lists every edge as a markdown row with the full
// observation and action names.
func (g *Graph) GenerateTransitionTable() string {
	var sb strings.Builder

	sb.WriteString("| Memory | Observations | Action | Next |\n")
	sb.WriteString("|--------|--------------|--------|------|\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&sb, "| %d | %s | %s | %d |\n",
			e.From, escapeCell(strings.Join(e.Observations, ", ")), escapeCell(e.Action), e.To)
	}
	return sb.String()
}

func escapeCell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }
