// Package fscgraph renders a synthesized finite-state controller.
//
// Nodes are memory values. An edge m -> n labelled "o1,o2/a" says that in
// memory m, on observations o1 or o2, the controller plays action a and moves
// to memory n. Observations and actions are written as short symbols; the
// legend maps them back to their names.
package fscgraph

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rfielding/fsc-synth/family"
)

var (
	ErrNotAssignment  = errors.New("controller graph needs a family with exactly one assignment")
	ErrMalformedLabel = errors.New("memory-update label is not an integer")
)

// Edge is one (memory, next memory, action) triple of the controller.
type Edge struct {
	From         int
	To           int
	Action       string
	Observations []string
}

// Graph is the transition structure of a controller assignment.
type Graph struct {
	Nodes        []int
	Edges        []Edge
	Observations []string
	Actions      []string

	obsSymbols    map[string]string
	actionSymbols map[string]string
}

type edgeKey struct {
	from, to int
	action   string
}

type obsMemory struct {
	observation string
	memory      int
}

// FromAssignment builds the controller graph of a family of size one whose
// holes are named Kind([observation],memory). Combined action-and-memory
// holes are not drawn.
func FromAssignment(f *family.Family) (*Graph, error) {
	if !f.IsAssignment() {
		return nil, fmt.Errorf("%w: size %s", ErrNotAssignment, f.SizeOrOrder())
	}

	type action struct {
		obsMemory
		label string
	}
	var actions []action
	next := make(map[obsMemory][]int)
	for h := 0; h < f.NumHoles(); h++ {
		d, err := f.HoleDecision(h)
		if err != nil {
			return nil, err
		}
		label := f.HoleLabel(h, f.HoleOptions(h).First())
		key := obsMemory{d.Observation, d.Memory}
		switch d.Kind {
		case family.KindAction:
			actions = append(actions, action{key, label})
		case family.KindMemoryUpdate:
			n, err := strconv.Atoi(label)
			if err != nil {
				return nil, fmt.Errorf("%w: hole %s, label %q", ErrMalformedLabel, f.HoleName(h), label)
			}
			next[key] = append(next[key], n)
		}
	}

	nodes := make(map[int]struct{})
	edges := make(map[edgeKey]map[string]struct{})
	observations := make(map[string]struct{})
	actionNames := make(map[string]struct{})
	for _, a := range actions {
		to := a.memory
		if n := next[a.obsMemory]; len(n) == 1 {
			to = n[0]
		}
		nodes[a.memory] = struct{}{}
		nodes[to] = struct{}{}
		observations[a.observation] = struct{}{}
		actionNames[a.label] = struct{}{}
		k := edgeKey{a.memory, to, a.label}
		if edges[k] == nil {
			edges[k] = make(map[string]struct{})
		}
		edges[k][a.observation] = struct{}{}
	}

	g := &Graph{
		Nodes:        sortedKeys(nodes),
		Observations: sortedKeys(observations),
		Actions:      sortedKeys(actionNames),
	}
	g.obsSymbols = symbolTable(g.Observations)
	g.actionSymbols = symbolTable(g.Actions)
	for k, obs := range edges {
		g.Edges = append(g.Edges, Edge{From: k.from, To: k.to, Action: k.action, Observations: sortedKeys(obs)})
	}
	slices.SortFunc(g.Edges, func(a, b Edge) int {
		if a.From != b.From {
			return a.From - b.From
		}
		if a.To != b.To {
			return a.To - b.To
		}
		return strings.Compare(a.Action, b.Action)
	})
	return g, nil
}

func sortedKeys[K int | string, V any](m map[K]V) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// ObservationSymbol returns the short symbol of an observation.
func (g *Graph) ObservationSymbol(obs string) string { return g.obsSymbols[obs] }

// ActionSymbol returns the short symbol of an action.
func (g *Graph) ActionSymbol(action string) string { return g.actionSymbols[action] }

// EdgeLabel renders e as "o1,o2/a" in symbols, observations sorted.
func (g *Graph) EdgeLabel(e Edge) string {
	obs := make([]string, len(e.Observations))
	for i, o := range e.Observations {
		obs[i] = g.ObservationSymbol(o)
	}
	slices.Sort(obs)
	return strings.Join(obs, ",") + "/" + g.ActionSymbol(e.Action)
}

// Symbol returns the i-th short symbol: a, b, ..., z, aa, ab, ..., zz, aaa, ...
func Symbol(i int) string {
	var b []byte
	for i++; i > 0; i = (i - 1) / 26 {
		b = append(b, byte('a'+(i-1)%26))
	}
	slices.Reverse(b)
	return string(b)
}

func symbolTable(names []string) map[string]string {
	out := make(map[string]string, len(names))
	for i, n := range names {
		out[n] = Symbol(i)
	}
	return out
}
