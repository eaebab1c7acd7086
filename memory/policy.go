// Package memory prunes the memory-update holes of a finite-state controller
// family with a fixed structural policy before any search starts.
package memory

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownPolicy    = errors.New("unknown memory policy")
	ErrMalformedLabel   = errors.New("memory option label is not an integer")
	ErrEmptyRestriction = errors.New("memory policy removed every option of a hole")
)

// Policy names a memory-update restriction. The names are the ones accepted
// on the command line.
type Policy string

const (
	PolicyNone                Policy = "none"
	PolicyOneStep             Policy = "onestep"
	PolicyCircular            Policy = "circular"
	PolicyBothWay             Policy = "bothway"
	PolicyBothWaySelfLoop     Policy = "bothWayCircleSelfLoop"
	PolicyNotDecreasing       Policy = "notDecreasing"
	PolicyNotDecreasingCyclic Policy = "notDecreasingCyclic"
	PolicyGrowing             Policy = "growing"
	PolicyGrowingMax2         Policy = "growingMax2"
	PolicyNotDecreasingMax2   Policy = "notDecreasingMax2"
	PolicyEvenUpOddDown       Policy = "evenUpOddDown"
	PolicyBinaryTree          Policy = "binaryTree"
	PolicyBinaryTreeSelfLoop  Policy = "binaryTreeSelfLoop"
	PolicyBinaryTreeCyclic    Policy = "binaryTreeCyclic"
)

// Filter selects the admissible next memory values of a memory-update hole
// at memory value current. values are the candidate next values in option
// order and max is the largest memory value of the controller. It returns
// ascending positions into values.
type Filter func(current, max int, values []int) []int

var filters = map[Policy]Filter{
	PolicyOneStep:             oneStep,
	PolicyCircular:            circular,
	PolicyBothWay:             bothWay,
	PolicyBothWaySelfLoop:     bothWaySelfLoop,
	PolicyNotDecreasing:       notDecreasing,
	PolicyNotDecreasingCyclic: notDecreasingCyclic,
	PolicyGrowing:             growing,
	PolicyGrowingMax2:         growingMax2,
	PolicyNotDecreasingMax2:   notDecreasingMax2,
	PolicyEvenUpOddDown:       evenUpOddDown,
	PolicyBinaryTree:          binaryTree,
	PolicyBinaryTreeSelfLoop:  binaryTreeSelfLoop,
	PolicyBinaryTreeCyclic:    binaryTreeCyclic,
}

// Policies lists every policy name, PolicyNone first.
func Policies() []Policy {
	out := make([]Policy, 0, len(filters)+1)
	for p := range filters {
		out = append(out, p)
	}
	slices.Sort(out)
	return append([]Policy{PolicyNone}, out...)
}

// ParsePolicy checks that name is a known policy. The empty name is PolicyNone.
func ParsePolicy(name string) (Policy, error) {
	p := Policy(name)
	if p == "" || p == PolicyNone {
		return PolicyNone, nil
	}
	if _, ok := filters[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
	return p, nil
}

// Filter returns the filter of p, or nil for PolicyNone.
func (p Policy) Filter() Filter { return filters[p] }

// selection is a set of positions into the candidate values.
type selection struct {
	values []int
	kept   []bool
	n      int
}

func selectWhere(values []int, pred func(v int) bool) *selection {
	s := &selection{values: values, kept: make([]bool, len(values))}
	s.add(pred)
	return s
}

func (s *selection) add(pred func(v int) bool) {
	for i, v := range s.values {
		if !s.kept[i] && pred(v) {
			s.kept[i] = true
			s.n++
		}
	}
}

func (s *selection) positions() []int {
	out := make([]int, 0, s.n)
	for i, k := range s.kept {
		if k {
			out = append(out, i)
		}
	}
	return out
}

func equals(x int) func(int) bool { return func(v int) bool { return v == x } }

// wrap is the value a bidirectional ring jumps to from its ends.
func wrap(current, max int) int {
	if current == 0 {
		return max
	}
	return 0
}

func oneStep(c, _ int, values []int) []int {
	return selectWhere(values, func(v int) bool { return v == c+1 || v == c-1 }).positions()
}

func circular(c, _ int, values []int) []int {
	s := selectWhere(values, equals(c+1))
	if s.n == 0 {
		s.add(equals(0))
	}
	return s.positions()
}

func bothWay(c, max int, values []int) []int {
	s := selectWhere(values, func(v int) bool { return v == c+1 || v == c-1 })
	if s.n == 1 {
		s.add(equals(wrap(c, max)))
	}
	return s.positions()
}

func bothWaySelfLoop(c, max int, values []int) []int {
	s := selectWhere(values, func(v int) bool { return v >= c-1 && v <= c+1 })
	if s.n == 2 {
		s.add(equals(wrap(c, max)))
	}
	return s.positions()
}

func notDecreasing(c, _ int, values []int) []int {
	return selectWhere(values, func(v int) bool { return v >= c }).positions()
}

func notDecreasingCyclic(c, max int, values []int) []int {
	s := selectWhere(values, func(v int) bool { return v >= c })
	if c == max {
		s.add(equals(0))
	}
	return s.positions()
}

func growing(c, _ int, values []int) []int {
	s := selectWhere(values, func(v int) bool { return v > c })
	if s.n == 0 {
		s.add(equals(c))
	}
	return s.positions()
}

func growingMax2(c, _ int, values []int) []int {
	s := selectWhere(values, func(v int) bool { return v == c+1 || v == c+2 })
	if s.n == 0 {
		s.add(equals(c))
	}
	return s.positions()
}

func notDecreasingMax2(c, _ int, values []int) []int {
	return selectWhere(values, func(v int) bool { return v >= c && v <= c+2 }).positions()
}

func evenUpOddDown(c, _ int, values []int) []int {
	if c%2 == 1 {
		return selectWhere(values, func(v int) bool { return v <= c }).positions()
	}
	return selectWhere(values, func(v int) bool { return v >= c }).positions()
}

func children(c int) func(int) bool {
	return func(v int) bool { return v == 2*c+1 || v == 2*c+2 }
}

func binaryTree(c, _ int, values []int) []int {
	s := selectWhere(values, children(c))
	if s.n == 0 {
		s.add(equals(c))
	}
	return s.positions()
}

func binaryTreeSelfLoop(c, _ int, values []int) []int {
	s := selectWhere(values, children(c))
	s.add(equals(c))
	return s.positions()
}

func binaryTreeCyclic(c, _ int, values []int) []int {
	s := selectWhere(values, children(c))
	if s.n == 0 {
		s.add(equals(0))
	}
	return s.positions()
}
