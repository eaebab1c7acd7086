package family

import (
	"fmt"
	"slices"
)

// OptionSet is a sorted set of option indices into a hole's label table.
type OptionSet []int

// NewOptionSet returns the sorted, de-duplicated set of the given indices.
func NewOptionSet(options ...int) OptionSet {
	out := slices.Clone(options)
	slices.Sort(out)
	return slices.Compact(out)
}

// FullOptionSet returns {0, ..., n-1}.
func FullOptionSet(n int) OptionSet {
	out := make(OptionSet, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func (s OptionSet) Copy() OptionSet     { return slices.Clone(s) }
func (s OptionSet) First() int          { return s[0] }
func (s OptionSet) Has(option int) bool { _, ok := slices.BinarySearch(s, option); return ok }

// IsSubsetOf reports whether every element of s is in other.
func (s OptionSet) IsSubsetOf(other OptionSet) bool {
	for _, o := range s {
		if !other.Has(o) {
			return false
		}
	}
	return true
}

// Intersects reports whether s and other share an element.
func (s OptionSet) Intersects(other OptionSet) bool {
	i, j := 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i] == other[j]:
			return true
		case s[i] < other[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// validate checks that s is a usable assumed set for a hole with total labels.
func (s OptionSet) validate(total int) error {
	if len(s) == 0 {
		return ErrEmptyOptions
	}
	for _, o := range s {
		if o < 0 || o >= total {
			return fmt.Errorf("%w: option %d not in [0,%d)", ErrOptionOutOfRange, o, total)
		}
	}
	return nil
}
