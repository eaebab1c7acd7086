package family

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"sync"
)

// Copy returns a family with the same holes and its own copy of every assumed
// option set. Names and label tables are shared. Lineage (refinement depth,
// constraint indices, parent info) is kept; the selected choices, the analysis
// result and the encoding are not. Keeping the lineage is deliberate: a copy
// stands for the same node of the refinement tree, not a new root.
func (f *Family) Copy() *Family {
	c := &Family{
		holes:             f.holes[:len(f.holes):len(f.holes)],
		options:           make([]OptionSet, len(f.options)),
		constraints:       f.constraints,
		constraintIndices: f.constraintIndices,
		refinementDepth:   f.refinementDepth,
		parentInfo:        f.parentInfo,
	}
	for h, o := range f.options {
		c.options[h] = o.Copy()
	}
	return c
}

// AssumeHoleOptionsCopy returns a copy of f with hole h restricted to options.
func (f *Family) AssumeHoleOptionsCopy(h int, options []int) (*Family, error) {
	c := f.Copy()
	if err := c.HoleSetOptions(h, options); err != nil {
		return nil, err
	}
	return c, nil
}

// AssumeOptionsCopy returns a copy of f with every hole restricted to the
// options at the same position of holeOptions.
func (f *Family) AssumeOptionsCopy(holeOptions [][]int) (*Family, error) {
	if len(holeOptions) != len(f.holes) {
		return nil, fmt.Errorf("%w: %d option sets for %d holes", ErrArity, len(holeOptions), len(f.holes))
	}
	c := f.Copy()
	for h, options := range holeOptions {
		if err := c.HoleSetOptions(h, options); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Split returns one child per group, each restricting hole splitter to the
// group's options. Groups must be pairwise disjoint subsets of the splitter's
// options. They need not cover them: a group left out is a pruned branch.
//
// Groups are checked even when f is an assignment, which then yields a single
// copy of itself.
func (f *Family) Split(splitter int, groups [][]int) ([]*Family, error) {
	if err := f.checkHole(splitter); err != nil {
		return nil, err
	}
	name := f.holes[splitter].name
	sets := make([]OptionSet, len(groups))
	for i, g := range groups {
		sets[i] = NewOptionSet(g...)
		if err := sets[i].validate(len(f.holes[splitter].labels)); err != nil {
			return nil, fmt.Errorf("hole %s: group %d: %w", name, i, err)
		}
		if !sets[i].IsSubsetOf(f.options[splitter]) {
			return nil, fmt.Errorf("hole %s: %w: group %d %v not within %v",
				name, ErrNotSubset, i, sets[i], f.options[splitter])
		}
		for j := 0; j < i; j++ {
			if sets[i].Intersects(sets[j]) {
				return nil, fmt.Errorf("hole %s: %w: group %d %v and group %d %v",
					name, ErrOverlappingGroups, j, sets[j], i, sets[i])
			}
		}
	}
	if f.IsAssignment() {
		return []*Family{f.Copy()}, nil
	}
	children := make([]*Family, 0, len(sets))
	for _, s := range sets {
		child, err := f.AssumeHoleOptionsCopy(splitter, s)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// Refine splits f like Split and makes every child inherit f's lineage
// through CollectParentInfo.
func (f *Family) Refine(splitter int, groups [][]int) ([]*Family, error) {
	children, err := f.Split(splitter, groups)
	if err != nil {
		return nil, err
	}
	pi := f.CollectParentInfo()
	for _, c := range children {
		c.AddParentInfo(pi)
	}
	return children, nil
}

// PickAny returns the assignment made of the first assumed option of every
// hole.
func (f *Family) PickAny() *Family {
	c := f.Copy()
	for h, o := range c.options {
		c.options[h] = OptionSet{o.First()}
	}
	return c
}

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewPCG(33, 33))
)

// Seed resets the source used by PickRandom when no generator is given.
func Seed(s uint64) {
	rngMu.Lock()
	defer rngMu.Unlock()
	rng = rand.New(rand.NewPCG(s, s))
}

// PickRandom returns an assignment drawing one assumed option per hole
// uniformly with r. A nil r uses the package source.
func (f *Family) PickRandom(r *rand.Rand) *Family {
	if r == nil {
		rngMu.Lock()
		defer rngMu.Unlock()
		r = rng
	}
	c := f.Copy()
	for h, o := range c.options {
		c.options[h] = OptionSet{o[r.IntN(len(o))]}
	}
	return c
}

// AllCombinations yields every tuple of the Cartesian product of the assumed
// option sets, holes in order, last hole varying fastest. The sequence is
// lazy and may be ranged over any number of times; each pass works on the
// option sets as they were when it started. Yielded slices are fresh.
func (f *Family) AllCombinations() iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		options := make([]OptionSet, len(f.options))
		for h, o := range f.options {
			options[h] = o.Copy()
		}
		pos := make([]int, len(options))
		for {
			tuple := make([]int, len(options))
			for h, p := range pos {
				tuple[h] = options[h][p]
			}
			if !yield(tuple) {
				return
			}
			h := len(pos) - 1
			for ; h >= 0; h-- {
				pos[h]++
				if pos[h] < len(options[h]) {
					break
				}
				pos[h] = 0
			}
			if h < 0 {
				return
			}
		}
	}
}

// ConstructAssignment returns the assignment restricting hole i to option
// combination[i].
func (f *Family) ConstructAssignment(combination []int) (*Family, error) {
	if len(combination) != len(f.holes) {
		return nil, fmt.Errorf("%w: combination of %d for %d holes", ErrArity, len(combination), len(f.holes))
	}
	holeOptions := make([][]int, len(combination))
	for h, o := range combination {
		holeOptions[h] = []int{o}
	}
	return f.AssumeOptionsCopy(holeOptions)
}

// Combination returns the first assumed option of every hole. For an
// assignment this is the tuple it was constructed from.
func (f *Family) Combination() []int {
	out := make([]int, len(f.options))
	for h, o := range f.options {
		out[h] = o.First()
	}
	return out
}
