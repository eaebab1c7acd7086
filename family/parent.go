package family

import "slices"

// ParentInfo is what a child family keeps of the family it was split from.
// It is a snapshot, so children do not keep their ancestors alive and later
// changes to the parent do not show through.
type ParentInfo struct {
	SelectedChoices   []bool
	ConstraintIndices []int
	RefinementDepth   int
}

func (pi ParentInfo) clone() ParentInfo {
	pi.SelectedChoices = slices.Clone(pi.SelectedChoices)
	pi.ConstraintIndices = slices.Clone(pi.ConstraintIndices)
	return pi
}

// CollectParentInfo snapshots f for its children. Constraint indices are the
// undecided constraints of the cached analysis result, or all constraints if
// f has not been analysed.
func (f *Family) CollectParentInfo() ParentInfo {
	pi := ParentInfo{
		SelectedChoices: slices.Clone(f.selectedChoices),
		RefinementDepth: f.refinementDepth,
	}
	switch {
	case f.analysis == nil:
		pi.ConstraintIndices = f.Constraints()
	case f.analysis.ConstraintsResult() == nil:
		pi.ConstraintIndices = []int{}
	default:
		pi.ConstraintIndices = append([]int{}, f.analysis.ConstraintsResult().UndecidedConstraints...)
	}
	return pi
}

// AddParentInfo makes f a child of the family pi was collected from.
func (f *Family) AddParentInfo(pi ParentInfo) {
	pi = pi.clone()
	f.parentInfo = &pi
	f.refinementDepth = pi.RefinementDepth + 1
	f.constraintIndices = slices.Clone(pi.ConstraintIndices)
}
