package family

import (
	"fmt"
	"math/big"
	"slices"
	"strings"
)

// IntPrintMaxOrder is the largest order of magnitude for which SizeOrOrder
// prints the exact size.
const IntPrintMaxOrder = 5

// Family is a combinatorial design space: one assumed option set per hole.
type Family struct {
	holes   []*hole
	options []OptionSet

	// constraints is the full list of constraint ids of the root family.
	constraints       []int
	constraintIndices []int
	refinementDepth   int
	parentInfo        *ParentInfo
	selectedChoices   []bool

	analysis AnalysisResult
	encoding Encoding
}

// New returns an empty root family.
func New() *Family {
	return &Family{}
}

// NewRoot builds a root family from hole names and label tables, in order,
// together with the ids of all constraints of the synthesis problem.
func NewRoot(names []string, labels [][]string, constraints []int) (*Family, error) {
	if len(names) != len(labels) {
		return nil, fmt.Errorf("%w: %d names, %d label tables", ErrArity, len(names), len(labels))
	}
	f := New()
	for i, name := range names {
		if _, err := f.AddHole(name, labels[i]); err != nil {
			return nil, err
		}
	}
	f.SetConstraints(constraints)
	return f, nil
}

// AddHole appends a hole with the given option labels and assumes all of them.
// It returns the index of the new hole.
func (f *Family) AddHole(name string, labels []string) (int, error) {
	h, err := newHole(name, labels)
	if err != nil {
		return -1, err
	}
	f.holes = append(f.holes, h)
	f.options = append(f.options, FullOptionSet(len(labels)))
	return len(f.holes) - 1, nil
}

// SetConstraints records the ids of all constraints of the synthesis problem.
// The list is shared with every family derived from f.
func (f *Family) SetConstraints(ids []int) {
	f.constraints = append([]int(nil), ids...)
}

func (f *Family) NumHoles() int { return len(f.holes) }

func (f *Family) HoleName(h int) string { return f.holes[h].name }

// HoleDecision returns the decoded controller identity of hole h, or
// ErrMalformedHoleName if its name is not a controller hole name.
func (f *Family) HoleDecision(h int) (Decision, error) {
	if err := f.checkHole(h); err != nil {
		return Decision{}, err
	}
	return f.holes[h].decision, f.holes[h].decodeErr
}

// HoleLabels returns a copy of the full label table of hole h.
func (f *Family) HoleLabels(h int) []string {
	return append([]string(nil), f.holes[h].labels...)
}

// HoleLabel returns the label of option o of hole h.
func (f *Family) HoleLabel(h, o int) string { return f.holes[h].labels[o] }

// HoleOptions returns a copy of the options currently assumed for hole h.
func (f *Family) HoleOptions(h int) OptionSet { return f.options[h].Copy() }

func (f *Family) HoleNumOptions(h int) int { return len(f.options[h]) }

func (f *Family) HoleNumOptionsTotal(h int) int { return len(f.holes[h].labels) }

// HoleSetOptions replaces the assumed options of hole h. The new options must
// be a nonempty subset of the options currently assumed.
func (f *Family) HoleSetOptions(h int, options []int) error {
	if err := f.checkHole(h); err != nil {
		return err
	}
	set := NewOptionSet(options...)
	if err := set.validate(len(f.holes[h].labels)); err != nil {
		return fmt.Errorf("hole %s: %w", f.holes[h].name, err)
	}
	if !set.IsSubsetOf(f.options[h]) {
		return fmt.Errorf("hole %s: %w: %v not within %v", f.holes[h].name, ErrNotSubset, set, f.options[h])
	}
	f.options[h] = set
	return nil
}

func (f *Family) checkHole(h int) error {
	if h < 0 || h >= len(f.holes) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrHoleOutOfRange, h, len(f.holes))
	}
	return nil
}

// Size is the number of assignments in the family.
func (f *Family) Size() *big.Int {
	size := big.NewInt(1)
	n := new(big.Int)
	for _, o := range f.options {
		size.Mul(size, n.SetInt64(int64(len(o))))
	}
	return size
}

// IsAssignment reports whether every hole has exactly one assumed option.
func (f *Family) IsAssignment() bool {
	for _, o := range f.options {
		if len(o) != 1 {
			return false
		}
	}
	return true
}

// Order is floor(log10(Size)).
func (f *Family) Order() int {
	return len(f.Size().String()) - 1
}

// SizeOrOrder prints the exact size for small families and "1e<order>"
// otherwise.
func (f *Family) SizeOrOrder() string {
	if order := f.Order(); order > IntPrintMaxOrder {
		return fmt.Sprintf("1e%d", order)
	}
	return f.Size().String()
}

// HoleOptionsString renders hole h restricted to options as "name=label" for
// a single option and "name: {l1,l2,...}" otherwise.
func (f *Family) HoleOptionsString(h int, options OptionSet) string {
	hl := f.holes[h]
	if len(options) == 1 {
		return hl.name + "=" + hl.labels[options[0]]
	}
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = hl.labels[o]
	}
	return hl.name + ": {" + strings.Join(labels, ",") + "}"
}

// String describes the family hole by hole. For an assignment it is the
// canonical textual form consumed by graph export.
func (f *Family) String() string {
	parts := make([]string, len(f.holes))
	for h := range f.holes {
		parts[h] = f.HoleOptionsString(h, f.options[h])
	}
	return strings.Join(parts, ", ")
}

func (f *Family) RefinementDepth() int { return f.refinementDepth }

// ParentInfo returns a copy of the lineage snapshot the family was created
// with, or nil for a root.
func (f *Family) ParentInfo() *ParentInfo {
	if f.parentInfo == nil {
		return nil
	}
	pi := f.parentInfo.clone()
	return &pi
}

// Constraints returns the ids of all constraints of the synthesis problem.
func (f *Family) Constraints() []int { return append([]int(nil), f.constraints...) }

// ConstraintIndices returns the ids of constraints not yet decided for the
// family, or nil if none were inherited or set.
func (f *Family) ConstraintIndices() []int {
	if f.constraintIndices == nil {
		return nil
	}
	return append([]int(nil), f.constraintIndices...)
}

func (f *Family) SetConstraintIndices(ids []int) {
	f.constraintIndices = append([]int{}, ids...)
}

// SelectedChoices returns a copy of the quotient choices selected for the
// family, or nil if none were set.
func (f *Family) SelectedChoices() []bool { return slices.Clone(f.selectedChoices) }

// SetSelectedChoices stores a copy of the quotient choices selected for the
// family. The mask is passed on to children through ParentInfo.
func (f *Family) SetSelectedChoices(choices []bool) { f.selectedChoices = slices.Clone(choices) }
