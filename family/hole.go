package family

import (
	"fmt"
	"regexp"
	"strconv"
)

// Kind tells what a controller hole decides.
type Kind int

const (
	KindOther Kind = iota
	KindAction
	KindMemoryUpdate
	KindActionAndMemory
)

func (k Kind) String() string {
	switch k {
	case KindAction:
		return "A"
	case KindMemoryUpdate:
		return "M"
	case KindActionAndMemory:
		return "AM"
	}
	return "other"
}

// Decision is the decoded identity of a controller hole named
// Kind([observation],memory), e.g. "M([o=3],1)". The described form of a
// decided hole, "M([o=3],1)=2", also carries the chosen label as Value.
type Decision struct {
	Kind        Kind
	Observation string
	Memory      int
	// Value is the label after "=", set only when HasValue is true. For a
	// memory-update hole it is the next memory value.
	Value    string
	HasValue bool
}

// HoleName renders d back into the naming convention it was parsed from,
// without the chosen value.
func (d Decision) HoleName() string {
	return fmt.Sprintf("%s([%s],%d)", d.Kind, d.Observation, d.Memory)
}

// String is HoleName followed by "=value" when d carries a value.
func (d Decision) String() string {
	if !d.HasValue {
		return d.HoleName()
	}
	return d.HoleName() + "=" + d.Value
}

var holeNameRe = regexp.MustCompile(`^(AM|A|M)\(\[(.*?)\],(\d+)\)(?:=(.*))?$`)

// ParseHoleName decodes a controller hole name, optionally followed by
// "=value" as in the description of an assignment. Names that do not follow
// the convention yield ErrMalformedHoleName.
func ParseHoleName(name string) (Decision, error) {
	m := holeNameRe.FindStringSubmatchIndex(name)
	if m == nil {
		return Decision{}, fmt.Errorf("%w: %q", ErrMalformedHoleName, name)
	}
	group := func(i int) string { return name[m[2*i]:m[2*i+1]] }
	mem, err := strconv.Atoi(group(3))
	if err != nil {
		return Decision{}, fmt.Errorf("%w: %q: memory value: %v", ErrMalformedHoleName, name, err)
	}
	d := Decision{Observation: group(2), Memory: mem}
	if m[8] >= 0 {
		d.Value, d.HasValue = group(4), true
	}
	switch group(1) {
	case "A":
		d.Kind = KindAction
	case "M":
		d.Kind = KindMemoryUpdate
	case "AM":
		d.Kind = KindActionAndMemory
	}
	return d, nil
}

// hole is the part of a decision point that never changes once added.
// It is shared by every copy of the family it was added to.
type hole struct {
	name     string
	labels   []string
	decision Decision
	// decodeErr is non-nil for holes whose name is not a controller hole name.
	decodeErr error
}

func newHole(name string, labels []string) (*hole, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyLabels, name)
	}
	h := &hole{
		name:   name,
		labels: append([]string(nil), labels...),
	}
	h.decision, h.decodeErr = ParseHoleName(name)
	return h, nil
}
