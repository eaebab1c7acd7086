package memory

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kept maps the positions returned by a filter back to values.
func kept(f Filter, current, max int, values []int) []int {
	out := []int{}
	for _, p := range f(current, max, values) {
		out = append(out, values[p])
	}
	return out
}

func TestFilters(t *testing.T) {
	all := []int{0, 1, 2, 3}
	tests := []struct {
		policy  Policy
		current int
		values  []int
		want    []int
	}{
		{PolicyOneStep, 1, all, []int{0, 2}},
		{PolicyOneStep, 0, all, []int{1}},
		{PolicyCircular, 2, all, []int{3}},
		{PolicyCircular, 3, all, []int{0}},
		{PolicyCircular, 3, []int{1, 2}, []int{}},
		{PolicyBothWay, 1, all, []int{0, 2}},
		{PolicyBothWay, 0, all, []int{1, 3}},
		{PolicyBothWay, 3, all, []int{0, 2}},
		{PolicyBothWaySelfLoop, 1, all, []int{0, 1, 2}},
		{PolicyBothWaySelfLoop, 0, all, []int{0, 1, 3}},
		{PolicyBothWaySelfLoop, 3, all, []int{0, 2, 3}},
		{PolicyNotDecreasing, 2, all, []int{2, 3}},
		{PolicyNotDecreasingCyclic, 2, all, []int{2, 3}},
		{PolicyNotDecreasingCyclic, 3, all, []int{0, 3}},
		{PolicyGrowing, 1, all, []int{2, 3}},
		{PolicyGrowing, 3, all, []int{3}},
		{PolicyGrowingMax2, 0, all, []int{1, 2}},
		{PolicyGrowingMax2, 2, all, []int{3}},
		{PolicyGrowingMax2, 3, all, []int{3}},
		{PolicyNotDecreasingMax2, 0, all, []int{0, 1, 2}},
		{PolicyNotDecreasingMax2, 2, all, []int{2, 3}},
		{PolicyEvenUpOddDown, 1, all, []int{0, 1}},
		{PolicyEvenUpOddDown, 2, all, []int{2, 3}},
		{PolicyBinaryTree, 0, all, []int{1, 2}},
		{PolicyBinaryTree, 1, all, []int{3}},
		{PolicyBinaryTree, 2, all, []int{2}},
		{PolicyBinaryTreeSelfLoop, 0, all, []int{0, 1, 2}},
		{PolicyBinaryTreeSelfLoop, 2, all, []int{2}},
		{PolicyBinaryTreeCyclic, 1, all, []int{3}},
		{PolicyBinaryTreeCyclic, 2, all, []int{0}},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			got := kept(tt.policy.Filter(), tt.current, 3, tt.values)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("%s at %d (-want +got):\n%s", tt.policy, tt.current, diff)
			}
		})
	}
}

func TestFiltersFollowOptionOrder(t *testing.T) {
	values := []int{3, 0, 2}
	assert.Equal(t, []int{0, 1, 2}, PolicyBothWaySelfLoop.Filter()(3, 3, values))
	assert.Equal(t, []int{1}, PolicyCircular.Filter()(3, 3, values))
}

func TestBothWayDoesNotDuplicateWrap(t *testing.T) {
	// with two memory values the wrap target is the only neighbour
	assert.Equal(t, []int{1}, PolicyBothWay.Filter()(0, 1, []int{0, 1}))
}

func TestParsePolicy(t *testing.T) {
	for _, p := range Policies() {
		got, err := ParsePolicy(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	assert.Len(t, Policies(), 14)
	assert.Equal(t, PolicyNone, Policies()[0])

	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyNone, p)
	assert.Nil(t, p.Filter())

	_, err = ParsePolicy("spiral")
	assert.True(t, errors.Is(err, ErrUnknownPolicy))
}
