package bcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectCloseHalfCandidatePicksClosestToHalf(t *testing.T) {
	a := assert.New(t)
	candidates := []BranchingCandidate{
		{Index: 0, Value: 3.1}, // fractionality 0.1
		{Index: 1, Value: 2.5}, // fractionality 0.5, most fractional
		{Index: 2, Value: 7.9}, // fractionality 0.1
	}
	chosen, err := SelectCloseHalfCandidate(candidates, 0)
	a.NoError(err)
	a.Equal(1, chosen.Index)
}

func TestSelectCloseHalfCandidateRespectsLimit(t *testing.T) {
	a := assert.New(t)
	candidates := []BranchingCandidate{
		{Index: 0, Value: 3.1},
		{Index: 1, Value: 2.5},
	}
	// limiting to 1 candidate means only index 0 is considered
	chosen, err := SelectCloseHalfCandidate(candidates, 1)
	a.NoError(err)
	a.Equal(0, chosen.Index)
}

func TestSelectCloseHalfCandidateEmptyErrors(t *testing.T) {
	_, err := SelectCloseHalfCandidate(nil, 0)
	assert.Error(t, err)
}

func TestCloseHalfRuleFactoryProducesLowerAndUpperPair(t *testing.T) {
	a := assert.New(t)
	candidates := []BranchingCandidate{{Index: 4, Value: 2.5}}
	rules, err := CloseHalfRuleFactory(candidates, 0)
	a.NoError(err)
	a.Len(rules, 2)

	vs := NewVariableStatusSet(5)
	a.NoError(rules[0].Apply(vs))
	a.Equal(SetToLower, vs.Get(4))

	vs2 := NewVariableStatusSet(5)
	a.NoError(rules[1].Apply(vs2))
	a.Equal(SetToUpper, vs2.Get(4))
}

func TestEqualSubComparePrefersSetToUpperThenSequence(t *testing.T) {
	a := assert.New(t)
	upper := &Subproblem{id: NewId(5, 0), branchedUpper: true}
	lower := &Subproblem{id: NewId(1, 0), branchedUpper: false}
	a.True(equalSubCompare(upper, lower))
	a.False(equalSubCompare(lower, upper))

	earlier := &Subproblem{id: NewId(1, 0), branchedUpper: true}
	later := &Subproblem{id: NewId(2, 0), branchedUpper: true}
	a.True(equalSubCompare(earlier, later))
	a.False(equalSubCompare(later, earlier))
}
