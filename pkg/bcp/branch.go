package bcp

import "math"

// BranchRule is one child-defining modification produced by a branching
// decision (spec.md §4.2, "Branching"). Applying a rule to a fresh child
// Subproblem's local VariableStatus is what turns the parent's LP
// relaxation into a strictly smaller feasible region for that child.
type BranchRule interface {
	// Apply narrows child's local variable status to reflect this rule.
	Apply(child *VariableStatusSet) error
	String() string
}

// RuleFactory produces the BranchRule set for one branching decision,
// typically two rules for binary branching (spec.md §4.2). Problem-
// specific branching (e.g. on a combinatorial structure rather than a
// single variable) is supplied by implementing this signature; the
// default here implements CloseHalf on a chosen fractional variable.
type RuleFactory func(candidates []BranchingCandidate) ([]BranchRule, error)

// BranchingCandidate is one fractional variable eligible for branching:
// its active-set index and current LP value.
type BranchingCandidate struct {
	Index int
	Value float64
}

// varBoundRule sets one variable's status to SetToLower or SetToUpper.
type varBoundRule struct {
	index  int
	status FSVarStat
}

func (r varBoundRule) Apply(child *VariableStatusSet) error {
	return child.Set(r.index, r.status)
}

func (r varBoundRule) String() string {
	if r.status == SetToUpper {
		return "SetToUpper"
	}
	return "SetToLower"
}

// fractionality returns how close value is to the nearest integer: 0
// means already integral, 0.5 means maximally fractional.
func fractionality(value float64) float64 {
	frac := value - math.Floor(value)
	return math.Min(frac, 1-frac)
}

// SelectCloseHalfCandidate picks, among candidates, the one whose LP
// value is closest to an integer midpoint (spec.md §4.2: "closest-to-half
// fractional variable"), considering at most the first
// nBranchingVariableCandidates entries. Returns an error of
// KindBranchingVariable if candidates is empty.
func SelectCloseHalfCandidate(candidates []BranchingCandidate, nBranchingVariableCandidates int) (BranchingCandidate, error) {
	if len(candidates) == 0 {
		return BranchingCandidate{}, New(KindBranchingVariable, "no fractional variable available for branching")
	}
	limit := len(candidates)
	if nBranchingVariableCandidates > 0 && nBranchingVariableCandidates < limit {
		limit = nBranchingVariableCandidates
	}
	best := candidates[0]
	bestFrac := fractionality(best.Value)
	for _, c := range candidates[1:limit] {
		if f := fractionality(c.Value); f > bestFrac {
			best, bestFrac = c, f
		}
	}
	return best, nil
}

// CloseHalfRuleFactory is the default RuleFactory (spec.md §4.2's "typical"
// case): binary branching that sets the chosen candidate to its floor
// (SetToLower, meaning x <= floor(value)) in one child and its ceiling
// (SetToUpper, meaning x >= ceil(value)) in the other.
func CloseHalfRuleFactory(candidates []BranchingCandidate, nBranchingVariableCandidates int) ([]BranchRule, error) {
	chosen, err := SelectCloseHalfCandidate(candidates, nBranchingVariableCandidates)
	if err != nil {
		return nil, Wrap(KindCloseHalf, err, "CloseHalf rule factory")
	}
	return []BranchRule{
		varBoundRule{index: chosen.Index, status: SetToLower},
		varBoundRule{index: chosen.Index, status: SetToUpper},
	}, nil
}

// equalSubCompare breaks ties between two Subproblems whose primary
// enumeration key (dual bound, level, or id depending on strategy)
// compares equal. Per spec.md §4.1, it "preserves the set-to-upper-bound
// branch first": a node produced by a SetToUpper rule is preferred over
// one produced by SetToLower, with the global sequence id as a final
// deterministic tiebreaker so iteration order never depends on map/slice
// ordering artifacts.
func equalSubCompare(a, b *Subproblem) bool {
	aUpper := a.branchedUpper
	bUpper := b.branchedUpper
	if aUpper != bUpper {
		return aUpper
	}
	return a.id.Sequence < b.id.Sequence
}
