package bcp

// fixExpr is the linear fixing expression spec.md §4.5 describes for one
// candidate: "dual bound + redCost·(1 - x_i)" for a variable currently at
// its lower bound, or the analogous "dual bound - redCost·(1 - x_i)" form
// for one at its upper bound (the sign of the substitution flips with
// which bound the candidate sits on).
type fixExpr struct {
	ref      *PoolSlotRef
	index    int // position in the variable pool / active set
	toStatus FSVarStat
	redCost  float64
	atUpper  bool
}

// value evaluates the fixing expression against the current dual bound:
// the tightest bound the subtree could ever produce if this variable
// were forced off its current bound.
func (f fixExpr) value(dualBound float64) float64 {
	if f.atUpper {
		return dualBound - f.redCost
	}
	return dualBound + f.redCost
}

// FixCandidates is the global registry of root-LP-boundary variables
// eligible for fixing by reduced cost (spec.md §4.5). It is populated
// exactly once per remaining-tree root, at the moment that root is first
// processed (spec.md §3, "Updated only when the remaining-tree root
// changes").
type FixCandidates struct {
	sense      Sense
	candidates map[int]fixExpr
}

// NewFixCandidates returns an empty registry for the given optimization
// sense.
func NewFixCandidates(sense Sense) *FixCandidates {
	return &FixCandidates{sense: sense, candidates: make(map[int]fixExpr)}
}

// Reset clears the registry, called whenever the remaining-tree root
// changes before repopulating from the new root's LP.
func (f *FixCandidates) Reset() {
	f.candidates = make(map[int]fixExpr)
}

// Populate records one candidate: a variable at index whose root-LP
// status was AtLowerBound or AtUpperBound, with the given reduced cost.
// toStatus is the status the variable would receive if fixed (FixedToLower
// or FixedToUpper). Per spec.md §8 invariant 6, a variable already
// globally fixed must never be added here by the caller.
func (f *FixCandidates) Populate(index int, ref *PoolSlotRef, lpStat LPVarStat, redCost float64, toStatus FSVarStat) {
	if lpStat != AtLowerBound && lpStat != AtUpperBound {
		return
	}
	f.candidates[index] = fixExpr{
		ref:      ref,
		index:    index,
		toStatus: toStatus,
		redCost:  redCost,
		atUpper:  lpStat == AtUpperBound,
	}
}

// Contains reports whether index is currently a registered candidate.
func (f *FixCandidates) Contains(index int) bool {
	_, ok := f.candidates[index]
	return ok
}

// Len returns the number of registered candidates.
func (f *FixCandidates) Len() int { return len(f.candidates) }

// FixedVar describes one variable that fixByRedCost has just globally
// fixed.
type FixedVar struct {
	Index    int
	Ref      *PoolSlotRef
	ToStatus FSVarStat
	// Activate is true when the fixed value is nonzero, signalling that
	// the variable must be queued for pricing/activation (spec.md §4.5:
	// "if their fixed value is nonzero - queued for activation via the
	// variable pool").
	Activate bool
}

// FixByRedCost re-evaluates every candidate against the current dual and
// primal bounds, globally fixing (and removing from the registry) every
// one whose fixing expression now exceeds the primal bound in the
// improving direction for sense (spec.md §4.5). It returns the variables
// that were fixed this call.
func (f *FixCandidates) FixByRedCost(dualBound, primalBound float64, isZero func(index int) bool) []FixedVar {
	var fixed []FixedVar
	for index, expr := range f.candidates {
		v := expr.value(dualBound)
		violates := false
		if f.sense == Min {
			violates = v > primalBound
		} else {
			violates = v < primalBound
		}
		if !violates {
			continue
		}
		fixed = append(fixed, FixedVar{
			Index:    index,
			Ref:      expr.ref,
			ToStatus: expr.toStatus,
			Activate: !isZero(index),
		})
		delete(f.candidates, index)
	}
	return fixed
}
