package bcp

import (
	"context"
	"fmt"
)

// SubproblemStatus is a tree node's position in the state machine of
// spec.md §4.2.
type SubproblemStatus int

const (
	Unprocessed SubproblemStatus = iota
	Processing
	Processed
	Dormant
	Fathomed
	SubproblemError
)

func (s SubproblemStatus) String() string {
	switch s {
	case Unprocessed:
		return "Unprocessed"
	case Processing:
		return "Processing"
	case Processed:
		return "Processed"
	case Dormant:
		return "Dormant"
	case Fathomed:
		return "Fathomed"
	case SubproblemError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Subproblem is one tree node (spec.md §3). The tree itself is an arena:
// parent is a weak back-pointer (never owns, never freed through it),
// children are owned and recursively destroyed with their parent (spec.md
// §9 design note on cyclic parent/child references).
type Subproblem struct {
	master *Master

	parent   *Subproblem
	children []*Subproblem

	level int
	id    Id
	status SubproblemStatus

	activeCons *ActiveSet[*Variable]
	activeVars *ActiveSet[*Constraint]

	varStatus   *VariableStatusSet
	lpVarStat   []LPVarStat
	slackStat   []SlackStat

	localDualBound float64

	appliedRule    BranchRule
	branchedUpper  bool

	tailOff *TailOff
	conBuf  *CutBuffer
	varBuf  *CutBuffer

	iteration int
	lp        *LpSub

	eliminatedCon []bool
	eliminatedVar []bool
	fixedValue    []float64
}

// newRootSubproblem constructs the root node, with all of the problem's
// initial constraints and variables active and nothing eliminated.
func newRootSubproblem(master *Master, cons *ActiveSet[*Variable], vars *ActiveSet[*Constraint]) *Subproblem {
	return &Subproblem{
		master:         master,
		level:          0,
		id:             NewId(0, 0),
		status:         Unprocessed,
		activeCons:     cons,
		activeVars:     vars,
		varStatus:      NewVariableStatusSet(vars.Len()),
		lpVarStat:      make([]LPVarStat, vars.Len()),
		slackStat:      make([]SlackStat, cons.Len()),
		localDualBound: master.sense.initialDual(),
		tailOff:        NewTailOff(master.params.tailOffNLps, master.params.tailOffPercent),
		conBuf:         NewCutBuffer(master.params.maxConBuffered),
		varBuf:         NewCutBuffer(master.params.maxVarBuffered),
		fixedValue:     make([]float64, vars.Len()),
	}
}

// newChildSubproblem constructs a child of parent, inheriting its active sets via
// shared (ref-counted) PoolSlotRefs and a cloned local VariableStatus,
// then applying rule (spec.md §3: "a child's active sets are derived
// from its parent's"; §4.2 "Branching").
func newChildSubproblem(parent *Subproblem, seq int64, rule BranchRule) (*Subproblem, error) {
	child := &Subproblem{
		master:         parent.master,
		parent:         parent,
		level:          parent.level + 1,
		id:             NewId(seq, 0),
		status:         Unprocessed,
		activeCons:     parent.activeCons.Clone(),
		activeVars:     parent.activeVars.Clone(),
		varStatus:      parent.varStatus.Clone(),
		lpVarStat:      append([]LPVarStat(nil), parent.lpVarStat...),
		slackStat:      append([]SlackStat(nil), parent.slackStat...),
		localDualBound: parent.localDualBound,
		appliedRule:    rule,
		tailOff:        NewTailOff(parent.master.params.tailOffNLps, parent.master.params.tailOffPercent),
		conBuf:         NewCutBuffer(parent.master.params.maxConBuffered),
		varBuf:         NewCutBuffer(parent.master.params.maxVarBuffered),
		fixedValue:     append([]float64(nil), parent.fixedValue...),
	}
	if vb, ok := rule.(varBoundRule); ok {
		child.branchedUpper = vb.status == SetToUpper
	}
	if err := rule.Apply(child.varStatus); err != nil {
		return nil, Wrap(KindBranchingRule, err, "applying branch rule to child")
	}
	parent.children = append(parent.children, child)
	return child, nil
}

// Status returns the node's current state-machine status.
func (s *Subproblem) Status() SubproblemStatus { return s.status }

// Level returns the node's depth in the tree (root is 0).
func (s *Subproblem) Level() int { return s.level }

// ID returns the node's stable identity.
func (s *Subproblem) ID() Id { return s.id }

// LocalDualBound returns the node's own dual bound (its parent's if not
// yet processed, or its LP value once solved).
func (s *Subproblem) LocalDualBound() float64 { return s.localDualBound }

// Release recursively drops every PoolSlotRef owned by this node and its
// descendants, matching spec.md §3's "a Fathomed node releases all
// PoolSlotRefs" and the arena's "Subproblem exclusively owns its
// children (recursive destruction)".
func (s *Subproblem) Release() {
	s.activeCons.Release()
	s.activeVars.Release()
	for _, c := range s.children {
		c.Release()
	}
	s.children = nil
}

func (s *Subproblem) buildLpSub() error {
	conItems := s.activeCons.Items()
	varItems := s.activeVars.Items()

	rows := make([]*Row, len(conItems))
	for i, item := range conItems {
		con := item.(*Constraint)
		row := NewRow(len(varItems), con.Sense, con.Rhs)
		for j := range varItems {
			v := varItems[j].(*Variable)
			if c := con.CoeffOf(v); c != 0 {
				row.Insert(j, c)
			}
		}
		rows[i] = row
	}

	// eliminatedCon/eliminatedVar are recomputed fresh against the
	// active sets' current lengths on every call, since buffered
	// additions/removals change those lengths between cutting/pricing
	// iterations (spec.md §4.2 step 9).
	s.eliminatedCon = make([]bool, len(conItems))
	s.eliminatedVar = make([]bool, len(varItems))
	if len(s.fixedValue) < len(varItems) {
		grown := make([]float64, len(varItems))
		copy(grown, s.fixedValue)
		s.fixedValue = grown
	}
	for j := range varItems {
		if j < s.varStatus.Len() && s.varStatus.Get(j).IsFixed() {
			s.eliminatedVar[j] = true
		}
	}

	lp, err := NewLpSub(s.master.lpSolver, s.master.sense, rows, s.columnsFrom(varItems), s.eliminatedCon, s.eliminatedVar, s.fixedValue)
	if err != nil {
		return err
	}
	s.lp = lp
	return nil
}

func (s *Subproblem) columnsFrom(varItems []poolItem) []*Column {
	cols := make([]*Column, len(varItems))
	for j, item := range varItems {
		v := item.(*Variable)
		lb, ub := v.Lb, v.Ub
		if j < s.varStatus.Len() {
			switch s.varStatus.Get(j) {
			case SetToLower, FixedToLower:
				ub = lb
			case SetToUpper, FixedToUpper:
				lb = ub
			}
		}
		cols[j] = NewColumn(0, v.Obj, lb, ub)
	}
	return cols
}

// Process runs the cutting/pricing loop of spec.md §4.2 to completion: it
// returns Fathomed if the node was bounded, infeasible, or yielded an
// improving integer-feasible solution; Processed if it must branch
// (children are then constructed separately by the caller via Branch);
// or Dormant if the per-round iteration limit was reached first.
func (s *Subproblem) Process(ctx context.Context) (SubproblemStatus, error) {
	s.status = Processing

	if err := s.buildLpSub(); err != nil {
		s.status = SubproblemError
		return s.status, err
	}

	for {
		s.iteration++
		if s.master.params.maxIterations > 0 && s.iteration > s.master.params.maxIterations {
			s.status = Dormant
			return s.status, nil
		}

		sol, err := s.lp.Solve(ctx, DualSimplex)
		if err != nil {
			s.status = SubproblemError
			return s.status, err
		}

		if sol.Status == LpInfeasible {
			if s.master.makeFeasible != nil {
				if recovered, rerr := s.master.makeFeasible(ctx, s); rerr == nil && recovered {
					continue
				}
			}
			s.status = Fathomed
			return s.status, nil
		}
		if sol.Status != LpOptimal {
			s.status = SubproblemError
			return s.status, Newf(KindLpStatus, "unexpected LP status %s", sol.Status)
		}

		s.localDualBound = sol.Value

		// step 2: fathom by bound
		if !s.master.betterDual(sol.Value) {
			s.status = Fathomed
			return s.status, nil
		}

		// step 4: fix/set by reduced cost (root only)
		if s.parent == nil {
			s.fixByRedCost(sol)
		}

		// step 5: integer feasibility
		if feasible, value := s.checkFeasible(sol); feasible {
			if err := s.master.primalBound(value); err == nil {
				s.master.openSubs.NotifyFeasibleFound()
			}
			s.status = Fathomed
			return s.status, nil
		}

		// step 6: tailing-off
		s.tailOff.Insert(sol.Value)
		if s.tailOff.TailedOff() {
			s.status = Processed
			return s.status, nil
		}

		// step 7: separation
		cuts, err := s.separate(ctx, sol)
		if err != nil {
			return SubproblemError, err
		}
		if len(cuts) > 0 {
			if err := s.applyBuffers(ctx); err != nil {
				return SubproblemError, err
			}
			continue
		}

		// step 8: pricing
		if s.iteration%s.master.params.pricingFrequency == 0 {
			priced, perr := s.price(ctx, sol)
			if perr != nil {
				return SubproblemError, perr
			}
			if priced > 0 {
				if err := s.applyBuffers(ctx); err != nil {
					return SubproblemError, err
				}
				continue
			}
		}

		// step 10: nothing generated, branch
		s.status = Processed
		return s.status, nil
	}
}

func (s *Subproblem) checkFeasible(sol *LpSolution) (bool, float64) {
	for j, v := range s.activeVars.Items() {
		variable := v.(*Variable)
		if !variable.IsIntegral() {
			continue
		}
		val := s.lp.PrimalAt(j)
		if fractionality(val) > DefaultMachineEps {
			return false, 0
		}
	}
	if s.master.feasibilityChecker != nil {
		return s.master.feasibilityChecker(s, sol)
	}
	return true, sol.Value
}

func (s *Subproblem) fixByRedCost(sol *LpSolution) {
	for j := range s.activeVars.Items() {
		if j >= len(sol.VarStatus) {
			continue
		}
		st := sol.VarStatus[j]
		toStatus := FixedToLower
		if st == AtUpperBound {
			toStatus = FixedToUpper
		}
		var redCost float64
		if j < len(sol.ReducedCost) {
			redCost = sol.ReducedCost[j]
		}
		s.master.fixCandidates.Populate(j, s.activeVars.At(j), st, redCost, toStatus)
	}
	fixed := s.master.fixCandidates.FixByRedCost(s.localDualBound, s.master.primal, func(j int) bool {
		return s.lp.PrimalAt(j) == 0
	})
	for _, f := range fixed {
		_ = s.varStatus.Set(f.Index, f.ToStatus)
	}
}

func (s *Subproblem) separate(ctx context.Context, sol *LpSolution) ([]*Constraint, error) {
	if s.master.separator == nil {
		return nil, nil
	}
	cuts, err := s.master.separator(ctx, s, sol)
	if err != nil {
		return nil, Wrap(KindConstraint, err, "separation")
	}
	for _, cut := range cuts {
		ref, ierr := s.master.cutPool.Insert(cut)
		if ierr != nil {
			return nil, ierr
		}
		if berr := s.conBuf.Add(ref); berr != nil {
			return nil, berr
		}
	}
	return cuts, nil
}

func (s *Subproblem) price(ctx context.Context, sol *LpSolution) (int, error) {
	if s.master.pricer == nil {
		return 0, nil
	}
	priced, err := s.master.pricer(ctx, s, sol)
	if err != nil {
		return 0, Wrap(KindAddVar, err, "pricing")
	}
	for _, v := range priced {
		ref, ierr := s.master.varPool.Insert(v)
		if ierr != nil {
			return 0, ierr
		}
		if berr := s.varBuf.Add(ref); berr != nil {
			return 0, berr
		}
	}
	return len(priced), nil
}

func (s *Subproblem) applyBuffers(ctx context.Context) error {
	for _, idx := range s.conBuf.DrainRemovals() {
		s.activeCons.RemoveAt(idx)
	}
	added := s.conBuf.Drain(s.master.params.maxConAdd)
	for _, ref := range added {
		s.activeCons.Append(ref, nil)
	}

	for _, idx := range s.varBuf.DrainRemovals() {
		s.activeVars.RemoveAt(idx)
	}
	addedVars := s.varBuf.Drain(s.master.params.maxVarAdd)
	for _, ref := range addedVars {
		s.activeVars.Append(ref, nil)
	}

	if len(addedVars) > 0 {
		s.tailOff.Reset()
	}

	return s.buildLpSub()
}

// Branch produces this node's children via factory, applied to the
// fractional variables currently active, and registers them with seq
// starting at nextSeq (the caller is the Master, which owns the global
// sequence counter).
func (s *Subproblem) Branch(factory RuleFactory, nextSeq func() int64) ([]*Subproblem, error) {
	if s.status != Processed {
		return nil, Newf(KindPhase, "cannot branch subproblem %s in status %s", s.id, s.status)
	}

	var candidates []BranchingCandidate
	for j, item := range s.activeVars.Items() {
		v := item.(*Variable)
		if !v.IsIntegral() {
			continue
		}
		val := s.lp.PrimalAt(j)
		if fractionality(val) > DefaultMachineEps {
			candidates = append(candidates, BranchingCandidate{Index: j, Value: val})
		}
	}

	rules, err := factory(candidates)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, New(KindBranchingRule, "rule factory returned no rules")
	}

	children := make([]*Subproblem, 0, len(rules))
	for _, rule := range rules {
		child, cerr := newChildSubproblem(s, nextSeq(), rule)
		if cerr != nil {
			return nil, cerr
		}
		children = append(children, child)
	}
	return children, nil
}

func (s *Subproblem) String() string {
	return fmt.Sprintf("Subproblem(id=%s, level=%d, status=%s)", s.id, s.level, s.status)
}
