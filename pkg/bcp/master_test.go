package bcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newVarRef(t *testing.T, v *Variable) *PoolSlotRef {
	t.Helper()
	slot := newPoolSlot()
	if err := slot.Fill(v); err != nil {
		t.Fatal(err)
	}
	return newPoolSlotRef(slot, 0)
}

// TestMasterTrivialMinLpScenario exercises spec.md §8 scenario 1: sense
// Min, a single continuous variable x in [0, 10] with objective 1, no
// constraints; the optimal LP solution sets x to its lower bound, so the
// search terminates Optimal with a primal bound of 0 after a single node.
func TestMasterTrivialMinLpScenario(t *testing.T) {
	a := assert.New(t)

	solver := &fakeLpSolver{solution: &LpSolution{
		Status:      LpOptimal,
		Value:       0,
		Primal:      []float64{0},
		VarStatus:   []LPVarStat{AtLowerBound},
		ReducedCost: []float64{1},
	}}

	m := NewMaster(Min,
		WithLpSolver(solver),
		WithFirstSub(func(m *Master) (*ActiveSet[*Variable], *ActiveSet[*Constraint], error) {
			cons := NewActiveSetWithCo[*Variable]()
			vars := NewActiveSetWithCo[*Constraint]()
			v := NewVariable(1, 0, 10, Continuous, nil, 1)
			vars.Append(newVarRef(t, v), nil)
			return cons, vars, nil
		}),
	)

	status, err := m.Optimize(context.Background())
	a.NoError(err)
	a.Equal(StatusOptimal, status)
	a.Equal(float64(0), m.PrimalValue())
}

// TestMasterFathomByBoundScenario exercises spec.md §8 scenario 2: the
// root LP value (5.0) is no better than the already-established primal
// bound (4.0), so the root is fathomed by bound without ever branching.
func TestMasterFathomByBoundScenario(t *testing.T) {
	a := assert.New(t)

	dir := t.TempDir()
	optimumPath := filepath.Join(dir, "optimum.txt")
	a.NoError(os.WriteFile(optimumPath, []byte("problem 4.0\n"), 0o644))

	solver := &fakeLpSolver{solution: &LpSolution{
		Status:      LpOptimal,
		Value:       5.0,
		Primal:      []float64{1},
		VarStatus:   []LPVarStat{Basic},
		ReducedCost: []float64{0},
	}}

	branched := false
	m := NewMaster(Min,
		WithLpSolver(solver),
		WithOptimumFile(optimumPath),
		WithBranchFactory(func(c []BranchingCandidate) ([]BranchRule, error) {
			branched = true
			return CloseHalfRuleFactory(c, 0)
		}),
		WithFirstSub(func(m *Master) (*ActiveSet[*Variable], *ActiveSet[*Constraint], error) {
			cons := NewActiveSetWithCo[*Variable]()
			vars := NewActiveSetWithCo[*Constraint]()
			v := NewVariable(1, 0, 10, Integer, nil, 1)
			vars.Append(newVarRef(t, v), nil)
			return cons, vars, nil
		}),
	)

	status, err := m.Optimize(context.Background())
	a.NoError(err)
	a.Equal(StatusOptimal, status)
	a.Equal(float64(4.0), m.PrimalValue(), "pre-seeded primal bound from the optimum file must be unchanged")
	a.False(branched, "a bound-fathomed root must never reach the branch factory")
}

// TestMasterGuaranteeTermination exercises spec.md §8 scenario 6: with
// Guarantee=5.0, a primal bound of 100 and dual bound of 96 yields a gap
// of |100-96|/96 = about 4.17%, which is within the guarantee, so the next
// gate check reports Guaranteed.
func TestMasterGuaranteeTermination(t *testing.T) {
	a := assert.New(t)
	m := NewMaster(Min)
	m.params.guarantee = 5.0
	m.primal = 100
	m.dual = 96
	m.timer = NewTimer()

	a.InDelta(4.0/96.0*100, m.Guarantee(), 1e-9)
	a.True(m.Guaranteed())
	a.Equal(StatusGuaranteed, m.checkGates())
}

func TestMasterOptimizeRequiresFirstSub(t *testing.T) {
	m := NewMaster(Min, WithLpSolver(&fakeLpSolver{}))
	status, err := m.Optimize(context.Background())
	assert.Error(t, err)
	assert.Equal(t, StatusError, status)
}
