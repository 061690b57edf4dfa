package bcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeLpSolver is a minimal LpSolver test double: it records the
// formulation it was given and returns a canned solution (or an error) on
// Solve, without performing any actual simplex computation.
type fakeLpSolver struct {
	obj, lb, ub []float64
	rows        []*Row
	iterLimit   int

	solution *LpSolution
	solveErr error

	addedRows []*Row
	addedCols []*Column
}

func (f *fakeLpSolver) Load(_ context.Context, _ Sense, obj, lb, ub []float64, rows []*Row, _ []LPVarStat) error {
	f.obj, f.lb, f.ub, f.rows = obj, lb, ub, rows
	return nil
}

func (f *fakeLpSolver) Solve(context.Context, SimplexMethod) (*LpSolution, error) {
	if f.solveErr != nil {
		return nil, f.solveErr
	}
	return f.solution, nil
}

func (f *fakeLpSolver) AddRows(_ context.Context, rows []*Row) error {
	f.addedRows = append(f.addedRows, rows...)
	return nil
}
func (f *fakeLpSolver) RemRows(context.Context, []int) error { return nil }
func (f *fakeLpSolver) AddCols(_ context.Context, cols []*Column) error {
	f.addedCols = append(f.addedCols, cols...)
	return nil
}
func (f *fakeLpSolver) RemCols(context.Context, []int) error             { return nil }
func (f *fakeLpSolver) ChangeRhs(context.Context, int, float64) error    { return nil }
func (f *fakeLpSolver) ChangeLBound(context.Context, int, float64) error { return nil }
func (f *fakeLpSolver) ChangeUBound(context.Context, int, float64) error { return nil }
func (f *fakeLpSolver) SetIterationLimit(limit int)                     { f.iterLimit = limit }
func (f *fakeLpSolver) IterationLimit() int                             { return f.iterLimit }

func TestLpSubTranslationRoundTripLaw(t *testing.T) {
	a := assert.New(t)
	solver := &fakeLpSolver{solution: &LpSolution{Status: LpOptimal}}

	rows := []*Row{
		NewRow(2, Less, 10),
		NewRow(2, Less, 20),
	}
	rows[0].Insert(0, 1)
	rows[0].Insert(1, 2)
	rows[1].Insert(2, 1)

	cols := []*Column{
		NewColumn(0, 1, 0, 5),
		NewColumn(0, 2, 0, 5),
		NewColumn(0, 3, 0, 5),
	}

	eliminatedRow := []bool{false, false}
	eliminatedCol := []bool{false, true, false}
	fixedValue := []float64{0, 3, 0}

	l, err := NewLpSub(solver, Min, rows, cols, eliminatedRow, eliminatedCol, fixedValue)
	a.NoError(err)

	a.Equal(2, l.NCol())
	a.Equal(2, l.NRow())

	for i := 0; i < 3; i++ {
		internal := l.OriginalToInternalCol(i)
		if eliminatedCol[i] {
			a.Equal(-1, internal)
			continue
		}
		a.Equal(i, l.InternalToOriginalCol(internal), "round-trip law must hold for non-eliminated columns")
	}

	// row 0's rhs is adjusted: coeff of eliminated col 1 is 2, fixed value 3,
	// so rhs drops from 10 to 10 - 2*3 = 4.
	a.Equal(float64(4), solver.rows[0].Rhs)
	// row 1 does not reference the eliminated column, so its rhs is untouched.
	a.Equal(float64(20), solver.rows[1].Rhs)
}

func TestLpSubRejectsZeroColumns(t *testing.T) {
	solver := &fakeLpSolver{}
	_, err := NewLpSub(solver, Min, nil, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestLpSubSolveRejectsEmptyInternalLP(t *testing.T) {
	a := assert.New(t)
	solver := &fakeLpSolver{solution: &LpSolution{Status: LpOptimal}}
	cols := []*Column{NewColumn(0, 1, 0, 1)}
	l, err := NewLpSub(solver, Min, nil, cols, nil, []bool{true}, []float64{0})
	a.NoError(err)
	a.Equal(0, l.NCol())

	_, err = l.Solve(context.Background(), DualSimplex)
	a.Error(err)
}

func TestLpSubPrimalAtProjectsFromInternalSpace(t *testing.T) {
	a := assert.New(t)
	solver := &fakeLpSolver{solution: &LpSolution{Status: LpOptimal, Primal: []float64{4.0}}}
	cols := []*Column{
		NewColumn(0, 1, 0, 5),
		NewColumn(0, 1, 0, 5),
	}
	l, err := NewLpSub(solver, Min, nil, cols, nil, []bool{true, false}, []float64{2, 0})
	a.NoError(err)
	_, err = l.Solve(context.Background(), DualSimplex)
	a.NoError(err)

	a.Equal(float64(4.0), l.PrimalAt(1))
	a.Equal(float64(0), l.PrimalAt(0), "an eliminated column has no internal LP position")
}
