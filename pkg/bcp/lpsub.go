package bcp

import "context"

// LpSub is the node-local linear program: it presents the LP solver a
// compact, up-to-date formulation while hiding variables that are
// globally fixed or locally set, and constraints eliminated as
// non-binding (spec.md §4.3). It maintains two bidirectional translation
// arrays between "original" indices (positions in the node's active
// sets) and "internal" indices (positions actually loaded into the LP).
type LpSub struct {
	solver LpSolver
	sense  Sense

	// row translation
	origToInternalRow []int // -1 if eliminated
	internalToOrigRow []int

	// column translation
	origToInternalCol []int // -1 if eliminated
	internalToOrigCol []int

	rhsAdjust []float64 // per original row, substitution contribution of eliminated columns

	lastSolution *LpSolution
}

// NewLpSub constructs an LpSub for the given active constraints and
// variables, eliminating rows flagged eliminatedRow and columns flagged
// eliminatedCol (fixed/set variables), substituting each eliminated
// column's fixed value into the rhs of every row it appears in (spec.md
// §4.3: "Elimination of a variable substitutes its fixed value into the
// rhs of every row it appears in").
func NewLpSub(solver LpSolver, sense Sense, rows []*Row, cols []*Column, eliminatedRow, eliminatedCol []bool, fixedValue []float64) (*LpSub, error) {
	if len(cols) == 0 {
		return nil, New(KindLpSub, "cannot build LpSub with zero columns")
	}

	l := &LpSub{
		solver:            solver,
		sense:             sense,
		origToInternalRow: make([]int, len(rows)),
		origToInternalCol: make([]int, len(cols)),
		rhsAdjust:         make([]float64, len(rows)),
	}

	for i := range l.origToInternalRow {
		l.origToInternalRow[i] = -1
	}
	for j := range l.origToInternalCol {
		l.origToInternalCol[j] = -1
	}

	internalCols := make([]*Column, 0, len(cols))
	for j, col := range cols {
		if eliminatedCol[j] {
			continue
		}
		l.origToInternalCol[j] = len(internalCols)
		l.internalToOrigCol = append(l.internalToOrigCol, j)
		internalCols = append(internalCols, col)
	}

	// substitution contribution: for every eliminated column, subtract its
	// fixed value times its coefficient from the rhs of every row.
	adjustedRows := make([]*Row, 0, len(rows))
	internalRowCount := 0
	for i, row := range rows {
		if eliminatedRow[i] {
			continue
		}
		adjustedRhs := row.Rhs
		for n := 0; n < row.Nnz(); n++ {
			idx, coeff := row.At(n)
			if idx < len(eliminatedCol) && eliminatedCol[idx] {
				adjustedRhs -= coeff * fixedValue[idx]
			}
		}
		l.rhsAdjust[i] = row.Rhs - adjustedRhs
		l.origToInternalRow[i] = internalRowCount
		l.internalToOrigRow = append(l.internalToOrigRow, i)
		adjustedRows = append(adjustedRows, &Row{SparseVec: row.SparseVec, Sense: row.Sense, Rhs: adjustedRhs})
		internalRowCount++
	}

	obj := make([]float64, len(internalCols))
	lb := make([]float64, len(internalCols))
	ub := make([]float64, len(internalCols))
	for j, col := range internalCols {
		obj[j], lb[j], ub[j] = col.Obj, col.Lb, col.Ub
	}

	if err := solver.Load(context.Background(), sense, obj, lb, ub, adjustedRows, nil); err != nil {
		return nil, Wrap(KindLpSub, err, "loading LpSub")
	}

	return l, nil
}

// NRow returns the current internal row count.
func (l *LpSub) NRow() int { return len(l.internalToOrigRow) }

// NCol returns the current internal column count.
func (l *LpSub) NCol() int { return len(l.internalToOrigCol) }

// OriginalToInternal translates an original (active-set) row or column
// index to its internal LP position, or -1 if eliminated.
func (l *LpSub) OriginalToInternalCol(i int) int { return l.origToInternalCol[i] }
func (l *LpSub) OriginalToInternalRow(i int) int { return l.origToInternalRow[i] }

// InternalToOriginal translates an internal LP position back to its
// original active-set index. Satisfies the round-trip law of spec.md §8:
// internalToOriginal(originalToInternal(i)) == i whenever i is not
// eliminated.
func (l *LpSub) InternalToOriginalCol(j int) int { return l.internalToOrigCol[j] }
func (l *LpSub) InternalToOriginalRow(j int) int { return l.internalToOrigRow[j] }

// Solve runs the LP via the given method and records the result.
func (l *LpSub) Solve(ctx context.Context, method SimplexMethod) (*LpSolution, error) {
	if l.NCol() == 0 {
		return nil, New(KindLpStatus, "empty LP: zero columns cannot be solved")
	}
	sol, err := l.solver.Solve(ctx, method)
	if err != nil {
		return nil, Wrap(KindLp, err, "solving LpSub")
	}
	l.lastSolution = sol
	return sol, nil
}

// LastSolution returns the most recent Solve result, or nil if none yet.
func (l *LpSub) LastSolution() *LpSolution { return l.lastSolution }

// PrimalAt returns the primal value of the original-indexed column i,
// projected back from internal LP space; 0 if eliminated (a fixed/set
// variable holds its fixed value, tracked by the caller's VariableStatus
// rather than here).
func (l *LpSub) PrimalAt(i int) float64 {
	if l.lastSolution == nil {
		return 0
	}
	j := l.origToInternalCol[i]
	if j < 0 || j >= len(l.lastSolution.Primal) {
		return 0
	}
	return l.lastSolution.Primal[j]
}

// AddRows appends rows to the LP, each already expressed with rhs
// adjusted for currently-eliminated columns, and extends the translation
// arrays. Per spec.md §4.3, translation invariants are restored after
// every batch.
func (l *LpSub) AddRows(ctx context.Context, origIndices []int, rows []*Row) error {
	if err := l.solver.AddRows(ctx, rows); err != nil {
		return Wrap(KindLpSub, err, "AddRows")
	}
	for _, oi := range origIndices {
		if oi >= len(l.origToInternalRow) {
			grown := make([]int, oi+1)
			copy(grown, l.origToInternalRow)
			for k := len(l.origToInternalRow); k < len(grown); k++ {
				grown[k] = -1
			}
			l.origToInternalRow = grown
		}
		l.origToInternalRow[oi] = len(l.internalToOrigRow)
		l.internalToOrigRow = append(l.internalToOrigRow, oi)
	}
	return nil
}

// AddCols appends cols to the LP and extends the translation arrays,
// mirroring AddRows.
func (l *LpSub) AddCols(ctx context.Context, origIndices []int, cols []*Column) error {
	if err := l.solver.AddCols(ctx, cols); err != nil {
		return Wrap(KindLpSub, err, "AddCols")
	}
	for _, oi := range origIndices {
		if oi >= len(l.origToInternalCol) {
			grown := make([]int, oi+1)
			copy(grown, l.origToInternalCol)
			for k := len(l.origToInternalCol); k < len(grown); k++ {
				grown[k] = -1
			}
			l.origToInternalCol = grown
		}
		l.origToInternalCol[oi] = len(l.internalToOrigCol)
		l.internalToOrigCol = append(l.internalToOrigCol, oi)
	}
	return nil
}
