package bcp

import "context"

// SimplexMethod selects how LpSolver.Solve should resolve the LP
// (spec.md §4.2 step 1, §6 "LP-solver capability").
type SimplexMethod int

const (
	DualSimplex SimplexMethod = iota
	PrimalSimplex
	Barrier
	Approximate
)

func (m SimplexMethod) String() string {
	switch m {
	case DualSimplex:
		return "DualSimplex"
	case PrimalSimplex:
		return "PrimalSimplex"
	case Barrier:
		return "Barrier"
	case Approximate:
		return "Approximate"
	default:
		return "Unknown"
	}
}

// LpStatus is the outcome of one Solve call (spec.md §4.3: "A failed
// simplex call surfaces as Infeasible, Unbounded, LimitReached, or
// Error").
type LpStatus int

const (
	LpOptimal LpStatus = iota
	LpInfeasible
	LpUnbounded
	LpLimitReached
	LpError
)

func (s LpStatus) String() string {
	switch s {
	case LpOptimal:
		return "Optimal"
	case LpInfeasible:
		return "Infeasible"
	case LpUnbounded:
		return "Unbounded"
	case LpLimitReached:
		return "LimitReached"
	case LpError:
		return "Error"
	default:
		return "Unknown"
	}
}

// LpSolution is the result of a successful Solve.
type LpSolution struct {
	Status      LpStatus
	Value       float64
	Primal      []float64 // internal column space
	Dual        []float64 // internal row space
	ReducedCost []float64 // internal column space
	RowActivity []float64
	VarStatus   []LPVarStat
	SlackStatus []SlackStat
}

// LpSolver is the capability interface every LP engine must provide
// (spec.md §6): an opaque wire to a linear-program engine that the
// Master constructs once and passes down, per the design note in
// spec.md §9 ("replace dynamic dispatch through the LP-solver interface
// with a trait/interface whose methods return status enums"). A backend
// need not implement every method; unsupported ones return a *Error of
// KindLpIf.
type LpSolver interface {
	// Load (re)initializes the engine with a fresh formulation: sense,
	// objective, bounds, and the row matrix. basis is optional warm-start
	// basis information; a nil basis means cold-start.
	Load(ctx context.Context, sense Sense, obj, lb, ub []float64, rows []*Row, basis []LPVarStat) error

	Solve(ctx context.Context, method SimplexMethod) (*LpSolution, error)

	AddRows(ctx context.Context, rows []*Row) error
	RemRows(ctx context.Context, indices []int) error
	AddCols(ctx context.Context, cols []*Column) error
	RemCols(ctx context.Context, indices []int) error

	ChangeRhs(ctx context.Context, index int, value float64) error
	ChangeLBound(ctx context.Context, index int, value float64) error
	ChangeUBound(ctx context.Context, index int, value float64) error

	// SetIterationLimit bounds the number of simplex iterations a single
	// Solve call may perform; 0 means unlimited.
	SetIterationLimit(limit int)
	IterationLimit() int
}

// Capable reports whether solver implements an optional extension point
// beyond the base LpSolver interface (e.g. strong-branching iteration
// counts, or barrier-method tuning), returning a KindLpIf error when it
// does not. Problem-specific code uses this rather than a type switch so
// the failure is uniform across backends.
func Capable[T any](solver LpSolver) (T, error) {
	var zero T
	if ext, ok := solver.(T); ok {
		return ext, nil
	}
	return zero, New(KindLpIf, "LP backend does not implement requested capability")
}
