package bcp

import (
	"context"
	"time"

	"github.com/abacus-go/bcp/internal/telemetry"
)

// Status is the result of a completed optimize() call (spec.md §4.1).
type Status int

const (
	StatusUnprocessed Status = iota
	StatusProcessing
	StatusOptimal
	StatusError
	StatusOutOfMemory
	StatusGuaranteed
	StatusMaxLevel
	StatusMaxCpuTime
	StatusMaxNSub
	StatusMaxCowTime
	StatusExceptionFathom
)

func (s Status) String() string {
	switch s {
	case StatusUnprocessed:
		return "Unprocessed"
	case StatusProcessing:
		return "Processing"
	case StatusOptimal:
		return "Optimal"
	case StatusError:
		return "Error"
	case StatusOutOfMemory:
		return "OutOfMemory"
	case StatusGuaranteed:
		return "Guaranteed"
	case StatusMaxLevel:
		return "MaxLevel"
	case StatusMaxCpuTime:
		return "MaxCpuTime"
	case StatusMaxNSub:
		return "MaxNSub"
	case StatusMaxCowTime:
		return "MaxCowTime"
	case StatusExceptionFathom:
		return "ExceptionFathom"
	default:
		return "Unknown"
	}
}

// Separator generates violated constraints for node's current LP
// solution (spec.md §4.2 step 7). Problem-specific; supplied as a
// callback per spec.md §1's Non-goals.
type Separator func(ctx context.Context, node *Subproblem, sol *LpSolution) ([]*Constraint, error)

// Pricer generates variables with negative reduced cost for node's
// current LP solution (spec.md §4.2 step 8).
type Pricer func(ctx context.Context, node *Subproblem, sol *LpSolution) ([]*Variable, error)

// MakeFeasible attempts to restore feasibility of an infeasible node
// (spec.md §4.2 step 3), returning whether it succeeded.
type MakeFeasible func(ctx context.Context, node *Subproblem) (bool, error)

// FeasibilityChecker supplies problem-specific feasibility requirements
// beyond plain integrality (spec.md §4.2 step 5); sol's activity and
// primal vectors may be consulted to compute an integer-rounded
// objective value.
type FeasibilityChecker func(node *Subproblem, sol *LpSolution) (bool, float64)

// FirstSub materializes the root Subproblem's active constraint and
// variable sets (spec.md §4.1: "calls user-supplied firstSub() to
// materialize the root").
type FirstSub func(m *Master) (*ActiveSet[*Variable], *ActiveSet[*Constraint], error)

// masterParams bundles the resource limits and tuning knobs read from
// the ParamTable at construction time (spec.md §6).
type masterParams struct {
	enumerationStrategy EnumerationStrategy
	guarantee           float64
	maxLevel            int
	maxNSub             int
	maxCpuTime          time.Duration
	maxCowTime          time.Duration
	objInteger          bool
	tailOffNLps         int
	tailOffPercent      float64
	pricingFrequency    int
	maxConAdd           int
	maxConBuffered      int
	maxVarAdd           int
	maxVarBuffered      int
	maxIterations       int
	newRootReOptimize   bool
	dormantThreshold    int
}

func defaultMasterParams() masterParams {
	return masterParams{
		enumerationStrategy: BestFirst,
		guarantee:           0,
		maxLevel:            0,
		maxNSub:             0,
		tailOffNLps:         10,
		tailOffPercent:      0.001,
		pricingFrequency:    1,
		maxConAdd:           100,
		maxConBuffered:      1000,
		maxVarAdd:           100,
		maxVarBuffered:      1000,
		maxIterations:       0,
		dormantThreshold:    1,
	}
}

// MasterOption configures a Master at construction (the teacher's
// functional-options idiom, generalized from per-solver options to
// per-engine options).
type MasterOption func(*Master)

func WithParamTable(p *ParamTable) MasterOption {
	return func(m *Master) { m.applyParamTable(p) }
}

func WithLpSolver(solver LpSolver) MasterOption {
	return func(m *Master) { m.lpSolver = solver }
}

func WithSeparator(sep Separator) MasterOption {
	return func(m *Master) { m.separator = sep }
}

func WithPricer(pricer Pricer) MasterOption {
	return func(m *Master) { m.pricer = pricer }
}

func WithMakeFeasible(fn MakeFeasible) MasterOption {
	return func(m *Master) { m.makeFeasible = fn }
}

func WithFeasibilityChecker(fn FeasibilityChecker) MasterOption {
	return func(m *Master) { m.feasibilityChecker = fn }
}

func WithFirstSub(fn FirstSub) MasterOption {
	return func(m *Master) { m.firstSub = fn }
}

func WithBranchFactory(factory RuleFactory) MasterOption {
	return func(m *Master) { m.branchFactory = factory }
}

func WithOptimumFile(path string) MasterOption {
	return func(m *Master) { m.optimumFile = path }
}

func WithTreeLog(w TreeLogWriter) MasterOption {
	return func(m *Master) { m.treeLog = w }
}

// Master is the process-wide coordinator (spec.md §3). It exclusively
// owns the pools, history, open-set, fix-candidates, and the tree root
// (spec.md §3, "Ownership summary"); per spec.md §9's design note on
// global mutable state, it is constructed explicitly and passed by
// reference into every subcomponent rather than held as a package-level
// singleton.
type Master struct {
	sense Sense
	eps   float64

	primal float64
	dual   float64

	params masterParams

	varPool *Pool
	conPool *Pool
	cutPool *Pool

	fixCandidates *FixCandidates
	history       *History
	openSubs      *OpenSubproblems

	root            *Subproblem
	remainingRoot   *Subproblem
	seq             int64

	timer *Timer

	lpSolver           LpSolver
	separator          Separator
	pricer             Pricer
	makeFeasible       MakeFeasible
	feasibilityChecker FeasibilityChecker
	firstSub           FirstSub
	branchFactory      RuleFactory

	optimumFile string
	treeLog     TreeLogWriter

	status Status
	branchRuns int
}

// NewMaster returns a Master for the given sense, configured by opts.
func NewMaster(sense Sense, opts ...MasterOption) *Master {
	m := &Master{
		sense:  sense,
		eps:    DefaultEps,
		primal: sense.initialPrimal(),
		dual:   sense.initialDual(),
		params: defaultMasterParams(),
		history: NewHistory(),
		status: StatusUnprocessed,
	}
	m.fixCandidates = NewFixCandidates(sense)
	for _, opt := range opts {
		opt(m)
	}
	m.openSubs = NewOpenSubproblems(sense, m.params.enumerationStrategy, m.params.dormantThreshold)
	if m.branchFactory == nil {
		m.branchFactory = func(c []BranchingCandidate) ([]BranchRule, error) {
			return CloseHalfRuleFactory(c, 0)
		}
	}
	return m
}

func (m *Master) applyParamTable(p *ParamTable) {
	if v, ok := p.Float(ParamGuarantee); ok {
		m.params.guarantee = v
	}
	if v, ok := p.Int(ParamMaxLevel); ok {
		m.params.maxLevel = v
	}
	if v, ok := p.Int(ParamMaxNSub); ok {
		m.params.maxNSub = v
	}
	if v, ok := p.Duration(ParamMaxCpuTime); ok {
		m.params.maxCpuTime = v
	}
	if v, ok := p.Duration(ParamMaxCowTime); ok {
		m.params.maxCowTime = v
	}
	if v, ok := p.Bool(ParamObjInteger); ok {
		m.params.objInteger = v
	}
	if v, ok := p.Int(ParamTailOffNLps); ok {
		m.params.tailOffNLps = v
	}
	if v, ok := p.Float(ParamTailOffPercent); ok {
		m.params.tailOffPercent = v
	}
	if v, ok := p.Int(ParamPricingFrequency); ok && v > 0 {
		m.params.pricingFrequency = v
	}
	if v, ok := p.Int(ParamMaxConAdd); ok {
		m.params.maxConAdd = v
	}
	if v, ok := p.Int(ParamMaxConBuffered); ok {
		m.params.maxConBuffered = v
	}
	if v, ok := p.Int(ParamMaxVarAdd); ok {
		m.params.maxVarAdd = v
	}
	if v, ok := p.Int(ParamMaxVarBuffered); ok {
		m.params.maxVarBuffered = v
	}
	if v, ok := p.Int(ParamMaxIterations); ok {
		m.params.maxIterations = v
	}
	if v, ok := p.Bool(ParamNewRootReOptimize); ok {
		m.params.newRootReOptimize = v
	}
	if v, err := p.Enum(ParamEnumerationStrategy, "BestFirst", "BreadthFirst", "DepthFirst", "DiveAndBest"); err == nil {
		switch v {
		case "BestFirst":
			m.params.enumerationStrategy = BestFirst
		case "BreadthFirst":
			m.params.enumerationStrategy = BreadthFirst
		case "DepthFirst":
			m.params.enumerationStrategy = DepthFirst
		case "DiveAndBest":
			m.params.enumerationStrategy = DiveAndBest
		}
	}
}

// InitializePools constructs the three global pools and seeds them with
// the problem's initial constraints, cuts, and variables (spec.md §4.1).
func (m *Master) InitializePools(initialCons, initialCuts []*Constraint, initialVars []*Variable, varPoolSize, cutPoolSize int, dynamicCutPool bool) error {
	m.conPool = NewStandardPool(len(initialCons))
	if dynamicCutPool {
		m.cutPool = NewNonDuplPool(cutPoolSize)
	} else {
		m.cutPool = NewStandardPool(cutPoolSize)
	}
	m.varPool = NewStandardPool(varPoolSize)

	for _, c := range initialCons {
		if _, err := m.conPool.Insert(c); err != nil {
			return err
		}
	}
	for _, c := range initialCuts {
		if _, err := m.cutPool.Insert(c); err != nil {
			return err
		}
	}
	for _, v := range initialVars {
		if _, err := m.varPool.Insert(v); err != nil {
			return err
		}
	}
	return nil
}

// primalBound is the monotone updater for the optimal-primal bound
// (spec.md §4.1). For ObjInteger problems the stored value is rounded
// conservatively toward the feasible integer region before the
// monotonicity check (spec.md §8 scenario 3).
func (m *Master) primalBound(x float64) error {
	if m.params.objInteger {
		x = m.sense.roundInteger(x, m.eps)
	}
	if !m.sense.better(x, m.primal, m.eps) {
		return New(KindPrimalBound, "primal bound update would not improve the incumbent")
	}
	m.primal = x
	m.history.Record(time.Now(), m.primal, m.dual)
	telemetry.L().Info().Log("primal bound improved")
	if m.treeLog != nil {
		if m.sense == Min {
			_ = m.treeLog.UpperBound(m.primal)
		} else {
			_ = m.treeLog.LowerBound(m.primal)
		}
	}
	return nil
}

// dualBound is the monotone updater for the optimal-dual bound: it
// accepts x only when x moves the dual bound towards the primal bound.
func (m *Master) dualBound(x float64) error {
	if m.sense.worseOrEqual(m.dual, x, m.eps) && x != m.dual {
		return New(KindDualBound, "dual bound update would not improve the incumbent")
	}
	m.dual = x
	m.history.Record(time.Now(), m.primal, m.dual)
	return nil
}

// betterDual reports whether a node dual bound of x is strictly better
// than the current primal bound, i.e. the node could still improve on
// the incumbent.
func (m *Master) betterDual(x float64) bool { return m.sense.better(x, m.primal, m.eps) }

// betterPrimal reports whether x would strictly improve the current
// primal bound.
func (m *Master) betterPrimal(x float64) bool { return m.sense.better(x, m.primal, m.eps) }

// primalViolated reports whether a node bound of x cannot possibly
// improve on the current primal bound, i.e. the node is bound-violated
// and eligible for fathoming by bound (spec.md §8 scenario 3: after the
// primal bound is tightened to 9, primalViolated(10) is true since 10 is
// no better than 9 for minimization).
func (m *Master) primalViolated(x float64) bool { return m.sense.worseOrEqual(x, m.primal, m.eps) }

// Guarantee computes the current optimality gap as a percentage,
// |(primal - dual) / dual| * 100 (spec.md §4.1); returns 0 when dual is
// zero (undefined).
func (m *Master) Guarantee() float64 {
	if m.dual == 0 {
		return 0
	}
	return abs((m.primal-m.dual)/m.dual) * 100
}

// Guaranteed reports whether the current guarantee meets the required
// threshold (spec.md §8 scenario 6).
func (m *Master) Guaranteed() bool {
	return m.Guarantee() <= m.params.guarantee
}

// RRoot updates the root of the remaining tree and resets the
// fix-candidate registry (spec.md §4.1). When reoptimize is requested and
// the NewRootReOptimize parameter is set, newRoot's status is set back to
// Unprocessed; RRoot does not put newRoot on the open-subproblem queue,
// so no re-optimization of it is started here.
func (m *Master) RRoot(newRoot *Subproblem, reoptimize bool) {
	m.remainingRoot = newRoot
	m.fixCandidates.Reset()
	if reoptimize && m.params.newRootReOptimize {
		newRoot.status = Unprocessed
	}
}

// nextSeq returns the next global sequence number for a new Subproblem
// id.
func (m *Master) nextSeq() int64 {
	m.seq++
	return m.seq
}

// checkGates evaluates the four termination gates in order (spec.md
// §4.1 "Select algorithm"): CPU time, wall-clock time, guarantee
// reached, max subproblems. Returns the tripped status, or
// StatusUnprocessed if none tripped.
func (m *Master) checkGates() Status {
	if m.params.maxCpuTime > 0 && m.timer.Cpu() > m.params.maxCpuTime {
		return StatusMaxCpuTime
	}
	if m.params.maxCowTime > 0 && m.timer.Wall() > m.params.maxCowTime {
		return StatusMaxCowTime
	}
	if m.params.guarantee > 0 && m.Guaranteed() {
		return StatusGuaranteed
	}
	if m.params.maxNSub > 0 && m.branchRuns >= m.params.maxNSub {
		return StatusMaxNSub
	}
	return StatusUnprocessed
}

// fathomTheSubTree marks node and its whole subtree Fathomed, releasing
// their pool references (spec.md §4.1: "Any gate trip invokes
// fathomTheSubTree on the current root").
func (m *Master) fathomTheSubTree(node *Subproblem) {
	if node == nil {
		return
	}
	node.status = Fathomed
	node.Release()
	for _, c := range node.children {
		m.fathomTheSubTree(c)
	}
}

// Optimize runs the entire branch-and-cut search (spec.md §4.1). It
// initializes bounds according to sense, optionally pre-seeds the primal
// bound from an optimum-verification file, materializes the root via
// firstSub, then loops select -> process -> branch until the frontier is
// empty or a resource limit trips.
func (m *Master) Optimize(ctx context.Context) (Status, error) {
	m.timer = NewTimer()
	m.status = StatusProcessing

	if m.optimumFile != "" {
		if v, ok, err := loadOptimumBound(m.optimumFile, ""); err != nil {
			return StatusError, err
		} else if ok {
			_ = m.primalBound(v)
		}
	}

	if m.firstSub == nil {
		return StatusError, New(KindGlobal, "Master.Optimize requires a FirstSub callback")
	}
	cons, vars, err := m.firstSub(m)
	if err != nil {
		return StatusError, Wrap(KindGlobal, err, "materializing root subproblem")
	}

	m.root = newRootSubproblem(m, cons, vars)
	m.remainingRoot = m.root
	m.openSubs.Push(m.root)

	for {
		if gate := m.checkGates(); gate != StatusUnprocessed {
			m.fathomTheSubTree(m.remainingRoot)
			m.status = gate
			return m.status, nil
		}

		node := m.openSubs.Pop()
		if node == nil {
			break
		}
		if m.params.maxLevel > 0 && node.level > m.params.maxLevel {
			m.fathomTheSubTree(node)
			continue
		}

		node.status = Processing
		m.branchRuns++
		result, perr := node.Process(ctx)
		if perr != nil {
			m.status = StatusError
			return m.status, perr
		}

		switch result {
		case Fathomed:
			node.Release()
		case Dormant:
			m.openSubs.PushDormant(node)
		case Processed:
			children, berr := node.Branch(m.branchFactory, m.nextSeq)
			if berr != nil {
				m.status = StatusError
				return m.status, berr
			}
			for _, child := range children {
				m.openSubs.Push(child)
				if m.treeLog != nil {
					_ = m.treeLog.NewNode(node.id, child.id, "white")
				}
			}
		case SubproblemError:
			m.status = StatusError
			return m.status, Newf(KindGlobal, "subproblem %s failed", node.id)
		}
	}

	m.status = StatusOptimal
	return m.status, nil
}

// Sense returns the optimization sense.
func (m *Master) Sense() Sense { return m.sense }

// PrimalValue returns the current primal bound.
func (m *Master) PrimalValue() float64 { return m.primal }

// DualValue returns the current dual bound.
func (m *Master) DualValue() float64 { return m.dual }

// History returns the master's bound history.
func (m *Master) History() *History { return m.history }
