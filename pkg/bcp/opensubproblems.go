package bcp

import "sort"

// EnumerationStrategy selects how OpenSubproblems orders the frontier
// (spec.md §4.1).
type EnumerationStrategy int

const (
	BestFirst EnumerationStrategy = iota
	BreadthFirst
	DepthFirst
	DiveAndBest
)

func (s EnumerationStrategy) String() string {
	switch s {
	case BestFirst:
		return "BestFirst"
	case BreadthFirst:
		return "BreadthFirst"
	case DepthFirst:
		return "DepthFirst"
	case DiveAndBest:
		return "DiveAndBest"
	default:
		return "Unknown"
	}
}

// OpenSubproblems is the container of not-yet-terminal Subproblem
// references, ordered by the current enumeration strategy (spec.md §3).
// Dormant nodes sit in a separate bucket and are only reconsidered once
// the main queue's size drops to or below dormantRequeueThreshold
// (spec.md §3: "Dormant nodes are held in a separate bucket and are
// re-inserted when the main queue empties below a threshold").
type OpenSubproblems struct {
	sense    Sense
	strategy EnumerationStrategy

	queue   []*Subproblem
	dormant []*Subproblem

	dormantRequeueThreshold int
	foundFeasible           bool // drives DiveAndBest's DepthFirst-then-BestFirst switch
}

// NewOpenSubproblems returns an empty frontier for the given sense and
// strategy.
func NewOpenSubproblems(sense Sense, strategy EnumerationStrategy, dormantRequeueThreshold int) *OpenSubproblems {
	return &OpenSubproblems{sense: sense, strategy: strategy, dormantRequeueThreshold: dormantRequeueThreshold}
}

// NotifyFeasibleFound switches a DiveAndBest frontier from DepthFirst to
// BestFirst ordering once the first feasible integer solution has been
// found (spec.md §4.1: "DiveAndBest: DepthFirst until the first feasible
// solution is found, then BestFirst").
func (o *OpenSubproblems) NotifyFeasibleFound() { o.foundFeasible = true }

func (o *OpenSubproblems) effectiveStrategy() EnumerationStrategy {
	if o.strategy == DiveAndBest {
		if o.foundFeasible {
			return BestFirst
		}
		return DepthFirst
	}
	return o.strategy
}

// less implements the ordering for the current effective strategy: true
// when a should be selected strictly before b.
func (o *OpenSubproblems) less(a, b *Subproblem) bool {
	switch o.effectiveStrategy() {
	case BestFirst:
		if a.localDualBound != b.localDualBound {
			return o.sense.better(a.localDualBound, b.localDualBound, DefaultMachineEps)
		}
		return equalSubCompare(a, b)
	case BreadthFirst:
		if a.level != b.level {
			return a.level < b.level
		}
		return a.id.Sequence < b.id.Sequence
	case DepthFirst:
		if a.level != b.level {
			return a.level > b.level
		}
		return equalSubCompare(a, b)
	default:
		return equalSubCompare(a, b)
	}
}

// Push inserts node into the frontier in its ready-to-run bucket.
func (o *OpenSubproblems) Push(node *Subproblem) {
	o.queue = append(o.queue, node)
	o.resort()
	o.maybeRequeueDormant()
}

// PushDormant moves node into the dormant bucket: it retains its
// references but does not occupy the open-frontier queue in ready-to-run
// form (spec.md §3).
func (o *OpenSubproblems) PushDormant(node *Subproblem) {
	o.dormant = append(o.dormant, node)
}

func (o *OpenSubproblems) resort() {
	sort.SliceStable(o.queue, func(i, j int) bool { return o.less(o.queue[i], o.queue[j]) })
}

// maybeRequeueDormant moves every dormant node back into the ready queue
// once the ready queue's length is at or below the configured threshold.
func (o *OpenSubproblems) maybeRequeueDormant() {
	if len(o.dormant) == 0 {
		return
	}
	if len(o.queue) > o.dormantRequeueThreshold {
		return
	}
	o.queue = append(o.queue, o.dormant...)
	o.dormant = nil
	o.resort()
}

// Pop removes and returns the highest-priority node, or nil if the
// frontier (both buckets) is empty.
func (o *OpenSubproblems) Pop() *Subproblem {
	if len(o.queue) == 0 {
		o.maybeRequeueDormant()
	}
	if len(o.queue) == 0 {
		return nil
	}
	node := o.queue[0]
	o.queue = o.queue[1:]
	return node
}

// Len returns the number of ready (non-dormant) nodes.
func (o *OpenSubproblems) Len() int { return len(o.queue) }

// DormantLen returns the number of dormant nodes.
func (o *OpenSubproblems) DormantLen() int { return len(o.dormant) }

// Empty reports whether both buckets are empty.
func (o *OpenSubproblems) Empty() bool { return len(o.queue) == 0 && len(o.dormant) == 0 }
