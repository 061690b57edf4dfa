package bcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func subAt(seq int64, level int, dualBound float64) *Subproblem {
	return &Subproblem{id: NewId(seq, 0), level: level, localDualBound: dualBound}
}

func TestOpenSubproblemsBestFirstOrdersByTighterDualBound(t *testing.T) {
	a := assert.New(t)
	o := NewOpenSubproblems(Min, BestFirst, 0)
	o.Push(subAt(0, 0, 5.0))
	o.Push(subAt(1, 0, 2.0))
	o.Push(subAt(2, 0, 8.0))

	a.Equal(int64(1), o.Pop().id.Sequence)
	a.Equal(int64(0), o.Pop().id.Sequence)
	a.Equal(int64(2), o.Pop().id.Sequence)
	a.Nil(o.Pop())
}

func TestOpenSubproblemsBreadthFirstOrdersByLevel(t *testing.T) {
	a := assert.New(t)
	o := NewOpenSubproblems(Min, BreadthFirst, 0)
	o.Push(subAt(0, 2, 0))
	o.Push(subAt(1, 0, 0))
	o.Push(subAt(2, 1, 0))

	a.Equal(int64(1), o.Pop().id.Sequence)
	a.Equal(int64(2), o.Pop().id.Sequence)
	a.Equal(int64(0), o.Pop().id.Sequence)
}

func TestOpenSubproblemsDepthFirstOrdersByDeeperLevel(t *testing.T) {
	a := assert.New(t)
	o := NewOpenSubproblems(Min, DepthFirst, 0)
	o.Push(subAt(0, 0, 0))
	o.Push(subAt(1, 3, 0))
	o.Push(subAt(2, 1, 0))

	a.Equal(int64(1), o.Pop().id.Sequence)
	a.Equal(int64(2), o.Pop().id.Sequence)
	a.Equal(int64(0), o.Pop().id.Sequence)
}

// TestOpenSubproblemsDiveAndBestSwitchesOnFirstFeasible exercises spec.md
// §4.1: DiveAndBest behaves as DepthFirst until the first feasible
// solution is found, then switches to BestFirst.
func TestOpenSubproblemsDiveAndBestSwitchesOnFirstFeasible(t *testing.T) {
	a := assert.New(t)
	o := NewOpenSubproblems(Min, DiveAndBest, 100)
	o.Push(subAt(0, 0, 5.0))
	o.Push(subAt(1, 3, 9.0))

	// still DepthFirst: deeper node (seq 1) goes first.
	a.Equal(int64(1), o.Pop().id.Sequence)

	o.NotifyFeasibleFound()
	o.Push(subAt(2, 0, 1.0))
	o.Push(subAt(3, 5, 50.0))

	// now BestFirst: tightest dual bound (seq 2) goes first.
	a.Equal(int64(2), o.Pop().id.Sequence)
}

func TestOpenSubproblemsDormantRequeueThreshold(t *testing.T) {
	a := assert.New(t)
	o := NewOpenSubproblems(Min, BestFirst, 1)
	o.PushDormant(subAt(0, 0, 1.0))
	a.Equal(1, o.DormantLen())
	a.Equal(0, o.Len())

	o.Push(subAt(1, 0, 2.0))
	// queue length (1) is at the threshold (1), so the dormant node
	// should have been pulled back in already.
	a.Equal(0, o.DormantLen())
	a.Equal(2, o.Len())
}

func TestOpenSubproblemsEmpty(t *testing.T) {
	o := NewOpenSubproblems(Min, BestFirst, 0)
	assert.True(t, o.Empty())
	o.Push(subAt(0, 0, 0))
	assert.False(t, o.Empty())
}
