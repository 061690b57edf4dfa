package bcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newConRef(t *testing.T, hashKey uint64) *PoolSlotRef {
	t.Helper()
	slot := newPoolSlot()
	if err := slot.Fill(NewConstraint(Less, 1, nil, hashKey)); err != nil {
		t.Fatal(err)
	}
	return newPoolSlotRef(slot, 0)
}

func TestActiveSetAppendAndAt(t *testing.T) {
	a := assert.New(t)
	set := NewActiveSetWithCo[float64]()
	r1, r2 := newConRef(t, 1), newConRef(t, 2)
	set.Append(r1, 0.5)
	set.Append(r2, 1.5)

	a.Equal(2, set.Len())
	a.Same(r1, set.At(0))
	a.Equal(1.5, set.CoAt(1))
}

func TestActiveSetRemoveAtPreservesOrder(t *testing.T) {
	a := assert.New(t)
	set := NewActiveSet[struct{}]()
	r1, r2, r3 := newConRef(t, 1), newConRef(t, 2), newConRef(t, 3)
	set.Append(r1, struct{}{})
	set.Append(r2, struct{}{})
	set.Append(r3, struct{}{})

	slot2 := r2.slot
	set.RemoveAt(1) // drop r2, not a swap-with-last
	a.Equal(2, set.Len())
	a.Same(r1, set.At(0))
	a.Same(r3, set.At(1))
	a.Equal(0, slot2.RefCount())
}

func TestActiveSetCloneSharesSlotsWithIndependentRefs(t *testing.T) {
	a := assert.New(t)
	set := NewActiveSetWithCo[int]()
	r := newConRef(t, 1)
	set.Append(r, 7)

	clone := set.Clone()
	a.Equal(1, clone.Len())
	a.Equal(7, clone.CoAt(0))
	a.Same(r.slot, clone.At(0).slot)
	a.Equal(2, r.slot.RefCount())

	clone.Release()
	a.Equal(1, r.slot.RefCount())
	a.Equal(1, set.Len(), "releasing the clone must not affect the original")
}

func TestActiveSetItemsSkipsStaleRefs(t *testing.T) {
	a := assert.New(t)
	set := NewActiveSet[struct{}]()
	r := newConRef(t, 1)
	set.Append(r, struct{}{})

	items := set.Items()
	a.Len(items, 1)

	r.slot.Regenerate(NewConstraint(Less, 2, nil, 9))
	items = set.Items()
	a.Empty(items, "a stale ref's Item() is nil and must be skipped")
}
