package bcp

// CutBuffer is a per-node scratch buffer holding newly generated
// constraints or variables awaiting the "apply buffered additions" step
// of the cutting/pricing loop (spec.md §2, §4.2 step 9). Additions are
// applied in FIFO order (spec.md §5, "buffered additions are applied in
// FIFO order"); the buffer also separately tracks slot indices flagged
// for removal (elimination by age or non-binding/fixed status).
type CutBuffer struct {
	maxBuffered int
	added       []*PoolSlotRef
	removed     []int
}

// NewCutBuffer returns an empty CutBuffer capped at maxBuffered pending
// additions.
func NewCutBuffer(maxBuffered int) *CutBuffer {
	return &CutBuffer{maxBuffered: maxBuffered}
}

// Add appends ref to the pending-addition list. Returns an error
// (KindBuffer) if the buffer is already at capacity.
func (b *CutBuffer) Add(ref *PoolSlotRef) error {
	if b.maxBuffered > 0 && len(b.added) >= b.maxBuffered {
		return Newf(KindBuffer, "cut buffer overflow: capacity %d reached", b.maxBuffered)
	}
	b.added = append(b.added, ref)
	return nil
}

// FlagRemoval marks the active-set position index for removal on the
// next apply pass.
func (b *CutBuffer) FlagRemoval(index int) {
	b.removed = append(b.removed, index)
}

// Pending returns the number of additions currently buffered.
func (b *CutBuffer) Pending() int { return len(b.added) }

// Drain returns and clears the buffered additions, capped at max (the
// cutting/pricing loop's maxConAdd/maxVarAdd). Additions beyond the cap
// remain buffered for a subsequent iteration.
func (b *CutBuffer) Drain(max int) []*PoolSlotRef {
	if max <= 0 || max >= len(b.added) {
		out := b.added
		b.added = nil
		return out
	}
	out := make([]*PoolSlotRef, max)
	copy(out, b.added[:max])
	b.added = b.added[max:]
	return out
}

// DrainRemovals returns and clears the flagged-for-removal indices, in
// FIFO order.
func (b *CutBuffer) DrainRemovals() []int {
	out := b.removed
	b.removed = nil
	return out
}

// Reset discards all pending state without applying it, used when a
// node is fathomed before its buffer is drained.
func (b *CutBuffer) Reset() {
	for _, ref := range b.added {
		ref.Drop()
	}
	b.added = nil
	b.removed = nil
}
