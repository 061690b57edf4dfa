package bcp

// Pool is a managed repository of PoolSlots, each holding a Constraint or
// Variable (spec.md §3/§4.4). Slots are never physically removed while
// referenced; a soft-deleted slot is recycled by the next Insert that
// needs a free slot. Cleanup hard-deletes soft-deleted, unreferenced
// slots in place: they stay in the slot array and on the free list, and
// Cleanup runs only when a caller invokes it.
//
// Pool is the generic base shared by StandardPool (accepts any insert)
// and NonDuplPool (suppresses items that HashKey/Equal-match an existing
// slot), grounded on the teacher's ConstraintStorePool design: a
// fixed-capacity object arena with a free list and pool-wide statistics,
// generalized here from unconditional reuse to a refcounted, soft/hard-delete
// lifecycle per spec.md §4.4.
type Pool struct {
	slots     []*PoolSlot
	freeList  []int // indices of soft-deleted (refcount==0, void) slots
	stats     PoolStats
	dedupe    bool
	hashIndex map[uint64][]int // only populated when dedupe
}

// PoolStats tracks pool-wide counters for diagnostics and logging,
// grounded on the teacher's PoolStats design.
type PoolStats struct {
	Inserts     int
	Duplicates  int
	SoftDeletes int
	HardDeletes int
	Reused      int
}

// NewStandardPool returns a Pool that accepts every Insert unconditionally
// (spec.md §4.4, StandardPool).
func NewStandardPool(capacity int) *Pool {
	return &Pool{slots: make([]*PoolSlot, 0, capacity)}
}

// NewNonDuplPool returns a Pool that suppresses inserts whose item is
// Equal to an already-held item, returning a ref to the existing slot
// instead (spec.md §4.4, NonDuplPool).
func NewNonDuplPool(capacity int) *Pool {
	return &Pool{
		slots:     make([]*PoolSlot, 0, capacity),
		dedupe:    true,
		hashIndex: make(map[uint64][]int),
	}
}

// Len returns the number of slots currently allocated (including
// soft-deleted ones awaiting reuse).
func (p *Pool) Len() int { return len(p.slots) }

// Insert adds item to the pool, reusing a soft-deleted slot when one is
// available, and returns an owning PoolSlotRef. For a NonDuplPool, if an
// existing slot's item Equals item, a ref to that slot is returned
// instead and Stats.Duplicates is incremented.
func (p *Pool) Insert(item poolItem) (*PoolSlotRef, error) {
	if p.dedupe {
		if idx, ok := p.findDuplicate(item); ok {
			p.stats.Duplicates++
			return newPoolSlotRef(p.slots[idx], idx), nil
		}
	}

	idx, slot := p.acquireSlot()
	if err := slot.Fill(item); err != nil {
		return nil, err
	}
	p.stats.Inserts++
	if p.dedupe {
		p.hashIndex[item.HashKey()] = append(p.hashIndex[item.HashKey()], idx)
	}
	return newPoolSlotRef(slot, idx), nil
}

func (p *Pool) findDuplicate(item poolItem) (int, bool) {
	for _, idx := range p.hashIndex[item.HashKey()] {
		slot := p.slots[idx]
		if slot.Void() {
			continue
		}
		if slot.Item().Equal(item) {
			return idx, true
		}
	}
	return -1, false
}

// acquireSlot returns a slot ready to be Filled: a recycled one from the
// free list if available, otherwise a freshly appended void slot.
func (p *Pool) acquireSlot() (int, *PoolSlot) {
	for len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		if p.slots[idx].RefCount() == 0 {
			p.stats.Reused++
			return idx, p.slots[idx]
		}
	}
	slot := newPoolSlot()
	p.slots = append(p.slots, slot)
	return len(p.slots) - 1, slot
}

// At returns the slot at index i.
func (p *Pool) At(i int) *PoolSlot { return p.slots[i] }

// SoftDelete soft-deletes the slot at index i if unreferenced, queuing it
// for reuse. Returns an error if the slot still has outstanding
// references.
func (p *Pool) SoftDelete(i int) error {
	if err := p.slots[i].SoftDelete(); err != nil {
		return err
	}
	p.stats.SoftDeletes++
	p.freeList = append(p.freeList, i)
	return nil
}

// Cleanup hard-deletes every soft-deleted, still-unreferenced slot,
// reclaiming dedupe-index entries. Intended to run periodically (spec.md
// §4.4, "pools are periodically cleaned") rather than after every
// deletion, so short-lived refcount dips don't thrash the free list.
func (p *Pool) Cleanup() {
	for _, idx := range p.freeList {
		slot := p.slots[idx]
		if slot.Void() && slot.RefCount() == 0 {
			slot.HardDelete()
			p.stats.HardDeletes++
		}
	}
	if p.dedupe {
		for key, idxs := range p.hashIndex {
			kept := idxs[:0]
			for _, idx := range idxs {
				if !p.slots[idx].Void() {
					kept = append(kept, idx)
				}
			}
			if len(kept) == 0 {
				delete(p.hashIndex, key)
			} else {
				p.hashIndex[key] = kept
			}
		}
	}
}

// Stats returns a copy of the pool's running statistics.
func (p *Pool) Stats() PoolStats { return p.stats }

// Ranker assigns a separation/pricing priority to a poolItem; Pool.Best
// falls back to the item's own Rank() when ranker is nil.
type Ranker func(poolItem) float64

// Best returns the index of the highest-ranked active slot, or -1 if the
// pool holds no eligible items. The engine's own separation and pricing
// steps do not call it; it is available to callers that pick candidates
// from a Constraint or Variable pool.
func (p *Pool) Best(ranker Ranker) int {
	best := -1
	var bestRank float64
	for i, slot := range p.slots {
		if slot.Void() {
			continue
		}
		item := slot.Item()
		if c, ok := item.(*Constraint); ok && !c.Active() {
			continue
		}
		rank := item.Rank()
		if ranker != nil {
			rank = ranker(item)
		}
		if best == -1 || rank > bestRank {
			best = i
			bestRank = rank
		}
	}
	return best
}
