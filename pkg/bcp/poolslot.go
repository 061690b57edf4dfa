package bcp

// PoolSlot is a cell holding one Constraint or Variable and a reference
// count (spec.md §3). A slot's address is stable across its lifetime; the
// contained object may only change via Regenerate, which bumps version so
// stale PoolSlotRefs can detect reuse (spec.md §9's versioned-handle
// remedy for the PoolSlot↔PoolSlotRef cyclic-reference pattern).
type PoolSlot struct {
	item     poolItem
	refCount int
	version  uint64
	void     bool // true until first Fill
}

// newPoolSlot returns a void slot, matching the "created void" step of
// the PoolSlot lifecycle (spec.md §3).
func newPoolSlot() *PoolSlot {
	return &PoolSlot{void: true}
}

// Fill transitions a void or soft-deleted slot to holding item, bumping
// its version. Returns an error (KindPoolslot) if the slot still has
// outstanding references.
func (s *PoolSlot) Fill(item poolItem) error {
	if s.refCount > 0 {
		return New(KindPoolslot, "cannot fill a slot with outstanding references")
	}
	s.item = item
	s.version++
	s.void = false
	return nil
}

// Regenerate replaces the contained item in place (e.g. after a dynamic
// constraint's coefficients are recomputed), bumping version so existing
// PoolSlotRefs built against the old contents are known-stale.
func (s *PoolSlot) Regenerate(item poolItem) {
	s.item = item
	s.version++
}

// Item returns the currently-held item, or nil if void/soft-deleted.
func (s *PoolSlot) Item() poolItem { return s.item }

// Void reports whether the slot holds no item.
func (s *PoolSlot) Void() bool { return s.void }

// RefCount returns the current reference count.
func (s *PoolSlot) RefCount() int { return s.refCount }

// Version returns the slot's current version, incremented on every Fill
// and Regenerate.
func (s *PoolSlot) Version() uint64 { return s.version }

// incRef and decRef are the internal hooks used by PoolSlotRef; they are
// unexported because refcounting must only ever happen through a ref's
// constructor/drop so the two stay consistent (spec.md §3 invariant 4:
// "refcount(s) ≥ 0").
func (s *PoolSlot) incRef() { s.refCount++ }

func (s *PoolSlot) decRef() {
	if s.refCount > 0 {
		s.refCount--
	}
}

// SoftDelete clears the slot's contents, succeeding only when refcount is
// zero (spec.md §4.4). The memory is preserved for reuse by the pool's
// free list.
func (s *PoolSlot) SoftDelete() error {
	if s.refCount != 0 {
		return Newf(KindPoolslot, "cannot soft-delete slot with refcount %d", s.refCount)
	}
	s.item = nil
	s.void = true
	return nil
}

// HardDelete unconditionally detaches the slot's contents. Per spec.md
// §4.4 this must only be invoked by the owning Pool itself, during
// reallocation or teardown — never by ordinary callers holding a
// PoolSlotRef.
func (s *PoolSlot) HardDelete() {
	s.item = nil
	s.refCount = 0
	s.void = true
	s.version++
}

// PoolSlotRef is an owning reference into a PoolSlot. It increments the
// slot's refcount on construction and decrements it on Drop; it survives
// a slot refill only if its recorded version still matches the slot's
// current version (spec.md §3).
type PoolSlotRef struct {
	slot    *PoolSlot
	version uint64
	index   int // position within the owning Pool's slot array
}

// newPoolSlotRef constructs a ref to slot, incrementing its refcount.
func newPoolSlotRef(slot *PoolSlot, index int) *PoolSlotRef {
	slot.incRef()
	return &PoolSlotRef{slot: slot, version: slot.version, index: index}
}

// Valid reports whether the slot has not been refilled since this ref was
// taken.
func (r *PoolSlotRef) Valid() bool {
	return r.slot != nil && r.slot.version == r.version
}

// Item returns the referenced item, or nil if the ref is stale or the
// slot is void.
func (r *PoolSlotRef) Item() poolItem {
	if !r.Valid() {
		return nil
	}
	return r.slot.Item()
}

// Index returns the ref's position within the owning pool's slot array.
func (r *PoolSlotRef) Index() int { return r.index }

// Drop decrements the underlying slot's refcount. A ref must be dropped
// exactly once; dropping it more than once is a caller bug (the engine
// never calls Drop twice on the same ref).
func (r *PoolSlotRef) Drop() {
	if r.slot != nil {
		r.slot.decRef()
		r.slot = nil
	}
}

// Clone returns a new PoolSlotRef to the same slot, incrementing the
// refcount again — used when an ActiveSet is copied to a child
// Subproblem (spec.md §3, "ActiveSets own PoolSlotRefs (ref-counted
// shared ownership of slots)").
func (r *PoolSlotRef) Clone() *PoolSlotRef {
	if r.slot == nil {
		return &PoolSlotRef{}
	}
	return newPoolSlotRef(r.slot, r.index)
}
