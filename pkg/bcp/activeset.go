package bcp

// ActiveSet is the ordered list of PoolSlotRefs a node currently carries
// into its LP, for either the constraint space or the variable space
// (spec.md §3, "ActiveSet<Base, Co>"). Co is the optional parallel
// "co-item" type used for on-the-fly coefficient computation — e.g. for
// an active set of constraints, Co is *Variable, so Constraint.CoeffOf
// can be evaluated against every currently-active variable without a
// separate lookup structure.
type ActiveSet[Co any] struct {
	refs  []*PoolSlotRef
	co    []Co
	hasCo bool
}

// NewActiveSet returns an empty ActiveSet with no co-items tracked.
func NewActiveSet[Co any]() *ActiveSet[Co] {
	return &ActiveSet[Co]{}
}

// NewActiveSetWithCo returns an empty ActiveSet that tracks a parallel
// co-item vector alongside each PoolSlotRef.
func NewActiveSetWithCo[Co any]() *ActiveSet[Co] {
	return &ActiveSet[Co]{hasCo: true}
}

// Len returns the number of entries, which must equal the owning LpSub's
// row count (for constraints) or column count (for variables) per
// spec.md §3's invariant and §8 invariant 5.
func (a *ActiveSet[Co]) Len() int { return len(a.refs) }

// Append adds ref (and, if this set tracks co-items, the associated co
// value) at the end of the ordered list.
func (a *ActiveSet[Co]) Append(ref *PoolSlotRef, co Co) {
	a.refs = append(a.refs, ref)
	if a.hasCo {
		a.co = append(a.co, co)
	}
}

// At returns the PoolSlotRef at position i.
func (a *ActiveSet[Co]) At(i int) *PoolSlotRef { return a.refs[i] }

// CoAt returns the co-item at position i. Panics if this set does not
// track co-items — a caller bug, since the set's shape is fixed at
// construction.
func (a *ActiveSet[Co]) CoAt(i int) Co { return a.co[i] }

// RemoveAt detaches and drops the entry at position i, preserving order
// of the remaining entries (spec.md §5 requires deterministic ordering,
// so removal must not reorder via swap-with-last).
func (a *ActiveSet[Co]) RemoveAt(i int) {
	a.refs[i].Drop()
	a.refs = append(a.refs[:i], a.refs[i+1:]...)
	if a.hasCo {
		a.co = append(a.co[:i], a.co[i+1:]...)
	}
}

// Clone returns an independent ActiveSet sharing the same underlying
// PoolSlots via cloned (ref-counted) PoolSlotRefs — the mechanism by
// which a child Subproblem inherits its parent's active sets (spec.md
// §3, "a child's active sets are derived from its parent's"; "ActiveSets
// own PoolSlotRefs (ref-counted shared ownership of slots)").
func (a *ActiveSet[Co]) Clone() *ActiveSet[Co] {
	clone := &ActiveSet[Co]{hasCo: a.hasCo}
	clone.refs = make([]*PoolSlotRef, len(a.refs))
	for i, ref := range a.refs {
		clone.refs[i] = ref.Clone()
	}
	if a.hasCo {
		clone.co = make([]Co, len(a.co))
		copy(clone.co, a.co)
	}
	return clone
}

// Release drops every PoolSlotRef owned by this set, used when a node
// transitions to Fathomed (spec.md §3, "a Fathomed node releases all
// PoolSlotRefs").
func (a *ActiveSet[Co]) Release() {
	for _, ref := range a.refs {
		ref.Drop()
	}
	a.refs = nil
	a.co = nil
}

// Items returns the poolItem held by each active slot, skipping stale or
// void refs. Used by LpSub when materializing rows/columns.
func (a *ActiveSet[Co]) Items() []poolItem {
	items := make([]poolItem, 0, len(a.refs))
	for _, ref := range a.refs {
		if item := ref.Item(); item != nil {
			items = append(items, item)
		}
	}
	return items
}
