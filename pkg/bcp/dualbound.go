package bcp

// DualBound is a per-active-node registry of dual bounds indexed by
// integer id, backed by an IntSet for O(1) membership/iteration (spec.md
// §4.7). It caches the current best and worst value so queries need no
// scan; every Set and Remove rescans all live entries to refresh them.
type DualBound struct {
	sense  Sense
	values []float64
	live   *IntSet

	bestIdx  int
	worstIdx int
}

// NewDualBound returns a registry over node ids {0,...,n-1} for the given
// optimization sense.
func NewDualBound(sense Sense, n int) *DualBound {
	return &DualBound{
		sense:    sense,
		values:   make([]float64, n),
		live:     NewIntSet(n),
		bestIdx:  -1,
		worstIdx: -1,
	}
}

// Set records d as the dual bound for node id, inserting it if new.
func (db *DualBound) Set(id int, d float64) error {
	if err := db.live.Insert(id); err != nil {
		return err
	}
	db.values[id] = d
	db.recompute()
	return nil
}

// Remove drops id from the registry.
func (db *DualBound) Remove(id int) error {
	if err := db.live.Remove(id); err != nil {
		return err
	}
	db.recompute()
	return nil
}

func (db *DualBound) recompute() {
	db.bestIdx, db.worstIdx = -1, -1
	for _, id := range db.live.Elements() {
		if db.bestIdx == -1 || db.sense.better(db.values[id], db.values[db.bestIdx], DefaultMachineEps) {
			db.bestIdx = id
		}
		if db.worstIdx == -1 || db.sense.better(db.values[db.worstIdx], db.values[id], DefaultMachineEps) {
			db.worstIdx = id
		}
	}
}

// Best returns the best (tightest-for-continuing-search) dual bound
// currently registered and its node id. ok is false if the registry is
// empty.
func (db *DualBound) Best() (value float64, id int, ok bool) {
	if db.bestIdx == -1 {
		return 0, 0, false
	}
	return db.values[db.bestIdx], db.bestIdx, true
}

// Worst returns the worst dual bound currently registered and its node
// id.
func (db *DualBound) Worst() (value float64, id int, ok bool) {
	if db.worstIdx == -1 {
		return 0, 0, false
	}
	return db.values[db.worstIdx], db.worstIdx, true
}

// Better reports whether replacing id's current bound with d would
// strictly improve it (spec.md §4.7: "better(i, d) reports whether
// replacing the i-th bound with d would strictly improve it").
func (db *DualBound) Better(id int, d float64) bool {
	if !db.live.Exists(id) {
		return true
	}
	return db.sense.better(d, db.values[id], DefaultMachineEps)
}

// Count returns the number of nodes currently registered.
func (db *DualBound) Count() int { return db.live.Count() }
