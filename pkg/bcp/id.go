package bcp

import "fmt"

// Id is a stable, serializable node identity, keyed by (sequence, proc,
// index) in the original design (spec.md §9 design note). The core
// described here is single-threaded, so Proc is permanently 0; the field
// is preserved rather than dropped so Id remains forward-compatible with
// a distributed variant without a breaking change to this type.
type Id struct {
	Sequence int64
	Proc     int32
	Index    int32
}

// NewId returns an Id with the given sequence and index, Proc fixed at 0.
func NewId(sequence int64, index int32) Id {
	return Id{Sequence: sequence, Proc: 0, Index: index}
}

func (id Id) String() string {
	return fmt.Sprintf("%d.%d.%d", id.Sequence, id.Proc, id.Index)
}

// IdMap is a lookup table keyed by Id, used to resolve a Subproblem's
// stable identity back to its in-memory node without walking the tree
// (spec.md §9).
type IdMap[V any] struct {
	entries map[Id]V
}

// NewIdMap returns an empty IdMap.
func NewIdMap[V any]() *IdMap[V] {
	return &IdMap[V]{entries: make(map[Id]V)}
}

// Insert records value under id, overwriting any previous entry.
func (m *IdMap[V]) Insert(id Id, value V) {
	m.entries[id] = value
}

// Lookup returns the value recorded under id, if any.
func (m *IdMap[V]) Lookup(id Id) (V, bool) {
	v, ok := m.entries[id]
	return v, ok
}

// Remove deletes id's entry, if present.
func (m *IdMap[V]) Remove(id Id) {
	delete(m.entries, id)
}

// Len returns the number of entries currently recorded.
func (m *IdMap[V]) Len() int { return len(m.entries) }
