package bcp

import "sort"

// StableSortBy sorts items in place by the key returned from less,
// preserving the relative order of elements whose keys compare equal
// (spec.md §8, "Sorter: the output permutation must be stable under
// equal keys, for deterministic replay"). Grounded on the original
// Include/abacus/sorter.h design (a generic stable sort used throughout
// for reproducible branching-candidate and separation-ranking order),
// supplemented per SPEC_FULL.md §C since spec.md's own text never names
// a Sorter type but does name its determinism law.
func StableSortBy[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}

// StableSortByKey sorts items in place by ascending key(item), stably.
func StableSortByKey[T any, K int | int32 | int64 | float64](items []T, key func(T) K) {
	sort.SliceStable(items, func(i, j int) bool {
		return key(items[i]) < key(items[j])
	})
}
