package bcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sortPair struct {
	key    int
	origin int
}

// TestStableSortByKeyPreservesOrderOnTies exercises the determinism law
// spec.md §8 names for the sorter: the output permutation is stable under
// equal keys.
func TestStableSortByKeyPreservesOrderOnTies(t *testing.T) {
	items := []sortPair{
		{key: 1, origin: 0},
		{key: 0, origin: 1},
		{key: 1, origin: 2},
		{key: 0, origin: 3},
	}
	StableSortByKey(items, func(p sortPair) int { return p.key })

	assert.Equal(t, []sortPair{
		{key: 0, origin: 1},
		{key: 0, origin: 3},
		{key: 1, origin: 0},
		{key: 1, origin: 2},
	}, items)
}

func TestStableSortByUsesCustomComparator(t *testing.T) {
	items := []int{3, 1, 2}
	StableSortBy(items, func(a, b int) bool { return a > b })
	assert.Equal(t, []int{3, 2, 1}, items)
}
