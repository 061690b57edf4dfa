package bcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDualBoundBestAndWorstForMin(t *testing.T) {
	a := assert.New(t)
	db := NewDualBound(Min, 4)

	_, _, ok := db.Best()
	a.False(ok, "empty registry has no best")

	a.NoError(db.Set(0, 5.0))
	a.NoError(db.Set(1, 2.0))
	a.NoError(db.Set(2, 8.0))

	value, id, ok := db.Best()
	a.True(ok)
	a.Equal(2.0, value)
	a.Equal(1, id)

	value, id, ok = db.Worst()
	a.True(ok)
	a.Equal(8.0, value)
	a.Equal(2, id)

	a.Equal(3, db.Count())
}

func TestDualBoundBestAndWorstForMax(t *testing.T) {
	a := assert.New(t)
	db := NewDualBound(Max, 3)
	a.NoError(db.Set(0, 5.0))
	a.NoError(db.Set(1, 2.0))

	value, id, ok := db.Best()
	a.True(ok)
	a.Equal(5.0, value)
	a.Equal(0, id)
}

func TestDualBoundRemoveRecomputesExtrema(t *testing.T) {
	a := assert.New(t)
	db := NewDualBound(Min, 3)
	a.NoError(db.Set(0, 1.0))
	a.NoError(db.Set(1, 2.0))

	a.NoError(db.Remove(0))
	value, id, ok := db.Best()
	a.True(ok)
	a.Equal(2.0, value)
	a.Equal(1, id)
}

func TestDualBoundBetterReportsStrictImprovement(t *testing.T) {
	a := assert.New(t)
	db := NewDualBound(Min, 2)
	a.NoError(db.Set(0, 5.0))

	a.True(db.Better(0, 4.0), "a smaller bound improves on 5.0 for Min")
	a.False(db.Better(0, 6.0))
	a.True(db.Better(1, 1.0), "an unregistered id is trivially improvable")
}
