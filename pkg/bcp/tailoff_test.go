package bcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTailOffTrip exercises spec.md §8 scenario 4 verbatim: TailOffNLps=3,
// TailOffPercent=1.0; LP values 100.0, 99.9, 99.85, 99.8 trip tailOff()
// on the 4th insertion.
func TestTailOffTrip(t *testing.T) {
	to := NewTailOff(3, 1.0)
	values := []float64{100.0, 99.9, 99.85, 99.8}
	for i, v := range values {
		to.Insert(v)
		if i < 3 {
			assert.Falsef(t, to.TailedOff(), "should not trip before the ring has a full window, iteration %d", i)
		} else {
			assert.Truef(t, to.TailedOff(), "should trip on iteration %d", i)
		}
	}
}

func TestTailOffZeroCapacityNeverTrips(t *testing.T) {
	to := NewTailOff(0, 1.0)
	for _, v := range []float64{1, 1, 1, 1, 1} {
		to.Insert(v)
		assert.False(t, to.TailedOff())
	}
}

func TestTailOffResetClearsWindow(t *testing.T) {
	to := NewTailOff(2, 50.0)
	to.Insert(10)
	to.Insert(10)
	to.Insert(10)
	assert.True(t, to.TailedOff())
	to.Reset()
	to.Insert(10)
	to.Insert(10)
	assert.False(t, to.TailedOff(), "a freshly reset ring has not been overwritten yet")
}
