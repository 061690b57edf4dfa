package bcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSenseBetter(t *testing.T) {
	assert.True(t, Min.better(4.0, 5.0, DefaultEps))
	assert.False(t, Min.better(5.0, 4.0, DefaultEps))
	assert.True(t, Max.better(5.0, 4.0, DefaultEps))
	assert.False(t, Max.better(4.0, 5.0, DefaultEps))
}

func TestSenseInitialBounds(t *testing.T) {
	assert.True(t, Min.initialPrimal() > 1e300)
	assert.True(t, Min.initialDual() < -1e300)
	assert.True(t, Max.initialPrimal() < -1e300)
	assert.True(t, Max.initialDual() > 1e300)
}

// TestIntegerRoundingOfPrimal exercises spec.md §8 scenario 3: ObjInteger
// mode with sense=Min and an LP value of 9.9999999 must store the primal
// bound as 9 (floor after eps), after which primalViolated(10) is true.
func TestIntegerRoundingOfPrimal(t *testing.T) {
	m := NewMaster(Min, func(m *Master) {
		m.params.objInteger = true
	})
	a := assert.New(t)
	err := m.primalBound(9.9999999)
	a.NoError(err)
	a.Equal(9.0, m.PrimalValue())
	a.True(m.primalViolated(10))
}
