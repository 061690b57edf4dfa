package bcp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerWallAdvancesAndStops(t *testing.T) {
	a := assert.New(t)
	tm := NewTimer()
	time.Sleep(2 * time.Millisecond)
	running := tm.Wall()
	a.Greater(running, time.Duration(0))

	tm.Stop()
	stopped := tm.Wall()
	time.Sleep(2 * time.Millisecond)
	a.Equal(stopped, tm.Wall(), "wall time must not advance after Stop")
}

func TestTimerResetRestartsFromZero(t *testing.T) {
	a := assert.New(t)
	tm := NewTimer()
	time.Sleep(2 * time.Millisecond)
	tm.Stop()
	a.Greater(tm.Wall(), time.Duration(0))

	tm.Reset()
	a.Less(tm.Wall(), time.Millisecond)
}
