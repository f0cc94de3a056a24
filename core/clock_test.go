package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock(t *testing.T) {
	c := NewManualClock(1.5)
	assert.Equal(t, 1.5, c.Now())

	c.Advance(0.25)
	assert.Equal(t, 1.75, c.Now())

	c.Set(10)
	assert.Equal(t, 10.0, c.Now())
}

func TestMonotonicClockAdvances(t *testing.T) {
	c := NewMonotonicClock()
	first := c.Now()
	assert.GreaterOrEqual(t, first, 0.0)

	time.Sleep(2 * time.Millisecond)
	assert.Greater(t, c.Now(), first)
}

func TestClockFunc(t *testing.T) {
	var clock Clock = ClockFunc(func() float64 { return 3 })
	assert.Equal(t, 3.0, clock.Now())
}
