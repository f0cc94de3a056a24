package core

import (
	"sync"
	"time"
)

// Clock supplies monotonic time in seconds
type Clock interface {
	Now() float64
}

// ClockFunc adapts a plain function to Clock
type ClockFunc func() float64

func (f ClockFunc) Now() float64 {
	return f()
}

// MonotonicClock reports seconds elapsed since it was created
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock creates a clock starting at zero
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Now returns elapsed seconds. time.Since reads the monotonic reading, so wall
// clock adjustments do not move it.
func (c *MonotonicClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock is a settable clock for tests and replay
type ManualClock struct {
	mu  sync.Mutex
	now float64
}

// NewManualClock creates a clock reading t
func NewManualClock(t float64) *ManualClock {
	return &ManualClock{now: t}
}

func (c *ManualClock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t
func (c *ManualClock) Set(t float64) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d seconds
func (c *ManualClock) Advance(d float64) {
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}
