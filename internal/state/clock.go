package state

import (
	"sync"
	"time"
)

// NowMillis returns the wall clock in milliseconds.
func NowMillis() float64 {
	return float64(time.Now().UnixMilli())
}

// Clock hands out non-decreasing millisecond timestamps for input samples.
type Clock struct {
	last float64
	now  func() float64
	mu   sync.Mutex
}

// NewClock creates a clock backed by the wall clock.
func NewClock() *Clock {
	return &Clock{now: NowMillis}
}

// Stamp returns the current time, never earlier than the previous stamp.
func (c *Clock) Stamp() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now()
	if t < c.last {
		t = c.last
	}
	c.last = t
	return t
}
