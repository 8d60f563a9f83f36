package timerlib

import (
	"sync"
	"time"
)

// Timestamp is an opaque monotonic clock reading. Values are only
// meaningful to the Clock that produced them.
type Timestamp struct {
	t time.Time
}

// Clock abstracts the monotonic time source used for all deadline math.
// Readings never decrease within a process lifetime, and Since is
// non-negative for any Timestamp previously returned by Now.
type Clock interface {
	// Now returns the current monotonic reading.
	Now() Timestamp

	// Since returns the time elapsed since the given reading.
	Since(ts Timestamp) time.Duration
}

// SystemClock reads the process monotonic clock via the time package.
// It is the default clock for a Service.
type SystemClock struct{}

// Now returns the current monotonic reading.
func (SystemClock) Now() Timestamp {
	return Timestamp{t: time.Now()}
}

// Since returns the time elapsed since ts.
func (SystemClock) Since(ts Timestamp) time.Duration {
	return time.Since(ts.t)
}

// ManualClock is a Clock whose time only moves when Advance is called.
// It makes remaining-time math deterministic in tests; it does not wake
// a sleeping worker, so tests that use it drive the schedule directly.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a ManualClock starting at an arbitrary fixed origin.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(0, 0)}
}

// Now returns the clock's current reading.
func (c *ManualClock) Now() Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Timestamp{t: c.now}
}

// Since returns the time elapsed between ts and the clock's current reading.
func (c *ManualClock) Since(ts Timestamp) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Sub(ts.t)
}

// Advance moves the clock forward by d. Negative values are ignored so the
// clock stays monotonic.
func (c *ManualClock) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Ensure implementations satisfy the Clock interface.
var (
	_ Clock = SystemClock{}
	_ Clock = (*ManualClock)(nil)
)
