package timerlib

import "time"

// TimerID is the handle returned by Schedule. IDs are assigned from a
// monotonically increasing counter and never reused while the process runs.
type TimerID int64

// TimerState reports whether a timer's countdown is advancing.
type TimerState int

const (
	// StateRunning means the countdown is advancing toward the deadline.
	StateRunning TimerState = iota
	// StatePaused means the countdown is frozen until Resume.
	StatePaused
)

// String returns the state name for logs and test failures.
func (s TimerState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// timer is one scheduled unit of work. It doubles as its own schedule node;
// prev/next are owned by the schedule list and are nil while detached.
type timer struct {
	id        TimerID
	state     TimerState
	recurring bool

	// startTime marks the beginning of the current countdown window.
	startTime Timestamp
	// pauseAccumulated is the total time spent paused during the current
	// countdown window. It extends the effective deadline.
	pauseAccumulated time.Duration
	// pauseBegan is the reading taken when the timer entered StatePaused.
	pauseBegan Timestamp

	period time.Duration
	task   Task

	prev, next *timer
}

// remaining returns the time left before this timer's deadline:
// period − elapsed-since-start + accumulated-pause. The value decreases
// while running; pause time is credited back when Resume folds it into
// pauseAccumulated.
func (t *timer) remaining(c Clock) time.Duration {
	return t.period - c.Since(t.startTime) + t.pauseAccumulated
}

// rearm begins a fresh countdown window at the current clock reading.
func (t *timer) rearm(c Clock) {
	t.pauseAccumulated = 0
	t.startTime = c.Now()
}

// TimerInfo is a read-only snapshot of a live timer, in schedule order.
type TimerInfo struct {
	ID        TimerID
	State     TimerState
	Recurring bool
	Period    time.Duration
	// Remaining is the time left before the deadline as of the snapshot.
	// It may be negative if the timer is due but not yet collected.
	Remaining time.Duration
}
