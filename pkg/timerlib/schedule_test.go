package timerlib

import (
	"testing"
	"time"
)

// makeTimer builds a running timer with the given id and period, started
// at the clock's current reading.
func makeTimer(id TimerID, period time.Duration, c Clock) *timer {
	return &timer{
		id:        id,
		state:     StateRunning,
		startTime: c.Now(),
		period:    period,
		task:      func() {},
	}
}

// scheduleIDs returns the ids in schedule order, front to back.
func scheduleIDs(s *schedule) []TimerID {
	var ids []TimerID
	s.each(func(t *timer) bool {
		ids = append(ids, t.id)
		return true
	})
	return ids
}

func assertOrder(t *testing.T, s *schedule, want []TimerID) {
	t.Helper()
	got := scheduleIDs(s)
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestSchedule_InsertOrdersByRemaining(t *testing.T) {
	c := NewManualClock()
	var s schedule
	s.init()

	s.insert(makeTimer(1, 300*time.Millisecond, c), c)
	s.insert(makeTimer(2, 100*time.Millisecond, c), c)
	s.insert(makeTimer(3, 200*time.Millisecond, c), c)

	assertOrder(t, &s, []TimerID{2, 3, 1})
}

func TestSchedule_EqualRemainingKeepsInsertionOrder(t *testing.T) {
	c := NewManualClock()
	var s schedule
	s.init()

	// Same period, same instant: remaining times are exactly equal.
	s.insert(makeTimer(1, 100*time.Millisecond, c), c)
	s.insert(makeTimer(2, 100*time.Millisecond, c), c)
	s.insert(makeTimer(3, 100*time.Millisecond, c), c)

	assertOrder(t, &s, []TimerID{1, 2, 3})
}

func TestSchedule_EqualRemainingMixedWithOthers(t *testing.T) {
	c := NewManualClock()
	var s schedule
	s.init()

	s.insert(makeTimer(1, 200*time.Millisecond, c), c)
	s.insert(makeTimer(2, 100*time.Millisecond, c), c)
	// Equal to id 2, so it lands after it and before id 1.
	s.insert(makeTimer(3, 100*time.Millisecond, c), c)

	assertOrder(t, &s, []TimerID{2, 3, 1})
}

func TestSchedule_RemoveDetaches(t *testing.T) {
	c := NewManualClock()
	var s schedule
	s.init()

	t1 := makeTimer(1, 100*time.Millisecond, c)
	t2 := makeTimer(2, 200*time.Millisecond, c)
	s.insert(t1, c)
	s.insert(t2, c)

	s.remove(t1)
	assertOrder(t, &s, []TimerID{2})
	if s.len() != 1 {
		t.Errorf("expected len 1, got %d", s.len())
	}

	// Removing an already-detached timer is a no-op.
	s.remove(t1)
	if s.len() != 1 {
		t.Errorf("expected len unchanged after double remove, got %d", s.len())
	}
}

func TestSchedule_Find(t *testing.T) {
	c := NewManualClock()
	var s schedule
	s.init()

	s.insert(makeTimer(1, 100*time.Millisecond, c), c)
	s.insert(makeTimer(2, 200*time.Millisecond, c), c)

	if got := s.find(2); got == nil || got.id != 2 {
		t.Errorf("expected to find timer 2, got %v", got)
	}
	if got := s.find(99); got != nil {
		t.Errorf("expected nil for unknown id, got timer %d", got.id)
	}
}

func TestSchedule_EarliestSkipsPaused(t *testing.T) {
	c := NewManualClock()
	var s schedule
	s.init()

	t1 := makeTimer(1, 100*time.Millisecond, c)
	t2 := makeTimer(2, 200*time.Millisecond, c)
	s.insert(t1, c)
	s.insert(t2, c)

	t1.state = StatePaused
	got := s.earliest()
	if got == nil || got.id != 2 {
		t.Fatalf("expected earliest to skip paused timer 1 and return 2, got %v", got)
	}

	// Paused entry stays in the list.
	if s.find(1) == nil {
		t.Error("paused timer must remain in the schedule")
	}

	t2.state = StatePaused
	if got := s.earliest(); got != nil {
		t.Errorf("expected nil when all timers are paused, got timer %d", got.id)
	}
}

func TestSchedule_InsertAccountsForElapsedTime(t *testing.T) {
	c := NewManualClock()
	var s schedule
	s.init()

	// Timer 1 has counted down 150ms of its 200ms period, leaving 50ms.
	// A fresh 100ms timer has more remaining, so timer 1 stays in front
	// even though its configured period is longer.
	t1 := makeTimer(1, 200*time.Millisecond, c)
	s.insert(t1, c)
	c.Advance(150 * time.Millisecond)
	s.insert(makeTimer(2, 100*time.Millisecond, c), c)

	assertOrder(t, &s, []TimerID{1, 2})
}

func TestSchedule_ClearAndLen(t *testing.T) {
	c := NewManualClock()
	var s schedule
	s.init()

	for i := 1; i <= 5; i++ {
		s.insert(makeTimer(TimerID(i), time.Duration(i)*time.Millisecond, c), c)
	}
	if s.len() != 5 {
		t.Fatalf("expected len 5, got %d", s.len())
	}

	s.clear()
	if s.len() != 0 {
		t.Errorf("expected len 0 after clear, got %d", s.len())
	}
	if got := s.earliest(); got != nil {
		t.Errorf("expected no earliest after clear, got timer %d", got.id)
	}
}

func TestTimer_RemainingWithPauseCredit(t *testing.T) {
	c := NewManualClock()
	tm := makeTimer(1, 100*time.Millisecond, c)

	c.Advance(40 * time.Millisecond)
	if r := tm.remaining(c); r != 60*time.Millisecond {
		t.Errorf("expected 60ms remaining, got %v", r)
	}

	// Simulate a 30ms pause credited back by Resume.
	tm.pauseAccumulated = 30 * time.Millisecond
	c.Advance(30 * time.Millisecond)
	if r := tm.remaining(c); r != 60*time.Millisecond {
		t.Errorf("expected pause credit to freeze remaining at 60ms, got %v", r)
	}
}
