// Package timerlib implements an in-process timer service: callers schedule
// a task to run once or repeatedly after a delay, and a single background
// worker fires due timers in deadline order, handing each task to the
// host's TaskQueue. There is no wall-clock or calendar awareness; all
// deadlines are relative durations measured on a monotonic clock.
package timerlib

import (
	"sync"
	"time"

	"github.com/timerq/timerq/pkg/logger"
)

// Service owns the timer registry and the worker that fires due timers.
// Construct one with New, call Start before scheduling, and Stop to join
// the worker and discard remaining timers. All methods are safe for
// concurrent use; a single mutex serializes every mutation.
type Service struct {
	clock Clock
	queue TaskQueue
	log   logger.Logger

	mu      sync.Mutex
	sched   schedule
	lastID  TimerID
	running bool

	// wake carries control-surface signals to the worker. Capacity 1:
	// a send while a signal is already pending merges with it, and the
	// worker rescans the schedule after every receive, so no mutation
	// can be slept through.
	wake chan struct{}
	stop chan struct{}
	wg   sync.WaitGroup
}

// Option configures a Service at construction time.
type Option func(*Service)

// WithClock sets the monotonic time source. Defaults to SystemClock.
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithQueue sets the TaskQueue that receives fired tasks. The default
// queue runs each task on its own goroutine; hosts that need tasks
// serialized on their own loop must supply one (see internal/runloop).
func WithQueue(q TaskQueue) Option {
	return func(s *Service) { s.queue = q }
}

// WithLogger sets the logger for worker lifecycle and dropped-task
// messages. Defaults to a NopLogger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// New creates a stopped Service with the given options applied.
func New(opts ...Option) *Service {
	s := &Service{
		clock: SystemClock{},
		queue: goQueue(),
		log:   logger.NewNopLogger(),
	}
	s.sched.init()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the worker goroutine. Returns ErrAlreadyRunning if the
// service is already started. A stopped service may be started again;
// timer ids continue from where they left off.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}
	s.wake = make(chan struct{}, 1)
	s.stop = make(chan struct{})
	s.running = true
	s.wg.Add(1)
	go s.worker(s.wake, s.stop)
	s.log.Info("timer worker started")
	return nil
}

// Stop clears the running flag, unblocks and joins the worker, and
// discards all remaining timers. Tasks already posted to the queue are
// unaffected. Returns ErrNotRunning if the service is not started.
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.running = false
	close(s.stop)
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	discarded := s.sched.len()
	s.sched.clear()
	s.mu.Unlock()
	s.log.Info("timer worker stopped, %d timers discarded", discarded)
	return nil
}

// Schedule registers a task to run after period. If recurring is true the
// timer re-arms itself after each firing instead of being discarded.
// Returns the timer's unique id.
func (s *Service) Schedule(period time.Duration, task Task, recurring bool) (TimerID, error) {
	if task == nil {
		return 0, ErrNilTask
	}
	if period < 0 {
		return 0, ErrInvalidPeriod
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return 0, ErrNotRunning
	}
	s.lastID++
	t := &timer{
		id:        s.lastID,
		state:     StateRunning,
		recurring: recurring,
		startTime: s.clock.Now(),
		period:    period,
		task:      task,
	}
	s.sched.insert(t, s.clock)
	s.signal()
	return t.id, nil
}

// SetTimeout schedules task to run once after d.
func (s *Service) SetTimeout(d time.Duration, task Task) (TimerID, error) {
	return s.Schedule(d, task, false)
}

// SetInterval schedules task to run every d until cancelled.
func (s *Service) SetInterval(d time.Duration, task Task) (TimerID, error) {
	return s.Schedule(d, task, true)
}

// Cancel removes the timer so it never fires again. Returns ErrNotFound if
// the timer is absent, including when the worker has already detached it
// for firing; a task already handed to the queue cannot be retracted.
func (s *Service) Cancel(id TimerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return ErrNotRunning
	}
	t := s.sched.find(id)
	if t == nil {
		return ErrNotFound
	}
	s.sched.remove(t)
	s.signal()
	return nil
}

// Pause freezes the timer's countdown. Pausing an already-paused timer is
// a no-op. The worker skips paused timers without removing them.
func (s *Service) Pause(id TimerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return ErrNotRunning
	}
	t := s.sched.find(id)
	if t == nil {
		return ErrNotFound
	}
	if t.state == StateRunning {
		t.pauseBegan = s.clock.Now()
		t.state = StatePaused
	}
	s.signal()
	return nil
}

// Resume unfreezes a paused timer, crediting the paused duration back to
// its deadline, and restores its position in the deadline order. Resuming
// a running timer is a no-op.
func (s *Service) Resume(id TimerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return ErrNotRunning
	}
	t := s.sched.find(id)
	if t == nil {
		return ErrNotFound
	}
	if t.state == StatePaused {
		t.pauseAccumulated += s.clock.Since(t.pauseBegan)
		t.state = StateRunning
		// Its remaining time grew while everyone else's shrank.
		s.sched.remove(t)
		s.sched.insert(t, s.clock)
	}
	s.signal()
	return nil
}

// Reset begins a fresh countdown of period from now, discarding elapsed
// and accumulated-pause time. The Running/Paused state is preserved.
func (s *Service) Reset(id TimerID, period time.Duration) error {
	if period < 0 {
		return ErrInvalidPeriod
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return ErrNotRunning
	}
	t := s.sched.find(id)
	if t == nil {
		return ErrNotFound
	}
	t.period = period
	t.rearm(s.clock)
	if t.state == StatePaused {
		// Pause time predating the reset must not be credited by a
		// later Resume; only the pause overlapping the new countdown
		// counts.
		t.pauseBegan = s.clock.Now()
	}
	s.sched.remove(t)
	s.sched.insert(t, s.clock)
	s.signal()
	return nil
}

// Len reports the number of live timers, paused included.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.len()
}

// Timers returns a snapshot of all live timers in schedule order.
func (s *Service) Timers() []TimerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	infos := make([]TimerInfo, 0, s.sched.len())
	s.sched.each(func(t *timer) bool {
		infos = append(infos, TimerInfo{
			ID:        t.id,
			State:     t.state,
			Recurring: t.recurring,
			Period:    t.period,
			Remaining: t.remaining(s.clock),
		})
		return true
	})
	return infos
}

// LogSchedule writes one line per live timer to the logger, in schedule
// order. Useful when debugging deadline ordering.
func (s *Service) LogSchedule() {
	infos := s.Timers()
	s.log.Info("schedule: %d live timers", len(infos))
	for _, info := range infos {
		s.log.Info("timer %d: state=%s recurring=%t period=%v remaining=%v",
			info.ID, info.State, info.Recurring, info.Period, info.Remaining)
	}
}

// signal wakes the worker so it re-evaluates the earliest deadline.
// Caller must hold s.mu; the non-blocking send merges with any signal
// already pending.
func (s *Service) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// worker is the single background goroutine that fires due timers.
// Each iteration scans for the earliest running timer under the lock,
// then either fires it, sleeps until its deadline, or waits idle. The
// wake channel preempts any sleep so a mutation that changes the earliest
// deadline takes effect immediately.
func (s *Service) worker(wake <-chan struct{}, stop <-chan struct{}) {
	defer s.wg.Done()
	for {
		s.mu.Lock()
		if !s.running {
			s.mu.Unlock()
			return
		}
		t := s.sched.earliest()
		if t == nil {
			s.mu.Unlock()
			// Nothing runnable; wait for a mutation or shutdown.
			select {
			case <-wake:
			case <-stop:
				return
			}
			continue
		}
		r := t.remaining(s.clock)
		if r > 0 {
			s.mu.Unlock()
			if s.sleep(r, wake, stop) {
				return
			}
			continue
		}

		// Due. Detach, re-arm if recurring, and hand the task off
		// outside the lock. Firing may change who is earliest, so the
		// loop re-evaluates immediately instead of sleeping.
		s.sched.remove(t)
		id, task := t.id, t.task
		if t.recurring {
			t.rearm(s.clock)
			s.sched.insert(t, s.clock)
		}
		s.mu.Unlock()

		if err := s.queue.Post(task); err != nil {
			s.log.Error("timer %d fired but task was not accepted: %v", id, err)
		}
	}
}

// sleep blocks for up to d, returning early on a wake signal.
// Reports true when the service is stopping.
func (s *Service) sleep(d time.Duration, wake <-chan struct{}, stop <-chan struct{}) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-wake:
		return false
	case <-stop:
		return true
	case <-t.C:
		return false
	}
}
