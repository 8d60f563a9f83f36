package timerlib

// schedule is the registry of live timers kept as a doubly linked list
// ordered by remaining time, nearest deadline first. Ties keep insertion
// order: an entry inserted later goes after existing entries with equal
// remaining time, so identical deadlines fire first-scheduled-first.
//
// The list is deliberately O(n) per insert and lookup; timer counts stay
// small and a linear walk keeps the tie-break rule trivially stable.
// All methods require the service lock to be held by the caller.
type schedule struct {
	root   timer // sentinel; root.next is the nearest deadline
	length int
}

// init resets the schedule to empty. Must be called before first use.
func (s *schedule) init() {
	s.root.prev = &s.root
	s.root.next = &s.root
	s.length = 0
}

// insert links t into the list before the first entry whose remaining time
// is strictly greater than t's, computing remaining times with c.
func (s *schedule) insert(t *timer, c Clock) {
	r := t.remaining(c)
	at := s.root.prev
	for cur := s.root.next; cur != &s.root; cur = cur.next {
		if r < cur.remaining(c) {
			at = cur.prev
			break
		}
	}
	t.prev = at
	t.next = at.next
	at.next.prev = t
	at.next = t
	s.length++
}

// remove unlinks t. It is a no-op for an already-detached timer, which
// makes the cancel/fire race resolve to exactly one removal.
func (s *schedule) remove(t *timer) {
	if t.prev == nil || t.next == nil {
		return
	}
	t.prev.next = t.next
	t.next.prev = t.prev
	t.prev = nil
	t.next = nil
	s.length--
}

// find returns the live timer with the given id, or nil.
func (s *schedule) find(id TimerID) *timer {
	for cur := s.root.next; cur != &s.root; cur = cur.next {
		if cur.id == id {
			return cur
		}
	}
	return nil
}

// earliest returns the running timer nearest the front of the order,
// skipping paused entries without removing them. Returns nil when no
// running timer exists.
func (s *schedule) earliest() *timer {
	for cur := s.root.next; cur != &s.root; cur = cur.next {
		if cur.state == StateRunning {
			return cur
		}
	}
	return nil
}

// each walks the schedule front to back until fn returns false.
// fn must not mutate the list.
func (s *schedule) each(fn func(*timer) bool) {
	for cur := s.root.next; cur != &s.root; cur = cur.next {
		if !fn(cur) {
			return
		}
	}
}

// clear detaches every entry, leaving the list empty.
func (s *schedule) clear() {
	for s.root.next != &s.root {
		s.remove(s.root.next)
	}
}

// len reports the number of live timers.
func (s *schedule) len() int {
	return s.length
}
