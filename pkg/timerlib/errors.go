package timerlib

import "errors"

var (
	// ErrNotRunning is returned by control-surface calls made before Start
	// or after Stop.
	ErrNotRunning = errors.New("timer service is not running")

	// ErrAlreadyRunning is returned when Start is called on a running service.
	ErrAlreadyRunning = errors.New("timer service is already running")

	// ErrNotFound is returned when the referenced timer is absent: already
	// fired, already cancelled, or never issued. Expected under races with
	// the worker; callers should treat it as a benign outcome, not a fault.
	ErrNotFound = errors.New("timer not found")

	// ErrNilTask is returned by Schedule when no task is supplied.
	ErrNilTask = errors.New("timer task is nil")

	// ErrInvalidPeriod is returned by Schedule and Reset for a negative
	// period. A zero period is valid and fires on the next worker pass.
	ErrInvalidPeriod = errors.New("timer period is negative")
)
