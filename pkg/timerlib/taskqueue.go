package timerlib

// Task is the unit of work attached to a timer. It captures its own state;
// there is no separate argument value.
type Task func()

// TaskQueue receives the task of every fired timer. The worker calls Post
// without holding any lock owned by this package, so implementations are
// free to lock, block briefly, or hand the task to another goroutine.
//
// A Post error means the task was not accepted; the worker logs it and
// moves on. Fired tasks are never retried.
type TaskQueue interface {
	Post(task Task) error
}

// PostFunc adapts a plain function to the TaskQueue interface.
type PostFunc func(task Task) error

// Post calls f(task).
func (f PostFunc) Post(task Task) error {
	return f(task)
}

// goQueue runs each posted task on its own goroutine. It is the fallback
// queue used when a Service is built without one; hosts that need tasks
// serialized on their own loop should supply a real queue instead.
func goQueue() TaskQueue {
	return PostFunc(func(task Task) error {
		go task()
		return nil
	})
}
