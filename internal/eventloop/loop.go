// Package eventloop provides the single-consumer task queue a control schedules
// deferred work on.
//
// Producers call Post from any goroutine. Tasks run in FIFO order on the
// goroutine draining the loop, either one turn at a time with RunPending or
// continuously with Run. Tasks posted while a turn is draining belong to the
// next turn.
package eventloop

import (
	"context"
	"sync"
)

// Task is a unit of deferred work.
type Task func()

// Scheduler is the capability a control needs to defer work past the current turn.
type Scheduler interface {
	Post(task Task) bool
}

// Loop is a FIFO task queue with a single consumer.
type Loop struct {
	mu      sync.Mutex
	pending []Task
	closed  bool
	wake    chan struct{}
}

// New creates an empty loop.
func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
	}
}

// Post enqueues a task for a later turn.
// Returns false if the loop is closed; the task is dropped.
func (l *Loop) Post(task Task) bool {
	if task == nil {
		return false
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.pending = append(l.pending, task)
	l.mu.Unlock()

	// Non-blocking wake for Run
	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// RunPending runs the tasks queued before the call and returns how many ran.
func (l *Loop) RunPending() int {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, task := range batch {
		task()
	}
	return len(batch)
}

// Len returns the number of queued tasks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Run drains turns until ctx is done or the loop is closed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.RunPending()

		l.mu.Lock()
		closed := l.closed && len(l.pending) == 0
		l.mu.Unlock()
		if closed {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Close stops accepting tasks. Tasks already queued are discarded.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.pending = nil
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}
