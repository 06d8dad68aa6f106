package engine

import (
	"sync"
	"time"
)

// Task runs a callback on a fixed interval in its own goroutine until
// cancelled.
type Task struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Every starts a task calling fn every interval. The first call happens one
// interval after start.
func Every(interval time.Duration, fn func()) *Task {
	t := &Task{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go t.run(interval, fn)
	return t
}

func (t *Task) run(interval time.Duration, fn func()) {
	defer close(t.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			select {
			case <-t.stop:
				return
			default:
			}
			fn()
		}
	}
}

// Cancel stops the task. It never blocks and may be called any number of
// times. A tick already in flight may still call fn once; the engine guards
// those with its activation generation.
func (t *Task) Cancel() {
	t.stopOnce.Do(func() { close(t.stop) })
}

// Wait blocks until the task goroutine has exited.
func (t *Task) Wait() {
	<-t.done
}

// Done reports whether the goroutine has exited.
func (t *Task) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}
