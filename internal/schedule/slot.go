// Package schedule defers work until the current UI event has been handled.
package schedule

import "sync"

// Slot holds at most one pending task. Posting while a task is pending
// replaces it; there is no cancellation beyond that. Tasks run on whichever
// goroutine calls Run, normally the UI event loop after each event.
type Slot struct {
	mu     sync.Mutex
	tasks  chan func()
	notify func()
}

// NewSlot returns an empty slot. notify, if not nil, is called after every
// Post so an idle event loop can wake up and call Run.
func NewSlot(notify func()) *Slot {
	return &Slot{tasks: make(chan func(), 1), notify: notify}
}

// Post stores task, replacing any task not yet run.
func (s *Slot) Post(task func()) {
	s.mu.Lock()
	select {
	case <-s.tasks:
	default:
	}
	s.tasks <- task
	s.mu.Unlock()
	if s.notify != nil {
		s.notify()
	}
}

// Pending reports whether a task is waiting.
func (s *Slot) Pending() bool {
	return len(s.tasks) > 0
}

// Run executes the pending task, if any, and reports whether one ran.
func (s *Slot) Run() bool {
	select {
	case task := <-s.tasks:
		task()
		return true
	default:
		return false
	}
}
