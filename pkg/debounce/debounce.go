// Package debounce provides a single-flight scheduler for coalescing bursts
// of recompute requests.
//
// A user dragging a count selector can emit dozens of rebuild requests per
// second; recomputing the full placement pipeline on each one is wasted
// work. A [Scheduler] collapses such a burst into a single execution after a
// quiescence delay: each Trigger cancels any pending run and schedules a
// fresh one, so only the last request within the window executes.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiescence window between the last trigger and the
// scheduled run.
const DefaultDelay = 150 * time.Millisecond

// Scheduler coalesces Trigger calls into single deferred executions of fn.
//
// A busy guard prevents re-entrant execution: a run triggered while another
// run is executing is dropped rather than nested. The guarded function is
// expected to be fast and non-blocking (pure computation, no I/O), so no
// cancellation of an in-flight run is provided.
type Scheduler struct {
	mu     sync.Mutex
	delay  time.Duration
	fn     func()
	timer  *time.Timer
	busy   bool
	closed bool
}

// New creates a scheduler that runs fn after delay has elapsed without a new
// Trigger. A non-positive delay falls back to DefaultDelay.
func New(delay time.Duration, fn func()) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{delay: delay, fn: fn}
}

// Trigger requests a run. Any pending scheduled run is cancelled and
// rescheduled a full delay from now.
func (s *Scheduler) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.run)
}

// Flush runs any pending execution immediately instead of waiting out the
// delay. It is a no-op when nothing is pending.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	if s.closed || s.timer == nil {
		s.mu.Unlock()
		return
	}
	pending := s.timer.Stop()
	s.timer = nil
	s.mu.Unlock()

	if pending {
		s.run()
	}
}

// Close cancels any pending run. Subsequent Triggers are ignored.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// run executes fn under the busy guard.
func (s *Scheduler) run() {
	s.mu.Lock()
	if s.busy || s.closed {
		s.mu.Unlock()
		return
	}
	s.busy = true
	s.timer = nil
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()
	s.fn()
}
