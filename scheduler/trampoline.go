package scheduler

import (
	"sync"
	"time"

	"github.com/casualjim/murmur/disposal"
)

// Trampoline serializes actions onto whichever goroutine first schedules
// work while the queue is idle. That goroutine becomes the drainer: it runs
// its own action and then every action scheduled recursively from inside it,
// in due-time order, before its Schedule call returns. Scheduling against a
// busy trampoline only enqueues; the work runs on the draining goroutine.
//
// This is how recursive emitters flatten unbounded recursion into a loop.
// Each trampoline instance owns its queue, so independent subscriptions get
// independent trampolines rather than sharing process-wide state.
type Trampoline struct {
	mu      sync.Mutex
	agenda  agenda
	running bool
}

// NewTrampoline returns an idle trampoline.
func NewTrampoline() *Trampoline {
	return &Trampoline{}
}

// Now returns the wall clock time.
func (t *Trampoline) Now() time.Time {
	return time.Now()
}

// Schedule queues action to run as soon as possible. On an idle trampoline
// the calling goroutine drains the queue before this returns.
func (t *Trampoline) Schedule(action func()) disposal.Disposable {
	return t.ScheduleAt(time.Now(), action)
}

// ScheduleAfter queues action to run once delay has elapsed. The draining
// goroutine sleeps until the action is due.
func (t *Trampoline) ScheduleAfter(delay time.Duration, action func()) disposal.Disposable {
	return t.ScheduleAt(time.Now().Add(delay), action)
}

// ScheduleAt queues action for the given due time.
func (t *Trampoline) ScheduleAt(due time.Time, action func()) disposal.Disposable {
	if action == nil {
		return disposal.Noop()
	}

	t.mu.Lock()
	queued := t.agenda.push(due, action)
	if t.running {
		t.mu.Unlock()
		return disposal.New(queued.cancel)
	}
	t.running = true
	t.mu.Unlock()

	t.drain()
	return disposal.New(queued.cancel)
}

// ScheduleRequired reports whether a caller holding work must go through
// Schedule to get the flattening guarantee. It is false only while a drain
// is in progress, in which case the current work is already running under
// the trampoline and may invoke actions directly.
func (t *Trampoline) ScheduleRequired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.running
}

func (t *Trampoline) drain() {
	defer func() {
		// Reached only when an action panics; the normal return clears the
		// flag under the queue lock so no concurrent Schedule strands work.
		if r := recover(); r != nil {
			t.mu.Lock()
			t.running = false
			t.mu.Unlock()
			panic(r)
		}
	}()

	for {
		t.mu.Lock()
		next := t.agenda.pop()
		if next == nil {
			t.running = false
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()

		if wait := time.Until(next.due); wait > 0 {
			time.Sleep(wait)
		}
		// The task may have been cancelled while we slept.
		if next.cancelled.Load() {
			continue
		}
		next.action()
	}
}
