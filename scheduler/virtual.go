package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/fogfish/opts"

	"github.com/casualjim/murmur/disposal"
)

// Virtual is a scheduler with an explicit clock. Nothing runs until the
// clock is advanced; advancing pops queued actions in due-time order,
// moving the clock to each action's due time as it fires. Tests drive it to
// get deterministic timing without sleeping.
type Virtual struct {
	mu        sync.Mutex
	agenda    agenda
	clock     time.Time
	advancing bool
}

// VirtualConfig carries construction knobs for a Virtual scheduler.
type VirtualConfig struct {
	start time.Time
}

// WithStart sets the initial clock reading. The default anchor is the Unix
// epoch in UTC.
var WithStart = opts.ForName[VirtualConfig, time.Time]("start")

// NewVirtual returns a virtual-time scheduler holding at its start time.
func NewVirtual(options ...opts.Option[VirtualConfig]) *Virtual {
	cfg := VirtualConfig{start: time.Unix(0, 0).UTC()}
	if err := opts.Apply(&cfg, options); err != nil {
		panic(err)
	}
	return &Virtual{clock: cfg.start}
}

// Now returns the current virtual clock reading.
func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.clock
}

// Schedule queues action at the current clock reading, so it fires on the
// next advance.
func (v *Virtual) Schedule(action func()) disposal.Disposable {
	return v.ScheduleAt(v.Now(), action)
}

// ScheduleAfter queues action at the current clock reading plus delay.
func (v *Virtual) ScheduleAfter(delay time.Duration, action func()) disposal.Disposable {
	return v.ScheduleAt(v.Now().Add(delay), action)
}

// ScheduleAt queues action for an absolute virtual due time. Due times in
// the past are legal; such actions fire on the next advance.
func (v *Virtual) ScheduleAt(due time.Time, action func()) disposal.Disposable {
	if action == nil {
		return disposal.Noop()
	}
	v.mu.Lock()
	queued := v.agenda.push(due, action)
	v.mu.Unlock()
	return disposal.New(queued.cancel)
}

// Len reports how many tasks are queued, including cancelled ones that have
// not been pruned yet.
func (v *Virtual) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.agenda.len()
}

// AdvanceTo moves the clock to target, running every action due on the way
// in (due time, insertion order). It fails with ErrAdvancing when called
// from inside a running action and with ErrPastClock when target is before
// the current clock.
func (v *Virtual) AdvanceTo(target time.Time) error {
	v.mu.Lock()
	if v.advancing {
		v.mu.Unlock()
		return ErrAdvancing
	}
	if target.Before(v.clock) {
		current := v.clock
		v.mu.Unlock()
		return fmt.Errorf("%w: clock at %s, target %s",
			ErrPastClock,
			current.Format(time.RFC3339Nano),
			target.Format(time.RFC3339Nano),
		)
	}
	v.advancing = true
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.advancing = false
		v.mu.Unlock()
	}()

	for {
		v.mu.Lock()
		next := v.agenda.peek()
		if next == nil || next.due.After(target) {
			v.clock = target
			v.mu.Unlock()
			return nil
		}
		v.agenda.pop()
		// The clock never rewinds for tasks queued with past due times.
		if next.due.After(v.clock) {
			v.clock = next.due
		}
		v.mu.Unlock()

		next.action()
	}
}

// AdvanceBy moves the clock forward by d. Negative durations are rejected
// with ErrPastClock.
func (v *Virtual) AdvanceBy(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: negative advance %s", ErrPastClock, d)
	}
	return v.AdvanceTo(v.Now().Add(d))
}

// Drain runs queued actions, including any scheduled while draining, until
// the queue is empty. The clock follows the due times of the fired actions.
func (v *Virtual) Drain() error {
	v.mu.Lock()
	if v.advancing {
		v.mu.Unlock()
		return ErrAdvancing
	}
	v.advancing = true
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.advancing = false
		v.mu.Unlock()
	}()

	for {
		v.mu.Lock()
		next := v.agenda.pop()
		if next == nil {
			v.mu.Unlock()
			return nil
		}
		if next.due.After(v.clock) {
			v.clock = next.due
		}
		v.mu.Unlock()

		next.action()
	}
}
