// Package scheduler abstracts where and when stream work runs.
//
// A Scheduler turns an action into a unit of scheduled work and hands back a
// disposal handle that cancels the work if it has not started yet. Five
// implementations cover the usual execution policies: Immediate runs actions
// inline, Trampoline flattens recursive scheduling onto one draining
// goroutine, Pool fans work out to fresh goroutines, Workers feeds a fixed
// worker set, and Virtual runs against an explicit clock for deterministic
// tests.
package scheduler

import (
	"errors"
	"time"

	"github.com/casualjim/murmur/disposal"
)

// Scheduler places actions in time. Now reports the scheduler's clock, which
// is wall time everywhere except Virtual. The returned handle cancels the
// action while it is still pending; once the action has started the handle
// has no effect.
type Scheduler interface {
	Now() time.Time
	Schedule(action func()) disposal.Disposable
	ScheduleAfter(delay time.Duration, action func()) disposal.Disposable
	ScheduleAt(due time.Time, action func()) disposal.Disposable
}

var (
	// ErrAdvancing reports a re-entrant advance on a virtual clock, which
	// would re-order the queue out from under the running action.
	ErrAdvancing = errors.New("scheduler: clock is already advancing")

	// ErrPastClock reports an attempt to move a virtual clock backwards.
	ErrPastClock = errors.New("scheduler: target precedes the current clock")
)
