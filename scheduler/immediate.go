package scheduler

import (
	"time"

	"github.com/casualjim/murmur/disposal"
)

// Immediate returns the scheduler that runs actions synchronously on the
// calling goroutine. Delayed variants sleep the calling goroutine until the
// action is due. Since the action has already run by the time Schedule
// returns, the returned handle is always spent.
func Immediate() Scheduler {
	return immediate{}
}

type immediate struct{}

func (immediate) Now() time.Time {
	return time.Now()
}

func (immediate) Schedule(action func()) disposal.Disposable {
	if action == nil {
		return disposal.Noop()
	}
	action()
	return disposal.Noop()
}

func (im immediate) ScheduleAfter(delay time.Duration, action func()) disposal.Disposable {
	if action == nil {
		return disposal.Noop()
	}
	if delay > 0 {
		time.Sleep(delay)
	}
	action()
	return disposal.Noop()
}

func (im immediate) ScheduleAt(due time.Time, action func()) disposal.Disposable {
	return im.ScheduleAfter(time.Until(due), action)
}
