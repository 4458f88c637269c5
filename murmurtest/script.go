package murmurtest

import (
	"time"

	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/scheduler"
)

// EmitAt schedules o.OnNext(v) at the given offset from the scheduler's
// current clock. Together with FailAt and CompleteAt it scripts a producer
// timeline against a virtual scheduler; advancing the clock then plays the
// script.
func EmitAt[T any](virt *scheduler.Virtual, o murmur.Observer[T], offset time.Duration, v T) {
	virt.ScheduleAfter(offset, func() { o.OnNext(v) })
}

// FailAt schedules o.OnError(err) at the given offset.
func FailAt[T any](virt *scheduler.Virtual, o murmur.Observer[T], offset time.Duration, err error) {
	virt.ScheduleAfter(offset, func() { o.OnError(err) })
}

// CompleteAt schedules o.OnCompleted() at the given offset.
func CompleteAt[T any](virt *scheduler.Virtual, o murmur.Observer[T], offset time.Duration) {
	virt.ScheduleAfter(offset, func() { o.OnCompleted() })
}
