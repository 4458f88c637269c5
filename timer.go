package murmur

import (
	"time"

	"github.com/fogfish/opts"

	"github.com/casualjim/murmur/disposal"
	"github.com/casualjim/murmur/scheduler"
)

// Timer emits 0 once delay has elapsed on s, then completes. Under a
// virtual scheduler nothing fires until the clock is advanced.
func Timer(s scheduler.Scheduler, delay time.Duration, options ...opts.Option[StreamConfig]) Observable[int64] {
	return Create(func(o Observer[int64]) (disposal.Disposable, error) {
		return s.ScheduleAfter(delay, func() {
			o.OnNext(0)
			o.OnCompleted()
		}), nil
	}, options...)
}

// Interval emits 0, 1, 2, ... every period on s and never completes on its
// own. Each tick arms the next one after delivering, so a slow observer
// stretches the effective period instead of piling up ticks.
func Interval(s scheduler.Scheduler, period time.Duration, options ...opts.Option[StreamConfig]) Observable[int64] {
	return Create(func(o Observer[int64]) (disposal.Disposable, error) {
		slot := disposal.NewSerial()
		var n int64
		var tick func()
		tick = func() {
			v := n
			n++
			o.OnNext(v)
			slot.Set(s.ScheduleAfter(period, tick))
		}
		slot.Set(s.ScheduleAfter(period, tick))
		return slot, nil
	}, options...)
}
