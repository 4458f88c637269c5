package murmur

import (
	"github.com/fogfish/opts"

	"github.com/casualjim/murmur/disposal"
	"github.com/casualjim/murmur/scheduler"
)

// SubscribeOn defers the subscription call itself onto s; notifications
// still arrive on whatever goroutine the source produces them from. The
// returned handle cancels the pending subscribe when it has not started yet
// and tears down the live subscription otherwise. A subscription failure on
// the scheduled goroutine is delivered through OnError.
func SubscribeOn[T any](src Observable[T], s scheduler.Scheduler, options ...opts.Option[StreamConfig]) Observable[T] {
	return newStream(func(o Observer[T]) (disposal.Disposable, error) {
		slot := disposal.NewSerial()
		pending := s.Schedule(func() {
			d, err := src.Subscribe(o)
			if err != nil {
				o.OnError(err)
				return
			}
			slot.Set(d)
		})
		return disposal.New(func() {
			pending.Dispose()
			slot.Dispose()
		}), nil
	}, options)
}
