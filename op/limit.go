package op

import (
	"sync/atomic"

	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/disposal"
)

// Take forwards the first n values, completes, and unsubscribes from the
// source. A non-positive n completes immediately without subscribing.
func Take[T any](src murmur.Observable[T], n int) murmur.Observable[T] {
	return murmur.Create(func(o murmur.Observer[T]) (disposal.Disposable, error) {
		if n <= 0 {
			o.OnCompleted()
			return disposal.Noop(), nil
		}

		var (
			taken atomic.Int64
			done  atomic.Bool
		)
		slot := disposal.NewSerial()
		d, err := src.Subscribe(murmur.NewObserver(
			func(v T) {
				if done.Load() {
					return
				}
				switch k := taken.Add(1); {
				case k < int64(n):
					o.OnNext(v)
				case k == int64(n):
					if done.CompareAndSwap(false, true) {
						o.OnNext(v)
						o.OnCompleted()
						slot.Dispose()
					}
				}
			},
			func(err error) {
				if done.CompareAndSwap(false, true) {
					o.OnError(err)
				}
			},
			func() {
				if done.CompareAndSwap(false, true) {
					o.OnCompleted()
				}
			},
		))
		if err != nil {
			return nil, err
		}
		slot.Set(d)
		return slot, nil
	})
}
