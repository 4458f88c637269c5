package op

import (
	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/disposal"
)

// Tap invokes spy for every notification before forwarding it downstream.
// The stream itself is unchanged. Use murmur.NewObserver with nil callbacks
// to spy on a subset of notifications.
func Tap[T any](src murmur.Observable[T], spy murmur.Observer[T]) murmur.Observable[T] {
	return murmur.Create(func(o murmur.Observer[T]) (disposal.Disposable, error) {
		return src.Subscribe(murmur.NewObserver(
			func(v T) {
				spy.OnNext(v)
				o.OnNext(v)
			},
			func(err error) {
				spy.OnError(err)
				o.OnError(err)
			},
			func() {
				spy.OnCompleted()
				o.OnCompleted()
			},
		))
	})
}
