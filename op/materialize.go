package op

import (
	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/disposal"
)

// Materialize reifies every notification into a Spark value. Terminals
// arrive as ordinary values followed by completion, so the materialized
// stream always completes and never fails.
func Materialize[T any](src murmur.Observable[T]) murmur.Observable[murmur.Spark[T]] {
	return murmur.Create(func(o murmur.Observer[murmur.Spark[T]]) (disposal.Disposable, error) {
		return src.Subscribe(murmur.NewObserver(
			func(v T) { o.OnNext(murmur.NextSpark(v)) },
			func(err error) {
				o.OnNext(murmur.ErrorSpark[T](err))
				o.OnCompleted()
			},
			func() {
				o.OnNext(murmur.CompletedSpark[T]())
				o.OnCompleted()
			},
		))
	})
}

// Dematerialize undoes Materialize: value sparks become values again and
// terminal sparks terminate the stream, unsubscribing from the source.
// Sparks after the first terminal are dropped.
func Dematerialize[T any](src murmur.Observable[murmur.Spark[T]]) murmur.Observable[T] {
	return murmur.Create(func(o murmur.Observer[T]) (disposal.Disposable, error) {
		slot := disposal.NewSerial()
		d, err := src.Subscribe(murmur.NewObserver(
			func(s murmur.Spark[T]) {
				if slot.IsDisposed() {
					return
				}
				s.Accept(o)
				if s.Terminal() {
					slot.Dispose()
				}
			},
			func(err error) {
				if !slot.IsDisposed() {
					o.OnError(err)
				}
			},
			func() {
				if !slot.IsDisposed() {
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
