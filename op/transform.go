package op

import (
	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/disposal"
)

// Select maps every value through fn and forwards terminals untouched.
func Select[T, R any](src murmur.Observable[T], fn func(T) R) murmur.Observable[R] {
	return murmur.Create(func(o murmur.Observer[R]) (disposal.Disposable, error) {
		return src.Subscribe(murmur.NewObserver(
			func(v T) { o.OnNext(fn(v)) },
			o.OnError,
			o.OnCompleted,
		))
	})
}

// Where forwards only the values for which keep returns true.
func Where[T any](src murmur.Observable[T], keep func(T) bool) murmur.Observable[T] {
	return murmur.Create(func(o murmur.Observer[T]) (disposal.Disposable, error) {
		return src.Subscribe(murmur.NewObserver(
			func(v T) {
				if keep(v) {
					o.OnNext(v)
				}
			},
			o.OnError,
			o.OnCompleted,
		))
	})
}

// Scan folds values into a running accumulator and emits every intermediate
// result. The seed itself is not emitted.
func Scan[T, R any](src murmur.Observable[T], seed R, fold func(R, T) R) murmur.Observable[R] {
	return murmur.Create(func(o murmur.Observer[R]) (disposal.Disposable, error) {
		acc := seed
		return src.Subscribe(murmur.NewObserver(
			func(v T) {
				acc = fold(acc, v)
				o.OnNext(acc)
			},
			o.OnError,
			o.OnCompleted,
		))
	})
}
