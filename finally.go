package murmur

import (
	"github.com/fogfish/opts"

	"github.com/casualjim/murmur/disposal"
)

// Finally runs action exactly once after the subscription ends, whether it
// ends by completion, by error or by disposal. The terminal notification
// reaches the observer before action runs. When subscribing to src fails,
// action runs before the error is returned.
func Finally[T any](src Observable[T], action func(), options ...opts.Option[StreamConfig]) Observable[T] {
	return newStream(func(o Observer[T]) (disposal.Disposable, error) {
		once := disposal.New(action)
		d, err := src.Subscribe(NewObserver(
			o.OnNext,
			func(err error) {
				o.OnError(err)
				once.Dispose()
			},
			func() {
				o.OnCompleted()
				once.Dispose()
			},
		))
		if err != nil {
			once.Dispose()
			return nil, err
		}
		return disposal.New(func() {
			d.Dispose()
			once.Dispose()
		}), nil
	}, options)
}
