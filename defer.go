package murmur

import (
	"github.com/fogfish/opts"

	"github.com/casualjim/murmur/disposal"
)

// Defer calls factory once per subscriber and subscribes to the stream it
// returns, so the work of producing the stream happens at subscription time
// rather than at assembly time. The factory must return a non-nil stream.
func Defer[T any](factory func() (Observable[T], error), options ...opts.Option[StreamConfig]) Observable[T] {
	return newStream(func(o Observer[T]) (disposal.Disposable, error) {
		src, err := factory()
		if err != nil {
			return nil, err
		}
		return src.Subscribe(o)
	}, options)
}
