package murmur

import (
	"github.com/fogfish/opts"

	"github.com/casualjim/murmur/disposal"
)

// Catch forwards src until it fails, then hands the error to handler and
// continues with the stream handler returns. A nil fallback forwards the
// original error downstream, which makes recovery conditional:
//
//	Catch(src, func(err error) Observable[int] {
//		if errors.Is(err, io.EOF) {
//			return Just(0)
//		}
//		return nil
//	})
//
// Values and completion pass through untouched.
func Catch[T any](src Observable[T], handler func(error) Observable[T], options ...opts.Option[StreamConfig]) Observable[T] {
	return newStream(func(o Observer[T]) (disposal.Disposable, error) {
		fallback := disposal.NewSerial()
		fwd := NewObserver(
			o.OnNext,
			func(err error) {
				next := handler(err)
				if next == nil {
					o.OnError(err)
					return
				}
				nd, serr := next.Subscribe(o)
				if serr != nil {
					o.OnError(serr)
					return
				}
				fallback.Set(nd)
			},
			o.OnCompleted,
		)
		first, err := src.Subscribe(fwd)
		if err != nil {
			return nil, err
		}
		return disposal.New(func() {
			first.Dispose()
			fallback.Dispose()
		}), nil
	}, options)
}
