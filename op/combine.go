package op

import (
	"sync"

	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/disposal"
)

// Merge interleaves the values of all sources into one stream. The merged
// stream completes once every source has completed, fails as soon as any
// source fails, and serializes downstream delivery so racing sources never
// overlap. No sources means immediate completion.
func Merge[T any](sources ...murmur.Observable[T]) murmur.Observable[T] {
	return murmur.Create(func(o murmur.Observer[T]) (disposal.Disposable, error) {
		if len(sources) == 0 {
			o.OnCompleted()
			return disposal.Noop(), nil
		}

		var (
			mu      sync.Mutex
			stopped bool
			live    = len(sources)
		)
		bag := disposal.NewComposite()

		fwd := murmur.NewObserver(
			func(v T) {
				mu.Lock()
				defer mu.Unlock()
				if stopped {
					return
				}
				o.OnNext(v)
			},
			func(err error) {
				mu.Lock()
				if stopped {
					mu.Unlock()
					return
				}
				stopped = true
				mu.Unlock()
				o.OnError(err)
				bag.Dispose()
			},
			func() {
				mu.Lock()
				if stopped {
					mu.Unlock()
					return
				}
				live--
				if live > 0 {
					mu.Unlock()
					return
				}
				stopped = true
				mu.Unlock()
				o.OnCompleted()
			},
		)

		for _, src := range sources {
			d, err := src.Subscribe(fwd)
			if err != nil {
				bag.Dispose()
				return nil, err
			}
			bag.Add(d)
		}
		return bag, nil
	})
}
