package murmur

import (
	"sync/atomic"

	"github.com/fogfish/opts"

	"github.com/casualjim/murmur/disposal"
)

// Create returns a cold stream that runs subscribe once for every observer.
// The subscribe function produces notifications and returns the teardown
// handle for that one subscription.
//
// Create applies no safety net: a panic in a downstream callback unwinds
// through the producer's OnNext call and the subscription stays attached.
// Use CreateSafe when a panicking observer should be detached first.
func Create[T any](subscribe func(o Observer[T]) (disposal.Disposable, error), options ...opts.Option[StreamConfig]) Observable[T] {
	return newStream(subscribe, options)
}

// CreateSafe is Create with an auto-detaching observer wrapped around every
// subscriber: terminal notifications are delivered at most once, the
// teardown handle is disposed right after the terminal notification, and a
// panic escaping a downstream callback disposes the subscription before it
// continues to unwind.
func CreateSafe[T any](subscribe func(o Observer[T]) (disposal.Disposable, error), options ...opts.Option[StreamConfig]) Observable[T] {
	return newStream(func(o Observer[T]) (disposal.Disposable, error) {
		ad := &autoDetach[T]{dest: o, teardown: disposal.NewSerial()}
		d, err := subscribe(ad)
		if err != nil {
			return nil, err
		}
		ad.teardown.Set(d)
		return ad, nil
	}, options)
}

// autoDetach guards a downstream observer. It swallows notifications after
// the first terminal one, releases the upstream teardown once the stream
// ends, and detaches the subscription when a downstream callback panics.
type autoDetach[T any] struct {
	dest     Observer[T]
	teardown *disposal.Serial
	stopped  atomic.Bool
}

func (a *autoDetach[T]) OnNext(v T) {
	if a.stopped.Load() {
		return
	}
	delivered := false
	defer func() {
		if !delivered {
			a.Dispose()
		}
	}()
	a.dest.OnNext(v)
	delivered = true
}

func (a *autoDetach[T]) OnError(err error) {
	if !a.stopped.CompareAndSwap(false, true) {
		return
	}
	defer a.teardown.Dispose()
	a.dest.OnError(err)
}

func (a *autoDetach[T]) OnCompleted() {
	if !a.stopped.CompareAndSwap(false, true) {
		return
	}
	defer a.teardown.Dispose()
	a.dest.OnCompleted()
}

func (a *autoDetach[T]) Dispose() {
	a.stopped.Store(true)
	a.teardown.Dispose()
}

func (a *autoDetach[T]) IsDisposed() bool {
	return a.teardown.IsDisposed()
}
