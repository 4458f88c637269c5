package murmur

import (
	"context"
	"fmt"

	"github.com/fogfish/opts"

	"github.com/casualjim/murmur/disposal"
	"github.com/casualjim/murmur/scheduler"
)

// Just emits the given values in order and completes, synchronously on the
// subscribing goroutine.
func Just[T any](values ...T) Observable[T] {
	return Create(func(o Observer[T]) (disposal.Disposable, error) {
		for _, v := range values {
			o.OnNext(v)
		}
		o.OnCompleted()
		return disposal.Noop(), nil
	})
}

// Empty completes immediately without emitting.
func Empty[T any]() Observable[T] {
	return Create(func(o Observer[T]) (disposal.Disposable, error) {
		o.OnCompleted()
		return disposal.Noop(), nil
	})
}

// Never emits nothing and never terminates. Disposing the subscription is
// the only way out.
func Never[T any]() Observable[T] {
	return Create(func(o Observer[T]) (disposal.Disposable, error) {
		return disposal.New(nil), nil
	})
}

// Throw fails immediately with err.
func Throw[T any](err error) Observable[T] {
	return Create(func(o Observer[T]) (disposal.Disposable, error) {
		o.OnError(err)
		return disposal.Noop(), nil
	})
}

// Range emits count integers starting at start, then completes. Each
// subscription drives its emission through its own trampoline, so the
// values arrive one scheduled step at a time instead of through count
// nested calls, and the whole run finishes before Subscribe returns.
func Range(start, count int, options ...opts.Option[StreamConfig]) Observable[int] {
	return Create(func(o Observer[int]) (disposal.Disposable, error) {
		if count < 0 {
			return nil, fmt.Errorf("murmur: range count must not be negative, got %d", count)
		}
		tramp := scheduler.NewTrampoline()
		stop := disposal.New(nil)
		var step func(i int) func()
		step = func(i int) func() {
			return func() {
				if stop.IsDisposed() {
					return
				}
				if i >= start+count {
					o.OnCompleted()
					return
				}
				o.OnNext(i)
				tramp.Schedule(step(i + 1))
			}
		}
		tramp.Schedule(step(start))
		return stop, nil
	}, options...)
}

// FromChannel adapts a receive channel into a stream. Each subscription
// starts one forwarding goroutine that emits every received value and
// completes when the channel closes. Disposing the subscription stops the
// forwarder without draining the channel.
//
// The channel is shared state: with more than one subscriber, each value is
// received by exactly one of them.
func FromChannel[T any](ch <-chan T, options ...opts.Option[StreamConfig]) Observable[T] {
	return Create(func(o Observer[T]) (disposal.Disposable, error) {
		cancel := disposal.NewCancel(context.Background())
		go func() {
			done := cancel.Context().Done()
			for {
				select {
				case <-done:
					return
				case v, ok := <-ch:
					if !ok {
						o.OnCompleted()
						return
					}
					o.OnNext(v)
				}
			}
		}()
		return cancel, nil
	}, options...)
}

// ToChannel subscribes to src and forwards every notification as a Spark on
// the returned channel. The channel is closed after the terminal spark.
// Sends block when the buffer is full, which propagates backpressure to the
// producer; disposing the returned handle unblocks any pending send and
// detaches from src, after which the channel stays open but silent.
func ToChannel[T any](src Observable[T], buffer int) (<-chan Spark[T], disposal.Disposable, error) {
	ch := make(chan Spark[T], buffer)
	stop := make(chan struct{})

	send := func(s Spark[T]) {
		select {
		case ch <- s:
		case <-stop:
		}
	}
	d, err := src.Subscribe(NewObserver(
		func(v T) { send(NextSpark(v)) },
		func(err error) {
			send(ErrorSpark[T](err))
			close(ch)
		},
		func() {
			send(CompletedSpark[T]())
			close(ch)
		},
	))
	if err != nil {
		return nil, nil, err
	}
	return ch, disposal.New(func() {
		close(stop)
		d.Dispose()
	}), nil
}
