package murmur

import (
	"github.com/fogfish/opts"

	"github.com/casualjim/murmur/disposal"
	"github.com/casualjim/murmur/scheduler"
)

// Observable is a push stream of values. Subscribing attaches an observer
// and returns a handle that detaches it again. A nil observer is rejected
// with ErrNilObserver.
//
// Implementations in this module are either hot (subjects, which multicast
// one production run to every observer) or cold (streams built with Create
// and the factories, which run their subscribe function once per observer).
type Observable[T any] interface {
	Subscribe(o Observer[T]) (disposal.Disposable, error)
}

// StreamConfig carries the construction knobs shared by Create, CreateSafe
// and the combinators in this package.
type StreamConfig struct {
	trampoline bool
}

// WithTrampoline gives the stream its own trampoline and routes every
// subscription through it. While a drain is running, further subscriptions
// are queued and picked up in order instead of nesting on the call stack,
// which keeps recursively resubscribing pipelines from growing the stack.
// On this path subscription failures are delivered through OnError instead
// of being returned.
func WithTrampoline() opts.Option[StreamConfig] {
	return opts.Type[StreamConfig](func(c *StreamConfig) error {
		c.trampoline = true
		return nil
	})
}

// stream is the Observable implementation behind Create and the combinator
// constructors.
type stream[T any] struct {
	subscribe func(Observer[T]) (disposal.Disposable, error)
	tramp     *scheduler.Trampoline
}

func newStream[T any](subscribe func(Observer[T]) (disposal.Disposable, error), options []opts.Option[StreamConfig]) *stream[T] {
	var cfg StreamConfig
	if err := opts.Apply(&cfg, options); err != nil {
		panic(err)
	}
	s := &stream[T]{subscribe: subscribe}
	if cfg.trampoline {
		s.tramp = scheduler.NewTrampoline()
	}
	return s
}

func (s *stream[T]) Subscribe(o Observer[T]) (disposal.Disposable, error) {
	if o == nil {
		return nil, ErrNilObserver
	}
	if s.tramp == nil {
		return s.subscribe(o)
	}

	// The subscription itself goes through the trampoline. When the
	// trampoline is idle the calling goroutine drains it and the
	// subscription has completed by the time Schedule returns; when a drain
	// is already running the subscription is queued behind it.
	slot := disposal.NewSerial()
	pending := s.tramp.Schedule(func() {
		d, err := s.subscribe(o)
		if err != nil {
			o.OnError(err)
			return
		}
		slot.Set(d)
	})
	return disposal.New(func() {
		pending.Dispose()
		slot.Dispose()
	}), nil
}
