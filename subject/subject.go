package subject

import (
	"sync/atomic"

	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/disposal"
)

// Subject multicasts every notification to its current subscribers. It
// buffers nothing: a late subscriber sees only what is produced after it
// attached, except for the terminal notification, which it receives
// synchronously when subscribing to an already terminated subject.
//
// The subscriber list is lock free. Subscribe and unsubscribe replace an
// immutable snapshot through a compare-and-swap retry loop, and dispatch
// iterates whichever snapshot was current when the notification arrived.
// An observer removed mid-dispatch may therefore see the notification that
// was already in flight.
type Subject[T any] struct {
	state atomic.Pointer[audience[T]]
}

// New returns an empty active subject.
func New[T any]() *Subject[T] {
	s := &Subject[T]{}
	s.state.Store(&audience[T]{})
	return s
}

// Subscribe attaches o. Against a terminated subject it delivers the stored
// terminal notification synchronously and returns an already disposed
// handle; against a disposed subject it fails with murmur.ErrDisposed.
func (s *Subject[T]) Subscribe(o murmur.Observer[T]) (disposal.Disposable, error) {
	if o == nil {
		return nil, murmur.ErrNilObserver
	}
	node := &subscriber[T]{dest: o}
	for {
		a := s.state.Load()
		switch a.phase {
		case phaseDisposed:
			return nil, murmur.ErrDisposed
		case phaseDone:
			if a.err != nil {
				o.OnError(a.err)
			} else {
				o.OnCompleted()
			}
			return disposal.Noop(), nil
		}
		if s.state.CompareAndSwap(a, a.add(node)) {
			return disposal.New(func() { s.unsubscribe(node) }), nil
		}
	}
}

func (s *Subject[T]) unsubscribe(node *subscriber[T]) {
	for {
		a := s.state.Load()
		if a.phase != phaseActive {
			return
		}
		next := a.remove(node)
		if next == a {
			return
		}
		if s.state.CompareAndSwap(a, next) {
			return
		}
	}
}

// OnNext delivers v to the current subscribers, synchronously on the
// calling goroutine. It panics with murmur.ErrDisposed on a disposed
// subject and is a no-op on a terminated one.
func (s *Subject[T]) OnNext(v T) {
	a := s.state.Load()
	switch a.phase {
	case phaseDisposed:
		panic(murmur.ErrDisposed)
	case phaseDone:
		return
	}
	for _, sub := range a.subs {
		sub.dest.OnNext(v)
	}
}

// OnError terminates the subject with err. Exactly one terminal
// notification wins; racing terminals lose quietly. A nil err panics with
// murmur.ErrNilError.
func (s *Subject[T]) OnError(err error) {
	if err == nil {
		panic(murmur.ErrNilError)
	}
	for {
		a := s.state.Load()
		switch a.phase {
		case phaseDisposed:
			panic(murmur.ErrDisposed)
		case phaseDone:
			return
		}
		if s.state.CompareAndSwap(a, terminated[T](err)) {
			for _, sub := range a.subs {
				sub.dest.OnError(err)
			}
			return
		}
	}
}

// OnCompleted terminates the subject gracefully, with the same exactly-once
// guarantee as OnError.
func (s *Subject[T]) OnCompleted() {
	for {
		a := s.state.Load()
		switch a.phase {
		case phaseDisposed:
			panic(murmur.ErrDisposed)
		case phaseDone:
			return
		}
		if s.state.CompareAndSwap(a, terminated[T](nil)) {
			for _, sub := range a.subs {
				sub.dest.OnCompleted()
			}
			return
		}
	}
}

// HasObservers reports whether anyone is currently subscribed.
func (s *Subject[T]) HasObservers() bool {
	return len(s.state.Load().subs) > 0
}

// Len reports how many subscriptions are currently attached.
func (s *Subject[T]) Len() int {
	return len(s.state.Load().subs)
}

// Dispose drops all subscribers without notifying them and moves the
// subject to its terminal disposed phase. Disposal is idempotent and also
// legal on an already terminated subject.
func (s *Subject[T]) Dispose() {
	for {
		a := s.state.Load()
		if a.phase == phaseDisposed {
			return
		}
		if s.state.CompareAndSwap(a, tombstone[T]()) {
			return
		}
	}
}

// IsDisposed reports whether Dispose has run.
func (s *Subject[T]) IsDisposed() bool {
	return s.state.Load().phase == phaseDisposed
}
