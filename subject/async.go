package subject

import (
	"sync"

	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/disposal"
	"github.com/casualjim/murmur/pkg/stdx"
)

// Async is a subject representing one eventual result. While active it
// retains only the most recent value and delivers nothing; OnCompleted
// hands the retained value (when there is one) plus completion to every
// subscriber, OnError hands them the error. Get blocks until either
// happens.
type Async[T any] struct {
	mu    sync.Mutex
	value T
	has   bool
	err   error
	phase phase
	subs  []*subscriber[T]
	done  chan struct{}
}

// NewAsync returns an active async subject.
func NewAsync[T any]() *Async[T] {
	return &Async[T]{done: make(chan struct{})}
}

// Subscribe attaches o. Against a terminated subject the result is
// delivered synchronously: the retained value and completion, bare
// completion, or the error.
func (a *Async[T]) Subscribe(o murmur.Observer[T]) (disposal.Disposable, error) {
	if o == nil {
		return nil, murmur.ErrNilObserver
	}
	node := &subscriber[T]{dest: o}

	a.mu.Lock()
	switch a.phase {
	case phaseDisposed:
		a.mu.Unlock()
		return nil, murmur.ErrDisposed
	case phaseDone:
		err, has, value := a.err, a.has, a.value
		a.mu.Unlock()
		switch {
		case err != nil:
			o.OnError(err)
		case has:
			o.OnNext(value)
			o.OnCompleted()
		default:
			o.OnCompleted()
		}
		return disposal.Noop(), nil
	}
	a.subs = addNode(a.subs, node)
	a.mu.Unlock()
	return disposal.New(func() { a.unsubscribe(node) }), nil
}

func (a *Async[T]) unsubscribe(node *subscriber[T]) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.phase != phaseActive {
		return
	}
	a.subs = removeNode(a.subs, node)
}

// OnNext replaces the retained value. Nothing is delivered until the
// subject terminates.
func (a *Async[T]) OnNext(v T) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch a.phase {
	case phaseDisposed:
		panic(murmur.ErrDisposed)
	case phaseDone:
		return
	}
	a.value = v
	a.has = true
}

// OnError terminates the subject with err and releases every Get waiter.
func (a *Async[T]) OnError(err error) {
	if err == nil {
		panic(murmur.ErrNilError)
	}
	a.mu.Lock()
	switch a.phase {
	case phaseDisposed:
		a.mu.Unlock()
		panic(murmur.ErrDisposed)
	case phaseDone:
		a.mu.Unlock()
		return
	}
	a.phase = phaseDone
	a.err = err
	subs := a.subs
	a.subs = nil
	close(a.done)
	a.mu.Unlock()

	for _, sub := range subs {
		sub.dest.OnError(err)
	}
}

// OnCompleted terminates the subject, delivering the retained value (if
// any) followed by completion, and releases every Get waiter.
func (a *Async[T]) OnCompleted() {
	a.mu.Lock()
	switch a.phase {
	case phaseDisposed:
		a.mu.Unlock()
		panic(murmur.ErrDisposed)
	case phaseDone:
		a.mu.Unlock()
		return
	}
	a.phase = phaseDone
	has, value := a.has, a.value
	subs := a.subs
	a.subs = nil
	close(a.done)
	a.mu.Unlock()

	for _, sub := range subs {
		if has {
			sub.dest.OnNext(value)
		}
		sub.dest.OnCompleted()
	}
}

// Get blocks until the subject terminates or is disposed, then returns the
// result: the retained value, the terminal error, murmur.ErrEmpty for
// completion without a value, or murmur.ErrDisposed.
func (a *Async[T]) Get() (T, error) {
	<-a.done

	a.mu.Lock()
	defer a.mu.Unlock()
	switch {
	case a.phase == phaseDisposed:
		return stdx.Zero[T](), murmur.ErrDisposed
	case a.err != nil:
		return stdx.Zero[T](), a.err
	case a.has:
		return a.value, nil
	default:
		return stdx.Zero[T](), murmur.ErrEmpty
	}
}

// Done exposes the wait handle for select-based continuations. It is closed
// when the subject terminates or is disposed.
func (a *Async[T]) Done() <-chan struct{} {
	return a.done
}

// HasObservers reports whether anyone is currently subscribed.
func (a *Async[T]) HasObservers() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.subs) > 0
}

// Dispose drops subscribers and the retained result and releases every Get
// waiter.
func (a *Async[T]) Dispose() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.phase == phaseDisposed {
		return
	}
	if a.phase == phaseActive {
		close(a.done)
	}
	a.phase = phaseDisposed
	a.subs = nil
	a.has = false
	a.value = stdx.Zero[T]()
	a.err = nil
}

// IsDisposed reports whether Dispose has run.
func (a *Async[T]) IsDisposed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase == phaseDisposed
}
