package subject

import (
	"sync"

	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/disposal"
	"github.com/casualjim/murmur/pkg/stdx"
)

// Behavior is a subject with a current value. Subscribers receive the
// latest value the moment they attach, then every later one. Reading the
// value and mutating the subscriber list must stay consistent for late
// subscribers, so this variant runs under one mutex instead of the plain
// subject's lock-free list.
type Behavior[T any] struct {
	mu    sync.Mutex
	value T
	err   error
	phase phase
	subs  []*subscriber[T]
}

// NewBehavior returns a behavior subject whose current value is seed.
func NewBehavior[T any](seed T) *Behavior[T] {
	return &Behavior[T]{value: seed}
}

// Subscribe attaches o and synchronously hands it the current value. The
// list append and the seed delivery form one critical section: no
// notification can slip between them and no other goroutine can detach o
// mid-delivery. Against a terminated subject only the terminal notification
// is delivered.
func (b *Behavior[T]) Subscribe(o murmur.Observer[T]) (disposal.Disposable, error) {
	if o == nil {
		return nil, murmur.ErrNilObserver
	}
	d, terminal, err := b.attach(&subscriber[T]{dest: o}, o)
	if err != nil {
		return nil, err
	}
	if terminal != nil {
		terminal()
	}
	return d, nil
}

func (b *Behavior[T]) attach(node *subscriber[T], o murmur.Observer[T]) (disposal.Disposable, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.phase {
	case phaseDisposed:
		return nil, nil, murmur.ErrDisposed
	case phaseDone:
		if b.err != nil {
			err := b.err
			return disposal.Noop(), func() { o.OnError(err) }, nil
		}
		return disposal.Noop(), func() { o.OnCompleted() }, nil
	}

	b.subs = addNode(b.subs, node)
	o.OnNext(b.value)
	return disposal.New(func() { b.unsubscribe(node) }), nil, nil
}

func (b *Behavior[T]) unsubscribe(node *subscriber[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != phaseActive {
		return
	}
	b.subs = removeNode(b.subs, node)
}

// OnNext stores v as the current value and delivers it to the subscribers
// captured at that moment. Delivery happens outside the lock.
func (b *Behavior[T]) OnNext(v T) {
	b.mu.Lock()
	switch b.phase {
	case phaseDisposed:
		b.mu.Unlock()
		panic(murmur.ErrDisposed)
	case phaseDone:
		b.mu.Unlock()
		return
	}
	b.value = v
	subs := b.subs
	b.mu.Unlock()

	for _, sub := range subs {
		sub.dest.OnNext(v)
	}
}

// OnError terminates the subject with err. Value reports err from then on.
func (b *Behavior[T]) OnError(err error) {
	if err == nil {
		panic(murmur.ErrNilError)
	}
	subs, ok := b.terminate(err)
	if !ok {
		return
	}
	for _, sub := range subs {
		sub.dest.OnError(err)
	}
}

// OnCompleted terminates the subject and freezes the current value.
func (b *Behavior[T]) OnCompleted() {
	subs, ok := b.terminate(nil)
	if !ok {
		return
	}
	for _, sub := range subs {
		sub.dest.OnCompleted()
	}
}

func (b *Behavior[T]) terminate(err error) ([]*subscriber[T], bool) {
	b.mu.Lock()
	switch b.phase {
	case phaseDisposed:
		b.mu.Unlock()
		panic(murmur.ErrDisposed)
	case phaseDone:
		b.mu.Unlock()
		return nil, false
	}
	b.phase = phaseDone
	b.err = err
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()
	return subs, true
}

// Value returns the current value. After OnError it returns the terminal
// error instead; after Dispose it returns murmur.ErrDisposed. Completion
// freezes the value rather than hiding it.
func (b *Behavior[T]) Value() (T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase == phaseDisposed {
		return stdx.Zero[T](), murmur.ErrDisposed
	}
	if b.err != nil {
		return stdx.Zero[T](), b.err
	}
	return b.value, nil
}

// HasObservers reports whether anyone is currently subscribed.
func (b *Behavior[T]) HasObservers() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs) > 0
}

// Dispose drops the subscribers and the stored value.
func (b *Behavior[T]) Dispose() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.phase = phaseDisposed
	b.subs = nil
	b.value = stdx.Zero[T]()
	b.err = nil
}

// IsDisposed reports whether Dispose has run.
func (b *Behavior[T]) IsDisposed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase == phaseDisposed
}
