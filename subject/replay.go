package subject

import (
	"sync"
	"time"

	"github.com/fogfish/opts"

	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/disposal"
	"github.com/casualjim/murmur/scheduler"
)

// entry is one buffered value tagged with the clock reading at which it was
// produced, for window trimming.
type entry[T any] struct {
	value T
	at    time.Time
}

// Replay is a subject with history. Every subscriber first receives the
// buffered values in original order, then live notifications. The buffer is
// bounded by an optional capacity and an optional time window and survives
// termination, so a late subscriber still sees the retained tail before the
// terminal notification.
type Replay[T any] struct {
	mu       sync.Mutex
	buf      []entry[T]
	capacity int
	window   time.Duration
	clock    scheduler.Scheduler
	err      error
	phase    phase
	subs     []*subscriber[T]
}

// NewReplay returns a replay subject. Without options the buffer is
// unbounded and trims against the wall clock.
func NewReplay[T any](options ...opts.Option[ReplayConfig]) *Replay[T] {
	cfg := ReplayConfig{clock: scheduler.Immediate()}
	if err := opts.Apply(&cfg, options); err != nil {
		panic(err)
	}
	return &Replay[T]{
		capacity: cfg.capacity,
		window:   cfg.window,
		clock:    cfg.clock,
	}
}

// Subscribe attaches o after synchronously replaying the trimmed buffer to
// it. Replay, list append and terminal delivery happen under the subject's
// lock, so no live notification can interleave with the replayed run.
func (r *Replay[T]) Subscribe(o murmur.Observer[T]) (disposal.Disposable, error) {
	if o == nil {
		return nil, murmur.ErrNilObserver
	}
	node := &subscriber[T]{dest: o}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == phaseDisposed {
		return nil, murmur.ErrDisposed
	}
	r.trim(r.clock.Now())
	for _, e := range r.buf {
		o.OnNext(e.value)
	}
	if r.phase == phaseDone {
		if r.err != nil {
			o.OnError(r.err)
		} else {
			o.OnCompleted()
		}
		return disposal.Noop(), nil
	}
	r.subs = addNode(r.subs, node)
	return disposal.New(func() { r.unsubscribe(node) }), nil
}

func (r *Replay[T]) unsubscribe(node *subscriber[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != phaseActive {
		return
	}
	r.subs = removeNode(r.subs, node)
}

// OnNext appends v to the buffer, trims, and delivers to the subscribers
// captured at that moment.
func (r *Replay[T]) OnNext(v T) {
	r.mu.Lock()
	switch r.phase {
	case phaseDisposed:
		r.mu.Unlock()
		panic(murmur.ErrDisposed)
	case phaseDone:
		r.mu.Unlock()
		return
	}
	now := r.clock.Now()
	r.buf = append(r.buf, entry[T]{value: v, at: now})
	r.trim(now)
	subs := r.subs
	r.mu.Unlock()

	for _, sub := range subs {
		sub.dest.OnNext(v)
	}
}

// OnError terminates the subject with err. The buffer is kept for late
// subscribers.
func (r *Replay[T]) OnError(err error) {
	if err == nil {
		panic(murmur.ErrNilError)
	}
	subs, ok := r.terminate(err)
	if !ok {
		return
	}
	for _, sub := range subs {
		sub.dest.OnError(err)
	}
}

// OnCompleted terminates the subject gracefully, keeping the buffer.
func (r *Replay[T]) OnCompleted() {
	subs, ok := r.terminate(nil)
	if !ok {
		return
	}
	for _, sub := range subs {
		sub.dest.OnCompleted()
	}
}

func (r *Replay[T]) terminate(err error) ([]*subscriber[T], bool) {
	r.mu.Lock()
	switch r.phase {
	case phaseDisposed:
		r.mu.Unlock()
		panic(murmur.ErrDisposed)
	case phaseDone:
		r.mu.Unlock()
		return nil, false
	}
	r.phase = phaseDone
	r.err = err
	r.trim(r.clock.Now())
	subs := r.subs
	r.subs = nil
	r.mu.Unlock()
	return subs, true
}

// trim drops from the front while the buffer exceeds the capacity bound,
// then while the front entry has aged out of the window. Callers hold the
// lock.
func (r *Replay[T]) trim(now time.Time) {
	if r.capacity > 0 && len(r.buf) > r.capacity {
		r.buf = r.buf[len(r.buf)-r.capacity:]
	}
	if r.window > 0 {
		cut := now.Add(-r.window)
		i := 0
		for i < len(r.buf) && r.buf[i].at.Before(cut) {
			i++
		}
		r.buf = r.buf[i:]
	}
}

// Len reports how many values the buffer currently retains, after trimming
// against the clock.
func (r *Replay[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase == phaseDisposed {
		return 0
	}
	r.trim(r.clock.Now())
	return len(r.buf)
}

// HasObservers reports whether anyone is currently subscribed.
func (r *Replay[T]) HasObservers() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs) > 0
}

// Dispose drops the subscribers and the buffer.
func (r *Replay[T]) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phase = phaseDisposed
	r.subs = nil
	r.buf = nil
	r.err = nil
}

// IsDisposed reports whether Dispose has run.
func (r *Replay[T]) IsDisposed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase == phaseDisposed
}
