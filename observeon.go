package murmur

import (
	"sync"

	"github.com/fogfish/opts"

	"github.com/casualjim/murmur/disposal"
	"github.com/casualjim/murmur/scheduler"
)

// ObserveOn moves notification delivery onto s. Each notification is
// reified as a Spark and queued; the queue drains one spark per scheduled
// hop and the next hop is armed only after the current delivery has
// returned, so per-subscription order is preserved on any scheduler.
// Disposing the subscription drops the queue and cancels the pending hop.
func ObserveOn[T any](src Observable[T], s scheduler.Scheduler, options ...opts.Option[StreamConfig]) Observable[T] {
	return newStream(func(o Observer[T]) (disposal.Disposable, error) {
		w := &witness[T]{dest: o, sched: s, hop: disposal.NewSerial()}
		d, err := src.Subscribe(w)
		if err != nil {
			return nil, err
		}
		return disposal.New(func() {
			d.Dispose()
			w.close()
		}), nil
	}, options)
}

// witness queues sparks on behalf of one downstream observer and replays
// them one scheduler hop at a time.
type witness[T any] struct {
	dest  Observer[T]
	sched scheduler.Scheduler
	hop   *disposal.Serial

	mu     sync.Mutex
	queue  []Spark[T]
	busy   bool
	closed bool
}

func (w *witness[T]) OnNext(v T)        { w.push(NextSpark(v)) }
func (w *witness[T]) OnError(err error) { w.push(ErrorSpark[T](err)) }
func (w *witness[T]) OnCompleted()      { w.push(CompletedSpark[T]()) }

func (w *witness[T]) push(s Spark[T]) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.queue = append(w.queue, s)
	if w.busy {
		w.mu.Unlock()
		return
	}
	w.busy = true
	w.mu.Unlock()
	w.arm()
}

func (w *witness[T]) arm() {
	w.hop.Set(w.sched.Schedule(w.hopOnce))
}

// hopOnce delivers the head of the queue and arms the next hop. Delivery
// happens outside the lock so a downstream callback can feed values back in
// without deadlocking.
func (w *witness[T]) hopOnce() {
	w.mu.Lock()
	if w.closed || len(w.queue) == 0 {
		w.busy = false
		w.mu.Unlock()
		return
	}
	s := w.queue[0]
	w.queue = w.queue[1:]
	w.mu.Unlock()

	s.Accept(w.dest)

	w.mu.Lock()
	if w.closed || len(w.queue) == 0 {
		w.busy = false
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()
	w.arm()
}

func (w *witness[T]) close() {
	w.mu.Lock()
	w.closed = true
	w.queue = nil
	w.mu.Unlock()
	w.hop.Dispose()
}
