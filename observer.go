package murmur

// Observer receives push notifications from a stream. A well-behaved source
// calls OnNext any number of times and then at most one of OnError or
// OnCompleted; nothing follows a terminal call.
//
// Implementations do not need to be goroutine safe on their own. Sources
// deliver notifications on whatever goroutine produced them, and producers
// racing each other is the producers' coordination problem.
type Observer[T any] interface {
	OnNext(T)
	OnError(error)
	OnCompleted()
}

// NewObserver assembles an Observer from callbacks. Nil callbacks are
// replaced with no-ops, so partial observers cost nothing to express.
func NewObserver[T any](next func(T), fail func(error), done func()) Observer[T] {
	return &callbackObserver[T]{next: next, fail: fail, done: done}
}

type callbackObserver[T any] struct {
	next func(T)
	fail func(error)
	done func()
}

func (o *callbackObserver[T]) OnNext(v T) {
	if o.next != nil {
		o.next(v)
	}
}

func (o *callbackObserver[T]) OnError(err error) {
	if o.fail != nil {
		o.fail(err)
	}
}

func (o *callbackObserver[T]) OnCompleted() {
	if o.done != nil {
		o.done()
	}
}
