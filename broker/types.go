package broker

import (
	"context"
	"errors"

	"github.com/casualjim/murmur"
)

// ErrTopicClosed reports a publish or a repeated terminal on a topic that
// has already completed or failed.
var ErrTopicClosed = errors.New("murmur/broker: topic closed")

// Broker hands out topics by name. Asking for the same name twice returns
// the same topic.
type Broker[T any] interface {
	Topic(ctx context.Context, name string) Topic[T]
}

// Topic is a named multicast stream. Publishing fans the value out to every
// current subscriber; Close and Fail terminate the topic for all of them.
type Topic[T any] interface {
	// Name returns the registry key this topic was created under.
	Name() string

	// Publish fans v out to every subscriber. It returns ctx.Err when the
	// context has ended and ErrTopicClosed after a terminal. A congested
	// subscriber delays Publish at most the slow-subscriber timeout before
	// being disconnected.
	Publish(ctx context.Context, v T) error

	// Close completes the topic. Subscribers observe completion, late
	// subscribers observe it on subscribe, and further publishes fail with
	// ErrTopicClosed.
	Close() error

	// Fail terminates the topic with err. A nil err returns
	// murmur.ErrNilError instead of terminating.
	Fail(err error) error

	// Subscribe attaches o until ctx ends, the subscription is explicitly
	// released, or the subscriber is disconnected for falling behind.
	Subscribe(ctx context.Context, o murmur.Observer[T]) (Subscription, error)

	// Stream exposes the topic as a plain observable, hopping deliveries
	// through the broker scheduler when one is configured. Subscriptions made
	// through Stream bypass the per-subscriber buffer and the slow-subscriber
	// policy.
	Stream() murmur.Observable[T]
}

// Subscription is a live attachment to a topic.
type Subscription interface {
	// ID returns the unique id of this subscription. Ids are time-ordered.
	ID() string

	// Unsubscribe detaches the observer and stops its forwarding goroutine.
	// It is safe to call more than once.
	Unsubscribe()
}
