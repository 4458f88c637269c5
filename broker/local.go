package broker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/fogfish/opts"

	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/disposal"
	"github.com/casualjim/murmur/pkg/slogx"
	"github.com/casualjim/murmur/pkg/uuidx"
	"github.com/casualjim/murmur/subject"
)

type localBroker[T any] struct {
	topics *haxmap.Map[string, *topic[T]]
	cfg    Config
}

// Local returns an in-process broker. Topics spring into existence on first
// use and are shared by name for the lifetime of the broker.
func Local[T any](options ...opts.Option[Config]) Broker[T] {
	cfg := Config{
		buffer:      defaultBuffer,
		slowTimeout: defaultSlowTimeout,
		log:         slog.Default(),
	}
	if err := opts.Apply(&cfg, options); err != nil {
		panic(err)
	}
	if cfg.buffer < 1 {
		cfg.buffer = 1
	}
	return &localBroker[T]{
		topics: haxmap.New[string, *topic[T]](),
		cfg:    cfg,
	}
}

func (b *localBroker[T]) Topic(ctx context.Context, name string) Topic[T] {
	top, _ := b.topics.GetOrCompute(name, func() *topic[T] {
		return newTopic[T](name, b.cfg)
	})
	return top
}

type topic[T any] struct {
	name   string
	subj   *subject.Subject[T]
	closed atomic.Bool
	cfg    Config
	log    *slog.Logger
}

func newTopic[T any](name string, cfg Config) *topic[T] {
	return &topic[T]{
		name: name,
		subj: subject.New[T](),
		cfg:  cfg,
		log:  cfg.log.With(slogx.LoggerName("broker"), slog.String("topic", name)),
	}
}

func (t *topic[T]) Name() string { return t.name }

func (t *topic[T]) Publish(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.closed.Load() {
		return ErrTopicClosed
	}
	// A publish racing Close lands on the terminated subject and is dropped
	// there, which keeps the no-values-after-terminal guarantee.
	t.subj.OnNext(v)
	return nil
}

func (t *topic[T]) Close() error {
	if !t.closed.CompareAndSwap(false, true) {
		return ErrTopicClosed
	}
	t.subj.OnCompleted()
	return nil
}

func (t *topic[T]) Fail(err error) error {
	if err == nil {
		return murmur.ErrNilError
	}
	if !t.closed.CompareAndSwap(false, true) {
		return ErrTopicClosed
	}
	t.subj.OnError(err)
	return nil
}

func (t *topic[T]) Stream() murmur.Observable[T] {
	if t.cfg.hop != nil {
		return murmur.ObserveOn[T](t.subj, t.cfg.hop)
	}
	return t.subj
}

func (t *topic[T]) Subscribe(ctx context.Context, o murmur.Observer[T]) (Subscription, error) {
	if o == nil {
		return nil, murmur.ErrNilObserver
	}

	fwd := &forwarder[T]{
		id:      uuidx.NewString(),
		ch:      make(chan murmur.Spark[T], t.cfg.buffer),
		cancel:  disposal.NewCancel(ctx),
		detach:  disposal.NewSerial(),
		timeout: t.cfg.slowTimeout,
		log:     t.log,
	}

	// The drain goroutine starts before the subject attach so a terminal
	// replayed to a late subscriber finds a reader.
	go fwd.run(o)

	sub, err := t.subj.Subscribe(fwd)
	if err != nil {
		fwd.cancel.Dispose()
		return nil, err
	}
	fwd.detach.Set(sub)

	t.log.Debug("subscribed", slog.String("subscription", fwd.id))
	return &subscription{id: fwd.id, stop: fwd.stop}, nil
}

type subscription struct {
	id   string
	stop func()
}

func (s *subscription) ID() string   { return s.id }
func (s *subscription) Unsubscribe() { s.stop() }

// forwarder decouples subject dispatch from observer delivery. Dispatch
// pushes sparks into a buffered channel and a dedicated goroutine drains it,
// so a stalled observer only ever stalls itself.
type forwarder[T any] struct {
	id      string
	ch      chan murmur.Spark[T]
	cancel  *disposal.Cancel
	detach  *disposal.Serial
	timeout time.Duration
	log     *slog.Logger
}

func (f *forwarder[T]) OnNext(v T)        { f.push(murmur.NextSpark(v)) }
func (f *forwarder[T]) OnError(err error) { f.push(murmur.ErrorSpark[T](err)) }
func (f *forwarder[T]) OnCompleted()      { f.push(murmur.CompletedSpark[T]()) }

func (f *forwarder[T]) push(s murmur.Spark[T]) {
	select {
	case f.ch <- s:
	case <-f.cancel.Context().Done():
	case <-time.After(f.timeout):
		f.log.Warn("dropping slow subscriber",
			slog.String("subscription", f.id),
			slog.String("spark", s.String()),
		)
		f.stop()
	}
}

// stop detaches from the subject and halts the drain goroutine. Safe to call
// from any path, any number of times.
func (f *forwarder[T]) stop() {
	f.detach.Dispose()
	f.cancel.Dispose()
}

func (f *forwarder[T]) run(o murmur.Observer[T]) {
	defer f.stop()
	for {
		select {
		case s := <-f.ch:
			s.Accept(o)
			if s.Terminal() {
				return
			}
		case <-f.cancel.Context().Done():
			return
		}
	}
}
