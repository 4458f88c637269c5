// Package bridge connects murmur streams to NATS subjects in both
// directions. It carries values only: stream terminals are logged, not
// translated into a wire protocol.
package bridge

import (
	"log/slog"

	"github.com/fogfish/opts"
	json "github.com/goccy/go-json"
	"github.com/nats-io/nats.go"

	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/disposal"
	"github.com/casualjim/murmur/pkg/slogx"
)

// subscriber is the subscribe half of a NATS connection. It exists so the
// receive path can be tested without a running server.
type subscriber interface {
	Subscribe(subject string, handler nats.MsgHandler) (unsubscriber, error)
}

type unsubscriber interface {
	Unsubscribe() error
}

// publisher is the publish half of a NATS connection. *nats.Conn satisfies
// it directly.
type publisher interface {
	Publish(subject string, data []byte) error
}

type natsSubscriber struct {
	nc *nats.Conn
}

func (s natsSubscriber) Subscribe(subject string, handler nats.MsgHandler) (unsubscriber, error) {
	sub, err := s.nc.Subscribe(subject, handler)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// FromNATS exposes a NATS subject as a cold stream of messages. Every
// observer gets its own NATS subscription, created on subscribe and released
// on disposal, so two observers of the same stream each receive every
// message. The stream follows the subscription lifetime and never
// terminates on its own.
func FromNATS(conn *nats.Conn, subject string, options ...opts.Option[murmur.StreamConfig]) murmur.Observable[*nats.Msg] {
	return fromSubscriber(natsSubscriber{nc: conn}, subject, options...)
}

func fromSubscriber(src subscriber, subject string, options ...opts.Option[murmur.StreamConfig]) murmur.Observable[*nats.Msg] {
	return murmur.Create(func(o murmur.Observer[*nats.Msg]) (disposal.Disposable, error) {
		sub, err := src.Subscribe(subject, func(msg *nats.Msg) {
			o.OnNext(msg)
		})
		if err != nil {
			return nil, err
		}
		return disposal.New(func() {
			if err := sub.Unsubscribe(); err != nil {
				slog.Error("failed to unsubscribe",
					slogx.Error(err),
					slog.String("subject", subject),
				)
			}
		}), nil
	}, options...)
}

// ToNATS publishes every value of src on the given subject until the stream
// terminates or the returned handle is disposed. Values are JSON encoded;
// []byte and json.RawMessage values pass through untouched. Publish and
// encoding failures are logged and skipped so one bad value does not stall
// the feed.
func ToNATS[T any](src murmur.Observable[T], conn *nats.Conn, subject string) (disposal.Disposable, error) {
	return toPublisher(src, conn, subject)
}

func toPublisher[T any](src murmur.Observable[T], dst publisher, subject string) (disposal.Disposable, error) {
	return src.Subscribe(murmur.NewObserver(
		func(v T) {
			data, err := encode(v)
			if err != nil {
				slog.Error("failed to encode value",
					slogx.Error(err),
					slog.String("subject", subject),
				)
				return
			}
			if err := dst.Publish(subject, data); err != nil {
				slog.Error("failed to publish",
					slogx.Error(err),
					slog.String("subject", subject),
				)
			}
		},
		func(err error) {
			slog.Error("feed failed",
				slogx.Error(err),
				slog.String("subject", subject),
			)
		},
		nil,
	))
}

func encode[T any](v T) ([]byte, error) {
	switch raw := any(v).(type) {
	case []byte:
		return raw, nil
	case json.RawMessage:
		return raw, nil
	}
	return json.Marshal(v)
}
