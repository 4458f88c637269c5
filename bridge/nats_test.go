package bridge

import (
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casualjim/murmur/murmurtest"
	"github.com/casualjim/murmur/subject"
)

type fakeSubscription struct {
	mu           sync.Mutex
	handler      nats.MsgHandler
	unsubscribed bool
	failWith     error
}

func (f *fakeSubscription) Unsubscribe() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unsubscribed = true
	return f.failWith
}

func (f *fakeSubscription) dead() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unsubscribed
}

type fakeConn struct {
	mu        sync.Mutex
	subs      []*fakeSubscription
	published []*nats.Msg
	subErr    error
	pubErr    error
}

func (f *fakeConn) Subscribe(subject string, handler nats.MsgHandler) (unsubscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subErr != nil {
		return nil, f.subErr
	}
	sub := &fakeSubscription{handler: handler}
	f.subs = append(f.subs, sub)
	return sub, nil
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pubErr != nil {
		return f.pubErr
	}
	f.published = append(f.published, &nats.Msg{Subject: subject, Data: data})
	return nil
}

func (f *fakeConn) deliver(data []byte) {
	f.mu.Lock()
	targets := make([]*fakeSubscription, 0, len(f.subs))
	for _, sub := range f.subs {
		if !sub.unsubscribed {
			targets = append(targets, sub)
		}
	}
	f.mu.Unlock()

	for _, sub := range targets {
		sub.handler(&nats.Msg{Subject: "feed", Data: data})
	}
}

func (f *fakeConn) liveSubs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, sub := range f.subs {
		if !sub.unsubscribed {
			n++
		}
	}
	return n
}

func (f *fakeConn) messages() []*nats.Msg {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*nats.Msg, len(f.published))
	copy(out, f.published)
	return out
}

func TestFromSubscriber(t *testing.T) {
	t.Run("each observer gets its own subscription", func(t *testing.T) {
		conn := &fakeConn{}
		feed := fromSubscriber(conn, "feed")

		one := murmurtest.NewRecorder[*nats.Msg]()
		two := murmurtest.NewRecorder[*nats.Msg]()
		s1, err := feed.Subscribe(one)
		require.NoError(t, err)
		s2, err := feed.Subscribe(two)
		require.NoError(t, err)

		assert.Equal(t, 2, conn.liveSubs())

		conn.deliver([]byte("tick"))
		require.Len(t, one.Values(), 1)
		require.Len(t, two.Values(), 1)
		assert.Equal(t, []byte("tick"), one.Values()[0].Data)

		s1.Dispose()
		assert.Equal(t, 1, conn.liveSubs())
		conn.deliver([]byte("tock"))
		assert.Len(t, one.Values(), 1)
		assert.Len(t, two.Values(), 2)

		s2.Dispose()
		assert.Zero(t, conn.liveSubs())
	})

	t.Run("subscribe failures surface", func(t *testing.T) {
		conn := &fakeConn{subErr: assert.AnError}
		feed := fromSubscriber(conn, "feed")

		_, err := feed.Subscribe(murmurtest.NewRecorder[*nats.Msg]())
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("disposal is idempotent even when unsubscribe fails", func(t *testing.T) {
		conn := &fakeConn{}
		feed := fromSubscriber(conn, "feed")

		sub, err := feed.Subscribe(murmurtest.NewRecorder[*nats.Msg]())
		require.NoError(t, err)

		conn.mu.Lock()
		conn.subs[0].failWith = assert.AnError
		conn.mu.Unlock()

		assert.NotPanics(t, sub.Dispose)
		assert.NotPanics(t, sub.Dispose)
		assert.True(t, conn.subs[0].dead())
	})
}

func TestToPublisher(t *testing.T) {
	t.Run("publishes JSON encoded values", func(t *testing.T) {
		conn := &fakeConn{}
		src := subject.New[map[string]int]()

		handle, err := toPublisher[map[string]int](src, conn, "feed")
		require.NoError(t, err)
		defer handle.Dispose()

		src.OnNext(map[string]int{"a": 1})

		msgs := conn.messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, "feed", msgs[0].Subject)
		assert.JSONEq(t, `{"a":1}`, string(msgs[0].Data))
	})

	t.Run("raw bytes pass through untouched", func(t *testing.T) {
		conn := &fakeConn{}
		src := subject.New[[]byte]()

		handle, err := toPublisher[[]byte](src, conn, "feed")
		require.NoError(t, err)
		defer handle.Dispose()

		src.OnNext([]byte("not json"))

		msgs := conn.messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, []byte("not json"), msgs[0].Data)
	})

	t.Run("disposal stops forwarding", func(t *testing.T) {
		conn := &fakeConn{}
		src := subject.New[[]byte]()

		handle, err := toPublisher[[]byte](src, conn, "feed")
		require.NoError(t, err)

		src.OnNext([]byte("one"))
		handle.Dispose()
		src.OnNext([]byte("two"))

		assert.Len(t, conn.messages(), 1)
		assert.False(t, src.HasObservers())
	})

	t.Run("publish failures do not stall the feed", func(t *testing.T) {
		conn := &fakeConn{pubErr: assert.AnError}
		src := subject.New[[]byte]()

		handle, err := toPublisher[[]byte](src, conn, "feed")
		require.NoError(t, err)
		defer handle.Dispose()

		src.OnNext([]byte("lost"))
		require.Empty(t, conn.messages())

		conn.mu.Lock()
		conn.pubErr = nil
		conn.mu.Unlock()

		src.OnNext([]byte("kept"))
		require.Len(t, conn.messages(), 1)
		assert.True(t, src.HasObservers(), "feed should survive publish errors")
	})

	t.Run("source failure ends the feed quietly", func(t *testing.T) {
		conn := &fakeConn{}
		src := subject.New[[]byte]()

		_, err := toPublisher[[]byte](src, conn, "feed")
		require.NoError(t, err)

		src.OnNext([]byte("one"))
		src.OnError(assert.AnError)

		assert.Len(t, conn.messages(), 1)
		assert.False(t, src.HasObservers())
	})
}

func TestEncode(t *testing.T) {
	t.Run("structs become JSON", func(t *testing.T) {
		data, err := encode(struct {
			Name string `json:"name"`
		}{Name: "murmur"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"murmur"}`, string(data))
	})

	t.Run("raw bytes pass through", func(t *testing.T) {
		data, err := encode([]byte(`{"pre":"encoded"}`))
		require.NoError(t, err)
		assert.Equal(t, `{"pre":"encoded"}`, string(data))
	})

	t.Run("raw json passes through", func(t *testing.T) {
		data, err := encode(json.RawMessage(`{"pre":"encoded"}`))
		require.NoError(t, err)
		assert.Equal(t, `{"pre":"encoded"}`, string(data))
	})
}
