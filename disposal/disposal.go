// Package disposal provides the cancellation handles used throughout murmur.
//
// Every subscription, scheduled action and forwarding loop in this module is
// represented by a Disposable. Disposing a handle releases whatever the
// handle stands for exactly once; disposing it again is a no-op. Handles are
// safe for concurrent use.
package disposal

import "sync/atomic"

// Disposable releases an associated resource. Implementations must make
// Dispose idempotent and safe to call from any goroutine.
type Disposable interface {
	Dispose()
	IsDisposed() bool
}

// Single invokes a release action at most once. The zero value is unusable,
// construct it with New.
type Single struct {
	action atomic.Pointer[func()]
}

// New returns a handle that runs action on the first Dispose call. A nil
// action yields a handle that only tracks its disposed state.
func New(action func()) *Single {
	if action == nil {
		action = func() {}
	}
	s := &Single{}
	s.action.Store(&action)
	return s
}

// Wrap returns a handle that disposes inner at most once, even when the
// wrapped handle tolerates repeated Dispose calls itself.
func Wrap(inner Disposable) *Single {
	if inner == nil {
		return New(nil)
	}
	return New(inner.Dispose)
}

// Dispose runs the release action if no other caller has yet. The action
// reference is swapped out atomically, so concurrent Dispose calls agree on
// a single winner.
func (s *Single) Dispose() {
	if fn := s.action.Swap(nil); fn != nil {
		(*fn)()
	}
}

// IsDisposed reports whether the release action has been claimed.
func (s *Single) IsDisposed() bool {
	return s.action.Load() == nil
}

type noop struct{}

func (noop) Dispose() {}

func (noop) IsDisposed() bool { return true }

// Noop returns a handle with nothing to release. It reports itself as
// already disposed, which is what subscribers of an already terminated
// stream receive.
func Noop() Disposable {
	return noop{}
}
