package murmur

import "errors"

var (
	// ErrDisposed reports use of a subject or stream after Dispose. Subscribe
	// returns it; producer-side calls such as OnNext panic with it, since
	// feeding a disposed subject is a programming error rather than a
	// condition the stream can deliver.
	ErrDisposed = errors.New("murmur: disposed")

	// ErrNilObserver reports a Subscribe call with a nil observer.
	ErrNilObserver = errors.New("murmur: nil observer")

	// ErrNilError is the panic value for OnError(nil). A terminal error must
	// carry a cause.
	ErrNilError = errors.New("murmur: nil error")

	// ErrEmpty reports that a single-result stream terminated without ever
	// producing a value.
	ErrEmpty = errors.New("murmur: no elements")
)
