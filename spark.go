package murmur

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// SparkKind discriminates the three notification shapes a stream can emit.
type SparkKind uint8

const (
	// KindNext tags a value notification.
	KindNext SparkKind = iota + 1
	// KindError tags a failure notification carrying the terminal error.
	KindError
	// KindCompleted tags the graceful end-of-stream notification.
	KindCompleted
)

// String returns the lowercase wire name of the kind.
func (k SparkKind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindCompleted:
		return "completed"
	default:
		return "invalid"
	}
}

var (
	nextJSON      = []byte(`{"kind":"next"}`)
	errorJSON     = []byte(`{"kind":"error"}`)
	completedJSON = []byte(`{"kind":"completed"}`)
)

// Spark is a notification reified as a value: a next value, a terminal
// error, or completion. Queues and recorders hold sparks instead of making
// interface calls, which keeps buffered notifications inspectable and
// serializable. The zero Spark is invalid; use the constructors.
type Spark[T any] struct {
	kind  SparkKind
	value T
	err   error
}

// NextSpark wraps a value notification.
func NextSpark[T any](v T) Spark[T] {
	return Spark[T]{kind: KindNext, value: v}
}

// ErrorSpark wraps a failure notification. It panics with ErrNilError when
// err is nil.
func ErrorSpark[T any](err error) Spark[T] {
	if err == nil {
		panic(ErrNilError)
	}
	return Spark[T]{kind: KindError, err: err}
}

// CompletedSpark wraps the completion notification.
func CompletedSpark[T any]() Spark[T] {
	return Spark[T]{kind: KindCompleted}
}

// Kind returns the notification shape.
func (s Spark[T]) Kind() SparkKind {
	return s.kind
}

// Value returns the carried value. It is the zero value unless Kind is
// KindNext.
func (s Spark[T]) Value() T {
	return s.value
}

// Err returns the carried error. It is nil unless Kind is KindError.
func (s Spark[T]) Err() error {
	return s.err
}

// Terminal reports whether the spark ends a stream.
func (s Spark[T]) Terminal() bool {
	return s.kind == KindError || s.kind == KindCompleted
}

// Accept replays the notification onto an observer.
func (s Spark[T]) Accept(o Observer[T]) {
	switch s.kind {
	case KindNext:
		o.OnNext(s.value)
	case KindError:
		o.OnError(s.err)
	case KindCompleted:
		o.OnCompleted()
	default:
		panic(fmt.Sprintf("murmur: invalid spark kind %d", s.kind))
	}
}

// String renders the spark for logs and test output.
func (s Spark[T]) String() string {
	switch s.kind {
	case KindNext:
		return fmt.Sprintf("next(%v)", s.value)
	case KindError:
		return fmt.Sprintf("error(%v)", s.err)
	case KindCompleted:
		return "completed"
	default:
		return "invalid"
	}
}

// MarshalJSON implements custom JSON marshaling for Spark[T]
func (s Spark[T]) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case KindNext:
		valueBytes, err := json.Marshal(s.value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal spark value: %w", err)
		}
		return sjson.SetRawBytes(nextJSON, "value", valueBytes)
	case KindError:
		return sjson.SetBytes(errorJSON, "error", s.err.Error())
	case KindCompleted:
		return completedJSON, nil
	default:
		return nil, fmt.Errorf("invalid spark kind %d", s.kind)
	}
}

// UnmarshalJSON implements custom JSON unmarshaling for Spark[T]
func (s *Spark[T]) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	kind := gjson.GetBytes(data, "kind")
	if !kind.Exists() {
		return fmt.Errorf("missing required field 'kind'")
	}

	switch kind.String() {
	case "next":
		value := gjson.GetBytes(data, "value")
		if !value.Exists() {
			return fmt.Errorf("missing required field 'value'")
		}
		var v T
		if err := json.Unmarshal([]byte(value.Raw), &v); err != nil {
			return fmt.Errorf("invalid value: %w", err)
		}
		*s = NextSpark(v)
	case "error":
		errMsg := gjson.GetBytes(data, "error")
		if !errMsg.Exists() {
			return fmt.Errorf("missing required field 'error'")
		}
		*s = ErrorSpark[T](errors.New(errMsg.String()))
	case "completed":
		*s = CompletedSpark[T]()
	default:
		return fmt.Errorf("unknown spark kind %q", kind.String())
	}
	return nil
}
