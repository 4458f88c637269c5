package op

import (
	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/disposal"
	"github.com/casualjim/murmur/scheduler"
	"github.com/go-openapi/strfmt"
)

// Stamped pairs a value with the scheduler time it passed through.
type Stamped[T any] struct {
	Value T               `json:"value"`
	At    strfmt.DateTime `json:"at"`
}

// Timestamp annotates every value with the clock of s at delivery time.
// Pair it with scheduler.NewVirtual to build deterministic timelines in
// tests.
func Timestamp[T any](src murmur.Observable[T], s scheduler.Scheduler) murmur.Observable[Stamped[T]] {
	return murmur.Create(func(o murmur.Observer[Stamped[T]]) (disposal.Disposable, error) {
		return src.Subscribe(murmur.NewObserver(
			func(v T) {
				o.OnNext(Stamped[T]{Value: v, At: strfmt.DateTime(s.Now())})
			},
			o.OnError,
			o.OnCompleted,
		))
	})
}
