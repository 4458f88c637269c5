// Package murmurtest provides the recording observer and virtual-time
// scripting helpers used to test stream pipelines deterministically.
package murmurtest

import (
	"sync"

	"github.com/fogfish/opts"
	"github.com/go-openapi/strfmt"
	json "github.com/goccy/go-json"

	"github.com/casualjim/murmur"
	"github.com/casualjim/murmur/scheduler"
)

// Record is one observed notification tagged with the clock reading at
// which it arrived.
type Record[T any] struct {
	At    strfmt.DateTime `json:"at"`
	Spark murmur.Spark[T] `json:"spark"`
}

// RecorderConfig carries construction knobs for a Recorder.
type RecorderConfig struct {
	clock scheduler.Scheduler
}

// WithClock sets the scheduler whose Now stamps incoming notifications.
// Hand in the virtual scheduler driving the pipeline under test to get
// deterministic timestamps; the default is the wall clock.
var WithClock = opts.ForName[RecorderConfig, scheduler.Scheduler]("clock")

// Recorder is an observer that files away everything it sees. It is safe
// for concurrent use and never terminates or panics, which makes it the
// bland downstream end a pipeline test wants.
type Recorder[T any] struct {
	clock scheduler.Scheduler

	mu   sync.Mutex
	recs []Record[T]
}

// NewRecorder returns an empty recorder.
func NewRecorder[T any](options ...opts.Option[RecorderConfig]) *Recorder[T] {
	cfg := RecorderConfig{clock: scheduler.Immediate()}
	if err := opts.Apply(&cfg, options); err != nil {
		panic(err)
	}
	return &Recorder[T]{clock: cfg.clock}
}

func (r *Recorder[T]) OnNext(v T)        { r.record(murmur.NextSpark(v)) }
func (r *Recorder[T]) OnError(err error) { r.record(murmur.ErrorSpark[T](err)) }
func (r *Recorder[T]) OnCompleted()      { r.record(murmur.CompletedSpark[T]()) }

func (r *Recorder[T]) record(s murmur.Spark[T]) {
	at := strfmt.DateTime(r.clock.Now())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs = append(r.recs, Record[T]{At: at, Spark: s})
}

// Records returns everything observed so far, in arrival order.
func (r *Recorder[T]) Records() []Record[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record[T], len(r.recs))
	copy(out, r.recs)
	return out
}

// Sparks returns the observed notifications without their timestamps.
func (r *Recorder[T]) Sparks() []murmur.Spark[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]murmur.Spark[T], len(r.recs))
	for i, rec := range r.recs {
		out[i] = rec.Spark
	}
	return out
}

// Values returns the next values observed so far, in order.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	var vs []T
	for _, rec := range r.recs {
		if rec.Spark.Kind() == murmur.KindNext {
			vs = append(vs, rec.Spark.Value())
		}
	}
	return vs
}

// Err returns the recorded terminal error, or nil when none arrived.
func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.recs {
		if rec.Spark.Kind() == murmur.KindError {
			return rec.Spark.Err()
		}
	}
	return nil
}

// Completed reports whether a completion notification arrived.
func (r *Recorder[T]) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.recs {
		if rec.Spark.Kind() == murmur.KindCompleted {
			return true
		}
	}
	return false
}

// Terminal reports whether the recording has seen the end of the stream.
func (r *Recorder[T]) Terminal() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.recs {
		if rec.Spark.Terminal() {
			return true
		}
	}
	return false
}

// Reset drops everything recorded so far.
func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs = nil
}

// JSON renders the recording as a timeline document, which tests diff
// against golden files.
func (r *Recorder[T]) JSON() ([]byte, error) {
	return json.Marshal(r.Records())
}
