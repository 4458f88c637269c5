package scheduler

import (
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/fogfish/opts"

	"github.com/casualjim/murmur/disposal"
	"github.com/casualjim/murmur/pkg/slogx"
	"github.com/casualjim/murmur/pkg/uuidx"
)

// Workers runs actions on a fixed set of long-lived worker goroutines fed
// from a bounded intake channel. Schedule blocks while the intake is full,
// which bounds how much work can pile up in front of the workers. A
// panicking action never takes a worker down; the panic policy from Config
// applies and the worker keeps serving.
type Workers struct {
	tasks   chan func()
	stop    chan struct{}
	timers  *haxmap.Map[string, *time.Timer]
	log     *slog.Logger
	onPanic func(any)
	done    atomic.Bool
}

// NewWorkers starts the worker goroutines and returns the scheduler.
// Defaults: GOMAXPROCS workers and an intake depth of 64.
func NewWorkers(options ...opts.Option[Config]) *Workers {
	cfg := Config{
		log:     slog.Default(),
		workers: runtime.GOMAXPROCS(0),
		depth:   64,
	}
	if err := opts.Apply(&cfg, options); err != nil {
		panic(err)
	}
	if cfg.workers < 1 {
		cfg.workers = 1
	}
	if cfg.depth < 1 {
		cfg.depth = 1
	}

	w := &Workers{
		tasks:   make(chan func(), cfg.depth),
		stop:    make(chan struct{}),
		timers:  haxmap.New[string, *time.Timer](),
		log:     cfg.log.With(slogx.LoggerName("murmur.scheduler.workers")),
		onPanic: cfg.onPanic,
	}
	for range cfg.workers {
		go w.work()
	}
	return w
}

func (w *Workers) work() {
	for {
		select {
		case <-w.stop:
			return
		case fn := <-w.tasks:
			guard(w.log, w.onPanic, fn)
		}
	}
}

// Now returns the wall clock time.
func (w *Workers) Now() time.Time {
	return time.Now()
}

// Schedule queues action for the next free worker. It blocks while the
// intake channel is full and drops the action if the scheduler shuts down
// before a worker picks it up.
func (w *Workers) Schedule(action func()) disposal.Disposable {
	if action == nil || w.done.Load() {
		return disposal.Noop()
	}
	var cancelled atomic.Bool
	wrapped := func() {
		if cancelled.Load() || w.done.Load() {
			return
		}
		action()
	}
	select {
	case w.tasks <- wrapped:
	case <-w.stop:
		return disposal.Noop()
	}
	return disposal.New(func() { cancelled.Store(true) })
}

// ScheduleAfter arms a timer that feeds action into the intake once delay
// has elapsed.
func (w *Workers) ScheduleAfter(delay time.Duration, action func()) disposal.Disposable {
	if action == nil || w.done.Load() {
		return disposal.Noop()
	}
	if delay <= 0 {
		return w.Schedule(action)
	}

	var cancelled atomic.Bool
	wrapped := func() {
		if cancelled.Load() || w.done.Load() {
			return
		}
		action()
	}

	id := uuidx.NewString()
	timer := time.AfterFunc(delay, func() {
		w.timers.Del(id)
		if w.done.Load() {
			return
		}
		select {
		case w.tasks <- wrapped:
		case <-w.stop:
		}
	})
	w.timers.Set(id, timer)
	if w.done.Load() {
		if tm, ok := w.timers.Get(id); ok {
			w.timers.Del(id)
			tm.Stop()
		}
	}

	return disposal.New(func() {
		cancelled.Store(true)
		w.timers.Del(id)
		timer.Stop()
	})
}

// ScheduleAt arms action for the given wall clock time.
func (w *Workers) ScheduleAt(due time.Time, action func()) disposal.Disposable {
	return w.ScheduleAfter(time.Until(due), action)
}

// Dispose stops the workers, refuses new work and disarms pending timers.
// Queued actions that no worker picked up yet are dropped.
func (w *Workers) Dispose() {
	if !w.done.CompareAndSwap(false, true) {
		return
	}
	close(w.stop)
	w.timers.ForEach(func(id string, tm *time.Timer) bool {
		w.timers.Del(id)
		tm.Stop()
		return true
	})
}

// IsDisposed reports whether the scheduler has been shut down.
func (w *Workers) IsDisposed() bool {
	return w.done.Load()
}
