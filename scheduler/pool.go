package scheduler

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/fogfish/opts"

	"github.com/casualjim/murmur/disposal"
	"github.com/casualjim/murmur/pkg/slogx"
	"github.com/casualjim/murmur/pkg/uuidx"
)

// Pool runs every action on its own goroutine. Delayed work is armed with a
// timer; all live timers are tracked in a per-instance registry so Dispose
// can stop anything still pending. There is no shared process-wide state
// between pools.
type Pool struct {
	timers  *haxmap.Map[string, *time.Timer]
	log     *slog.Logger
	onPanic func(any)
	done    atomic.Bool
}

// NewPool returns a goroutine-per-action scheduler.
func NewPool(options ...opts.Option[Config]) *Pool {
	cfg := Config{log: slog.Default()}
	if err := opts.Apply(&cfg, options); err != nil {
		panic(err)
	}
	return &Pool{
		timers:  haxmap.New[string, *time.Timer](),
		log:     cfg.log.With(slogx.LoggerName("murmur.scheduler.pool")),
		onPanic: cfg.onPanic,
	}
}

// Now returns the wall clock time.
func (p *Pool) Now() time.Time {
	return time.Now()
}

// Schedule runs action on a fresh goroutine. The handle cancels the action
// if it has not started yet.
func (p *Pool) Schedule(action func()) disposal.Disposable {
	if action == nil || p.done.Load() {
		return disposal.Noop()
	}
	var cancelled atomic.Bool
	go func() {
		if cancelled.Load() || p.done.Load() {
			return
		}
		guard(p.log, p.onPanic, action)
	}()
	return disposal.New(func() { cancelled.Store(true) })
}

// ScheduleAfter arms a timer that runs action on a fresh goroutine once
// delay has elapsed. The handle stops the timer.
func (p *Pool) ScheduleAfter(delay time.Duration, action func()) disposal.Disposable {
	if action == nil || p.done.Load() {
		return disposal.Noop()
	}
	if delay <= 0 {
		return p.Schedule(action)
	}

	id := uuidx.NewString()
	timer := time.AfterFunc(delay, func() {
		p.timers.Del(id)
		if p.done.Load() {
			return
		}
		guard(p.log, p.onPanic, action)
	})
	p.timers.Set(id, timer)
	// Dispose may have drained the registry between the done check and the
	// Set; reclaim the timer so it cannot fire afterwards.
	if p.done.Load() {
		if tm, ok := p.timers.Get(id); ok {
			p.timers.Del(id)
			tm.Stop()
		}
	}

	return disposal.New(func() {
		p.timers.Del(id)
		timer.Stop()
	})
}

// ScheduleAt arms action for the given wall clock time.
func (p *Pool) ScheduleAt(due time.Time, action func()) disposal.Disposable {
	return p.ScheduleAfter(time.Until(due), action)
}

// Dispose stops all pending timers and refuses new work. Actions already
// running are not interrupted.
func (p *Pool) Dispose() {
	if !p.done.CompareAndSwap(false, true) {
		return
	}
	p.timers.ForEach(func(id string, tm *time.Timer) bool {
		p.timers.Del(id)
		tm.Stop()
		return true
	})
}

// IsDisposed reports whether the pool has been shut down.
func (p *Pool) IsDisposed() bool {
	return p.done.Load()
}

// Pending returns the number of armed timers, which is useful when tests
// need to assert that delayed work was registered or cleaned up.
func (p *Pool) Pending() int {
	return int(p.timers.Len())
}
