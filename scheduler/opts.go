package scheduler

import (
	"log/slog"
	"runtime/debug"

	"github.com/fogfish/opts"

	"github.com/casualjim/murmur/pkg/slogx"
)

// Config carries the knobs shared by the goroutine-backed schedulers.
type Config struct {
	log     *slog.Logger
	onPanic func(any)
	workers int
	depth   int
}

// WithLogger sets the logger used to report panicking actions.
var WithLogger = opts.ForName[Config, *slog.Logger]("log")

// WithWorkers sets how many worker goroutines a Workers scheduler runs.
// Pool ignores it.
var WithWorkers = opts.ForName[Config, int]("workers")

// WithQueueDepth sets the intake buffer of a Workers scheduler. Pool
// ignores it.
var WithQueueDepth = opts.ForName[Config, int]("depth")

// WithPanicHandler intercepts panics raised by scheduled actions. Without a
// handler a panic is logged and then re-raised on a dedicated goroutine, so
// the process fails the way an unhandled panic normally does instead of the
// panic disappearing into a worker.
func WithPanicHandler(fn func(recovered any)) opts.Option[Config] {
	return opts.Type[Config](func(c *Config) error {
		c.onPanic = fn
		return nil
	})
}

// guard runs action, applying the scheduler panic policy.
func guard(log *slog.Logger, onPanic func(any), action func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if onPanic != nil {
			onPanic(r)
			return
		}
		log.Error("scheduled action panicked",
			slog.Any("panic", r),
			slogx.ByteString("stack", debug.Stack()),
		)
		go func() {
			panic(r)
		}()
	}()
	action()
}
