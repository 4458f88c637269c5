package broker

import (
	"log/slog"
	"time"

	"github.com/fogfish/opts"

	"github.com/casualjim/murmur/scheduler"
)

const (
	defaultBuffer      = 50
	defaultSlowTimeout = 100 * time.Millisecond
)

// Config carries the knobs shared by every topic a broker creates.
type Config struct {
	buffer      int
	slowTimeout time.Duration
	log         *slog.Logger
	hop         scheduler.Scheduler
}

var (
	// WithBuffer sets the per-subscriber channel capacity. Values below one
	// are raised to one so terminal replay to late subscribers never blocks.
	WithBuffer = opts.ForName[Config, int]("buffer")

	// WithSlowTimeout bounds how long a publish waits on a subscriber whose
	// buffer is full before disconnecting it.
	WithSlowTimeout = opts.ForName[Config, time.Duration]("slowTimeout")

	// WithLogger sets the logger topics report subscription churn and slow
	// subscriber drops to.
	WithLogger = opts.ForName[Config, *slog.Logger]("log")

	// WithScheduler routes Stream deliveries through the given scheduler.
	// Without it Stream subscribers are called on the publishing goroutine.
	WithScheduler = opts.ForName[Config, scheduler.Scheduler]("hop")
)
