package subject

import (
	"time"

	"github.com/fogfish/opts"

	"github.com/casualjim/murmur/scheduler"
)

// ReplayConfig carries the construction knobs for a replay subject.
type ReplayConfig struct {
	capacity int
	window   time.Duration
	clock    scheduler.Scheduler
}

var (
	// WithCapacity bounds how many values the replay buffer retains. Zero,
	// the default, means unbounded.
	WithCapacity = opts.ForName[ReplayConfig, int]("capacity")

	// WithWindow drops buffered values older than the given duration. Zero,
	// the default, means unbounded.
	WithWindow = opts.ForName[ReplayConfig, time.Duration]("window")

	// WithClock sets the scheduler whose Now drives window trimming. The
	// default is the wall clock; tests hand in a virtual scheduler to make
	// window expiry deterministic.
	WithClock = opts.ForName[ReplayConfig, scheduler.Scheduler]("clock")
)
