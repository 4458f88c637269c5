/*
Package murmur implements push-based streams: producers call observers, and
everything else in the module exists to make that call safe to multicast,
cancel, reschedule and test.

The package provides the stream core through several key abstractions:

  - Observers: the three-method callback contract (OnNext/OnError/OnCompleted)
  - Observables: cold streams built with Create, Defer and the factories
  - Subjects: hot multicast nodes that are observer and observable at once
  - Sparks: notifications reified as values for queueing and recording
  - Disposables: one-shot cancellation handles for every attachment
  - Schedulers: pluggable execution policies, including virtual time

# Basic Usage

A typical pipeline subscribes an observer to a composed stream:

	src := murmur.Range(1, 5)
	sub, err := murmur.ObserveOn(src, scheduler.NewPool()).Subscribe(
		murmur.NewObserver(
			func(v int) { fmt.Println("next", v) },
			func(err error) { fmt.Println("failed:", err) },
			func() { fmt.Println("done") },
		),
	)
	if err != nil {
		// Handle error
	}
	defer sub.Dispose()

Hot streams come from the subject package:

	temps := subject.NewBehavior(21.5)
	sub, _ := temps.Subscribe(obs) // obs sees 21.5 immediately
	temps.OnNext(22.0)             // and every later reading

# Architecture

The module layers strictly, leaves first:

 1. Disposal (disposal package)
    - One-shot, composite, replaceable and context-backed handles
    - Everything that can be attached can be detached through one protocol

 2. Schedulers (scheduler package)
    - Immediate, trampoline, pool, worker and virtual-time execution
    - One contract: Now, Schedule, ScheduleAfter, ScheduleAt

 3. Subjects (subject package)
    - Plain multicast, behavior, replay and async variants
    - Copy-on-write observer lists, at-most-once termination

 4. Stream core (this package)
    - Create/CreateSafe, Defer, Catch, Finally
    - ObserveOn/SubscribeOn for moving work between schedulers

 5. Operators and facades (op, broker, bridge packages)
    - Pure functions over the public core, a topic facade, a NATS bridge

# Termination

A stream ends at most once. After OnError or OnCompleted a subject accepts
nothing further, late subscribers receive the terminal notification
synchronously at subscribe time, and repeated terminal calls are no-ops.
Disposal is the other way out: it detaches without a notification.

# Goroutine Safety

The package is safe for concurrent use when used as intended:
  - Subjects accept OnNext/Subscribe calls from any goroutine
  - The core never serializes racing producers; callers who need a total
    order must provide one
  - Disposables may be disposed from any goroutine, repeatedly
  - Virtual schedulers make timing-dependent tests deterministic

For more information about specific components, see their respective
documentation:
  - subject for the multicast variants
  - scheduler for execution policies
  - murmurtest for the recording test harness
*/
package murmur
