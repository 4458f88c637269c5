// Package subject provides the hot stream variants: a plain multicast
// Subject, a Behavior subject that replays its latest value, a Replay
// subject with a bounded history and an Async subject that retains a single
// eventual result.
//
// Every variant is both an Observer and an Observable. Terminal transitions
// are idempotent and happen at most once; once terminated a subject drops
// further notifications and hands late subscribers the terminal
// notification synchronously at subscribe time. Disposal is harsher: a
// disposed subject rejects Subscribe with murmur.ErrDisposed and panics
// when a producer keeps calling it.
package subject

import (
	"slices"

	"github.com/casualjim/murmur"
)

type phase uint8

const (
	phaseActive phase = iota
	phaseDone
	phaseDisposed
)

// subscriber wraps an observer in a pointer node so unsubscribing can match
// on node identity. Observer values themselves need not be comparable, and
// the same observer may be subscribed more than once.
type subscriber[T any] struct {
	dest murmur.Observer[T]
}

// addNode returns a fresh slice with n appended. The input slice is never
// mutated, so snapshots handed out before the call stay valid mid-dispatch.
func addNode[T any](subs []*subscriber[T], n *subscriber[T]) []*subscriber[T] {
	next := make([]*subscriber[T], len(subs)+1)
	copy(next, subs)
	next[len(subs)] = n
	return next
}

// removeNode returns a fresh slice without n, or the input slice unchanged
// when n is not present.
func removeNode[T any](subs []*subscriber[T], n *subscriber[T]) []*subscriber[T] {
	idx := slices.Index(subs, n)
	if idx < 0 {
		return subs
	}
	if len(subs) == 1 {
		return nil
	}
	next := make([]*subscriber[T], 0, len(subs)-1)
	next = append(next, subs[:idx]...)
	next = append(next, subs[idx+1:]...)
	return next
}

// audience is one immutable snapshot of a plain subject's state: the
// lifecycle phase, the terminal error when the phase is done, and the
// subscriber nodes. Snapshots are replaced wholesale through compare and
// swap; a snapshot being iterated by a dispatch is never modified.
type audience[T any] struct {
	phase phase
	err   error
	subs  []*subscriber[T]
}

func (a *audience[T]) add(n *subscriber[T]) *audience[T] {
	return &audience[T]{phase: phaseActive, subs: addNode(a.subs, n)}
}

func (a *audience[T]) remove(n *subscriber[T]) *audience[T] {
	next := removeNode(a.subs, n)
	if len(next) == len(a.subs) {
		return a
	}
	return &audience[T]{phase: phaseActive, subs: next}
}

func terminated[T any](err error) *audience[T] {
	return &audience[T]{phase: phaseDone, err: err}
}

func tombstone[T any]() *audience[T] {
	return &audience[T]{phase: phaseDisposed}
}
