package scheduler

import (
	"container/heap"
	"sync/atomic"
	"time"
)

// task is one unit of queued work. Cancellation is lazy: a cancelled task
// stays in the heap until it surfaces and is then discarded.
type task struct {
	due       time.Time
	seq       uint64
	action    func()
	index     int
	cancelled atomic.Bool
}

func (t *task) cancel() {
	t.cancelled.Store(true)
}

// agenda orders tasks by due time, breaking ties by insertion sequence so
// that equal due times run first-in first-out. It is not goroutine safe;
// owners serialize access with their own lock.
type agenda struct {
	heap taskHeap
	seq  uint64
}

func (a *agenda) push(due time.Time, action func()) *task {
	a.seq++
	t := &task{due: due, seq: a.seq, action: action}
	heap.Push(&a.heap, t)
	return t
}

// pop removes and returns the earliest live task, discarding any cancelled
// tasks it encounters on the way. It returns nil when nothing is left.
func (a *agenda) pop() *task {
	for a.heap.Len() > 0 {
		t := heap.Pop(&a.heap).(*task)
		if !t.cancelled.Load() {
			return t
		}
	}
	return nil
}

// peek returns the earliest live task without removing it, pruning cancelled
// tasks off the top of the heap.
func (a *agenda) peek() *task {
	for a.heap.Len() > 0 {
		t := a.heap[0]
		if !t.cancelled.Load() {
			return t
		}
		heap.Pop(&a.heap)
	}
	return nil
}

func (a *agenda) len() int {
	return a.heap.Len()
}

type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
