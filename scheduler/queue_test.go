package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgendaOrdering(t *testing.T) {
	t.Run("pops in due time order", func(t *testing.T) {
		var a agenda
		base := time.Unix(1000, 0)

		a.push(base.Add(3*time.Second), func() {})
		a.push(base.Add(1*time.Second), func() {})
		a.push(base.Add(2*time.Second), func() {})

		var dues []time.Duration
		for next := a.pop(); next != nil; next = a.pop() {
			dues = append(dues, next.due.Sub(base))
		}
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}, dues)
	})

	t.Run("equal due times pop in insertion order", func(t *testing.T) {
		var a agenda
		due := time.Unix(1000, 0)

		first := a.push(due, func() {})
		second := a.push(due, func() {})
		third := a.push(due, func() {})

		assert.Same(t, first, a.pop())
		assert.Same(t, second, a.pop())
		assert.Same(t, third, a.pop())
	})

	t.Run("pop discards cancelled tasks", func(t *testing.T) {
		var a agenda
		base := time.Unix(1000, 0)

		doomed := a.push(base.Add(time.Second), func() {})
		kept := a.push(base.Add(2*time.Second), func() {})
		doomed.cancel()

		assert.Same(t, kept, a.pop())
		assert.Nil(t, a.pop())
	})

	t.Run("peek prunes cancelled heads without removing live tasks", func(t *testing.T) {
		var a agenda
		base := time.Unix(1000, 0)

		doomed := a.push(base.Add(time.Second), func() {})
		kept := a.push(base.Add(2*time.Second), func() {})
		doomed.cancel()

		require.Same(t, kept, a.peek())
		assert.Equal(t, 1, a.len())
		assert.Same(t, kept, a.pop())
	})
}
