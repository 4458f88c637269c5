package disposal

import (
	"sync/atomic"

	"github.com/alphadose/haxmap"

	"github.com/casualjim/murmur/pkg/uuidx"
)

// Composite groups disposables so they can be released together. Handles
// added after the composite has been disposed are disposed immediately.
type Composite struct {
	entries *haxmap.Map[string, Disposable]
	done    atomic.Bool
}

// NewComposite returns a composite owning the given children.
func NewComposite(children ...Disposable) *Composite {
	c := &Composite{entries: haxmap.New[string, Disposable]()}
	for _, child := range children {
		c.Add(child)
	}
	return c
}

// Add hands ownership of d to the composite. When the composite is already
// disposed, d is disposed on the spot instead of being retained.
func (c *Composite) Add(d Disposable) {
	if d == nil {
		return
	}
	if c.done.Load() {
		d.Dispose()
		return
	}
	id := uuidx.NewString()
	c.entries.Set(id, d)
	// Dispose may have drained the map between the check above and the Set.
	// Claim the entry back so the handle is not left live.
	if c.done.Load() {
		if _, ok := c.entries.Get(id); ok {
			c.entries.Del(id)
			d.Dispose()
		}
	}
}

// Dispose releases every owned handle. Only the first call drains the bag.
func (c *Composite) Dispose() {
	if !c.done.CompareAndSwap(false, true) {
		return
	}
	c.entries.ForEach(func(id string, d Disposable) bool {
		c.entries.Del(id)
		d.Dispose()
		return true
	})
}

// IsDisposed reports whether Dispose has been called.
func (c *Composite) IsDisposed() bool {
	return c.done.Load()
}

// Len returns the number of handles currently owned.
func (c *Composite) Len() int {
	return int(c.entries.Len())
}
