package disposal

import "context"

// Cancel ties a disposable to a derived context. Dispose cancels the
// context, and cancellation of the parent marks the handle disposed, so the
// two cancellation worlds stay in sync whichever side fires first.
type Cancel struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewCancel derives a cancellable context from parent and returns the handle
// controlling it. A nil parent falls back to context.Background().
func NewCancel(parent context.Context) *Cancel {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Cancel{ctx: ctx, cancel: cancel}
}

// Context returns the derived context. It is done once the handle is
// disposed or the parent context is cancelled.
func (c *Cancel) Context() context.Context {
	return c.ctx
}

// Dispose cancels the derived context.
func (c *Cancel) Dispose() {
	c.cancel()
}

// IsDisposed reports whether the derived context has ended, either through
// Dispose or through the parent being cancelled.
func (c *Cancel) IsDisposed() bool {
	return c.ctx.Err() != nil
}
