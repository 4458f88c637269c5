package disposal

import "sync"

// Serial holds at most one inner handle. Replacing the handle disposes the
// previous one, and disposing the serial disposes whatever it currently
// holds plus anything assigned afterwards.
type Serial struct {
	mu      sync.Mutex
	current Disposable
	done    bool
}

// NewSerial returns an empty replaceable slot.
func NewSerial() *Serial {
	return &Serial{}
}

// Set stores d as the current handle, disposing the handle it replaces.
// Assigning to a disposed serial disposes d immediately.
func (s *Serial) Set(d Disposable) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		if d != nil {
			d.Dispose()
		}
		return
	}
	prev := s.current
	s.current = d
	s.mu.Unlock()

	if prev != nil {
		prev.Dispose()
	}
}

// Get returns the current inner handle, which may be nil.
func (s *Serial) Get() Disposable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Dispose releases the current handle and marks the slot terminal.
func (s *Serial) Dispose() {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	cur := s.current
	s.current = nil
	s.mu.Unlock()

	if cur != nil {
		cur.Dispose()
	}
}

// IsDisposed reports whether the slot has been marked terminal.
func (s *Serial) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
