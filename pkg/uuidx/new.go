package uuidx

import "github.com/google/uuid"

// New returns a freshly generated version 7 UUID. Version 7 identifiers are
// time-ordered, which keeps ids roughly sortable by creation time.
// It panics if the underlying generator fails.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// NewString returns a freshly generated version 7 UUID in its canonical
// string form. It is a convenience wrapper around New for callers that key
// maps by string.
func NewString() string {
	return New().String()
}
