package core

import "github.com/google/uuid"

// CorrelationID is an opaque per-operation tracing token. It participates
// in no control flow within the overlay — only in logs and, upstream, in
// traces.
type CorrelationID struct {
	id uuid.UUID
}

// NewCorrelationID generates a fresh, random correlation id.
func NewCorrelationID() CorrelationID {
	return CorrelationID{id: uuid.New()}
}

// IsEmpty reports whether this is the zero-value correlation id.
func (c CorrelationID) IsEmpty() bool { return c.id == uuid.Nil }

func (c CorrelationID) String() string { return c.id.String() }
