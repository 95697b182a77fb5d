package unitofwork

import (
	"sync"

	"github.com/realestate/backend/internal/domain/shared"
)

// Outbox buffers domain events pending publication within one scope's
// lifetime. Events are flushed, in insertion order, before the scope commits.
type Outbox struct {
	mu      sync.Mutex
	entries []shared.DomainEvent
}

// NewOutbox creates an empty outbox
func NewOutbox() *Outbox {
	return &Outbox{}
}

// Put appends an event to the buffer
func (o *Outbox) Put(event shared.DomainEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = append(o.entries, event)
}

// Drain returns all buffered events in insertion order and empties the buffer
func (o *Outbox) Drain() []shared.DomainEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	entries := o.entries
	o.entries = nil
	return entries
}

// Len returns the number of buffered events
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.entries)
}
