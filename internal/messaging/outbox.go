package messaging

import (
	"context"
	"fmt"
	"sync"
)

type pendingEvent struct {
	routingKey string
	eventData  interface{}
}

// Outbox collects events published inside a transaction so they can be sent
// only after the transaction commits. It satisfies PublisherInterface.
type Outbox struct {
	mu     sync.Mutex
	events []pendingEvent
}

// NewOutbox creates an empty outbox.
func NewOutbox() *Outbox {
	return &Outbox{}
}

// Publish queues the event.
func (o *Outbox) Publish(_ context.Context, routingKey string, eventData interface{}) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.events = append(o.events, pendingEvent{routingKey: routingKey, eventData: eventData})
	return nil
}

// Len returns the number of queued events.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.events)
}

// Discard drops every queued event, e.g. after a rollback.
func (o *Outbox) Discard() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = nil
}

// Flush sends queued events to pub in publish order and empties the outbox.
// It keeps going after a failed event and returns the first error.
func (o *Outbox) Flush(ctx context.Context, pub PublisherInterface) error {
	o.mu.Lock()
	events := o.events
	o.events = nil
	o.mu.Unlock()

	if pub == nil {
		return nil
	}

	var firstErr error
	for _, e := range events {
		if err := pub.Publish(ctx, e.routingKey, e.eventData); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to flush %s: %w", e.routingKey, err)
		}
	}
	return firstErr
}

// Close discards anything still queued.
func (o *Outbox) Close() error {
	o.Discard()
	return nil
}
