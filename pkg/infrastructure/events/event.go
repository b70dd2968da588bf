// Package events records pricing activity as append-only streams, one per
// recipe plus a stream for whole-catalog runs.
package events

import (
	"time"
)

// Event is one entry in a stream. Version counts from 1 within its stream.
type Event struct {
	Type      string
	StreamID  string
	Data      any
	Timestamp time.Time
	Version   int
}

// Handler receives events of the types it subscribed to
type Handler interface {
	Handle(event Event) error
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(event Event) error

// Handle calls f(event)
func (f HandlerFunc) Handle(event Event) error {
	return f(event)
}

// EventStore appends and replays events
type EventStore interface {
	Append(streamID, eventType string, data any) (Event, error)
	ReadStream(streamID string, fromVersion int) ([]Event, error)
	ReadAll(fromPosition int) ([]Event, error)
	Subscribe(handler Handler, eventTypes ...string)
}
