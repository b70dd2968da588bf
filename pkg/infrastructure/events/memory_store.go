package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
)

// InMemoryEventStore keeps every stream in memory. Subscribers are called
// synchronously after the append is committed, in subscription order.
type InMemoryEventStore struct {
	mutex       sync.RWMutex
	streams     map[string][]Event
	allEvents   []Event
	subscribers map[string][]Handler
	logger      logr.Logger
	now         func() time.Time
}

// Verify interface compliance
var _ EventStore = (*InMemoryEventStore)(nil)

// NewInMemoryEventStore creates an empty store. Handler failures are logged
// to logger and do not fail the append.
func NewInMemoryEventStore(logger logr.Logger) *InMemoryEventStore {
	return &InMemoryEventStore{
		streams:     make(map[string][]Event),
		allEvents:   make([]Event, 0),
		subscribers: make(map[string][]Handler),
		logger:      logger.WithName("events"),
		now:         time.Now,
	}
}

// Append adds an event to the end of streamID
func (s *InMemoryEventStore) Append(streamID, eventType string, data any) (Event, error) {
	if streamID == "" {
		return Event{}, fmt.Errorf("stream ID cannot be empty")
	}
	if eventType == "" {
		return Event{}, fmt.Errorf("event type cannot be empty")
	}

	s.mutex.Lock()
	event := Event{
		Type:      eventType,
		StreamID:  streamID,
		Data:      data,
		Timestamp: s.now(),
		Version:   len(s.streams[streamID]) + 1,
	}
	s.streams[streamID] = append(s.streams[streamID], event)
	s.allEvents = append(s.allEvents, event)
	handlers := append([]Handler(nil), s.subscribers[eventType]...)
	s.mutex.Unlock()

	for _, handler := range handlers {
		if err := handler.Handle(event); err != nil {
			s.logger.Error(err, "Event handler failed", "type", event.Type, "stream", event.StreamID)
		}
	}

	return event, nil
}

// ReadStream returns the events of streamID starting at fromVersion
func (s *InMemoryEventStore) ReadStream(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stream := s.streams[streamID]
	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(stream) {
		return []Event{}, nil
	}

	return append([]Event(nil), stream[fromVersion-1:]...), nil
}

// ReadAll returns every event from the zero-based global position on
func (s *InMemoryEventStore) ReadAll(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(s.allEvents) {
		return []Event{}, nil
	}

	return append([]Event(nil), s.allEvents[fromPosition:]...), nil
}

// Subscribe registers handler for the given event types
func (s *InMemoryEventStore) Subscribe(handler Handler, eventTypes ...string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}
}
