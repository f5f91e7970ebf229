package event

import (
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Errors returned by the bus.
var (
	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrBusClosed is returned when operations are attempted on a
	// closed bus.
	ErrBusClosed = errors.New("event bus is closed")
)

// Handler processes one event.
type Handler func(Event)

// Subscription represents an active registration on the bus.
type Subscription struct {
	id    string
	topic Topic
	bus   *Bus
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Topic returns the subscribed topic. The empty topic matches all
// events.
func (s *Subscription) Topic() Topic {
	return s.topic
}

// Cancel permanently removes the subscription from the bus.
func (s *Subscription) Cancel() {
	s.bus.unsubscribe(s.id)
}

// IsActive returns true if the subscription is still registered.
func (s *Subscription) IsActive() bool {
	return s.bus.isActive(s.id)
}

// entry pairs a subscription with its handler.
type entry struct {
	id      string
	topic   Topic
	handler Handler
}

// Bus delivers events to subscribers synchronously, in registration
// order. All methods are thread-safe.
type Bus struct {
	mu      sync.RWMutex
	entries []entry
	closed  bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for a topic. The empty topic
// subscribes to every event.
func (b *Bus) Subscribe(topic Topic, handler Handler) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBusClosed
	}

	id := uuid.NewString()
	b.entries = append(b.entries, entry{id: id, topic: topic, handler: handler})
	return &Subscription{id: id, topic: topic, bus: b}, nil
}

// Publish delivers an event to every matching subscriber.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	matched := make([]Handler, 0, len(b.entries))
	for _, e := range b.entries {
		if e.topic == "" || e.topic == ev.Topic {
			matched = append(matched, e.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range matched {
		deliver(h, ev)
	}
}

// Close removes all subscriptions and rejects new ones.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.entries = nil
}

// deliver invokes one handler with panic isolation.
func deliver(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("event: handler panic on %s: %v", ev.Topic, r)
		}
	}()
	h(ev)
}

func (b *Bus) unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, e := range b.entries {
		if e.id == id {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return
		}
	}
}

func (b *Bus) isActive(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, e := range b.entries {
		if e.id == id {
			return true
		}
	}
	return false
}
