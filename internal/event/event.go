package event

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a hierarchical event type (e.g. "spans.changed").
type Topic string

// Topics published by the spell engine.
const (
	// TopicScanStarted fires when a document enters the Scanning state.
	TopicScanStarted Topic = "scan.started"

	// TopicScanSettled fires when a document returns to the Settled
	// state with a consistent span set.
	TopicScanSettled Topic = "scan.settled"

	// TopicSpansChanged carries a span delta for a document.
	TopicSpansChanged Topic = "spans.changed"

	// TopicDictionaryLoaded fires when a language finishes loading.
	TopicDictionaryLoaded Topic = "dictionary.loaded"

	// TopicDictionaryFailed fires when a language load fails.
	TopicDictionaryFailed Topic = "dictionary.failed"

	// TopicPersistFailed fires when a custom-dictionary write fails.
	TopicPersistFailed Topic = "persist.failed"
)

// Event is a published notification. Events are immutable once created.
type Event struct {
	// Topic is the event type.
	Topic Topic

	// Payload contains the event-specific data.
	Payload any

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string
}

// New creates an event with fresh metadata.
func New(topic Topic, payload any, source string) Event {
	return Event{
		Topic:   topic,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}
