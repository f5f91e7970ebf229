// Package event provides the notification bus the spell engine emits
// on: span deltas, scan lifecycle transitions, dictionary loads, and
// persistence failures. Consumers such as decoration sinks register
// explicit subscriptions instead of listening on ambient globals.
//
// Delivery is synchronous and in registration order. Handlers must be
// fast; anything slow belongs on the consumer's own goroutine. A
// panicking handler is isolated and logged, never propagated to the
// publisher.
package event
