// Package override holds the user-controlled resolution layers that
// take precedence over language dictionaries: the session-scoped
// ignored-word set and the persisted custom dictionary.
//
// Precedence, evaluated in order: a word in the custom dictionary is
// valid; otherwise a word in the ignored set is valid; otherwise
// resolution defers to the dictionary provider. Both sets store
// normalized forms only, so case variants of an ignored or custom word
// resolve the same way.
//
// The custom dictionary survives restarts through a Persister.
// Mutations are synchronous and atomic from the caller's perspective;
// a failed write is reported but leaves the in-memory set
// authoritative for the session, and the write is retried on the next
// mutation. A Watcher can reload the store when the backing file is
// modified externally.
package override
