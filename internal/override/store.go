package override

import (
	"sync"

	"github.com/dshills/spellstorm/internal/dictionary"
	"github.com/dshills/spellstorm/internal/engine/tokenize"
)

// Store holds the ignored-word set and the custom dictionary.
// All methods are thread-safe; mutations are atomic from the caller's
// perspective.
type Store struct {
	mu        sync.RWMutex
	ignored   dictionary.Dict
	custom    dictionary.Dict
	persister Persister

	// savePending is set when a persist failed; the next mutation
	// retries the write.
	savePending bool
}

// Option is a functional option for configuring a Store.
type Option func(*Store)

// WithPersister sets the custom-dictionary persister.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		if p != nil {
			s.persister = p
		}
	}
}

// NewStore creates a Store and loads the persisted custom dictionary.
// A load failure is returned alongside a usable store with an empty
// custom dictionary; the session proceeds in-memory.
func NewStore(opts ...Option) (*Store, error) {
	s := &Store{
		ignored:   make(dictionary.Dict),
		custom:    make(dictionary.Dict),
		persister: NullPersister{},
	}
	for _, opt := range opts {
		opt(s)
	}

	words, err := s.persister.Load()
	for _, w := range words {
		s.custom.Add(tokenize.Normalize(w))
	}
	return s, err
}

// Ignore adds a word to the session ignored set.
func (s *Store) Ignore(word string) {
	norm := tokenize.Normalize(word)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ignored.Add(norm)
}

// Unignore removes a word from the ignored set.
func (s *Store) Unignore(word string) {
	norm := tokenize.Normalize(word)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ignored.Delete(norm)
}

// IsIgnored returns true if the word is in the ignored set.
func (s *Store) IsIgnored(word string) bool {
	norm := tokenize.Normalize(word)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ignored.Exists(norm)
}

// AddCustom adds a word to the custom dictionary and persists it.
// On persist failure the in-memory set keeps the word and the error is
// returned; the write is retried on the next mutation.
func (s *Store) AddCustom(word string) error {
	norm := tokenize.Normalize(word)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.custom.Add(norm)
	return s.saveLocked()
}

// RemoveCustom removes a word from the custom dictionary and persists
// the change.
func (s *Store) RemoveCustom(word string) error {
	norm := tokenize.Normalize(word)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.custom.Delete(norm)
	return s.saveLocked()
}

// InCustom returns true if the word is in the custom dictionary.
func (s *Store) InCustom(word string) bool {
	norm := tokenize.Normalize(word)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.custom.Exists(norm)
}

// Resolves reports whether the store resolves the normalized word as
// valid: first the custom dictionary, then the ignored set.
func (s *Store) Resolves(norm string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.custom.Exists(norm) || s.ignored.Exists(norm)
}

// CustomWords returns the custom dictionary contents in sorted order.
func (s *Store) CustomWords() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.custom.List()
}

// IgnoredWords returns the ignored set contents in sorted order.
func (s *Store) IgnoredWords() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ignored.List()
}

// ClearIgnored empties the session ignored set.
func (s *Store) ClearIgnored() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ignored = make(dictionary.Dict)
}

// Flush retries any pending persist of the custom dictionary.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.savePending {
		return nil
	}
	return s.saveLocked()
}

// Reload replaces the custom dictionary with the persisted contents.
// Used when the backing file changes externally.
func (s *Store) Reload() error {
	words, err := s.persister.Load()
	if err != nil {
		return err
	}
	custom := make(dictionary.Dict, len(words))
	for _, w := range words {
		custom.Add(tokenize.Normalize(w))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.custom = custom
	s.savePending = false
	return nil
}

// saveLocked persists the custom dictionary. Caller holds s.mu.
func (s *Store) saveLocked() error {
	if err := s.persister.Save(s.custom.List()); err != nil {
		s.savePending = true
		return err
	}
	s.savePending = false
	return nil
}
