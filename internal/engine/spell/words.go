package spell

import (
	"context"

	"github.com/dshills/spellstorm/internal/engine/tokenize"
	"github.com/dshills/spellstorm/internal/event"
	"github.com/dshills/spellstorm/internal/override"
)

// IgnoreWord adds a word to the session ignored set and removes every
// currently-flagged span whose normalized form matches, without a
// rescan. It returns the removal delta per document.
func (e *Engine) IgnoreWord(word string) map[DocumentID]Delta {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.overrides.Ignore(word)
	return e.dropMatchingLocked(tokenize.Normalize(word))
}

// AddToCustomDictionary adds a word to the persisted custom dictionary
// and removes every matching flagged span, without a rescan. A persist
// failure is reported on the event bus and returned; the in-memory set
// stays authoritative and the write retries on the next mutation.
func (e *Engine) AddToCustomDictionary(word string) (map[DocumentID]Delta, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrEngineClosed
	}

	err := e.overrides.AddCustom(word)
	if err != nil {
		e.publish(event.TopicPersistFailed, err)
	}
	return e.dropMatchingLocked(tokenize.Normalize(word)), err
}

// UnignoreWord removes a word from the ignored set. The word may be
// misspelled again, so every open document is rescanned.
func (e *Engine) UnignoreWord(ctx context.Context, word string) error {
	e.overrides.Unignore(word)
	return e.rescanAll(ctx)
}

// RemoveFromCustomDictionary removes a word from the custom dictionary
// and rescans every open document. Persist failures are reported on
// the bus; the in-memory removal holds either way.
func (e *Engine) RemoveFromCustomDictionary(ctx context.Context, word string) error {
	if err := e.overrides.RemoveCustom(word); err != nil {
		e.publish(event.TopicPersistFailed, err)
	}
	return e.rescanAll(ctx)
}

// Overrides exposes the override store, mainly for host inspection.
func (e *Engine) Overrides() *override.Store {
	return e.overrides
}

// dropMatchingLocked removes spans whose normalized word equals norm
// from every settled document, publishing the removal deltas. Caller
// holds e.mu.
func (e *Engine) dropMatchingLocked(norm string) map[DocumentID]Delta {
	deltas := make(map[DocumentID]Delta)
	for id, c := range e.docs {
		if c.state == StateClosed {
			continue
		}

		var d Delta
		kept := c.spans[:0:0]
		for _, s := range c.spans {
			if tokenize.Normalize(s.Word) == norm {
				d.Removed = append(d.Removed, s)
			} else {
				kept = append(kept, s)
			}
		}
		// Pending unresolved tokens of this word are settled too.
		var unres []Span
		for _, s := range c.unresolved {
			if tokenize.Normalize(s.Word) != norm {
				unres = append(unres, s)
			}
		}
		c.unresolved = unres

		if d.IsEmpty() {
			continue
		}
		c.spans = kept
		deltas[id] = d
		e.publish(event.TopicSpansChanged, ChangePayload{
			ID:      id,
			Version: c.doc.Version(),
			Delta:   d,
		})
	}
	return deltas
}
