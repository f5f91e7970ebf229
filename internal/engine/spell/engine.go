package spell

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/spellstorm/internal/dictionary"
	"github.com/dshills/spellstorm/internal/engine/document"
	"github.com/dshills/spellstorm/internal/engine/tokenize"
	"github.com/dshills/spellstorm/internal/event"
	"github.com/dshills/spellstorm/internal/override"
)

// DocumentID identifies an open document.
type DocumentID string

// eventSource tags events published by the engine.
const eventSource = "spell.engine"

// DefaultDebounce is the edit-settle delay used when none is configured.
const DefaultDebounce = 300 * time.Millisecond

// checker tracks the spell-check state of one open document. All
// fields are guarded by the engine mutex.
type checker struct {
	id  DocumentID
	doc *document.Document

	state State

	// spans is the settled span set, sorted by position. It stays
	// authoritative until a recheck commits a replacement.
	spans []Span

	// unresolved are tokens whose language dictionary has not finished
	// loading. They are not flagged; a load completion re-resolves
	// them and emits a follow-up delta.
	unresolved []Span

	// gen is bumped on every edit. A recheck captures gen at start and
	// discards its result when the counter has moved on.
	gen uint64

	sched scheduler
}

// scheduler is the single pending-recheck slot for a document. A new
// edit merges its window into the slot and resets the timer rather
// than stacking a second recheck.
type scheduler struct {
	timer *time.Timer
	armed bool

	// window is the merged changed range in current document
	// coordinates.
	window document.Range

	// edits are the edit results accumulated since the last settled
	// commit, oldest first. Carried-over spans are mapped through
	// them when the recheck diffs.
	edits []document.EditResult
}

// Engine orchestrates tokenization, dictionary lookup, and override
// resolution, and maintains the misspelled-span set for each open
// document. All mutation of a document's spans happens under one
// mutex; the engine never runs two rechecks for the same document
// concurrently.
type Engine struct {
	mu sync.Mutex

	provider  *dictionary.Provider
	overrides *override.Store
	bus       *event.Bus

	detector       tokenize.RegionDetector
	minWordLength  int
	maxSuggestions int
	debounce       time.Duration

	docs   map[DocumentID]*checker
	closed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithBus sets the event bus the engine publishes to.
func WithBus(b *event.Bus) Option {
	return func(e *Engine) { e.bus = b }
}

// WithDetector sets the excluded-region detector applied to every
// document.
func WithDetector(d tokenize.RegionDetector) Option {
	return func(e *Engine) { e.detector = d }
}

// WithMinWordLength sets the shortest token length that gets checked.
func WithMinWordLength(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minWordLength = n
		}
	}
}

// WithMaxSuggestions caps suggestions per misspelling.
func WithMaxSuggestions(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxSuggestions = n
		}
	}
}

// WithDebounce sets the edit-settle delay for scheduled rechecks.
func WithDebounce(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.debounce = d
		}
	}
}

// New creates an Engine over the given dictionary provider and
// override store. The engine subscribes to dictionary load completions
// so unresolved tokens are re-resolved as languages come online.
func New(provider *dictionary.Provider, overrides *override.Store, opts ...Option) *Engine {
	e := &Engine{
		provider:       provider,
		overrides:      overrides,
		minWordLength:  1,
		maxSuggestions: 5,
		debounce:       DefaultDebounce,
		docs:           make(map[DocumentID]*checker),
	}
	for _, opt := range opts {
		opt(e)
	}
	provider.OnLoad(e.handleLoad)
	return e
}

// OpenDocument registers a document with the given initial text and
// returns its ID. The document starts Uninitialized; call FullScan to
// produce the first span set.
func (e *Engine) OpenDocument(text string) (DocumentID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return "", ErrEngineClosed
	}

	id := DocumentID(uuid.NewString())
	e.docs[id] = &checker{
		id:    id,
		doc:   document.NewFromString(text),
		state: StateUninitialized,
	}
	return id, nil
}

// CloseDocument closes a document and discards its span set. Any
// pending recheck is cancelled.
func (e *Engine) CloseDocument(id DocumentID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.docs[id]
	if !ok {
		return ErrUnknownDocument
	}
	e.closeChecker(c)
	delete(e.docs, id)
	return nil
}

// closeChecker stops the pending timer and closes the document.
// Caller holds e.mu.
func (e *Engine) closeChecker(c *checker) {
	if c.sched.timer != nil {
		c.sched.timer.Stop()
	}
	c.sched.armed = false
	c.gen++
	c.state = StateClosed
	c.doc.Close()
}

// Close shuts down the engine and closes all open documents.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	for id, c := range e.docs {
		e.closeChecker(c)
		delete(e.docs, id)
	}
}

// Text returns the current text of a document.
func (e *Engine) Text(id DocumentID) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.docs[id]
	if !ok {
		return "", ErrUnknownDocument
	}
	return c.doc.Text(), nil
}

// Spans returns a copy of the current span set and the document state.
// The set is authoritative only when the state is Settled.
func (e *Engine) Spans(id DocumentID) ([]Span, State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.docs[id]
	if !ok {
		return nil, StateUninitialized, ErrUnknownDocument
	}
	out := make([]Span, len(c.spans))
	copy(out, c.spans)
	return out, c.state, nil
}

// Suggest returns up to the configured number of candidate corrections
// for a word, case-matched to the original spelling.
func (e *Engine) Suggest(word string) []string {
	norm := tokenize.Normalize(word)
	candidates := e.provider.Suggest(norm, e.maxSuggestions)
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = dictionary.MatchCase(word, c)
	}
	return out
}

// ToggleLanguage activates or deactivates a language and rescans every
// open document; multi-language changes invalidate the whole
// resolution. Activation is asynchronous: words of the new language
// stay unresolved until its dictionary finishes loading, at which
// point a follow-up delta fires.
func (e *Engine) ToggleLanguage(ctx context.Context, code string, enabled bool) error {
	if enabled {
		if err := e.provider.Activate(ctx, code); err != nil {
			return err
		}
	} else {
		e.provider.Deactivate(code)
	}
	return e.rescanAll(ctx)
}

// RetryLanguage retries a failed language load.
func (e *Engine) RetryLanguage(ctx context.Context, code string) error {
	return e.provider.Retry(ctx, code)
}

// rescanAll full-scans every open document, publishing deltas.
func (e *Engine) rescanAll(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	for _, c := range e.docs {
		if c.state == StateClosed {
			continue
		}
		if _, _, err := e.fullScanLocked(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// setState transitions a checker and publishes the matching scan
// event. Caller holds e.mu.
func (e *Engine) setState(c *checker, s State) {
	if c.state == s {
		return
	}
	c.state = s
	switch s {
	case StateScanning:
		e.publish(event.TopicScanStarted, ScanPayload{ID: c.id, Version: c.doc.Version()})
	case StateSettled:
		e.publish(event.TopicScanSettled, ScanPayload{ID: c.id, Version: c.doc.Version()})
	}
}

// publish sends an event when a bus is configured.
func (e *Engine) publish(topic event.Topic, payload any) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(event.New(topic, payload, eventSource))
}

// handleLoad runs when a dictionary load completes. On success it
// re-resolves every document's unresolved tokens and emits follow-up
// deltas for any that turn out misspelled.
func (e *Engine) handleLoad(lang string, err error) {
	if err != nil {
		e.publish(event.TopicDictionaryFailed, LoadPayload{Lang: lang, Err: err})
		return
	}
	e.publish(event.TopicDictionaryLoaded, LoadPayload{Lang: lang})

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	for _, c := range e.docs {
		if c.state != StateSettled || len(c.unresolved) == 0 {
			continue
		}
		if d := e.settleUnresolved(c); !d.IsEmpty() {
			e.publish(event.TopicSpansChanged, ChangePayload{
				ID:      c.id,
				Version: c.doc.Version(),
				Delta:   d,
			})
		}
	}
}

// settleUnresolved re-resolves a document's unresolved tokens against
// the current dictionaries. Tokens that turn out misspelled move into
// the flagged spans and are returned as an Added delta; tokens whose
// language is still loading stay unresolved. Caller holds e.mu.
func (e *Engine) settleUnresolved(c *checker) Delta {
	var d Delta
	var still []Span
	for _, s := range c.unresolved {
		switch e.resolve(tokenize.Normalize(s.Word)) {
		case dictionary.ResultValid:
			// Settled as valid; drop.
		case dictionary.ResultUnresolved:
			still = append(still, s)
		default:
			c.spans = append(c.spans, s)
			d.Added = append(d.Added, s)
		}
	}
	c.unresolved = still
	if !d.IsEmpty() {
		sortSpans(c.spans)
	}
	return d
}

// resolve applies override precedence, deferring to the dictionary
// provider when neither the custom dictionary nor the ignored set
// claims the word.
func (e *Engine) resolve(norm string) dictionary.Result {
	if e.overrides != nil && e.overrides.Resolves(norm) {
		return dictionary.ResultValid
	}
	return e.provider.Lookup(norm)
}
