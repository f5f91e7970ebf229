package dictionary

import (
	"context"
	"sync"
)

// Result is the outcome of a dictionary lookup.
type Result int

const (
	// ResultInvalid means no active language accepts the word.
	ResultInvalid Result = iota

	// ResultValid means at least one active language accepts the word.
	ResultValid

	// ResultUnresolved means the word cannot be judged yet because at
	// least one language is still loading and no loaded language
	// accepts it. Unresolved words are never flagged as misspelled.
	ResultUnresolved
)

// String returns a human-readable result name.
func (r Result) String() string {
	switch r {
	case ResultInvalid:
		return "invalid"
	case ResultValid:
		return "valid"
	case ResultUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// State represents the lifecycle state of one language in the provider.
type State int

const (
	// StateInactive means the language has not been activated.
	StateInactive State = iota

	// StateLoading means activation is in progress.
	StateLoading

	// StateActive means the language's Set is built and queryable.
	StateActive

	// StateFailed means the load failed; the language stays inactive
	// for the session until Retry.
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadFunc is called when a language finishes loading. err is nil on
// success and a *LoadError on failure.
type LoadFunc func(lang string, err error)

// language tracks one activated language.
type language struct {
	state State
	set   *Set
	err   error
	gen   uint64
	done  chan struct{}
}

// Provider activates languages and answers lookups with union
// semantics across every active language.
type Provider struct {
	mu     sync.RWMutex
	source Source
	langs  map[string]*language
	gens   map[string]uint64
	onLoad []LoadFunc
}

// NewProvider creates a provider over the given source.
func NewProvider(source Source) *Provider {
	return &Provider{
		source: source,
		langs:  make(map[string]*language),
		gens:   make(map[string]uint64),
	}
}

// OnLoad registers a callback invoked whenever a language load
// completes, successfully or not. Callbacks run outside provider locks.
func (p *Provider) OnLoad(fn LoadFunc) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onLoad = append(p.onLoad, fn)
}

// Activate starts loading a language in the background and returns
// immediately. Activating a loading or active language is a no-op.
// Activating a language whose load already failed returns the recorded
// error without retrying; use Retry for an explicit retry.
func (p *Provider) Activate(ctx context.Context, lang string) error {
	p.mu.Lock()
	if entry, ok := p.langs[lang]; ok {
		state, err := entry.state, entry.err
		p.mu.Unlock()
		if state == StateFailed {
			return err
		}
		return nil
	}

	p.gens[lang]++
	entry := &language{
		state: StateLoading,
		gen:   p.gens[lang],
		done:  make(chan struct{}),
	}
	p.langs[lang] = entry
	p.mu.Unlock()

	go p.load(ctx, lang, entry.gen)
	return nil
}

// ActivateAndWait activates a language and blocks until loading
// completes or the context is cancelled.
func (p *Provider) ActivateAndWait(ctx context.Context, lang string) error {
	if err := p.Activate(ctx, lang); err != nil {
		return err
	}
	return p.WaitReady(ctx, lang)
}

// WaitReady blocks until the language's load completes, returning the
// load error if it failed.
func (p *Provider) WaitReady(ctx context.Context, lang string) error {
	p.mu.RLock()
	entry, ok := p.langs[lang]
	p.mu.RUnlock()
	if !ok {
		return ErrNotActive
	}

	select {
	case <-entry.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if cur, ok := p.langs[lang]; ok && cur == entry {
		return entry.err
	}
	return ErrNotActive
}

// load builds the language set off the caller's goroutine.
func (p *Provider) load(ctx context.Context, lang string, gen uint64) {
	words, err := p.source.Words(ctx, lang)

	var set *Set
	if err == nil {
		set = BuildSet(lang, words)
	}

	p.mu.Lock()
	entry, ok := p.langs[lang]
	if !ok || entry.gen != gen {
		// Deactivated (or reactivated) while loading; drop the result.
		p.mu.Unlock()
		return
	}
	if err != nil {
		entry.state = StateFailed
		entry.err = &LoadError{Lang: lang, Err: err}
	} else {
		entry.state = StateActive
		entry.set = set
	}
	loadErr := entry.err
	callbacks := make([]LoadFunc, len(p.onLoad))
	copy(callbacks, p.onLoad)
	close(entry.done)
	p.mu.Unlock()

	for _, fn := range callbacks {
		fn(lang, loadErr)
	}
}

// Deactivate removes a language. Any in-flight load for it is
// discarded when it completes.
func (p *Provider) Deactivate(lang string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.langs, lang)
	p.gens[lang]++
}

// Retry clears a failed language and activates it again.
func (p *Provider) Retry(ctx context.Context, lang string) error {
	p.mu.Lock()
	if entry, ok := p.langs[lang]; ok && entry.state == StateFailed {
		delete(p.langs, lang)
		p.gens[lang]++
	}
	p.mu.Unlock()
	return p.Activate(ctx, lang)
}

// Lookup resolves a normalized word against every active language.
// Valid if any loaded set accepts it; Unresolved if none accepts but a
// load is still in flight; Invalid otherwise.
func (p *Provider) Lookup(word string) Result {
	p.mu.RLock()
	defer p.mu.RUnlock()

	loading := false
	for _, entry := range p.langs {
		switch entry.state {
		case StateActive:
			if entry.set.Contains(word) {
				return ResultValid
			}
		case StateLoading:
			loading = true
		}
	}
	if loading {
		return ResultUnresolved
	}
	return ResultInvalid
}

// Suggest returns up to limit candidate corrections for a normalized
// word, merged across all active languages and ordered best first.
func (p *Provider) Suggest(word string, limit int) []string {
	p.mu.RLock()
	sets := make([]*Set, 0, len(p.langs))
	for _, entry := range p.langs {
		if entry.state == StateActive {
			sets = append(sets, entry.set)
		}
	}
	p.mu.RUnlock()

	seen := make(Dict)
	var merged []string
	for _, s := range sets {
		for _, c := range s.Suggest(word, limit) {
			if !seen.Exists(c) {
				seen.Add(c)
				merged = append(merged, c)
			}
		}
	}
	rankCandidates(word, merged)
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// State returns the lifecycle state of a language.
func (p *Provider) State(lang string) State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if entry, ok := p.langs[lang]; ok {
		return entry.state
	}
	return StateInactive
}

// LoadErr returns the recorded load error for a language, or nil.
func (p *Provider) LoadErr(lang string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if entry, ok := p.langs[lang]; ok {
		return entry.err
	}
	return nil
}

// Languages returns the codes of all activated languages (loading,
// active, and failed) in no particular order.
func (p *Provider) Languages() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.langs))
	for lang := range p.langs {
		out = append(out, lang)
	}
	return out
}

// Loading returns true if any activated language is still loading.
func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, entry := range p.langs {
		if entry.state == StateLoading {
			return true
		}
	}
	return false
}
