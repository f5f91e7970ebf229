package tokenize

import (
	"sort"
	"unicode/utf8"

	"github.com/dshills/spellstorm/internal/engine/document"
)

// RegionDetector identifies ranges of text that must not be spell
// checked, such as code spans or link targets. The tokenizer does not
// hard-code any markup syntax; callers supply the detector.
type RegionDetector func(text string) []document.Range

// Tokenizer walks text and produces word tokens on demand.
// A Tokenizer is restartable via Reset and holds no state other than
// its scan position; two tokenizers over the same input produce
// identical output.
type Tokenizer struct {
	text       string
	bounds     document.Range
	minLen     int
	exclusions []document.Range

	pos document.ByteOffset
}

// Option is a functional option for configuring a Tokenizer.
type Option func(*Tokenizer)

// WithMinWordLength sets the minimum token length in runes.
// Shorter tokens are skipped. Values below 1 are ignored.
func WithMinWordLength(n int) Option {
	return func(t *Tokenizer) {
		if n >= 1 {
			t.minLen = n
		}
	}
}

// WithRange limits tokenization to the given sub-range of the text.
func WithRange(start, end document.ByteOffset) Option {
	return func(t *Tokenizer) {
		t.bounds = document.Range{Start: start, End: end}
	}
}

// WithExclusions supplies pre-computed excluded ranges.
// Tokens overlapping any excluded range are suppressed.
func WithExclusions(ranges []document.Range) Option {
	return func(t *Tokenizer) {
		t.exclusions = append(t.exclusions, ranges...)
	}
}

// WithDetector runs the detector over the text and excludes the ranges
// it reports. A detector that panics excludes the whole text rather
// than propagating the failure.
func WithDetector(d RegionDetector) Option {
	return func(t *Tokenizer) {
		if d == nil {
			return
		}
		t.exclusions = append(t.exclusions, safeDetect(d, t.text)...)
	}
}

// New creates a Tokenizer over the given text.
func New(text string, opts ...Option) *Tokenizer {
	t := &Tokenizer{
		text:   text,
		bounds: document.Range{Start: 0, End: len(text)},
		minLen: 1,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.bounds = t.bounds.Clamp(len(text))
	sort.Slice(t.exclusions, func(i, j int) bool {
		return t.exclusions[i].Start < t.exclusions[j].Start
	})
	t.Reset()
	return t
}

// Reset rewinds the tokenizer to the start of its range.
func (t *Tokenizer) Reset() {
	t.pos = t.bounds.Start
}

// Next returns the next token and true, or a zero token and false when
// the range is exhausted.
func (t *Tokenizer) Next() (Token, bool) {
	for {
		r, ok := t.nextRun()
		if !ok {
			return Token{}, false
		}

		r = trimPunct(t.text, r)
		if r.IsEmpty() {
			continue
		}

		raw := t.text[r.Start:r.End]
		if !t.accept(r, raw) {
			continue
		}

		return Token{
			Range:      r,
			Raw:        raw,
			Normalized: Normalize(raw),
		}, true
	}
}

// Tokens runs the tokenizer to completion and returns all tokens.
func Tokens(text string, opts ...Option) []Token {
	t := New(text, opts...)
	var out []Token
	for {
		tok, ok := t.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

// nextRun advances to the next maximal run of word runes within bounds.
func (t *Tokenizer) nextRun() (document.Range, bool) {
	// Skip non-word content.
	for t.pos < t.bounds.End {
		r, size := utf8.DecodeRuneInString(t.text[t.pos:t.bounds.End])
		if size == 0 {
			return document.Range{}, false
		}
		if isWordRune(r) {
			break
		}
		t.pos += size
	}
	if t.pos >= t.bounds.End {
		return document.Range{}, false
	}

	start := t.pos
	for t.pos < t.bounds.End {
		r, size := utf8.DecodeRuneInString(t.text[t.pos:t.bounds.End])
		if size == 0 || !isWordRune(r) {
			break
		}
		t.pos += size
	}

	return document.Range{Start: start, End: t.pos}, true
}

// accept applies the length, letter, and exclusion filters.
func (t *Tokenizer) accept(r document.Range, raw string) bool {
	letters := 0
	runes := 0
	for _, c := range raw {
		runes++
		if isLetter(c) {
			letters++
		}
	}
	if letters == 0 || runes < t.minLen {
		return false
	}
	return !t.excluded(r)
}

// excluded reports whether the token range overlaps any excluded range.
func (t *Tokenizer) excluded(r document.Range) bool {
	for _, ex := range t.exclusions {
		if ex.Start >= r.End {
			break
		}
		if ex.Overlaps(r) {
			return true
		}
	}
	return false
}

// trimPunct strips leading and trailing apostrophes and hyphens from a
// word run, keeping internal ones ("don't", "well-known").
func trimPunct(text string, r document.Range) document.Range {
	for r.Start < r.End {
		c, size := utf8.DecodeRuneInString(text[r.Start:r.End])
		if isLetter(c) {
			break
		}
		r.Start += size
	}
	for r.End > r.Start {
		c, size := utf8.DecodeLastRuneInString(text[r.Start:r.End])
		if isLetter(c) {
			break
		}
		r.End -= size
	}
	return r
}

// safeDetect invokes a detector, converting a panic into a result that
// excludes the entire text.
func safeDetect(d RegionDetector, text string) (ranges []document.Range) {
	defer func() {
		if rec := recover(); rec != nil {
			ranges = []document.Range{{Start: 0, End: len(text)}}
		}
	}()
	for _, r := range d(text) {
		r = r.Clamp(len(text))
		if !r.IsEmpty() {
			ranges = append(ranges, r)
		}
	}
	return ranges
}
