package spell

import (
	"fmt"
	"sort"

	"github.com/dshills/spellstorm/internal/engine/document"
)

// Span is a flagged text range: a token currently judged misspelled by
// every active resolution layer. The engine owns the full collection
// for a document; consumers never mutate it.
type Span struct {
	// Range is the half-open byte range of the word in the document.
	Range document.Range

	// Word is the text exactly as it appears in the document.
	Word string
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("%q%s", s.Word, s.Range.String())
}

// Delta is the minimal change between two span sets. Removed spans are
// reported with the coordinates they were originally emitted at; added
// spans use current document coordinates.
type Delta struct {
	Added   []Span
	Removed []Span
}

// IsEmpty reports whether the delta carries no changes.
func (d Delta) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// merge appends another delta's changes.
func (d Delta) merge(other Delta) Delta {
	d.Added = append(d.Added, other.Added...)
	d.Removed = append(d.Removed, other.Removed...)
	return d
}

// sortSpans orders spans by position.
func sortSpans(spans []Span) {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Range.Start != spans[j].Range.Start {
			return spans[i].Range.Start < spans[j].Range.Start
		}
		return spans[i].Range.End < spans[j].Range.End
	})
}

// diffSpans computes the delta from old to new, matching spans by
// exact position and word.
func diffSpans(old, new []Span) Delta {
	oldSet := make(map[Span]struct{}, len(old))
	for _, s := range old {
		oldSet[s] = struct{}{}
	}
	newSet := make(map[Span]struct{}, len(new))
	for _, s := range new {
		newSet[s] = struct{}{}
	}

	var d Delta
	for _, s := range old {
		if _, ok := newSet[s]; !ok {
			d.Removed = append(d.Removed, s)
		}
	}
	for _, s := range new {
		if _, ok := oldSet[s]; !ok {
			d.Added = append(d.Added, s)
		}
	}
	return d
}
