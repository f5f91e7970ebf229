package spell

import (
	"context"

	"github.com/dshills/spellstorm/internal/dictionary"
	"github.com/dshills/spellstorm/internal/engine/document"
	"github.com/dshills/spellstorm/internal/engine/tokenize"
	"github.com/dshills/spellstorm/internal/event"
)

// ctxCheckInterval is how many tokens a scan processes between
// cancellation checks.
const ctxCheckInterval = 256

// FullScan tokenizes the whole document, resolves every token, and
// replaces the span set. It returns the full set of misspelled spans.
// Used on initial load and after language-set changes.
func (e *Engine) FullScan(ctx context.Context, id DocumentID) ([]Span, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrEngineClosed
	}
	c, ok := e.docs[id]
	if !ok {
		return nil, ErrUnknownDocument
	}
	if c.state == StateClosed {
		return nil, ErrDocumentClosed
	}
	_, spans, err := e.fullScanLocked(ctx, c)
	return spans, err
}

// SetText replaces the whole document text and rescans it, returning
// the delta against the previous span set. Used by hosts that reload a
// file from disk rather than tracking individual edits.
func (e *Engine) SetText(ctx context.Context, id DocumentID, text string) (Delta, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return Delta{}, ErrEngineClosed
	}
	c, ok := e.docs[id]
	if !ok {
		return Delta{}, ErrUnknownDocument
	}
	if c.state == StateClosed {
		return Delta{}, ErrDocumentClosed
	}
	if _, err := c.doc.SetText(text); err != nil {
		return Delta{}, err
	}
	d, _, err := e.fullScanLocked(ctx, c)
	return d, err
}

// fullScanLocked rescans a document and commits the result. A pending
// scheduled recheck is cancelled since the full scan supersedes it.
// On scan failure the last good span set stays in place. Caller holds
// e.mu.
func (e *Engine) fullScanLocked(ctx context.Context, c *checker) (Delta, []Span, error) {
	e.cancelScheduled(c)
	c.gen++
	prev := c.state
	e.setState(c, StateScanning)

	text := c.doc.Text()
	spans, unresolved, err := e.scan(ctx, text, document.NewRange(0, len(text)))
	if err != nil {
		c.state = prev
		return Delta{}, nil, err
	}

	d := diffSpans(c.spans, spans)
	c.spans = spans
	c.unresolved = unresolved
	e.setState(c, StateSettled)
	if !d.IsEmpty() {
		e.publish(event.TopicSpansChanged, ChangePayload{
			ID:      c.id,
			Version: c.doc.Version(),
			Delta:   d,
		})
	}

	out := make([]Span, len(spans))
	copy(out, spans)
	return d, out, nil
}

// scan tokenizes text within bounds and resolves each token. Invalid
// tokens become spans; tokens whose dictionary is still loading are
// returned separately as unresolved.
func (e *Engine) scan(ctx context.Context, text string, bounds document.Range) (spans, unresolved []Span, err error) {
	tok := tokenize.New(text,
		tokenize.WithRange(bounds.Start, bounds.End),
		tokenize.WithMinWordLength(e.minWordLength),
		tokenize.WithDetector(e.detector),
	)

	n := 0
	for {
		t, ok := tok.Next()
		if !ok {
			return spans, unresolved, nil
		}
		if n++; n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}

		switch e.resolve(t.Normalized) {
		case dictionary.ResultValid:
		case dictionary.ResultUnresolved:
			unresolved = append(unresolved, Span{Range: t.Range, Word: t.Raw})
		default:
			spans = append(spans, Span{Range: t.Range, Word: t.Raw})
		}
	}
}

// OnEdit applies an edit to the document and incrementally updates the
// span set, re-tokenizing only a padded window around the changed
// range. Spans strictly outside the pre-edit window are carried over,
// offset-adjusted by the edit's length delta. The returned delta
// reports removed spans at their previously-emitted coordinates.
//
// A pending scheduled recheck is folded in: its merged window is
// rechecked together with this edit so no change goes unexamined.
//
// An uninitialized document gets a full scan instead, with the whole
// result reported as added.
func (e *Engine) OnEdit(ctx context.Context, id DocumentID, edit document.Edit) (Delta, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return Delta{}, ErrEngineClosed
	}
	c, ok := e.docs[id]
	if !ok {
		return Delta{}, ErrUnknownDocument
	}
	if c.state == StateClosed {
		return Delta{}, ErrDocumentClosed
	}

	// Cursor-move-only events change nothing.
	if edit.IsNoOp() && !c.sched.armed {
		return Delta{}, nil
	}

	var window document.Range
	var edits []document.EditResult
	if !edit.IsNoOp() {
		res, err := c.doc.ApplyEdit(edit)
		if err != nil {
			return Delta{}, err
		}
		window = res.NewRange
		edits = []document.EditResult{res}
	}

	if c.state == StateUninitialized {
		_, spans, err := e.fullScanLocked(ctx, c)
		if err != nil {
			return Delta{}, err
		}
		return Delta{Added: spans}, nil
	}

	// Fold in any pending scheduled window.
	if c.sched.armed {
		pending := c.sched.window
		for _, res := range edits {
			pending = mapRange(pending, res)
		}
		if len(edits) == 0 {
			window = pending
		} else {
			window = window.Union(pending)
		}
		edits = append(c.sched.edits, edits...)
		e.cancelScheduled(c)
	}

	c.gen++
	return e.recheckLocked(ctx, c, window, edits)
}

// recheckLocked runs the incremental path over a changed window and
// commits the result. Caller holds e.mu.
func (e *Engine) recheckLocked(ctx context.Context, c *checker, window document.Range, edits []document.EditResult) (Delta, error) {
	prev := c.state
	e.setState(c, StateScanning)
	text := c.doc.Text()

	d, spans, unresolved, err := e.incremental(ctx, c, text, window, edits)
	if err != nil {
		// Last good span set stays authoritative.
		c.state = prev
		return Delta{}, err
	}

	c.spans = spans
	c.unresolved = unresolved
	e.setState(c, StateSettled)
	if !d.IsEmpty() {
		e.publish(event.TopicSpansChanged, ChangePayload{
			ID:      c.id,
			Version: c.doc.Version(),
			Delta:   d,
		})
	}
	return d, nil
}

// incremental computes the post-edit span set without re-tokenizing
// the whole document.
//
// The window is the merged changed range in post-edit coordinates; it
// is padded to whole-token boundaries plus one token each side, so
// words split or joined by the edit re-merge correctly. Old spans are
// partitioned against the window translated back to pre-edit
// coordinates: spans strictly before it are untouched, spans strictly
// after shift by the total length delta, and spans intersecting it are
// re-derived from a fresh scan of the window. A dropped span that
// reappears at its mapped position is carried silently rather than
// reported as removed plus added.
func (e *Engine) incremental(ctx context.Context, c *checker, text string, window document.Range, edits []document.EditResult) (Delta, []Span, []Span, error) {
	window = tokenize.Window(text, window)

	totalDelta := 0
	for _, res := range edits {
		totalDelta += res.Delta
	}
	preWindow := document.NewRange(window.Start, window.End-totalDelta)

	keptSpans, droppedSpans := partition(c.spans, preWindow, totalDelta)
	keptUnres, _ := partition(c.unresolved, preWindow, totalDelta)

	fresh, freshUnres, err := e.scan(ctx, text, window)
	if err != nil {
		return Delta{}, nil, nil, err
	}

	freshSet := make(map[Span]struct{}, len(fresh))
	for _, s := range fresh {
		freshSet[s] = struct{}{}
	}

	var d Delta
	mapped := make(map[Span]struct{}, len(droppedSpans))
	for _, s := range droppedSpans {
		m := Span{Range: mapRangeAll(s.Range, edits), Word: s.Word}
		mapped[m] = struct{}{}
		if _, ok := freshSet[m]; !ok {
			d.Removed = append(d.Removed, s)
		}
	}
	for _, s := range fresh {
		if _, ok := mapped[s]; !ok {
			d.Added = append(d.Added, s)
		}
	}

	spans := append(keptSpans, fresh...)
	sortSpans(spans)
	unresolved := append(keptUnres, freshUnres...)
	sortSpans(unresolved)
	return d, spans, unresolved, nil
}

// partition splits spans around a pre-edit window: spans before it are
// kept as-is, spans after it are kept shifted by delta, and spans
// intersecting it are returned as dropped for re-derivation.
func partition(spans []Span, preWindow document.Range, delta document.ByteOffset) (kept, dropped []Span) {
	for _, s := range spans {
		switch {
		case s.Range.End <= preWindow.Start:
			kept = append(kept, s)
		case s.Range.Start >= preWindow.End:
			s.Range = s.Range.Shift(delta)
			kept = append(kept, s)
		default:
			dropped = append(dropped, s)
		}
	}
	return kept, dropped
}

// mapOffset translates a pre-edit offset through one edit. Offsets
// inside the replaced region clamp into the replacement.
func mapOffset(o document.ByteOffset, res document.EditResult) document.ByteOffset {
	switch {
	case o <= res.OldRange.Start:
		return o
	case o >= res.OldRange.End:
		return o + res.Delta
	default:
		n := o + res.Delta
		if n < res.NewRange.Start {
			n = res.NewRange.Start
		}
		if n > res.NewRange.End {
			n = res.NewRange.End
		}
		return n
	}
}

// mapRange translates a pre-edit range through one edit.
func mapRange(r document.Range, res document.EditResult) document.Range {
	out := document.NewRange(mapOffset(r.Start, res), mapOffset(r.End, res))
	if out.Start > out.End {
		out.End = out.Start
	}
	return out
}

// mapRangeAll translates a range through a sequence of edits, oldest
// first.
func mapRangeAll(r document.Range, edits []document.EditResult) document.Range {
	for _, res := range edits {
		r = mapRange(r, res)
	}
	return r
}
