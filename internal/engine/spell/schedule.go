package spell

import (
	"context"
	"time"

	"github.com/dshills/spellstorm/internal/engine/document"
	"github.com/dshills/spellstorm/internal/event"
)

// ScheduleEdit applies an edit to the document and arms (or re-arms)
// the debounced recheck. Rapid edits coalesce: each new edit merges
// its changed range into the single pending slot and resets the timer
// rather than stacking a second recheck. The recheck runs after the
// debounce interval elapses with no further edits and publishes its
// delta on the event bus.
//
// A recheck already in flight when a new edit arrives is cancelled by
// the generation counter: its result is discarded and the re-armed
// timer covers the union of the stale and new windows.
func (e *Engine) ScheduleEdit(id DocumentID, edit document.Edit) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	c, ok := e.docs[id]
	if !ok {
		return ErrUnknownDocument
	}
	if c.state == StateClosed {
		return ErrDocumentClosed
	}
	if edit.IsNoOp() {
		return nil
	}

	res, err := c.doc.ApplyEdit(edit)
	if err != nil {
		return err
	}
	c.gen++

	if c.sched.armed {
		c.sched.window = mapRange(c.sched.window, res).Union(res.NewRange)
	} else {
		c.sched.window = res.NewRange
		c.sched.armed = true
	}
	c.sched.edits = append(c.sched.edits, res)

	if c.sched.timer == nil {
		c.sched.timer = time.AfterFunc(e.debounce, func() { e.runScheduled(id) })
	} else {
		c.sched.timer.Reset(e.debounce)
	}
	return nil
}

// runScheduled fires when the debounce timer elapses. It runs the
// incremental recheck over the merged window; if an edit arrives
// mid-compute the generation check discards the result, and the reset
// timer reruns with the union window.
func (e *Engine) runScheduled(id DocumentID) {
	e.mu.Lock()
	c, ok := e.docs[id]
	if !ok || e.closed || c.state == StateClosed || !c.sched.armed {
		e.mu.Unlock()
		return
	}

	if c.state == StateUninitialized {
		_, _, _ = e.fullScanLocked(context.Background(), c)
		e.mu.Unlock()
		return
	}

	gen := c.gen
	window := c.sched.window
	edits := c.sched.edits
	old := &checker{spans: c.spans, unresolved: c.unresolved}
	snap := c.doc.Snapshot()
	e.setState(c, StateScanning)
	e.mu.Unlock()

	d, spans, unresolved, err := e.incremental(context.Background(), old, snap.Text(), window, edits)

	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok = e.docs[id]
	if !ok || c.state == StateClosed {
		return
	}
	if c.gen != gen {
		// A newer edit arrived; its timer covers the merged window.
		return
	}
	if err != nil {
		c.sched.armed = false
		c.sched.edits = nil
		d = e.settleUnresolved(c)
		e.setState(c, StateSettled)
		if !d.IsEmpty() {
			e.publish(event.TopicSpansChanged, ChangePayload{
				ID:      c.id,
				Version: c.doc.Version(),
				Delta:   d,
			})
		}
		return
	}

	c.sched.armed = false
	c.sched.edits = nil
	c.spans = spans
	c.unresolved = unresolved
	// A dictionary load that completed while the compute was running
	// skipped this document (it was not settled); settle the carried
	// unresolved tokens against the now-current dictionaries.
	d = d.merge(e.settleUnresolved(c))
	e.setState(c, StateSettled)
	if !d.IsEmpty() {
		e.publish(event.TopicSpansChanged, ChangePayload{
			ID:      c.id,
			Version: c.doc.Version(),
			Delta:   d,
		})
	}
}

// cancelScheduled clears the pending slot. Caller holds e.mu.
func (e *Engine) cancelScheduled(c *checker) {
	if c.sched.timer != nil {
		c.sched.timer.Stop()
	}
	c.sched.armed = false
	c.sched.edits = nil
}
