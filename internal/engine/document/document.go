package document

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// Errors returned by document operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrClosed           = errors.New("document is closed")
)

// Document holds the text of one host-editor buffer together with a
// monotonically increasing version counter. The spell engine reads it
// through snapshots; the host editor mutates it through ApplyEdit.
// All methods are thread-safe.
type Document struct {
	mu      sync.RWMutex
	text    string
	version uint64
	closed  bool
}

// New creates a new empty document at version zero.
func New() *Document {
	return &Document{}
}

// NewFromString creates a document with initial content.
func NewFromString(s string) *Document {
	return &Document{text: s}
}

// NewFromReader creates a document from an io.Reader.
func NewFromReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Document{text: string(data)}, nil
}

// Text returns the full document content.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// TextRange returns text in the given byte range.
func (d *Document) TextRange(start, end ByteOffset) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if start < 0 || start > end || end > len(d.text) {
		return "", ErrRangeInvalid
	}
	return d.text[start:end], nil
}

// Len returns the total byte length of the document.
func (d *Document) Len() ByteOffset {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.text)
}

// Version returns the current document version.
func (d *Document) Version() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// IsEmpty returns true if the document has no content.
func (d *Document) IsEmpty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.text) == 0
}

// ApplyEdit applies a single edit and advances the version.
// Zero-length no-op edits do not advance the version.
func (d *Document) ApplyEdit(edit Edit) (EditResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return EditResult{}, ErrClosed
	}
	if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
		edit.Range.End > len(d.text) {
		return EditResult{}, ErrRangeInvalid
	}
	if edit.IsNoOp() {
		return EditResult{
			OldRange: edit.Range,
			NewRange: edit.Range,
			Version:  d.version,
		}, nil
	}

	oldText := d.text[edit.Range.Start:edit.Range.End]

	var b strings.Builder
	b.Grow(len(d.text) + edit.Delta())
	b.WriteString(d.text[:edit.Range.Start])
	b.WriteString(edit.NewText)
	b.WriteString(d.text[edit.Range.End:])
	d.text = b.String()
	d.version++

	return EditResult{
		OldRange: edit.Range,
		NewRange: edit.NewRange(),
		OldText:  oldText,
		Delta:    edit.Delta(),
		Version:  d.version,
	}, nil
}

// SetText replaces the whole document content, advancing the version.
// Used when the host reloads a file from disk.
func (d *Document) SetText(s string) (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, ErrClosed
	}
	d.text = s
	d.version++
	return d.version, nil
}

// Close marks the document closed. Further edits fail with ErrClosed.
// Reads remain valid so in-flight consumers can finish.
func (d *Document) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

// IsClosed returns true if the document has been closed.
func (d *Document) IsClosed() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.closed
}

// Snapshot returns a read-only snapshot of the current document state.
// Safe for concurrent access from other goroutines.
func (d *Document) Snapshot() *Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return &Snapshot{
		text:    d.text, // strings are immutable, safe to share
		version: d.version,
	}
}
