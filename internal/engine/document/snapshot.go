package document

// Snapshot is a read-only view of a document at a specific version.
// Snapshots share the underlying immutable string with the document,
// so creating one is cheap and reads require no locking.
type Snapshot struct {
	text    string
	version uint64
}

// NewSnapshot creates a snapshot from raw text at the given version.
// Used by tests and by callers that receive text directly from a host.
func NewSnapshot(text string, version uint64) *Snapshot {
	return &Snapshot{text: text, version: version}
}

// Text returns the full snapshot content.
func (s *Snapshot) Text() string {
	return s.text
}

// TextRange returns text in the given byte range.
// The range is clamped to the snapshot bounds.
func (s *Snapshot) TextRange(start, end ByteOffset) string {
	r := Range{Start: start, End: end}.Clamp(len(s.text))
	return s.text[r.Start:r.End]
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return len(s.text)
}

// Version returns the document version this snapshot was taken at.
func (s *Snapshot) Version() uint64 {
	return s.version
}
