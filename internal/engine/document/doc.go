// Package document provides the text model checked by the spell engine.
// A Document holds mutable UTF-8 text owned by a host editor, along with
// a monotonically increasing version counter that advances on every edit.
//
// The document package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Byte-offset ranges and edit descriptions matching host editor
//     change events (start offset, end offset, inserted text)
//   - Read-only snapshots for concurrent scanning
//   - Version tracking so stale scan results can be detected
//
// Basic usage:
//
//	doc := document.NewFromString("Helo wrold")
//
//	// Apply an edit reported by the host editor
//	res, err := doc.ApplyEdit(document.NewInsert(3, "l"))
//
//	// Get a snapshot for a concurrent scan
//	snap := doc.Snapshot()
//	go func() {
//	    text := snap.Text()
//	    // Tokenize and check text...
//	}()
//
// Thread Safety:
//
// All Document methods are thread-safe. Snapshots share the underlying
// immutable string and are safe for any number of concurrent readers.
package document
