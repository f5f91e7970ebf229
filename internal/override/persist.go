package override

import (
	"os"
	"path/filepath"

	"github.com/dshills/spellstorm/internal/dictionary"
)

// Persister stores the custom dictionary across sessions.
// The on-disk format is the persister's concern, not the store's.
type Persister interface {
	// Load returns the persisted words. A missing backing store is
	// not an error; it returns an empty list.
	Load() ([]string, error)

	// Save replaces the persisted words.
	Save(words []string) error
}

// FilePersister stores the custom dictionary as a plain word-per-line
// file, written atomically via a temp file and rename.
type FilePersister struct {
	path string
}

// NewFilePersister creates a persister backed by the given file path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Path returns the backing file path.
func (p *FilePersister) Path() string {
	return p.path
}

// Load implements Persister.
func (p *FilePersister) Load() ([]string, error) {
	words, err := dictionary.OpenWordFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &PersistError{Op: "load", Err: err}
	}
	return words, nil
}

// Save implements Persister.
func (p *FilePersister) Save(words []string) error {
	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistError{Op: "save", Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(p.path)+".tmp*")
	if err != nil {
		return &PersistError{Op: "save", Err: err}
	}
	tmpName := tmp.Name()

	if err := dictionary.WriteWords(tmp, words); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistError{Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &PersistError{Op: "save", Err: err}
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		os.Remove(tmpName)
		return &PersistError{Op: "save", Err: err}
	}
	return nil
}

// NullPersister discards writes and loads nothing. Used when no
// custom-dictionary path is configured.
type NullPersister struct{}

// Load implements Persister.
func (NullPersister) Load() ([]string, error) { return nil, nil }

// Save implements Persister.
func (NullPersister) Save([]string) error { return nil }
