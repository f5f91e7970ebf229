package dictionary

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source supplies word lists by language code.
type Source interface {
	// Words returns the word list for a language, or
	// ErrUnknownLanguage if the source does not carry it.
	Words(ctx context.Context, lang string) ([]string, error)

	// Languages returns the language codes this source carries.
	Languages() []string
}

// StaticSource serves word lists from memory. Used by tests and by
// hosts that manage their own dictionary storage.
type StaticSource map[string][]string

// Words implements Source.
func (s StaticSource) Words(_ context.Context, lang string) ([]string, error) {
	words, ok := s[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}
	return words, nil
}

// Languages implements Source.
func (s StaticSource) Languages() []string {
	out := make([]string, 0, len(s))
	for lang := range s {
		out = append(out, lang)
	}
	return out
}

// FSSource serves word lists from an fs.FS described by a manifest
// file (languages.yaml) in its root.
type FSSource struct {
	fsys     fs.FS
	manifest *Manifest
}

// NewFSSource opens the manifest in fsys and returns a source over it.
func NewFSSource(fsys fs.FS) (*FSSource, error) {
	m, err := OpenManifestFS(fsys, ManifestName)
	if err != nil {
		return nil, err
	}
	return &FSSource{fsys: fsys, manifest: m}, nil
}

// Words implements Source.
func (s *FSSource) Words(ctx context.Context, lang string) ([]string, error) {
	entry, ok := s.manifest.Lookup(lang)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return OpenWordFS(s.fsys, entry.File)
}

// Languages implements Source.
func (s *FSSource) Languages() []string {
	return s.manifest.Languages()
}

// DirSource serves word lists from a directory on disk. If the
// directory contains a manifest it is honored; otherwise the source
// falls back to <lang>.txt file naming.
type DirSource struct {
	dir      string
	manifest *Manifest
}

// NewDirSource creates a source over a dictionary directory.
func NewDirSource(dir string) *DirSource {
	m, err := OpenManifest(filepath.Join(dir, ManifestName))
	if err != nil {
		m = nil // fall back to <lang>.txt naming
	}
	return &DirSource{dir: dir, manifest: m}
}

// Words implements Source.
func (s *DirSource) Words(ctx context.Context, lang string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.manifest != nil {
		entry, ok := s.manifest.Lookup(lang)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
		}
		return OpenWordFile(filepath.Join(s.dir, entry.File))
	}
	name := lang + ".txt"
	if _, err := os.Stat(filepath.Join(s.dir, name)); err != nil {
		want := NormalizeLang(lang)
		for _, have := range s.Languages() {
			if NormalizeLang(have) == want {
				name = have + ".txt"
				break
			}
		}
	}
	return OpenWordFile(filepath.Join(s.dir, name))
}

// Languages implements Source.
func (s *DirSource) Languages() []string {
	if s.manifest != nil {
		return s.manifest.Languages()
	}
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.txt"))
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		base := filepath.Base(m)
		out = append(out, base[:len(base)-len(".txt")])
	}
	return out
}
