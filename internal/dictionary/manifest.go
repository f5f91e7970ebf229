package dictionary

import (
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file name of the language manifest inside a
// dictionary directory.
const ManifestName = "languages.yaml"

// Manifest maps language codes to word-list files in a dictionary
// directory.
type Manifest struct {
	// Entries keyed by language code (e.g. "en-US").
	Entries map[string]ManifestEntry `yaml:"languages"`
}

// ManifestEntry describes one language's word list.
type ManifestEntry struct {
	// File is the word-list file name relative to the manifest.
	File string `yaml:"file"`

	// Name is the human-readable language name.
	Name string `yaml:"name,omitempty"`
}

// ParseManifest parses manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Entries == nil {
		m.Entries = make(map[string]ManifestEntry)
	}
	return &m, nil
}

// OpenManifest reads a manifest from a file on disk.
func OpenManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}

// OpenManifestFS reads a manifest from a file in an fs.FS.
func OpenManifestFS(fsys fs.FS, name string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}

// NormalizeLang canonicalizes a language code for comparison. Codes
// differ only in case and separator across sources ("en-US", "en_us",
// "EN-US" all name the same language), so comparisons fold case and
// treat "-" and "_" as equivalent.
func NormalizeLang(code string) string {
	return strings.ReplaceAll(strings.ToLower(code), "-", "_")
}

// Lookup returns the entry for a language code. Codes that differ from
// a manifest key only in case or separator still match.
func (m *Manifest) Lookup(lang string) (ManifestEntry, bool) {
	if e, ok := m.Entries[lang]; ok {
		return e, true
	}
	want := NormalizeLang(lang)
	for code, e := range m.Entries {
		if NormalizeLang(code) == want {
			return e, true
		}
	}
	return ManifestEntry{}, false
}

// Languages returns the manifest's language codes in sorted order.
func (m *Manifest) Languages() []string {
	out := make([]string, 0, len(m.Entries))
	for lang := range m.Entries {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}
