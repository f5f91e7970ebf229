package dictionary

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const manifestYAML = `languages:
  en-US:
    file: en_us.txt
    name: English (US)
  de-DE:
    file: de_de.txt
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(manifestYAML))
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}

	if got := m.Languages(); !reflect.DeepEqual(got, []string{"de-DE", "en-US"}) {
		t.Errorf("Languages() = %v", got)
	}

	entry, ok := m.Lookup("en-US")
	if !ok {
		t.Fatal("expected en-US entry")
	}
	if entry.File != "en_us.txt" || entry.Name != "English (US)" {
		t.Errorf("unexpected entry %+v", entry)
	}

	if _, ok := m.Lookup("fr-FR"); ok {
		t.Error("fr-FR should not exist")
	}
}

func TestLookupNormalizesCodes(t *testing.T) {
	m, err := ParseManifest([]byte(manifestYAML))
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}

	// Config files and flags spell codes with underscores and in
	// lowercase; the manifest keys them as "en-US". All spellings must
	// resolve to the same entry.
	for _, lang := range []string{"en-US", "en_us", "en-us", "EN_US"} {
		entry, ok := m.Lookup(lang)
		if !ok {
			t.Errorf("Lookup(%q) found nothing", lang)
			continue
		}
		if entry.File != "en_us.txt" {
			t.Errorf("Lookup(%q) = %+v", lang, entry)
		}
	}

	if _, ok := m.Lookup("enus"); ok {
		t.Error("separators are equivalent, not removable")
	}
}

func TestNormalizeLang(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"en-US", "en_us"},
		{"en_us", "en_us"},
		{"DE", "de"},
		{"pt-BR", "pt_br"},
	}
	for _, tt := range tests {
		if got := NormalizeLang(tt.in); got != tt.want {
			t.Errorf("NormalizeLang(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDirSourceWithManifest(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, ManifestName), "languages:\n  en-US:\n    file: words.txt\n")
	writeTestFile(t, filepath.Join(dir, "words.txt"), "hello\nworld\n")

	src := NewDirSource(dir)
	words, err := src.Words(context.Background(), "en-US")
	if err != nil {
		t.Fatalf("Words failed: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"hello", "world"}) {
		t.Errorf("got %v", words)
	}

	if _, err := src.Words(context.Background(), "de-DE"); err == nil {
		t.Error("expected error for unlisted language")
	}

	// Underscore spelling of a manifest key resolves to the same file.
	words, err = src.Words(context.Background(), "en_us")
	if err != nil {
		t.Fatalf("Words(en_us) failed: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"hello", "world"}) {
		t.Errorf("got %v", words)
	}
}

func TestDirSourceFallbackNaming(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "en-US.txt"), "hello\n")

	src := NewDirSource(dir)
	words, err := src.Words(context.Background(), "en-US")
	if err != nil {
		t.Fatalf("Words failed: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"hello"}) {
		t.Errorf("got %v", words)
	}

	if got := src.Languages(); !reflect.DeepEqual(got, []string{"en-US"}) {
		t.Errorf("Languages() = %v", got)
	}

	// Normalized spelling still finds the file.
	words, err = src.Words(context.Background(), "en_us")
	if err != nil {
		t.Fatalf("Words(en_us) failed: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"hello"}) {
		t.Errorf("got %v", words)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
