package tokenize

import (
	"reflect"
	"testing"

	"github.com/dshills/spellstorm/internal/engine/document"
)

func words(toks []Token) []string {
	var out []string
	for _, t := range toks {
		out = append(out, t.Raw)
	}
	return out
}

func TestTokensBasic(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "Helo wrold", []string{"Helo", "wrold"}},
		{"punctuation", "Hello, world! Yes?", []string{"Hello", "world", "Yes"}},
		{"apostrophe kept", "don't stop", []string{"don't", "stop"}},
		{"hyphen kept", "a well-known fact", []string{"a", "well-known", "fact"}},
		{"leading trailing stripped", "'quoted' --dashed--", []string{"quoted", "dashed"}},
		{"numerals skipped", "call 911 now", []string{"call", "now"}},
		{"bare punctuation runs", "-- '' ---", nil},
		{"empty", "", nil},
		{"whitespace only", "  \t\n ", nil},
		{"unicode words", "straße café naïve", []string{"straße", "café", "naïve"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := words(Tokens(tt.text))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokens(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenOffsets(t *testing.T) {
	toks := Tokens("Helo wrold")
	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(toks))
	}

	if toks[0].Range != document.NewRange(0, 4) {
		t.Errorf("expected [0:4), got %v", toks[0].Range)
	}

	if toks[1].Range != document.NewRange(5, 10) {
		t.Errorf("expected [5:10), got %v", toks[1].Range)
	}
}

func TestTokenOffsetsAfterTrim(t *testing.T) {
	toks := Tokens("'hello'")
	if len(toks) != 1 {
		t.Fatalf("expected 1 token, got %d", len(toks))
	}
	if toks[0].Range != document.NewRange(1, 6) {
		t.Errorf("expected [1:6), got %v", toks[0].Range)
	}
	if toks[0].Raw != "hello" {
		t.Errorf("expected 'hello', got %q", toks[0].Raw)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello", "hello"},
		{"WORLD", "world"},
		{"Straße", "strasse"},
		{"Café", "café"}, // diacritics preserved
		{"don't", "don't"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenNormalized(t *testing.T) {
	toks := Tokens("Helo Wrold")
	if toks[0].Normalized != "helo" {
		t.Errorf("expected 'helo', got %q", toks[0].Normalized)
	}
	if toks[0].Raw != "Helo" {
		t.Errorf("raw spelling must be preserved, got %q", toks[0].Raw)
	}
}

func TestMinWordLength(t *testing.T) {
	got := words(Tokens("I am a spellchecker", WithMinWordLength(3)))
	want := []string{"spellchecker"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRangeRestriction(t *testing.T) {
	text := "one two three four"
	got := words(Tokens(text, WithRange(4, 13)))
	want := []string{"two", "three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExclusions(t *testing.T) {
	text := "good `bdwrd` fine"
	got := words(Tokens(text, WithExclusions([]document.Range{{Start: 5, End: 12}})))
	want := []string{"good", "fine"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExclusionOverlapSuppresses(t *testing.T) {
	// Exclusion covering only part of a token still suppresses it.
	text := "hello world"
	got := words(Tokens(text, WithExclusions([]document.Range{{Start: 2, End: 3}})))
	want := []string{"world"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDetector(t *testing.T) {
	det := func(text string) []document.Range {
		return []document.Range{{Start: 0, End: 5}}
	}
	got := words(Tokens("xxxxx hello", WithDetector(det)))
	want := []string{"hello"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDetectorPanicExcludesAll(t *testing.T) {
	det := func(text string) []document.Range {
		panic("broken detector")
	}
	if got := Tokens("hello world", WithDetector(det)); got != nil {
		t.Errorf("expected no tokens when detector panics, got %v", got)
	}
}

func TestDeterminism(t *testing.T) {
	text := "The quick-brown fox didn't jump. 42 times же straße!"
	a := Tokens(text)
	b := Tokens(text)
	if !reflect.DeepEqual(a, b) {
		t.Error("tokenizer output must be identical across runs")
	}

	tk := New(text)
	var c []Token
	for {
		tok, ok := tk.Next()
		if !ok {
			break
		}
		c = append(c, tok)
	}
	tk.Reset()
	var d []Token
	for {
		tok, ok := tk.Next()
		if !ok {
			break
		}
		d = append(d, tok)
	}
	if !reflect.DeepEqual(c, d) {
		t.Error("Reset must restart an identical run")
	}
}
