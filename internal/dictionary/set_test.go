package dictionary

import (
	"testing"
)

func testSet(t *testing.T) *Set {
	t.Helper()
	return BuildSet("en-US", []string{
		"hello", "world", "good", "bye", "help", "hold",
		"spell", "spill", "well", "known",
	})
}

func TestSetContains(t *testing.T) {
	s := testSet(t)

	if !s.Contains("hello") {
		t.Error("expected 'hello' in set")
	}

	if s.Contains("helo") {
		t.Error("'helo' should not be in set")
	}

	// Words are normalized at build time.
	upper := BuildSet("en-US", []string{"Hello", "WORLD"})
	if !upper.Contains("hello") || !upper.Contains("world") {
		t.Error("build must normalize words for lookup")
	}
}

func TestSetLang(t *testing.T) {
	s := testSet(t)
	if s.Lang() != "en-US" {
		t.Errorf("expected en-US, got %s", s.Lang())
	}
}

func TestSuggestKnownWord(t *testing.T) {
	s := testSet(t)

	got := s.Suggest("hello", 5)
	if len(got) != 1 || got[0] != "hello" {
		t.Errorf("known word should suggest only itself, got %v", got)
	}
}

func TestSuggestMisspellings(t *testing.T) {
	s := testSet(t)

	tests := []struct {
		word string
		want string // expected best suggestion
	}{
		{"helo", "hello"},
		{"wrold", "world"},
		{"godo", "good"},
		{"spel", "spell"},
	}

	for _, tt := range tests {
		got := s.Suggest(tt.word, 5)
		if len(got) == 0 {
			t.Errorf("Suggest(%q) returned nothing", tt.word)
			continue
		}
		if got[0] != tt.want {
			t.Errorf("Suggest(%q) best = %q, want %q (all: %v)", tt.word, got[0], tt.want, got)
		}
	}
}

func TestSuggestLimit(t *testing.T) {
	s := testSet(t)

	if got := s.Suggest("hel", 1); len(got) > 1 {
		t.Errorf("limit 1 exceeded: %v", got)
	}

	if got := s.Suggest("hel", 0); got != nil {
		t.Errorf("limit 0 should return nothing, got %v", got)
	}
}

func TestSuggestDeterministic(t *testing.T) {
	s := testSet(t)

	a := s.Suggest("spll", 10)
	b := s.Suggest("spll", 10)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("suggestion order must be deterministic: %v vs %v", a, b)
		}
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "xy", 2},
		{"kitten", "sitting", 3},
		{"helo", "hello", 1},
		{"wrold", "world", 1}, // adjacent swap is one edit
		{"wehat", "wheat", 1},
		{"ab", "ba", 1},
		{"wrold", "hold", 2},
	}

	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSuggestRanksTranspositionFirst(t *testing.T) {
	s := testSet(t)

	// "wrold" is one swap away from "world" but two edits from "hold";
	// the swap must win even though "hold" sorts earlier.
	got := s.Suggest("wrold", 5)
	if len(got) == 0 || got[0] != "world" {
		t.Errorf("Suggest(%q) best = %v, want world first", "wrold", got)
	}
}

func TestSuggestShortWords(t *testing.T) {
	s := BuildSet("en-US", []string{"at", "an", "i"})

	got := s.Suggest("ats", 5)
	found := false
	for _, w := range got {
		if w == "at" {
			found = true
		}
	}
	if !found {
		t.Errorf("Suggest(%q) = %v, want to include 'at'", "ats", got)
	}
}

func TestEdits1(t *testing.T) {
	got := edits1("abc")
	want := map[string]bool{"bc": true, "ac": true, "ab": true}
	if len(got) != 3 {
		t.Fatalf("expected 3 edits, got %v", got)
	}
	for _, e := range got {
		if !want[e] {
			t.Errorf("unexpected edit %q", e)
		}
	}
}

func TestMatchCase(t *testing.T) {
	tests := []struct {
		orig, sugg, want string
	}{
		{"Helo", "hello", "Hello"},
		{"HELO", "hello", "HELLO"},
		{"helo", "hello", "hello"},
		{"", "hello", "hello"},
		{"Über", "uber", "Uber"}, // multi-byte title case
		{"Äpfel", "äpfel", "Äpfel"},
		{"über", "uber", "uber"},
	}

	for _, tt := range tests {
		if got := MatchCase(tt.orig, tt.sugg); got != tt.want {
			t.Errorf("MatchCase(%q, %q) = %q, want %q", tt.orig, tt.sugg, got, tt.want)
		}
	}
}
