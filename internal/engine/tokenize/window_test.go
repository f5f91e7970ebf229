package tokenize

import (
	"testing"

	"github.com/dshills/spellstorm/internal/engine/document"
)

func TestWindow(t *testing.T) {
	//      0123456789012345678
	text := "one two three four"

	tests := []struct {
		name string
		in   document.Range
		want document.Range
	}{
		{
			name: "inside one token pads a token each side",
			in:   document.NewRange(9, 10), // inside "three"
			want: document.NewRange(4, 18), // "two three four"
		},
		{
			name: "at text start",
			in:   document.NewRange(1, 2), // inside "one"
			want: document.NewRange(0, 7), // "one two"
		},
		{
			name: "at text end",
			in:   document.NewRange(15, 16), // inside "four"
			want: document.NewRange(8, 18),  // "three four"
		},
		{
			name: "in a gap pads the touching tokens plus one",
			in:   document.NewRange(7, 8),  // the space between two/three
			want: document.NewRange(0, 18), // touches "two" and "three"
		},
		{
			name: "zero-length at token boundary",
			in:   document.NewRange(4, 4),  // just before "two"
			want: document.NewRange(0, 13), // "one two three"
		},
		{
			name: "whole text",
			in:   document.NewRange(0, 18),
			want: document.NewRange(0, 18),
		},
		{
			name: "out of bounds clamped",
			in:   document.NewRange(-5, 100),
			want: document.NewRange(0, 18),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Window(text, tt.in); got != tt.want {
				t.Errorf("Window(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWindowEmptyText(t *testing.T) {
	if got := Window("", document.NewRange(0, 0)); got != document.NewRange(0, 0) {
		t.Errorf("expected empty window, got %v", got)
	}
}

func TestWindowMergedWord(t *testing.T) {
	// After deleting the space in "good bye" the window around the
	// edit point must cover the merged "goodbye" token whole.
	text := "say goodbye now"
	got := Window(text, document.NewRange(8, 8))
	if got.Start > 4 || got.End < 11 {
		t.Errorf("window %v does not cover merged token [4:11)", got)
	}
}
