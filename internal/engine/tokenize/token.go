package tokenize

import (
	"fmt"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/dshills/spellstorm/internal/engine/document"
)

// Token is a word-shaped substring with its position in the document.
// Tokens are ephemeral: they are recomputed on every check and never
// persisted.
type Token struct {
	// Range is the half-open byte range of the word in the text.
	Range document.Range

	// Raw is the word exactly as it appears in the text.
	Raw string

	// Normalized is the lookup form of the word: case-folded,
	// diacritics preserved.
	Normalized string
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%q%s", t.Raw, t.Range.String())
}

// Start returns the inclusive start offset of the token.
func (t Token) Start() document.ByteOffset {
	return t.Range.Start
}

// End returns the exclusive end offset of the token.
func (t Token) End() document.ByteOffset {
	return t.Range.End
}

// foldCaser implements the normalization policy: Unicode case folding.
// Folding handles cases ToLower misses (e.g. the final sigma and
// dotless i) and never strips diacritics.
var foldCaser = cases.Fold()

// Normalize returns the lookup-normalized form of a word.
// Dictionaries and override stores index words by this form so that
// case variants of a known word resolve the same way.
func Normalize(word string) string {
	return foldCaser.String(word)
}

// isWordRune reports whether r can appear inside a word run.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || r == '\'' || r == '-'
}

// isLetter reports whether r is alphabetic. A token must contain at
// least one letter to be a word; runs of bare apostrophes or hyphens
// are discarded.
func isLetter(r rune) bool {
	return unicode.IsLetter(r)
}
