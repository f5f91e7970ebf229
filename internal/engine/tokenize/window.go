package tokenize

import (
	"unicode/utf8"

	"github.com/dshills/spellstorm/internal/engine/document"
)

// Window expands a byte range outward to whole-token boundaries padded
// by one extra token on each side. The spell engine re-tokenizes only
// this window after an edit; the padding re-merges words that the edit
// split or joined.
func Window(text string, r document.Range) document.Range {
	r = r.Clamp(len(text))

	start := r.Start
	start = backwardOverWord(text, start)
	// One token of padding: step over the gap, then over the
	// previous token.
	if prev := backwardOverGap(text, start); prev < start {
		start = backwardOverWord(text, prev)
	}

	end := r.End
	end = forwardOverWord(text, end)
	if next := forwardOverGap(text, end); next > end {
		end = forwardOverWord(text, next)
	}

	return document.Range{Start: start, End: end}
}

// backwardOverWord moves pos back to the start of the word run it is
// inside (or touching on the right). Returns pos unchanged when the
// preceding rune is not a word rune.
func backwardOverWord(text string, pos document.ByteOffset) document.ByteOffset {
	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:pos])
		if size == 0 || !isWordRune(r) {
			break
		}
		pos -= size
	}
	return pos
}

// backwardOverGap moves pos back over non-word runes.
func backwardOverGap(text string, pos document.ByteOffset) document.ByteOffset {
	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:pos])
		if size == 0 || isWordRune(r) {
			break
		}
		pos -= size
	}
	return pos
}

// forwardOverWord moves pos forward to the end of the word run it is
// inside (or touching on the left).
func forwardOverWord(text string, pos document.ByteOffset) document.ByteOffset {
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if size == 0 || !isWordRune(r) {
			break
		}
		pos += size
	}
	return pos
}

// forwardOverGap moves pos forward over non-word runes.
func forwardOverGap(text string, pos document.ByteOffset) document.ByteOffset {
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if size == 0 || isWordRune(r) {
			break
		}
		pos += size
	}
	return pos
}
