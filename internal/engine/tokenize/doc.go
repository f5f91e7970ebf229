// Package tokenize splits document text into word-shaped tokens for
// spell checking. A word is a maximal run of letters, apostrophes, and
// hyphens; internal apostrophes and hyphens are retained ("don't",
// "well-known") while leading and trailing punctuation is stripped.
//
// Tokenization is lazy and deterministic: a Tokenizer walks the text on
// demand, holds no state between runs, and produces identical output
// for identical input and exclusion ranges. Excluded regions (code
// spans, URLs, anything the caller's detector reports) emit no tokens.
//
// The package also owns the normalization policy used for dictionary
// lookups: Unicode case folding with diacritics preserved. The original
// spelling is kept on the token so consumers can present it unchanged.
package tokenize
