// Package dictionary provides per-language word dictionaries for the
// spell engine: membership tests, suggestion generation, and a provider
// that activates languages on demand.
//
// A Set is an immutable dictionary for one language. It is built once
// from a word list and then shared freely: lookups take no locks. The
// suggestion index follows the deletion-edit scheme (depth 2) with
// Levenshtein ranking.
//
// The Provider tracks which languages are active. Activation loads and
// builds the Set asynchronously; until the build finishes the language
// counts as loading and words resolve as unresolved rather than
// misspelled, so a streaming dictionary never causes a flash of false
// positives. A failed load leaves the language inactive for the session
// until Retry is called explicitly.
//
// Lookup uses union semantics: a word is valid if any active language
// accepts it.
package dictionary
