// Package spell implements the spell-check engine: it orchestrates
// tokenization, dictionary lookup, and override resolution, and keeps
// the misspelled-span set for each open document correct as the
// document is edited.
//
// Invariant: at any settled state, a document's span set equals
// exactly the tokens whose normalized form is absent from every active
// dictionary, the ignored set, and the custom dictionary. Edits update
// the set incrementally (OnEdit, or ScheduleEdit for the debounced
// path) by re-tokenizing only a padded window around the change; the
// whole document is re-tokenized only by FullScan.
//
// Resolution precedence per word: custom dictionary, then ignored set,
// then the union of active language dictionaries. Words of a language
// still loading are unresolved: not flagged, and re-resolved with a
// follow-up delta once the load completes.
package spell
