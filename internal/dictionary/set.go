package dictionary

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/spellstorm/internal/engine/tokenize"
)

// suggestDepth is the deletion-edit depth used for the suggestion
// index. Deeper than 2 inflates the index without improving results.
const suggestDepth = 2

// Set is an immutable dictionary for one language. Once built it is
// never mutated, so any number of goroutines may query it without
// locking.
type Set struct {
	lang    string
	words   Dict
	suggest map[string][]string
}

// BuildSet constructs a Set from a word list. Words are normalized for
// lookup; the suggestion index is precomputed here, which is the
// expensive part of dictionary loading.
func BuildSet(lang string, words []string) *Set {
	s := &Set{
		lang:    lang,
		words:   make(Dict, len(words)),
		suggest: make(map[string][]string),
	}
	for _, w := range words {
		norm := tokenize.Normalize(w)
		if norm == "" || s.words.Exists(norm) {
			continue
		}
		s.words.Add(norm)
		s.indexWord(norm)
	}
	return s
}

// Lang returns the language code this set was built for.
func (s *Set) Lang() string {
	return s.lang
}

// Len returns the number of words in the set.
func (s *Set) Len() int {
	return s.words.Len()
}

// Contains returns true if the normalized word is in the set.
func (s *Set) Contains(word string) bool {
	return s.words.Exists(word)
}

// indexWord records the deletion-edit keys for a word so that close
// misspellings can find it.
func (s *Set) indexWord(word string) {
	for _, edit := range editsMulti(word, suggestDepth) {
		if len(edit) <= 1 {
			continue
		}
		known := false
		for _, hit := range s.suggest[edit] {
			if hit == word {
				known = true
				break
			}
		}
		if !known {
			s.suggest[edit] = append(s.suggest[edit], word)
		}
	}
}

// Suggest returns up to limit candidate corrections for a normalized
// word, ordered best first. If the word is in the set it is the only
// candidate.
func (s *Set) Suggest(word string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	if s.words.Exists(word) {
		return []string{word}
	}

	seen := make(Dict)
	var candidates []string
	add := func(w string) {
		if !seen.Exists(w) {
			seen.Add(w)
			candidates = append(candidates, w)
		}
	}

	// Direct suggest-key hit: the input is a deletion edit of a
	// dictionary word.
	for _, hit := range s.suggest[word] {
		add(hit)
	}

	// Deletion edits of the input that are themselves dictionary
	// words (insertions in the input).
	edits := editsMulti(word, suggestDepth)
	for _, edit := range edits {
		if edit != "" && s.words.Exists(edit) {
			add(edit)
		}
	}

	// Transposes and replaces: edits of the input matching suggest
	// keys. These need distance vetting before acceptance.
	for _, edit := range edits {
		for _, hit := range s.suggest[edit] {
			if editDistance(word, hit) <= suggestDepth+1 {
				add(hit)
			}
		}
	}

	rankCandidates(word, candidates)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// rankCandidates orders candidates by edit distance, breaking ties
// lexicographically so output is deterministic.
func rankCandidates(word string, candidates []string) {
	dist := make(map[string]int, len(candidates))
	for _, c := range candidates {
		dist[c] = editDistance(word, c)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := dist[candidates[i]], dist[candidates[j]]
		if di != dj {
			return di < dj
		}
		return candidates[i] < candidates[j]
	})
}

// edits1 returns every string obtainable by deleting one byte from the
// word.
func edits1(word string) []string {
	out := make([]string, 0, len(word))
	for i := 0; i < len(word); i++ {
		out = append(out, word[:i]+word[i+1:])
	}
	return out
}

// editsMulti returns deletion edits of the word up to the given depth.
func editsMulti(word string, depth int) []string {
	edits := edits1(word)
	frontier := edits
	for d := 1; d < depth; d++ {
		var next []string
		for _, e := range frontier {
			next = append(next, edits1(e)...)
		}
		edits = append(edits, next...)
		frontier = next
	}
	return edits
}

// editDistance computes the optimal string alignment distance between
// two strings. An adjacent transposition counts as a single edit, so
// swap typos like "wrold" rank ahead of unrelated words at the same
// Levenshtein distance.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev2 := make([]int, la+1)
	prev := make([]int, la+1)
	cur := make([]int, la+1)
	for i := 0; i <= la; i++ {
		prev[i] = i
	}
	for j := 1; j <= lb; j++ {
		cur[0] = j
		for i := 1; i <= la; i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			cur[i] = minOf(prev[i]+1, cur[i-1]+1, prev[i-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if t := prev2[i-2] + 1; t < cur[i] {
					cur[i] = t
				}
			}
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[la]
}

func minOf(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// MatchCase maps a suggestion onto the casing pattern of the original
// word: all-caps originals get all-caps suggestions, title-case
// originals get title-case suggestions.
func MatchCase(original, suggestion string) string {
	if original == "" || suggestion == "" {
		return suggestion
	}
	if original == strings.ToUpper(original) && strings.ToLower(original) != original {
		return strings.ToUpper(suggestion)
	}
	if first, _ := utf8.DecodeRuneInString(original); unicode.IsUpper(first) {
		r, size := utf8.DecodeRuneInString(suggestion)
		return string(unicode.ToUpper(r)) + suggestion[size:]
	}
	return suggestion
}
