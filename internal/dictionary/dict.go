package dictionary

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// Dict is a flat set of words keyed by normalized form.
type Dict map[string]struct{}

// NewDict creates a Dict containing the given words.
func NewDict(words ...string) Dict {
	d := make(Dict, len(words))
	for _, w := range words {
		d.Add(w)
	}
	return d
}

// Add inserts a word into the dictionary.
func (d Dict) Add(word string) {
	d[word] = struct{}{}
}

// Delete removes a word from the dictionary.
func (d Dict) Delete(word string) {
	delete(d, word)
}

// Exists returns true if the word is in the dictionary.
func (d Dict) Exists(word string) bool {
	_, ok := d[word]
	return ok
}

// Len returns the number of words.
func (d Dict) Len() int {
	return len(d)
}

// List returns all words in sorted order.
func (d Dict) List() []string {
	out := make([]string, 0, len(d))
	for w := range d {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Clone returns a copy of the dictionary.
func (d Dict) Clone() Dict {
	out := make(Dict, len(d))
	for w := range d {
		out[w] = struct{}{}
	}
	return out
}

// ReadWords reads a word list, one word per line. Blank lines and lines
// starting with '#' are skipped.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// OpenWordFile reads a word list from a file on disk.
func OpenWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWords(f)
}

// OpenWordFS reads a word list from a file in an fs.FS.
func OpenWordFS(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWords(f)
}

// WriteWords writes the words one per line in sorted order.
func WriteWords(w io.Writer, words []string) error {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.Strings(sorted)

	bw := bufio.NewWriter(w)
	for _, word := range sorted {
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
