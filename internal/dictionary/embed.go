package dictionary

import (
	"embed"
	"io/fs"
)

//go:embed data
var embedded embed.FS

// DefaultSource returns a source over the word lists compiled into the
// binary. It always carries at least en-US.
func DefaultSource() (*FSSource, error) {
	fsys, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return NewFSSource(fsys)
}
