package exclude

import (
	"regexp"
	"strings"

	"github.com/dshills/spellstorm/internal/engine/document"
	"github.com/dshills/spellstorm/internal/engine/tokenize"
)

var (
	inlineCodeRE = regexp.MustCompile("`[^`\n]*`")
	urlRE        = regexp.MustCompile(`\bhttps?://[^\s)\]>]+|\bwww\.[^\s)\]>]+`)
	linkTargetRE = regexp.MustCompile(`\]\(([^)\s]+)\)`)
)

// InlineCode detects single-backtick code spans.
func InlineCode(text string) []document.Range {
	return matchRanges(inlineCodeRE, text)
}

// FencedBlocks detects ``` fenced code blocks. An unterminated fence
// excludes everything to the end of the text.
func FencedBlocks(text string) []document.Range {
	var out []document.Range
	pos := 0
	for {
		open := strings.Index(text[pos:], "```")
		if open < 0 {
			return out
		}
		start := pos + open
		rest := start + 3
		closeIdx := strings.Index(text[rest:], "```")
		if closeIdx < 0 {
			return append(out, document.NewRange(start, len(text)))
		}
		end := rest + closeIdx + 3
		out = append(out, document.NewRange(start, end))
		pos = end
	}
}

// URLs detects bare URLs and markdown link targets. The link text in
// [text](target) is still checked; only the target is excluded.
func URLs(text string) []document.Range {
	out := matchRanges(urlRE, text)
	for _, m := range linkTargetRE.FindAllStringSubmatchIndex(text, -1) {
		// Group 1 is the target inside the parentheses.
		out = append(out, document.NewRange(m[2], m[3]))
	}
	return out
}

// Markdown combines the markdown detectors: inline code, fenced
// blocks, and URLs.
func Markdown(text string) []document.Range {
	return Composite(FencedBlocks, InlineCode, URLs)(text)
}

// Composite merges multiple detectors into one.
func Composite(detectors ...tokenize.RegionDetector) tokenize.RegionDetector {
	return func(text string) []document.Range {
		var out []document.Range
		for _, d := range detectors {
			out = append(out, d(text)...)
		}
		return out
	}
}

// None is a detector that excludes nothing.
func None(string) []document.Range {
	return nil
}

func matchRanges(re *regexp.Regexp, text string) []document.Range {
	var out []document.Range
	for _, m := range re.FindAllStringIndex(text, -1) {
		out = append(out, document.NewRange(m[0], m[1]))
	}
	return out
}
