// Package exclude provides stock excluded-region detectors for the
// tokenizer: inline code, fenced code blocks, URLs and link targets,
// and a Lua-scripted detector for host-defined syntaxes.
//
// The tokenizer itself hard-codes no markup knowledge; hosts pick the
// detectors matching their document type and pass the composite to the
// engine. Detectors return byte ranges that must emit no tokens.
package exclude
