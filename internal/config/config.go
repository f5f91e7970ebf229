package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "SPELLSTORM_"

// Config holds the runtime configuration for the spell-check engine.
// Values are layered: built-in defaults, then an optional TOML file,
// then SPELLSTORM_* environment variables.
type Config struct {
	// ActiveLanguages are the language codes activated at startup.
	ActiveLanguages []string `toml:"active_languages"`

	// DebounceMs is the edit-settle delay before a re-check runs.
	DebounceMs int `toml:"debounce_ms"`

	// MinWordLength is the shortest token length that gets checked.
	MinWordLength int `toml:"min_word_length"`

	// MaxSuggestions caps the number of suggestions per misspelling.
	MaxSuggestions int `toml:"max_suggestions"`

	// DictionaryDir is a directory of word lists; empty means the
	// embedded dictionaries.
	DictionaryDir string `toml:"dictionary_dir"`

	// CustomDictionaryPath is where user-added words are persisted.
	// Empty disables persistence.
	CustomDictionaryPath string `toml:"custom_dictionary_path"`

	// IgnoreURLs skips URL-shaped regions during checking.
	IgnoreURLs bool `toml:"ignore_urls"`

	// IgnoreCodeBlocks skips fenced and inline code regions.
	IgnoreCodeBlocks bool `toml:"ignore_code_blocks"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ActiveLanguages:  []string{"en_us"},
		DebounceMs:       300,
		MinWordLength:    2,
		MaxSuggestions:   5,
		IgnoreURLs:       true,
		IgnoreCodeBlocks: true,
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped
// when path is empty or the file does not exist), and environment
// overrides, then validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, &ParseError{Path: path, Err: err}
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Debounce returns the debounce delay as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if len(c.ActiveLanguages) == 0 {
		return fmt.Errorf("%w: active_languages must not be empty", ErrInvalidValue)
	}
	for _, lang := range c.ActiveLanguages {
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("%w: blank language code", ErrInvalidValue)
		}
	}
	if c.DebounceMs < 0 {
		return fmt.Errorf("%w: debounce_ms must be >= 0, got %d", ErrInvalidValue, c.DebounceMs)
	}
	if c.MinWordLength < 1 {
		return fmt.Errorf("%w: min_word_length must be >= 1, got %d", ErrInvalidValue, c.MinWordLength)
	}
	if c.MaxSuggestions < 0 {
		return fmt.Errorf("%w: max_suggestions must be >= 0, got %d", ErrInvalidValue, c.MaxSuggestions)
	}
	return nil
}

// applyEnv overlays SPELLSTORM_* environment variables. Unparsable
// values are ignored; validation catches anything out of range.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvPrefix + "LANGUAGES"); ok {
		c.ActiveLanguages = splitList(v)
	}
	if v, ok := lookupInt(EnvPrefix + "DEBOUNCE_MS"); ok {
		c.DebounceMs = v
	}
	if v, ok := lookupInt(EnvPrefix + "MIN_WORD_LENGTH"); ok {
		c.MinWordLength = v
	}
	if v, ok := lookupInt(EnvPrefix + "MAX_SUGGESTIONS"); ok {
		c.MaxSuggestions = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "DICTIONARY_DIR"); ok {
		c.DictionaryDir = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "CUSTOM_DICT"); ok {
		c.CustomDictionaryPath = v
	}
	if v, ok := lookupBool(EnvPrefix + "IGNORE_URLS"); ok {
		c.IgnoreURLs = v
	}
	if v, ok := lookupBool(EnvPrefix + "IGNORE_CODE_BLOCKS"); ok {
		c.IgnoreCodeBlocks = v
	}
}

func lookupInt(name string) (int, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

func lookupBool(name string) (bool, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, false
	}
	return b, true
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
