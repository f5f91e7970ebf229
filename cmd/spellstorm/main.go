// Package main is the entry point for the spellstorm CLI: a batch
// spell checker over the same engine a host editor embeds.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/spellstorm/internal/config"
	"github.com/dshills/spellstorm/internal/dictionary"
	"github.com/dshills/spellstorm/internal/engine/spell"
	"github.com/dshills/spellstorm/internal/engine/tokenize"
	"github.com/dshills/spellstorm/internal/exclude"
	"github.com/dshills/spellstorm/internal/override"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes: 0 clean, 1 misspellings found, 2 failure.
const (
	exitClean      = 0
	exitMisspelled = 1
	exitError      = 2
)

type options struct {
	configPath   string
	languages    string
	customDict   string
	detectScript string
	suggest      int
	watch        bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	applyFlagOverrides(cfg, opts)

	eng, provider, store, err := buildEngine(cfg, opts.detectScript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	defer eng.Close()

	ctx := context.Background()
	failed := 0
	for _, lang := range cfg.ActiveLanguages {
		if err := provider.ActivateAndWait(ctx, lang); err != nil {
			// Per-language isolation: warn and keep scanning with
			// whatever loaded.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			failed++
		}
	}
	if failed == len(cfg.ActiveLanguages) {
		fmt.Fprintln(os.Stderr, "Error: no dictionary loaded")
		return exitError
	}

	files := flag.Args()
	if len(files) == 0 {
		return checkStdin(ctx, eng)
	}
	if opts.watch {
		return watchFiles(ctx, eng, store, cfg.CustomDictionaryPath, files)
	}
	return checkFiles(ctx, eng, files)
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.languages, "lang", "", "Comma-separated language codes (overrides config)")
	flag.StringVar(&opts.customDict, "custom-dict", "", "Path to the custom dictionary file")
	flag.StringVar(&opts.detectScript, "detect", "", "Lua script defining extra excluded regions")
	flag.IntVar(&opts.suggest, "suggest", -1, "Number of suggestions per misspelling (overrides config)")
	flag.BoolVar(&opts.watch, "watch", false, "Re-check files on change")
	flag.BoolVar(&opts.watch, "w", false, "Re-check files on change (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Spellstorm - incremental spell-checking engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: spellstorm [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  spellstorm README.md               Check a file\n")
		fmt.Fprintf(os.Stderr, "  spellstorm -lang en_us,de docs/*   Check with two languages\n")
		fmt.Fprintf(os.Stderr, "  spellstorm -w notes.md             Re-check on every save\n")
		fmt.Fprintf(os.Stderr, "  cat draft.txt | spellstorm         Check stdin\n")
		fmt.Fprintf(os.Stderr, "\nExit codes: 0 clean, 1 misspellings found, 2 error\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(exitClean)
	}
	if showVersion {
		fmt.Printf("Spellstorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(exitClean)
	}
	return opts
}

func applyFlagOverrides(cfg *config.Config, opts options) {
	if opts.languages != "" {
		var langs []string
		for _, l := range strings.Split(opts.languages, ",") {
			if l = strings.TrimSpace(l); l != "" {
				langs = append(langs, l)
			}
		}
		cfg.ActiveLanguages = langs
	}
	if opts.customDict != "" {
		cfg.CustomDictionaryPath = opts.customDict
	}
	if opts.suggest >= 0 {
		cfg.MaxSuggestions = opts.suggest
	}
}

// buildEngine wires the dictionary source, override store, and
// excluded-region detectors from the configuration.
func buildEngine(cfg *config.Config, detectScript string) (*spell.Engine, *dictionary.Provider, *override.Store, error) {
	var src dictionary.Source
	if cfg.DictionaryDir != "" {
		src = dictionary.NewDirSource(cfg.DictionaryDir)
	} else {
		embedded, err := dictionary.DefaultSource()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("embedded dictionaries: %w", err)
		}
		src = embedded
	}
	provider := dictionary.NewProvider(src)

	var storeOpts []override.Option
	if cfg.CustomDictionaryPath != "" {
		storeOpts = append(storeOpts, override.WithPersister(override.NewFilePersister(cfg.CustomDictionaryPath)))
	}
	store, err := override.NewStore(storeOpts...)
	if err != nil {
		// The store is usable; the custom dictionary just starts
		// empty this session.
		fmt.Fprintf(os.Stderr, "Warning: custom dictionary: %v\n", err)
	}

	var detectors []tokenize.RegionDetector
	if cfg.IgnoreCodeBlocks {
		detectors = append(detectors, exclude.FencedBlocks, exclude.InlineCode)
	}
	if cfg.IgnoreURLs {
		detectors = append(detectors, exclude.URLs)
	}
	if detectScript != "" {
		script, err := os.ReadFile(detectScript)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("detector script: %w", err)
		}
		det, err := exclude.NewScriptDetector(string(script))
		if err != nil {
			return nil, nil, nil, err
		}
		detectors = append(detectors, det.Detect)
	}

	eng := spell.New(provider, store,
		spell.WithDetector(exclude.Composite(detectors...)),
		spell.WithMinWordLength(cfg.MinWordLength),
		spell.WithMaxSuggestions(cfg.MaxSuggestions),
		spell.WithDebounce(cfg.Debounce()),
	)
	return eng, provider, store, nil
}

func checkStdin(ctx context.Context, eng *spell.Engine) int {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read stdin: %v\n", err)
		return exitError
	}
	id, err := eng.OpenDocument(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	spans, err := eng.FullScan(ctx, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	printSpans(eng, "stdin", spans)
	if len(spans) > 0 {
		return exitMisspelled
	}
	return exitClean
}

func checkFiles(ctx context.Context, eng *spell.Engine, files []string) int {
	code := exitClean
	for _, path := range files {
		spans, err := checkFile(ctx, eng, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			return exitError
		}
		printSpans(eng, path, spans)
		if len(spans) > 0 {
			code = exitMisspelled
		}
	}
	return code
}

func checkFile(ctx context.Context, eng *spell.Engine, path string) ([]spell.Span, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	id, err := eng.OpenDocument(string(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = eng.CloseDocument(id) }()
	return eng.FullScan(ctx, id)
}

// watchFiles checks each file, then re-checks on every change until
// interrupted, printing span deltas as they happen. When a custom
// dictionary path is configured, external edits to it reload the
// override store and re-check every watched file.
func watchFiles(ctx context.Context, eng *spell.Engine, store *override.Store, customDict string, files []string) int {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: watcher: %v\n", err)
		return exitError
	}
	defer func() { _ = watcher.Close() }()

	docs := make(map[string]spell.DocumentID, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			return exitError
		}
		id, err := eng.OpenDocument(string(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitError
		}
		spans, err := eng.FullScan(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			return exitError
		}
		printSpans(eng, path, spans)
		docs[path] = id

		if err := watcher.Add(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: watch %s: %v\n", path, err)
			return exitError
		}
	}

	dictChanged := make(chan struct{}, 1)
	if customDict != "" {
		dw, err := override.NewWatcher(store, customDict, func(err error) {
			if err != nil {
				log.Printf("custom dictionary reload: %v", err)
				return
			}
			select {
			case dictChanged <- struct{}{}:
			default:
			}
		})
		if err != nil {
			log.Printf("custom dictionary watch: %v", err)
		} else {
			defer func() { _ = dw.Close() }()
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("watching %d file(s)", len(files))
	for {
		select {
		case <-signals:
			return exitClean
		case <-dictChanged:
			// Overrides changed out of band; re-resolve everything.
			for path, id := range docs {
				text, err := eng.Text(id)
				if err != nil {
					continue
				}
				d, err := eng.SetText(ctx, id, text)
				if err != nil {
					log.Printf("recheck %s: %v", path, err)
					continue
				}
				printDelta(eng, path, d)
			}
		case ev, ok := <-watcher.Events:
			if !ok {
				return exitClean
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			id, ok := docs[ev.Name]
			if !ok {
				continue
			}
			data, err := os.ReadFile(ev.Name)
			if err != nil {
				log.Printf("reread %s: %v", ev.Name, err)
				continue
			}
			d, err := eng.SetText(ctx, id, string(data))
			if err != nil {
				log.Printf("recheck %s: %v", ev.Name, err)
				continue
			}
			printDelta(eng, ev.Name, d)
		case err, ok := <-watcher.Errors:
			if !ok {
				return exitClean
			}
			log.Printf("watch: %v", err)
		}
	}
}

func printSpans(eng *spell.Engine, name string, spans []spell.Span) {
	for _, s := range spans {
		line := fmt.Sprintf("%s:%d-%d: %s", name, s.Range.Start, s.Range.End, s.Word)
		if suggestions := eng.Suggest(s.Word); len(suggestions) > 0 {
			line += " -> " + strings.Join(suggestions, ", ")
		}
		fmt.Println(line)
	}
}

func printDelta(eng *spell.Engine, name string, d spell.Delta) {
	removed := append([]spell.Span(nil), d.Removed...)
	sort.Slice(removed, func(i, j int) bool { return removed[i].Range.Start < removed[j].Range.Start })
	for _, s := range removed {
		fmt.Printf("%s: fixed %s\n", name, s.Word)
	}
	printSpans(eng, name, d.Added)
}
