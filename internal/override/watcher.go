package override

import (
	"errors"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when operations are attempted on a
// closed watcher.
var ErrWatcherClosed = errors.New("override watcher is closed")

// ReloadHandler is called after the store reloads from an externally
// modified custom-dictionary file. err is non-nil when the reload
// itself failed.
type ReloadHandler func(err error)

// Watcher reloads a Store when its custom-dictionary file is modified
// outside the process (another editor instance, a sync tool).
type Watcher struct {
	mu      sync.Mutex
	store   *Store
	path    string
	fsw     *fsnotify.Watcher
	handler ReloadHandler
	done    chan struct{}
	closed  bool

	// debounce coalesces rapid write events into one reload.
	debounce time.Duration
	pending  *time.Timer
}

// NewWatcher watches the given custom-dictionary file and reloads the
// store when it changes. The parent directory is watched so the
// atomic-rename writes other processes use are observed.
func NewWatcher(store *Store, path string, handler ReloadHandler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		store:    store,
		path:     abs,
		fsw:      fsw,
		handler:  handler,
		done:     make(chan struct{}),
		debounce: 100 * time.Millisecond,
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
	}
	close(w.done)
	return w.fsw.Close()
}

// loop consumes fsnotify events until closed.
func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("override: watcher error: %v", err)
		}
	}
}

// relevant reports whether the event touches the watched file.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Name != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}

// scheduleReload resets the debounce timer; the reload fires after the
// file stops changing.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.reload)
}

// reload refreshes the store and notifies the handler.
func (w *Watcher) reload() {
	err := w.store.Reload()
	if err != nil {
		log.Printf("override: reload failed: %v", err)
	}
	if w.handler != nil {
		w.handler(err)
	}
}
