package confloader

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/fittrackhq/fittrack-go/internal/telemetry/logger"
)

// Watcher watches the config file for changes so a long-lived REPL
// session can pick up edits without restarting.
type Watcher struct {
	watcher   *fsnotify.Watcher
	file      string
	callbacks []func(string)
	mu        sync.Mutex
	done      chan struct{}
	log       logger.Logger
}

// NewWatcher creates a watcher for the given config file.
func NewWatcher(path string, log logger.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	// Watch the directory, not the file, to catch editor-style renames.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{
		watcher: fsw,
		file:    filepath.Base(path),
		done:    make(chan struct{}),
		log:     log,
	}, nil
}

// OnChange registers a callback invoked with the changed file's path.
func (w *Watcher) OnChange(callback func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start watches for changes until Stop is called. It blocks; run it on
// its own goroutine.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != w.file {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.log.Debug("config file changed", "file", event.Name, "op", event.Op.String())
				w.notify(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("config watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

// Stop ends the watch loop and releases the fsnotify handle.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) notify(path string) {
	w.mu.Lock()
	callbacks := make([]func(string), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, cb := range callbacks {
		cb(path)
	}
}
