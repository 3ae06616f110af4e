// Package watch monitors a .docx file and invokes a callback when it
// changes, so the cross-reference pass can rerun automatically while the
// document is being edited.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/fsnotify.v1"
)

// DefaultDebounce is the quiet period required after the last write before
// the callback fires. Word and Pandoc both write packages in several
// bursts; debouncing avoids processing a half-written file.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches one file for writes.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(path string)

	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	stopOnce sync.Once

	pendingMu sync.Mutex
	pending   *time.Timer
}

// New creates a watcher for path. onChange runs on the watcher's goroutine
// after writes to the file have been quiet for the debounce interval; a
// zero debounce selects DefaultDebounce.
func New(path string, debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback is required")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		path:     path,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Start begins watching. Editors and Word replace files rather than write
// them in place, so the watch is placed on the containing directory and
// events are filtered down to the one file.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	w.watcher = watcher
	w.stopChan = make(chan struct{})

	go w.watchLoop()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		w.watcher.Close()
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	return nil
}

// Stop stops watching and releases the underlying watcher. Safe to call
// more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		if w.stopChan != nil {
			close(w.stopChan)
		}
		if w.watcher != nil {
			w.watcher.Close()
		}

		w.pendingMu.Lock()
		if w.pending != nil {
			w.pending.Stop()
		}
		w.pendingMu.Unlock()
	})
}

// watchLoop handles file system events.
func (w *Watcher) watchLoop() {
	base := filepath.Base(w.path)

	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}

			switch {
			case event.Op&fsnotify.Write == fsnotify.Write,
				event.Op&fsnotify.Create == fsnotify.Create,
				event.Op&fsnotify.Rename == fsnotify.Rename:
				w.scheduleChange()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Keep watching; a transient error on one event is not
			// worth tearing the loop down for.
		}
	}
}

// scheduleChange resets the debounce timer; the callback fires once the
// file has been quiet for the full interval.
func (w *Watcher) scheduleChange() {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.stopChan:
		default:
			w.onChange(w.path)
		}
	})
}
