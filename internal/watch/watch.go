// Package watch notifies consumers when dataset files on disk change.
// The validate command uses it to re-run verification while an author
// edits the JSON catalogs in place.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is the kind of change observed on a dataset file.
type Op int

const (
	// Created indicates a new file appeared in the watched directory
	Created Op = iota
	// Modified indicates an existing file was written to
	Modified
	// Removed indicates a file was deleted or renamed away
	Removed
)

// String returns a human-readable representation of the operation
func (op Op) String() string {
	switch op {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event describes a single observed change.
type Event struct {
	Path      string    // Absolute path to the file
	Op        Op        // Kind of change
	Timestamp time.Time // When the event was observed
}

// DefaultDebounce coalesces the bursts of writes editors produce when
// saving a file.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to files matching a glob pattern inside a
// single directory. Dataset directories are flat, so subdirectories
// are not watched.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan Event
	errors  chan error
	done    chan struct{}
	dir     string
	pattern string // e.g. "*.json"

	mu       sync.Mutex
	debounce time.Duration
	pending  map[string]*time.Timer
	closed   bool
}

// New starts watching dir for changes to files matching pattern.
// A leading ~ in dir is expanded to the user's home directory.
func New(dir, pattern string) (*Watcher, error) {
	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, dir[1:])
	}
	dir = filepath.Clean(dir)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		events:   make(chan Event, 64),
		errors:   make(chan error, 8),
		done:     make(chan struct{}),
		dir:      dir,
		pattern:  pattern,
		debounce: DefaultDebounce,
		pending:  make(map[string]*time.Timer),
	}

	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	go w.run()

	return w, nil
}

// run pumps fsnotify events until the watcher is closed.
func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				// Error channel full, drop the error
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if !w.matchesPattern(path) {
		return
	}

	var op Op
	switch {
	case event.Has(fsnotify.Create):
		op = Created
	case event.Has(fsnotify.Write):
		op = Modified
	case event.Has(fsnotify.Remove):
		op = Removed
	case event.Has(fsnotify.Rename):
		// A rename moves the file away from the watched name.
		op = Removed
	default:
		// Ignore chmod events
		return
	}

	// Writes arrive in bursts; creates and removes are singular.
	if op == Modified {
		w.delaySend(path, op)
	} else {
		w.send(path, op)
	}
}

// matchesPattern checks the file name against the configured glob.
func (w *Watcher) matchesPattern(path string) bool {
	if w.pattern == "" {
		return true
	}
	matched, err := filepath.Match(w.pattern, filepath.Base(path))
	if err != nil {
		return false
	}
	return matched
}

// delaySend resets the per-file debounce timer so rapid consecutive
// writes produce a single event.
func (w *Watcher) delaySend(path string, op Op) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	if timer, exists := w.pending[path]; exists {
		timer.Stop()
	}

	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		w.send(path, op)
	})
}

func (w *Watcher) send(path string, op Op) {
	event := Event{
		Path:      path,
		Op:        op,
		Timestamp: time.Now(),
	}

	select {
	case w.events <- event:
	case <-w.done:
	default:
		// Events channel full, drop the event
	}
}

// Events returns the channel on which changes are delivered.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel on which watch errors are delivered.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Dir returns the directory being watched.
func (w *Watcher) Dir() string {
	return w.dir
}

// Pattern returns the glob pattern being matched.
func (w *Watcher) Pattern() string {
	return w.pattern
}

// SetDebounce adjusts the write-coalescing delay. Call it before the
// first event arrives.
func (w *Watcher) SetDebounce(delay time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = delay
}

// Close stops the watcher and releases its resources. It is safe to
// call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true

	for _, timer := range w.pending {
		timer.Stop()
	}
	w.pending = nil
	w.mu.Unlock()

	close(w.done)

	return w.watcher.Close()
}
