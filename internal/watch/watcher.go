// Package watch reports filesystem changes under a catalog root.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"npybrowse/internal/log"
)

// Change is a filesystem event relevant to the catalog.
type Change struct {
	Path string
	Op   fsnotify.Op
}

// Match decides which file names are worth reporting. Directory events are
// always reported since they can add or remove matching files.
type Match func(name string) bool

// Watcher watches a directory, optionally with all its subdirectories.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	match     Match
	recursive bool

	changes chan Change
	stop    chan struct{}
	done    chan struct{}

	mutex   sync.Mutex
	running bool
}

// New creates a watcher. Nothing is watched until Start.
func New(match Match, recursive bool) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsWatcher: fsw,
		match:     match,
		recursive: recursive,
		changes:   make(chan Change, 16),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Changes delivers changes. The channel is closed by Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Add watches dir, and its subdirectories when recursive.
func (w *Watcher) Add(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	if !w.recursive {
		return w.addOne(dir)
	}
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.addOne(p); err != nil {
			log.LogWithFields(log.F("directory", p), log.F("error", err)).Warn("Cannot watch directory")
		}
		return nil
	})
}

func (w *Watcher) addOne(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	log.LogWithFields(log.F("directory", dir)).Debug("Watching directory")
	return nil
}

// Start runs the event loop in its own goroutine.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	go w.loop()
	return nil
}

// loop is the only sender on changes, so it is also the one closing it.
func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.changes)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")
		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	info, statErr := os.Stat(event.Name)
	isDir := statErr == nil && info.IsDir()
	if isDir && w.recursive && event.Op.Has(fsnotify.Create) {
		if err := w.Add(event.Name); err != nil {
			log.LogWithFields(log.F("directory", event.Name), log.F("error", err)).Warn("Cannot watch new directory")
		}
	}
	// a removed path can no longer be stat'ed, so it may have been a directory
	gone := event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename)
	if !isDir && !gone && !w.match(filepath.Base(event.Name)) {
		return
	}
	select {
	case w.changes <- Change{Path: event.Name, Op: event.Op}:
	case <-w.stop:
	default:
		// the consumer rescans on any change, a dropped event loses nothing
		log.LogWithFields(log.F("file", event.Name)).Debug("Change channel full, dropped event")
	}
}

// Stop ends the event loop and closes Changes once it has exited.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		w.fsWatcher.Close()
		return
	}
	close(w.stop)
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	<-w.done
	w.running = false
}
