// Package watcher reloads the target file when it changes on disk.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bethropolis/regextester/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// Watcher monitors one file and signals once per burst of changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	delay     time.Duration
	debouncer Debouncer
	onChange  chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
}

// Config holds watcher configuration options.
type Config struct {
	Path        string
	DebounceDur time.Duration
}

// New creates a watcher for cfg.Path.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("resolving %s: %w", cfg.Path, err)
	}
	return &Watcher{
		fsWatcher: fsw,
		path:      path,
		delay:     cfg.DebounceDur,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start watches the directory holding the file, so editors that replace the
// file by renaming are still seen. The returned channel never blocks the watcher.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	go w.loop()
	logger.DebugTagf("watch", "watching %s", w.path)
	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.debouncer.Stop()
		err = w.fsWatcher.Close()
	})
	return err
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(ev) {
				continue
			}
			logger.DebugTagf("watch", "%s: %s", ev.Op, ev.Name)
			w.debouncer.Debounce(w.delay, w.notify)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("watcher: %v", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) notify() {
	select {
	case <-w.done:
		return
	default:
	}
	select {
	case w.onChange <- struct{}{}:
	default:
	}
}

func (w *Watcher) isRelevantEvent(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return name == w.path
}
