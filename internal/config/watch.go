package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/p-reiter/usagewatch/internal/logger"
)

// Watcher reports edits to the loaded .env file. Configuration is not
// reloaded live; subscribers surface a restart notice instead.
type Watcher struct {
	path          string
	watcher       *fsnotify.Watcher
	changed       chan string
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// NewWatcher watches the directory containing path for changes to the file.
// Watching the directory rather than the file survives editors that replace
// the file on save.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:     path,
		watcher:  fsw,
		changed:  make(chan string, 1),
		stopChan: make(chan struct{}),
	}

	go w.watchLoop()
	return w, nil
}

// Changed receives the .env path once per debounced batch of edits.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.stopChan)
	return w.watcher.Close()
}

// watchLoop handles file system events with debouncing.
func (w *Watcher) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if w.debounceTimer != nil {
					w.debounceTimer.Stop()
				}
				w.debounceTimer = time.AfterFunc(debounceInterval, func() {
					select {
					case w.changed <- w.path:
					default:
					}
				})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("env watcher error", "error", err)

		case <-w.stopChan:
			return
		}
	}
}
