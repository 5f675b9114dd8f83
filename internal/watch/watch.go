// Package watch reloads the viewer's model when its file changes on
// disk.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/resound-dev/resound/internal/logger"
)

// Watcher watches a single file and reports debounced change events on
// a channel. The render loop polls the channel once per frame.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer

	changed chan string
}

// Watch starts watching the given file. The parent directory is
// watched rather than the file itself, so editors that replace the
// file on save still trigger events.
func Watch(path string, debounce time.Duration) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	w := &Watcher{
		fsw:      fsw,
		path:     absPath,
		debounce: debounce,
		changed:  make(chan string, 1),
	}
	go w.run()

	logger.Info("watching model file", zap.String("path", absPath))
	return w, nil
}

// Changed delivers the file path after each debounced change.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.bump()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// bump restarts the debounce timer. Only the last event in a burst of
// writes reaches the channel.
func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.changed <- w.path:
		default:
		}
	})
}
