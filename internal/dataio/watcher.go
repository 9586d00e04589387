package dataio

import (
	"fmt"
	"path/filepath"
	"sync"

	"datascope/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports external modifications to the loaded source file so
// the display can mark the dataset stale. It watches the parent
// directory rather than the file itself, so editors that replace the
// file on save (rename-over) are still observed.
type Watcher struct {
	log      logger.Logger
	fs       *fsnotify.Watcher
	onChange func(path string)

	mu         sync.Mutex
	watchedDir string
	targetPath string

	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher creates a watcher delivering change notifications through
// onChange. The callback runs on the watcher goroutine and must not
// block.
func NewWatcher(log logger.Logger, onChange func(path string)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		log:      log,
		fs:       fs,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.loop()

	return w, nil
}

// Watch points the watcher at path, replacing any previous target.
func (w *Watcher) Watch(path string) error {
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watchedDir != "" && w.watchedDir != dir {
		if err := w.fs.Remove(w.watchedDir); err != nil {
			w.log.Warning("watcher", "failed to remove previous watch", map[string]interface{}{
				"dir":   w.watchedDir,
				"error": err.Error(),
			})
		}
		w.watchedDir = ""
	}

	if w.watchedDir == "" {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.watchedDir = dir
	}
	w.targetPath = path

	w.log.Debug("watcher", "watching source file", map[string]interface{}{
		"path": path,
	})
	return nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warning("watcher", "watch error", map[string]interface{}{
				"error": err.Error(),
			})

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	w.mu.Lock()
	target := w.targetPath
	w.mu.Unlock()

	if target == "" || filepath.Clean(event.Name) != filepath.Clean(target) {
		return
	}

	w.log.Info("watcher", "source file changed on disk", map[string]interface{}{
		"path": target,
		"op":   event.Op.String(),
	})
	if w.onChange != nil {
		w.onChange(target)
	}
}

// Shutdown stops the watcher goroutine and releases the OS watch.
func (w *Watcher) Shutdown() {
	w.closeOnce.Do(func() {
		close(w.done)
		if err := w.fs.Close(); err != nil {
			w.log.Warning("watcher", "failed to close watcher", map[string]interface{}{
				"error": err.Error(),
			})
		}
	})
}
