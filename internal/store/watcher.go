package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the storage directory and reports which keys changed.
// Writes made by another kittengames process show up here.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	onChange func(key string)
	logger   *slog.Logger

	done    chan struct{}
	mu      sync.Mutex
	running bool
}

// NewWatcher creates a watcher for dir. onChange is called from the watch
// goroutine with the key of each changed file.
func NewWatcher(dir string, onChange func(key string), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:  watcher,
		dir:      dir,
		onChange: onChange,
		logger:   logger,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. The watch loop ends when ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory rather than the files: atomic renames replace the inode.
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}

	go w.watch(ctx)
	w.logger.Debug("storage watcher started", "dir", w.dir)
	return nil
}

func (w *Watcher) watch(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			key, ok := KeyForPath(event.Name)
			if !ok {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.logger.Debug("stored key changed", "key", key, "op", event.Op.String())
				if w.onChange != nil {
					w.onChange(key)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("storage watcher error", "error", err)

		case <-ctx.Done():
			return

		case <-w.done:
			return
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return w.watcher.Close()
	}

	w.running = false
	close(w.done)
	return w.watcher.Close()
}
