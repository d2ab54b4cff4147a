// FILE: dobrawek/drlogger/watch.go
package drlogger

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultWatchDebounce = 100 * time.Millisecond

// WatchCallback receives a freshly loaded configuration, or the error that prevented loading it
type WatchCallback func(cfg *Config, err error)

// Watcher reloads a TOML configuration file whenever it changes
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	callback WatchCallback
	debounce time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// WatchOption configures a Watcher
type WatchOption func(*Watcher)

// WithDebounce sets how long the file must stay quiet before it is reloaded
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher watches the directory holding path and calls callback after each change to the file
func NewWatcher(path string, callback WatchCallback, opts ...WatchOption) (*Watcher, error) {
	if path == "" {
		return nil, fmtErrorf("config path is empty")
	}
	if callback == nil {
		return nil, fmtErrorf("watch callback cannot be nil")
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		callback: callback,
		debounce: defaultWatchDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmtErrorf("failed to create watcher: %w", err)
	}

	// Watch the directory so editors that replace the file are still seen
	dir := filepath.Dir(w.path)
	if err := fsWatcher.Add(dir); err != nil {
		return nil, errors.Join(fmtErrorf("failed to watch directory %s: %w", dir, err), fsWatcher.Close())
	}
	w.watcher = fsWatcher
	return w, nil
}

// Start processes file events in a background goroutine until Stop
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

// Stop ends event processing, waits for the goroutine and releases the watch
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.running = false
	w.cancel()
	w.mu.Unlock()

	w.wg.Wait()
	return w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	name := filepath.Base(w.path)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			cfg, err := NewConfigFromFile(w.path)
			w.callback(cfg, err)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.callback(nil, fmtErrorf("watch error: %w", err))
		}
	}
}

// WatchConfig applies the configuration at path to d whenever the file changes.
// Load and apply failures are reported as diagnostics and leave the current settings in place.
func WatchConfig(d *DailyFileListener, path string, opts ...WatchOption) (*Watcher, error) {
	w, err := NewWatcher(path, func(cfg *Config, err error) {
		if err != nil {
			d.diag.printf("Failed to reload config %s: %v", path, err)
			return
		}
		if err := d.ApplyConfig(cfg); err != nil {
			d.diag.printf("Failed to apply config %s: %v", path, err)
		}
	}, opts...)
	if err != nil {
		return nil, err
	}
	w.Start()
	return w, nil
}
