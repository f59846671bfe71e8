// Package configwatcher reloads bananascale's configuration when the config
// file or env file changes on disk. It is used by the long-lived schedule mode.
package configwatcher

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/bananascale/pkg/log"
)

// ReloadFunc rebuilds runtime state from the files on disk. A returned error
// leaves the previous configuration in place.
type ReloadFunc func(ctx context.Context) error

// Watcher monitors a fixed set of files and calls a ReloadFunc after they change.
type Watcher struct {
	mu sync.Mutex

	// Configuration
	files         map[string]bool
	dirs          []string
	debounceDelay time.Duration
	reload        ReloadFunc
	logger        log.Logger

	// Runtime state
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
	reloads  int
}

// Config holds configuration options for the watcher.
type Config struct {
	// Files are the paths to watch. Empty entries are ignored.
	Files []string

	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 250 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 250 * time.Millisecond,
	}
}

// ErrNoFiles is returned by Start when none of the files can be watched.
var ErrNoFiles = errors.New("configwatcher: no watchable files")

// New creates a watcher that calls reload after any of cfg.Files changes.
func New(cfg Config, reload ReloadFunc, opts ...Option) *Watcher {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultConfig().DebounceDelay
	}

	w := &Watcher{
		files:         make(map[string]bool),
		debounceDelay: cfg.DebounceDelay,
		reload:        reload,
		logger:        log.NewNoopLogger(),
	}
	seenDir := make(map[string]bool)
	for _, f := range cfg.Files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = filepath.Clean(f)
		}
		w.files[abs] = true
		// Editors often replace files by rename, so watch the directory.
		if dir := filepath.Dir(abs); !seenDir[dir] {
			seenDir[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. It returns once the watches are registered.
func (w *Watcher) Start(ctx context.Context) error {
	if len(w.files) == 0 {
		return ErrNoFiles
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	watched := 0
	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			w.logger.Warn("config watcher: cannot watch directory", log.String("dir", dir), log.Err(err))
			continue
		}
		watched++
	}
	if watched == 0 {
		fw.Close()
		return ErrNoFiles
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.logger.Info("config watcher started", log.Int("files", len(w.files)))

	w.wg.Add(1)
	go w.watchLoop(watchCtx, fw)
	return nil
}

// Shutdown stops the watcher and waits for an in-flight reload.
func (w *Watcher) Shutdown(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Lock()
	w.stopPending()
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reloads returns how many reloads have completed successfully.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

// watchLoop watches for config file changes.
func (w *Watcher) watchLoop(ctx context.Context, fw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fw.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("config file changed", log.String("file", event.Name), log.String("op", event.Op.String()))
			w.debounceReload(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) debounceReload(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopPending()

	w.wg.Add(1)
	w.debounce = time.AfterFunc(w.debounceDelay, func() {
		defer w.wg.Done()
		w.doReload(ctx)
	})
}

// stopPending cancels a scheduled reload that has not fired yet.
// Callers hold w.mu.
func (w *Watcher) stopPending() {
	if w.debounce != nil && w.debounce.Stop() {
		w.wg.Done()
	}
	w.debounce = nil
}

func (w *Watcher) doReload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := w.reload(ctx); err != nil {
		w.logger.Error("config reload failed, keeping previous configuration", log.Err(err))
		return
	}
	w.mu.Lock()
	w.reloads++
	w.mu.Unlock()
	w.logger.Info("configuration reloaded")
}
