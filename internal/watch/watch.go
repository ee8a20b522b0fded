// Package watch re-runs a pass whenever a document file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/pagemark/pkg/log"
)

// DefaultDebounce is the quiet period after the last change before a rerun.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a single file.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   log.Logger
}

// New creates a watcher for path. A non-positive debounce uses DefaultDebounce.
func New(path string, debounce time.Duration, logger log.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{path: path, debounce: debounce, logger: logger}
}

// Run calls fn once, then again after every burst of writes to the file,
// until ctx is done. Calls to fn never overlap. An error from fn is logged
// and watching continues.
func (w *Watcher) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files by rename, so watch the directory.
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	name := filepath.Base(w.path)

	w.call(ctx, fn)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.logger.Debug("document changed", log.String("file", event.Name), log.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case <-timer.C:
			w.call(ctx, fn)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) call(ctx context.Context, fn func(ctx context.Context) error) {
	if err := fn(ctx); err != nil {
		w.logger.Warn("rerun failed", log.String("file", w.path), log.Err(err))
	}
}
