// Package watcher reloads the dataset snapshot when the input CSV files
// change on disk.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gigworks/slapulse/pkg/logger"
)

// debounce coalesces bursts of write events from editors and copy tools
// into a single reload.
const debounce = 250 * time.Millisecond

// Reloader re-reads the datasets and swaps the snapshot.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Watch blocks watching the given paths until ctx is cancelled. On a
// write or create event it calls reloader.Reload; a failed reload keeps
// the previous snapshot and is logged, never fatal.
func Watch(ctx context.Context, reloader Reloader, log logger.Logger, paths ...string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}

	log.Info(ctx, "watching datasets for changes", logger.Any("paths", paths))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			// Only reload on write or create events. Editors often write
			// via rename (atomic save), so also catch fsnotify.Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			pending = time.After(debounce)

		case <-pending:
			pending = nil
			if err := reloader.Reload(ctx); err != nil {
				log.Error(ctx, "dataset reload failed; keeping previous snapshot", logger.Error(err))
				continue
			}
			log.Info(ctx, "dataset snapshot reloaded")

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error(ctx, "watcher error", logger.Error(err))
		}
	}
}
