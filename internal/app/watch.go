package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rpezzi/pipelint/internal/fsutil"
)

// debounceWindow coalesces editor save bursts into one re-run.
const debounceWindow = 250 * time.Millisecond

// Watch runs an initial validation pass and then re-runs on every change to
// a watched pipeline document until ctx is cancelled. Validation failures do
// not stop the loop; only watcher breakage or cancellation does.
func (a *App) Watch(ctx context.Context) error {
	paths, err := fsutil.ExpandTargets(a.config.Targets)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the containing directories: editors replace files on save, and
	// a watch on the old inode goes stale.
	dirs := make(map[string]struct{})
	watched := make(map[string]struct{})
	for _, p := range paths {
		watched[p] = struct{}{}
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	a.logger.Info("Watching pipeline documents.", "documents", len(watched), "directories", len(dirs))

	a.runOnce(ctx)

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("file watcher closed unexpectedly")
			}
			if _, relevant := watched[filepath.Clean(event.Name)]; !relevant {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			a.logger.Debug("Pipeline document changed.", "path", event.Name, "op", event.Op.String())
			if debounce == nil {
				debounce = time.NewTimer(debounceWindow)
			} else {
				debounce.Reset(debounceWindow)
			}
			fire = debounce.C
		case <-fire:
			fire = nil
			a.runOnce(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("file watcher closed unexpectedly")
			}
			a.logger.Error("File watcher error.", "error", err)
		}
	}
}

// runOnce performs a single validation pass, reporting failures without
// terminating watch mode.
func (a *App) runOnce(ctx context.Context) {
	switch err := a.Run(ctx); {
	case err == nil:
	case errors.Is(err, ErrValidationFailed):
		a.logger.Info("Validation failed; waiting for changes.")
	default:
		a.logger.Error("Validation run errored.", "error", err)
	}
}
