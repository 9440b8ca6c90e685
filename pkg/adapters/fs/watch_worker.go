package fs

import (
	"context"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/enumtext/pkg/core"
)

// Watch reloads the catalog whenever a catalog file changes and reports every
// reload outcome on the returned channel. The channel is closed once ctx is
// done and the watcher has shut down.
func (c *Catalog) Watch(ctx context.Context) (<-chan core.Event, error) {
	events := make(chan core.Event, c.config.EventBuffer)
	w := newWatchWorker(c, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

type watchWorker struct {
	*worker.BaseWorker
	catalog   *Catalog
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(c *Catalog, events chan core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("catalog-watcher"),
		catalog:    c,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.catalog.recursiveAdd(watcher, w.catalog.Path); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(w.catalog.config.Debounce)
	w.catalog.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// recursiveAdd watches root and every directory below it, skipping hidden
// directories.
func (c *Catalog) recursiveAdd(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// relevant reports whether an event can change the compiled catalog.
func (w *watchWorker) relevant(event fsnotify.Event, rel string) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if ok, _ := doublestar.Match(w.catalog.config.Pattern, rel); ok {
		return true
	}
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return w.catalog.covers(rel)
	}
	return false
}

// processFilesystemEvent filters an fsnotify event and schedules a reload.
func (w *watchWorker) processFilesystemEvent(ctx context.Context, event fsnotify.Event) (processed bool) {
	logger := w.catalog.config.Logger
	logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	rel, err := w.catalog.relPath(event.Name)
	if err != nil {
		logger.Debug("relPath failed", "path", event.Name, "err", err)
		return false
	}

	// Files may land in a new directory before it is watched; reloading
	// after adding it picks them up.
	newDir := event.Has(fsnotify.Create) && isDir(event.Name)
	if newDir {
		if err := w.catalog.recursiveAdd(w.watcher, event.Name); err != nil {
			w.handleWatcherError(err)
		}
	}
	if !newDir && !w.relevant(event, rel) {
		return false
	}

	w.debouncer.trigger(func() { w.reload(ctx, rel) })
	return true
}

// reload recompiles the catalog and publishes the outcome.
func (w *watchWorker) reload(ctx context.Context, rel string) {
	if ctx.Err() != nil {
		return
	}
	e := core.Event{Type: core.EventReload, Path: rel, Timestamp: time.Now()}
	if err := w.catalog.Load(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		e.Type = core.EventError
		e.Err = err
	}
	e.Enums = len(w.catalog.Names())
	w.sendEvent(ctx, e)
}

// sendEvent publishes an event, protecting against channel closure during shutdown.
func (w *watchWorker) sendEvent(ctx context.Context, e core.Event) {
	defer func() {
		_ = recover()
	}()
	select {
	case w.events <- e:
	case <-ctx.Done():
	}
}

// handleWatcherError processes errors from the fsnotify watcher.
func (w *watchWorker) handleWatcherError(err error) (shouldContinue bool) {
	w.catalog.config.Logger.Error("fsnotify error", "error", err)
	if w.catalog.config.ErrorHandler != nil {
		w.catalog.config.ErrorHandler(err)
	}
	return true
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.catalog.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", panicErr)
			}
			err = panicErr
		}
	}()
	defer close(w.events)
	defer w.catalog.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// In-flight reloads must finish before the deferred close of the events channel.
	if !w.debouncer.stopAndWait(5 * time.Second) {
		logger.Warn("pending reload did not finish before shutdown")
	}
	return err
}

func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processFilesystemEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
