package docfile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/keyline/pkg/core"
)

// Watcher observes one clip document for external edits and emits a
// document change event after each settled burst of writes. The host
// reloads the document itself; the watcher only signals that it should.
type Watcher struct {
	*worker.BaseWorker
	path      string
	clipID    string
	events    chan<- core.Event
	logger    *slog.Logger
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

// NewWatcher creates a watcher for the document at path. Events carry
// the given clip ID so subscribers can glob-filter them.
func NewWatcher(path, clipID string, events chan<- core.Event, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		BaseWorker: worker.NewBaseWorker("docfile-watcher"),
		path:       filepath.Clean(path),
		clipID:     clipID,
		events:     events,
		logger:     logger,
	}
}

// Start begins watching. It is an error to start a watcher twice.
func (w *Watcher) Start(ctx context.Context) error {
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

	// Watch the parent directory: editors replace files via rename, and
	// a watch on the file itself is lost when the inode goes away.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

// Stop requests shutdown and waits for the event loop to exit.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

// State reports the worker state.
func (w *Watcher) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

func (w *Watcher) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if w.logger.Enabled(ctx, slog.LevelDebug) {
				w.logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
			} else {
				w.logger.Error("watcher panic", "error", panicErr)
			}
		}
	}()
	defer w.watcher.Close()

	err = w.eventLoop(ctx)

	// Drain in-flight timers before the caller closes the events channel.
	w.debouncer.stopAndWait(5 * time.Second)

	return err
}

func (w *Watcher) eventLoop(ctx context.Context) error {
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
			w.handleEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("fsnotify error", "error", wErr)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.logger.Debug("document changed", "path", event.Name, "op", event.Op.String())

	w.debouncer.add(w.path, func() {
		defer func() {
			// The events channel may close while a timer is in flight.
			_ = recover()
		}()
		select {
		case w.events <- core.Event{
			Type:      core.EventDocumentChange,
			ClipID:    w.clipID,
			Frame:     -1,
			Timestamp: time.Now().Unix(),
		}:
		case <-ctx.Done():
		}
	})
}
