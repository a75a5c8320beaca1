package history

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Common errors.
var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// History is the global undo/redo stack. It also enforces the one
// active command per clip discipline: the engine itself carries no
// locks, so History holds a per-clip guard across Execute, Undo and
// Redo.
//
// A command whose Execute fails never enters the stack: a precondition
// violation rejected before the snapshot was used is harmless, and a
// sync failure after the in-memory mutation leaves an undo that would
// not restore a renderer-consistent state.
type History struct {
	mu    sync.Mutex
	undos []Command
	redos []Command
	limit int

	guardMu sync.Mutex
	guards  map[string]*sync.Mutex

	logger *slog.Logger
}

// New creates a History. limit bounds the undo stack; zero or negative
// means unbounded. Oldest entries are evicted past the limit.
func New(limit int, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.Default()
	}
	return &History{
		limit:  limit,
		guards: make(map[string]*sync.Mutex),
		logger: logger,
	}
}

// Run builds and executes a command with the clip's guard already held.
// Commands capture their undo snapshot at construction, so construction
// has to happen inside the guard: built outside, a concurrent command on
// the same clip can mutate the keyframes mid-snapshot.
func (h *History) Run(ctx context.Context, clipID string, build func(ctx context.Context) (Command, error)) error {
	guard := h.guard(clipID)
	guard.Lock()
	defer guard.Unlock()

	cmd, err := build(ctx)
	if err != nil {
		return err
	}
	return h.execute(ctx, cmd)
}

// Do executes a pre-built command under the clip's guard and records it.
// The caller must not have mutated the clip between building the command
// and calling Do; concurrent callers should use Run instead.
func (h *History) Do(ctx context.Context, cmd Command) error {
	guard := h.guard(cmd.ClipID())
	guard.Lock()
	defer guard.Unlock()

	return h.execute(ctx, cmd)
}

// execute runs the command and records it. Callers hold the clip guard.
func (h *History) execute(ctx context.Context, cmd Command) error {
	if err := cmd.Execute(ctx); err != nil {
		h.logger.Error("command failed, excluded from history",
			"command", cmd.Name(), "id", cmd.ID(), "clip", cmd.ClipID(), "error", err)
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.undos = append(h.undos, cmd)
	if h.limit > 0 && len(h.undos) > h.limit {
		evicted := h.undos[0]
		h.undos = append(h.undos[:0:0], h.undos[1:]...)
		h.logger.Debug("history limit reached, oldest command evicted",
			"command", evicted.Name(), "id", evicted.ID())
	}
	// A new command invalidates the redo branch.
	h.redos = nil
	return nil
}

// Undo reverts the most recent command. A failed undo (renderer sync)
// drops the command from both stacks: its model state has been restored
// in memory, but the renderer is behind and replaying the command would
// compound the inconsistency.
func (h *History) Undo(ctx context.Context) error {
	h.mu.Lock()
	if len(h.undos) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}
	cmd := h.undos[len(h.undos)-1]
	h.undos = h.undos[:len(h.undos)-1]
	h.mu.Unlock()

	guard := h.guard(cmd.ClipID())
	guard.Lock()
	defer guard.Unlock()

	if err := cmd.Undo(ctx); err != nil {
		h.logger.Error("undo failed, command dropped",
			"command", cmd.Name(), "id", cmd.ID(), "clip", cmd.ClipID(), "error", err)
		return err
	}

	h.mu.Lock()
	h.redos = append(h.redos, cmd)
	h.mu.Unlock()
	return nil
}

// Redo re-executes the most recently undone command from its original
// parameters.
func (h *History) Redo(ctx context.Context) error {
	h.mu.Lock()
	if len(h.redos) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}
	cmd := h.redos[len(h.redos)-1]
	h.redos = h.redos[:len(h.redos)-1]
	h.mu.Unlock()

	guard := h.guard(cmd.ClipID())
	guard.Lock()
	defer guard.Unlock()

	if err := cmd.Execute(ctx); err != nil {
		h.logger.Error("redo failed, command dropped",
			"command", cmd.Name(), "id", cmd.ID(), "clip", cmd.ClipID(), "error", err)
		return err
	}

	h.mu.Lock()
	h.undos = append(h.undos, cmd)
	h.mu.Unlock()
	return nil
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undos) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redos) > 0
}

// Len returns the undo stack depth.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undos)
}

// guard returns the per-clip serialization mutex, creating it lazily.
func (h *History) guard(clipID string) *sync.Mutex {
	h.guardMu.Lock()
	defer h.guardMu.Unlock()
	g, ok := h.guards[clipID]
	if !ok {
		g = &sync.Mutex{}
		h.guards[clipID] = g
	}
	return g
}
