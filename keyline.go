package keyline

import (
	"context"
	"log/slog"

	"github.com/aretw0/keyline/internal/platform"
	"github.com/aretw0/keyline/pkg/core"
	"github.com/aretw0/keyline/pkg/engine"
	"github.com/aretw0/keyline/pkg/history"
)

// --- Types ---

// Clip is a public alias for the domain clip.
type Clip = core.Clip

// Keyframe is a public alias for the domain keyframe.
type Keyframe = core.Keyframe

// AnimationConfig is a public alias for the per-clip keyframe set.
type AnimationConfig = core.AnimationConfig

// Properties is a public alias for the per-kind property union.
type Properties = core.Properties

// Event is a public alias for animation change events.
type Event = core.Event

// KeyframeState is a public alias for the derived tri-state.
type KeyframeState = engine.KeyframeState

// --- Configuration ---

// Option defines a functional option for configuring keyline.
type Option = platform.Option

// WithClipProvider injects the host's clip lookup.
func WithClipProvider(clips core.ClipProvider) Option {
	return platform.WithClipProvider(clips)
}

// WithRenderer injects the compositing renderer.
func WithRenderer(r core.Renderer) Option {
	return platform.WithRenderer(r)
}

// WithPlayhead injects the playhead controller.
func WithPlayhead(p core.Playhead) Option {
	return platform.WithPlayhead(p)
}

// WithNotifier injects the sink for user-facing warnings.
func WithNotifier(n core.Notifier) Option {
	return platform.WithNotifier(n)
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithFrameRate sets the project frame rate (default 30).
func WithFrameRate(fps float64) Option {
	return platform.WithFrameRate(fps)
}

// WithCanvas sets the project canvas size (default 1920x1080).
func WithCanvas(width, height float64) Option {
	return platform.WithCanvas(width, height)
}

// WithEventBuffer sets the per-subscriber event buffer size.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithHistoryLimit bounds the undo stack (zero means unbounded).
func WithHistoryLimit(limit int) Option {
	return platform.WithHistoryLimit(limit)
}

// --- Facade ---

// Animator bundles the engine with its command history and exposes the
// mutating operations as one-call transactions: each call builds the
// command (snapshot capture), runs it under the per-clip guard, and
// records it for undo.
type Animator struct {
	Engine  *engine.Engine
	History *history.History
}

// New creates an Animator.
func New(opts ...Option) (*Animator, error) {
	eng, hist, err := platform.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Animator{Engine: eng, History: hist}, nil
}

// Toggle flips the keyframe state at an absolute frame and returns the
// resulting state. Command construction and execution both happen under
// the clip's guard (History.Run), so the undo snapshot can never observe
// a concurrent edit half-applied.
func (a *Animator) Toggle(ctx context.Context, clipID string, absFrame int) (KeyframeState, error) {
	var cmd *history.ToggleCommand
	err := a.History.Run(ctx, clipID, func(ctx context.Context) (history.Command, error) {
		c, err := history.NewToggle(ctx, a.Engine, clipID, absFrame, false)
		if err != nil {
			return nil, err
		}
		cmd = c
		return c, nil
	})
	if err != nil {
		return engine.StateNone, err
	}
	return cmd.State(), nil
}

// SetProperty performs the state-dependent property change.
func (a *Animator) SetProperty(ctx context.Context, clipID string, absFrame int, property string, value float64) error {
	return a.History.Run(ctx, clipID, func(ctx context.Context) (history.Command, error) {
		return history.NewSetProperty(ctx, a.Engine, clipID, absFrame, property, value, false)
	})
}

// Clear removes every keyframe and disables the clip's animation.
func (a *Animator) Clear(ctx context.Context, clipID string) error {
	return a.History.Run(ctx, clipID, func(ctx context.Context) (history.Command, error) {
		return history.NewClear(ctx, a.Engine, clipID)
	})
}

// CreateKeyframe inserts a keyframe capturing the clip's live values.
func (a *Animator) CreateKeyframe(ctx context.Context, clipID string, absFrame int) error {
	return a.History.Run(ctx, clipID, func(ctx context.Context) (history.Command, error) {
		return history.NewCreateKeyframe(ctx, a.Engine, clipID, absFrame, false)
	})
}

// DeleteKeyframe removes the keyframe at the exact frame.
func (a *Animator) DeleteKeyframe(ctx context.Context, clipID string, absFrame int) error {
	return a.History.Run(ctx, clipID, func(ctx context.Context) (history.Command, error) {
		return history.NewDeleteKeyframe(ctx, a.Engine, clipID, absFrame, false)
	})
}

// UpdateKeyframe replaces the keyframe's property snapshot.
func (a *Animator) UpdateKeyframe(ctx context.Context, clipID string, absFrame int, props Properties) error {
	return a.History.Run(ctx, clipID, func(ctx context.Context) (history.Command, error) {
		return history.NewUpdateKeyframe(ctx, a.Engine, clipID, absFrame, props, false)
	})
}

// Undo reverts the most recent command.
func (a *Animator) Undo(ctx context.Context) error {
	return a.History.Undo(ctx)
}

// Redo re-executes the most recently undone command.
func (a *Animator) Redo(ctx context.Context) error {
	return a.History.Redo(ctx)
}

// StateAt derives the tri-state for the clip at an absolute frame.
func (a *Animator) StateAt(ctx context.Context, clipID string, absFrame int) (KeyframeState, error) {
	clip, err := a.Engine.ResolveClip(ctx, clipID)
	if err != nil {
		return engine.StateNone, err
	}
	return a.Engine.StateAt(clip, absFrame), nil
}

// RescaleClip repositions a clip's keyframes after its effective
// duration changed. Not undoable: duration edits belong to the host's
// clip commands, which own their own history entries.
func (a *Animator) RescaleClip(ctx context.Context, clipID string, oldDur, newDur int) error {
	clip, err := a.Engine.ResolveClip(ctx, clipID)
	if err != nil {
		return err
	}
	return a.Engine.RescaleClipDuration(ctx, clip, oldDur, newDur)
}

// Watch subscribes to animation events for clips matching the glob
// pattern.
func (a *Animator) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	return a.Engine.Watch(ctx, pattern)
}

// BindRenderer starts absorbing renderer-originated edits into the
// clip's baseline.
func (a *Animator) BindRenderer(ctx context.Context, clipID string) (cancel func(), err error) {
	clip, err := a.Engine.ResolveClip(ctx, clipID)
	if err != nil {
		return nil, err
	}
	return a.Engine.BindRenderer(clip), nil
}
