package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/keyline/pkg/core"
)

// Config wires the engine's collaborators. Clips and Renderer are
// required; the rest default to safe no-ops or sane values.
type Config struct {
	Clips        core.ClipProvider
	Renderer     core.Renderer
	Playhead     core.Playhead
	Notifier     core.Notifier
	Logger       *slog.Logger
	FrameRate    float64 // frames per second, default 30
	CanvasWidth  float64 // default 1920
	CanvasHeight float64 // default 1080
	EventBuffer  int     // per-subscriber event buffer, default 100
}

// Engine drives the keyframe state machine and keeps the renderer in
// sync. It provides no internal locking: callers serialize mutating
// operations per clip, which pkg/history does with its per-clip guard.
type Engine struct {
	clips    core.ClipProvider
	bridge   *Bridge
	playhead core.Playhead
	notifier core.Notifier
	logger   *slog.Logger
	broker   *broker
}

// New creates an Engine from the config.
func New(cfg Config) (*Engine, error) {
	if cfg.Clips == nil {
		return nil, fmt.Errorf("engine: clip provider is required")
	}
	if cfg.Renderer == nil {
		return nil, fmt.Errorf("engine: renderer is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 30
	}
	if cfg.CanvasWidth <= 0 {
		cfg.CanvasWidth = 1920
	}
	if cfg.CanvasHeight <= 0 {
		cfg.CanvasHeight = 1080
	}
	if cfg.Playhead == nil {
		cfg.Playhead = noopPlayhead{}
	}
	if cfg.Notifier == nil {
		cfg.Notifier = logNotifier{logger: cfg.Logger}
	}

	return &Engine{
		clips:    cfg.Clips,
		bridge:   NewBridge(cfg.Renderer, cfg.FrameRate, cfg.CanvasWidth, cfg.CanvasHeight, cfg.Logger),
		playhead: cfg.Playhead,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		broker:   newBroker(cfg.EventBuffer, cfg.Logger),
	}, nil
}

// ResolveClip looks up a clip, mapping absence to ErrClipNotFound.
func (e *Engine) ResolveClip(ctx context.Context, id string) (*core.Clip, error) {
	clip, err := e.clips.Clip(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve clip %q: %w", id, err)
	}
	return clip, nil
}

// StateAt derives the tri-state for the clip at an absolute frame.
func (e *Engine) StateAt(clip *core.Clip, absFrame int) KeyframeState {
	return StateOf(clip, absFrame)
}

// Playhead returns the playhead controller for post-command seeks.
func (e *Engine) Playhead() core.Playhead { return e.playhead }

// Watch subscribes to animation events for clips matching the glob
// pattern (doublestar syntax, e.g. "track1/*" or "**"). The channel is
// buffered and never blocks the engine; it closes when ctx ends.
func (e *Engine) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "**"
	}
	return e.broker.subscribe(ctx, pattern), nil
}

// BindRenderer starts absorbing renderer-originated property edits for
// the clip into its baseline. The returned func cancels the binding.
func (e *Engine) BindRenderer(clip *core.Clip) (cancel func()) {
	return e.bridge.Bind(clip, func(property string, value float64) {
		e.emit(core.EventBaselineModify, clip.ID, -1)
	})
}

// Toggle implements the keyframe toggle transitions at an absolute
// frame: none -> on-keyframe (enable, capture live values),
// on-keyframe -> none|between-keyframes (remove; disable when empty),
// between-keyframes -> on-keyframe (capture live values). Returns the
// resulting state.
func (e *Engine) Toggle(ctx context.Context, clip *core.Clip, absFrame int) (KeyframeState, error) {
	if err := e.checkSpan(clip, absFrame); err != nil {
		return StateOf(clip, absFrame), err
	}
	rel := core.ToRelative(absFrame, clip.TimelineStart)

	switch StateOf(clip, absFrame) {
	case StateNone:
		cfg := core.EnsureAnimation(clip)
		cfg.Enabled = true
		cfg.Insert(rel, clip.Baseline.Clone())
		e.emit(core.EventKeyframeCreate, clip.ID, rel)

	case StateOnKeyframe:
		cfg := clip.Animation
		cfg.RemoveAt(rel)
		if len(cfg.Keyframes) == 0 {
			cfg.Enabled = false
		}
		e.emit(core.EventKeyframeDelete, clip.ID, rel)

	case StateBetween:
		clip.Animation.Insert(rel, clip.Baseline.Clone())
		e.emit(core.EventKeyframeCreate, clip.ID, rel)
	}

	if err := e.bridge.Push(ctx, clip); err != nil {
		return StateOf(clip, absFrame), err
	}
	return StateOf(clip, absFrame), nil
}

// SetProperty is the state-dependent property-change entry point: in
// none, write to the baseline only; on a keyframe, write to the baseline
// and overwrite that keyframe's value; between keyframes, write to the
// baseline and capture a new keyframe from the updated live values.
func (e *Engine) SetProperty(ctx context.Context, clip *core.Clip, absFrame int, property string, value float64) error {
	if err := e.checkSpan(clip, absFrame); err != nil {
		return err
	}
	if _, ok := clip.Baseline.Value(property); !ok {
		return fmt.Errorf("%w: property %q does not exist on %q clips", core.ErrValidation, property, clip.Kind)
	}
	rel := core.ToRelative(absFrame, clip.TimelineStart)

	switch StateOf(clip, absFrame) {
	case StateNone:
		clip.Baseline.Apply(property, value)
		e.emit(core.EventBaselineModify, clip.ID, -1)

	case StateOnKeyframe:
		clip.Baseline.Apply(property, value)
		kf, _ := clip.Animation.At(rel)
		kf.Properties.Apply(property, value)
		e.emit(core.EventKeyframeModify, clip.ID, rel)

	case StateBetween:
		// The new keyframe carries the changed value plus the live
		// values of everything else at invocation time.
		clip.Baseline.Apply(property, value)
		clip.Animation.Insert(rel, clip.Baseline.Clone())
		e.emit(core.EventKeyframeCreate, clip.ID, rel)
	}

	return e.bridge.Sync(ctx, clip, property, value)
}

// CreateKeyframe inserts a keyframe at the absolute frame capturing the
// clip's live values, enabling the animation if needed.
func (e *Engine) CreateKeyframe(ctx context.Context, clip *core.Clip, absFrame int) error {
	if err := e.checkSpan(clip, absFrame); err != nil {
		return err
	}
	if err := core.ValidateFor(clip.Kind, clip.Baseline); err != nil {
		return err
	}
	rel := core.ToRelative(absFrame, clip.TimelineStart)
	cfg := core.EnsureAnimation(clip)
	cfg.Enabled = true
	cfg.Insert(rel, clip.Baseline.Clone())
	e.emit(core.EventKeyframeCreate, clip.ID, rel)
	return e.bridge.Push(ctx, clip)
}

// DeleteKeyframe removes the keyframe at the absolute frame, disabling
// the animation when none remain. ErrNoKeyframe when the exact frame
// has no keyframe.
func (e *Engine) DeleteKeyframe(ctx context.Context, clip *core.Clip, absFrame int) error {
	if err := e.checkSpan(clip, absFrame); err != nil {
		return err
	}
	rel := core.ToRelative(absFrame, clip.TimelineStart)
	cfg := clip.Animation
	if cfg == nil || !cfg.RemoveAt(rel) {
		return fmt.Errorf("%w: clip %s relative frame %d", core.ErrNoKeyframe, clip.ID, rel)
	}
	if len(cfg.Keyframes) == 0 {
		cfg.Enabled = false
	}
	e.emit(core.EventKeyframeDelete, clip.ID, rel)
	return e.bridge.Push(ctx, clip)
}

// UpdateKeyframe replaces the property snapshot of the keyframe at the
// absolute frame. The snapshot must be valid for the clip's kind.
func (e *Engine) UpdateKeyframe(ctx context.Context, clip *core.Clip, absFrame int, props core.Properties) error {
	if err := e.checkSpan(clip, absFrame); err != nil {
		return err
	}
	if err := core.ValidateFor(clip.Kind, props); err != nil {
		return err
	}
	rel := core.ToRelative(absFrame, clip.TimelineStart)
	cfg := clip.Animation
	if cfg == nil {
		return fmt.Errorf("%w: clip %s relative frame %d", core.ErrNoKeyframe, clip.ID, rel)
	}
	kf, ok := cfg.At(rel)
	if !ok {
		return fmt.Errorf("%w: clip %s relative frame %d", core.ErrNoKeyframe, clip.ID, rel)
	}
	kf.Properties = props.Clone()
	e.emit(core.EventKeyframeModify, clip.ID, rel)
	return e.bridge.Push(ctx, clip)
}

// ClearAnimation empties and disables the clip's animation. Idempotent;
// not frame-targeted, so no span precondition applies.
func (e *Engine) ClearAnimation(ctx context.Context, clip *core.Clip) error {
	if clip.Animation == nil {
		return nil
	}
	clip.Animation.Clear()
	e.emit(core.EventAnimationClear, clip.ID, -1)
	return e.bridge.Push(ctx, clip)
}

// RescaleClipDuration repositions keyframes after a trim or speed edit
// changed the clip's effective duration. When no keyframes survive, the
// animation is disabled (engine policy layered on the pure algorithm).
func (e *Engine) RescaleClipDuration(ctx context.Context, clip *core.Clip, oldDur, newDur int) error {
	cfg := clip.Animation
	if cfg == nil || len(cfg.Keyframes) == 0 {
		return nil
	}
	dropped := core.Rescale(cfg, oldDur, newDur)
	if len(cfg.Keyframes) == 0 {
		cfg.Enabled = false
	}
	if dropped > 0 {
		e.logger.Warn("keyframes dropped during rescale", "clip", clip.ID, "dropped", dropped, "old", oldDur, "new", newDur)
	}
	e.emit(core.EventKeyframeModify, clip.ID, -1)
	return e.bridge.Push(ctx, clip)
}

// CaptureSnapshot deep-copies the clip's animation state for undo.
func (e *Engine) CaptureSnapshot(clip *core.Clip) *core.Snapshot {
	return core.CaptureSnapshot(clip)
}

// RestoreSnapshot restores a snapshot verbatim and re-pushes the
// restored state to the renderer. The snapshot itself stays intact, so
// the same snapshot can back repeated undo cycles.
func (e *Engine) RestoreSnapshot(ctx context.Context, clip *core.Clip, snap *core.Snapshot) error {
	if snap.Animation != nil {
		clip.Animation = snap.Animation.Clone()
	} else {
		clip.Animation = nil
	}
	if snap.Baseline != nil {
		clip.Baseline = snap.Baseline.Clone()
	}
	e.emit(core.EventKeyframeModify, clip.ID, -1)
	return e.bridge.Push(ctx, clip)
}

// checkSpan enforces the frame-targeted precondition: the target
// absolute frame must lie within the clip's timeline span, inclusive.
// Violations warn the user and reject without mutation — no silent
// clamping.
func (e *Engine) checkSpan(clip *core.Clip, absFrame int) error {
	if clip.Contains(absFrame) {
		return nil
	}
	e.notifier.Warn(
		"Frame out of range",
		fmt.Sprintf("Frame %d is outside clip %q (frames %d-%d).", absFrame, clip.ID, clip.TimelineStart, clip.TimelineEnd),
	)
	return fmt.Errorf("%w: frame %d outside clip %s span [%d,%d]",
		core.ErrOutOfRange, absFrame, clip.ID, clip.TimelineStart, clip.TimelineEnd)
}

func (e *Engine) emit(t core.EventType, clipID string, relFrame int) {
	e.broker.publish(core.Event{
		Type:      t,
		ClipID:    clipID,
		Frame:     relFrame,
		Timestamp: time.Now().Unix(),
	})
}

type noopPlayhead struct{}

func (noopPlayhead) SeekTo(int) {}

// logNotifier routes warnings to the structured log when the host does
// not supply a Notifier.
type logNotifier struct {
	logger *slog.Logger
}

func (n logNotifier) Warn(title, message string) {
	n.logger.Warn(title, "detail", message)
}
