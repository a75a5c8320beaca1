package engine

import (
	"context"
	"log/slog"

	"github.com/aretw0/keyline/pkg/core"
)

// Bridge owns the bidirectional contract with the renderer.
//
// Outbound, the ordering is strict: keyframe data is written to the
// store first, the animation description is pushed (and awaited), and
// only then is the immediate value applied to the live baseline.
// Reversing push and apply lets the renderer recompute from stale
// keyframe data and overwrite the just-written value.
//
// Inbound, renderer-originated edits are translated into engine units
// and written to the clip baseline only. Keyframes are never created or
// mutated from inbound notifications.
type Bridge struct {
	renderer  core.Renderer
	logger    *slog.Logger
	frameRate float64
	canvasW   float64
	canvasH   float64
}

// NewBridge wires a renderer. frameRate converts keyframe positions to
// the renderer's time unit (seconds); the canvas size converts between
// engine pixels and the renderer's normalized coordinates.
func NewBridge(renderer core.Renderer, frameRate, canvasW, canvasH float64, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		renderer:  renderer,
		logger:    logger,
		frameRate: frameRate,
		canvasW:   canvasW,
		canvasH:   canvasH,
	}
}

// Describe builds the renderer-native animation description for the
// clip's current animation state.
func (b *Bridge) Describe(clip *core.Clip) core.AnimationDescription {
	desc := core.AnimationDescription{ClipID: clip.ID}
	cfg := clip.Animation
	if cfg == nil {
		return desc
	}
	desc.Enabled = cfg.Enabled
	desc.Easing = cfg.Easing
	if len(cfg.Keyframes) == 0 {
		return desc
	}

	for _, name := range clip.Baseline.Names() {
		track := core.PropertyTrack{Property: name}
		for _, kf := range cfg.Keyframes {
			v, ok := kf.Properties.Value(name)
			if !ok {
				continue
			}
			track.Points = append(track.Points, core.TrackPoint{
				Time:  float64(kf.FramePosition) / b.frameRate,
				Value: b.toRenderer(name, v),
			})
		}
		if len(track.Points) > 0 {
			desc.Tracks = append(desc.Tracks, track)
		}
	}
	return desc
}

// Push sends the clip's animation description to the renderer and
// awaits acknowledgement.
func (b *Bridge) Push(ctx context.Context, clip *core.Clip) error {
	desc := b.Describe(clip)
	if err := b.renderer.PushAnimation(ctx, clip, desc); err != nil {
		b.logger.Error("renderer push failed", "clip", clip.ID, "error", err)
		return &core.SyncError{Op: "push", Err: err}
	}
	b.logger.Debug("animation pushed", "clip", clip.ID, "tracks", len(desc.Tracks), "enabled", desc.Enabled)
	return nil
}

// Sync pushes the animation description and then applies one immediate
// property value to the live visual. Push strictly precedes apply.
func (b *Bridge) Sync(ctx context.Context, clip *core.Clip, property string, value float64) error {
	if err := b.Push(ctx, clip); err != nil {
		return err
	}
	if err := b.renderer.SetProperty(clip, property, b.toRenderer(property, value)); err != nil {
		b.logger.Error("immediate property application failed", "clip", clip.ID, "property", property, "error", err)
		return &core.SyncError{Op: "apply", Err: err}
	}
	return nil
}

// Bind subscribes to renderer-originated property edits for the clip.
// Each notification is translated into engine units and written to the
// baseline; onBaseline (optional) observes the applied change. The
// returned func cancels the subscription.
func (b *Bridge) Bind(clip *core.Clip, onBaseline func(property string, value float64)) (cancel func()) {
	return b.renderer.OnPropsChange(clip.ID, func(chg core.PropsChange) {
		value := b.fromRenderer(chg.Property, chg.Value)
		if !clip.Baseline.Apply(chg.Property, value) {
			b.logger.Warn("renderer reported unknown property", "clip", clip.ID, "property", chg.Property)
			return
		}
		b.logger.Debug("inbound property absorbed", "clip", clip.ID, "property", chg.Property, "value", value)
		if onBaseline != nil {
			onBaseline(chg.Property, value)
		}
	})
}

// toRenderer converts an engine-unit value to renderer-native units:
// positions and sizes normalized to the canvas, volume as percent.
func (b *Bridge) toRenderer(property string, v float64) float64 {
	switch property {
	case core.PropX, core.PropWidth:
		return v / b.canvasW
	case core.PropY, core.PropHeight:
		return v / b.canvasH
	case core.PropVolume:
		return v * 100
	}
	return v
}

// fromRenderer is the inverse of toRenderer.
func (b *Bridge) fromRenderer(property string, v float64) float64 {
	switch property {
	case core.PropX, core.PropWidth:
		return v * b.canvasW
	case core.PropY, core.PropHeight:
		return v * b.canvasH
	case core.PropVolume:
		return v / 100
	}
	return v
}
