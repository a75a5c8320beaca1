// Package engine implements the keyframe state machine, the renderer
// synchronization bridge, and the animation event broker on top of the
// core domain. It owns no persistence and no locking: the host
// serializes mutating calls per clip (see pkg/history).
package engine

import "github.com/aretw0/keyline/pkg/core"

// KeyframeState is the tri-state interaction model for a clip at a
// playhead position. It is always re-derived from the animation config
// and the playhead, never persisted.
type KeyframeState string

const (
	// StateNone: no config, animation disabled, or zero keyframes.
	StateNone KeyframeState = "none"

	// StateOnKeyframe: animation enabled and an exact keyframe exists
	// at the playhead's clip-relative frame.
	StateOnKeyframe KeyframeState = "on-keyframe"

	// StateBetween: animation enabled, keyframes exist, but none at the
	// current frame.
	StateBetween KeyframeState = "between-keyframes"
)

// StateOf derives the keyframe state for the clip at an absolute frame.
// Total: defined for every clip/frame pair, including clips without an
// AnimationConfig.
func StateOf(clip *core.Clip, absFrame int) KeyframeState {
	cfg := clip.Animation
	if cfg == nil || !cfg.Enabled || len(cfg.Keyframes) == 0 {
		return StateNone
	}
	rel := core.ToRelative(absFrame, clip.TimelineStart)
	if _, ok := cfg.At(rel); ok {
		return StateOnKeyframe
	}
	return StateBetween
}
