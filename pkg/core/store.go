package core

import "sort"

// Keyframe store operations. All of them are synchronous and total given
// a valid clip; failure modes (missing clip, out-of-range frames, bad
// property sets) are handled by the callers before reaching here.
//
// Keyframe lookup is an exact, zero-tolerance frame match. Upstream
// sub-frame drift would therefore produce near-duplicate keyframes; the
// engine deliberately does not smooth this over (see DESIGN.md).

// EnsureAnimation lazily creates an empty, disabled AnimationConfig for
// the clip. Idempotent: an existing config is returned untouched.
func EnsureAnimation(clip *Clip) *AnimationConfig {
	if clip.Animation == nil {
		clip.Animation = &AnimationConfig{}
	}
	return clip.Animation
}

// At returns the keyframe at the exact relative frame, if any.
func (a *AnimationConfig) At(relFrame int) (*Keyframe, bool) {
	for i := range a.Keyframes {
		if a.Keyframes[i].FramePosition == relFrame {
			return &a.Keyframes[i], true
		}
	}
	return nil, false
}

// Insert adds a keyframe at the relative frame, replacing any keyframe
// already at that exact position, and restores ascending order.
func (a *AnimationConfig) Insert(relFrame int, props Properties) {
	if kf, ok := a.At(relFrame); ok {
		kf.Properties = props
		return
	}
	a.Keyframes = append(a.Keyframes, Keyframe{FramePosition: relFrame, Properties: props})
	a.sort()
}

// RemoveAt removes the keyframe at the exact relative frame, reporting
// whether a removal occurred.
func (a *AnimationConfig) RemoveAt(relFrame int) bool {
	for i := range a.Keyframes {
		if a.Keyframes[i].FramePosition == relFrame {
			a.Keyframes = append(a.Keyframes[:i], a.Keyframes[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the keyframes and disables the animation. Idempotent.
func (a *AnimationConfig) Clear() {
	a.Keyframes = nil
	a.Enabled = false
}

// Clone returns a deep copy, including every keyframe's property
// snapshot. Undo snapshots rely on the copy being fully independent.
func (a *AnimationConfig) Clone() *AnimationConfig {
	c := &AnimationConfig{Enabled: a.Enabled, Easing: a.Easing}
	if len(a.Keyframes) > 0 {
		c.Keyframes = make([]Keyframe, len(a.Keyframes))
		for i, kf := range a.Keyframes {
			c.Keyframes[i] = Keyframe{
				FramePosition: kf.FramePosition,
				Properties:    kf.Properties.Clone(),
			}
		}
	}
	return c
}

func (a *AnimationConfig) sort() {
	sort.SliceStable(a.Keyframes, func(i, j int) bool {
		return a.Keyframes[i].FramePosition < a.Keyframes[j].FramePosition
	})
}
