package core

import "math"

// Rescale proportionally repositions the config's keyframes after the
// owning clip's effective timeline duration changed (trim, speed edit):
// newPos = round(oldPos/oldDur*newDur), clamped to [0, newDur]; any
// keyframe whose recomputed position would exceed the new duration is
// dropped. A duration delta of at most one frame is treated as a no-op
// to avoid rounding churn. Returns the number of keyframes dropped,
// including positions that collapsed onto an earlier keyframe (the
// later original position wins).
//
// Rescale only repositions; whether the animation stays enabled after
// keyframe loss is the caller's decision.
func Rescale(a *AnimationConfig, oldDur, newDur int) int {
	if a == nil || len(a.Keyframes) == 0 {
		return 0
	}
	if oldDur <= 0 || newDur <= 0 {
		return 0
	}
	delta := oldDur - newDur
	if delta < 0 {
		delta = -delta
	}
	if delta <= 1 {
		return 0
	}

	scaled := make([]Keyframe, 0, len(a.Keyframes))
	byPos := make(map[int]int) // new position -> index in scaled
	dropped := 0
	for _, kf := range a.Keyframes {
		pos := int(math.Round(float64(kf.FramePosition) / float64(oldDur) * float64(newDur)))
		if pos < 0 {
			pos = 0
		}
		if pos > newDur {
			dropped++
			continue
		}
		if i, exists := byPos[pos]; exists {
			scaled[i] = Keyframe{FramePosition: pos, Properties: kf.Properties}
			dropped++
			continue
		}
		byPos[pos] = len(scaled)
		scaled = append(scaled, Keyframe{FramePosition: pos, Properties: kf.Properties})
	}
	a.Keyframes = scaled
	a.sort()
	return dropped
}
