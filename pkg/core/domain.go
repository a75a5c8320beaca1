// Clip and its animation data are the central entities of the domain.
package core

import "fmt"

// MediaKind identifies the family of a clip and therefore which
// animatable property set applies to it.
type MediaKind string

const (
	KindVideo MediaKind = "video"
	KindImage MediaKind = "image"
	KindText  MediaKind = "text"
	KindAudio MediaKind = "audio"
)

// Visual reports whether the kind carries the visual property set
// (position, size, rotation, opacity).
func (k MediaKind) Visual() bool {
	return k == KindVideo || k == KindImage || k == KindText
}

// Clip is a media item placed on the timeline. TimelineStart and
// TimelineEnd are absolute frame numbers, both inclusive. Baseline holds
// the clip's current live property values independent of any animation.
// Animation is lazily created on the first keyframe and never outlives
// the clip.
type Clip struct {
	ID            string
	Kind          MediaKind
	TimelineStart int
	TimelineEnd   int
	Baseline      Properties
	Animation     *AnimationConfig
}

// DurationFrames returns the clip's effective timeline duration.
func (c *Clip) DurationFrames() int {
	return c.TimelineEnd - c.TimelineStart
}

// Contains reports whether the absolute frame lies within the clip's
// timeline span, both ends inclusive.
func (c *Clip) Contains(absFrame int) bool {
	return absFrame >= c.TimelineStart && absFrame <= c.TimelineEnd
}

// Keyframe is a point in a clip's local timeline carrying a full
// snapshot of the animatable property values at that position.
// FramePosition is relative to the clip start and lies within
// [0, DurationFrames].
type Keyframe struct {
	FramePosition int
	Properties    Properties
}

// AnimationConfig is the per-clip keyframe collection. Keyframes are
// kept sorted ascending by FramePosition with at most one keyframe per
// exact position. Easing is an opaque hint consumed by the renderer;
// this engine never interpolates.
type AnimationConfig struct {
	Keyframes []Keyframe
	Enabled   bool
	Easing    string
}

// Snapshot is a deep, independent copy of a clip's animation state and
// baseline, captured before a mutation. It is owned by the command that
// created it and discarded when that command leaves history.
type Snapshot struct {
	Animation *AnimationConfig // nil when the clip had no config
	Baseline  Properties
}

// CaptureSnapshot deep-copies the clip's current animation state.
func CaptureSnapshot(clip *Clip) *Snapshot {
	s := &Snapshot{}
	if clip.Animation != nil {
		s.Animation = clip.Animation.Clone()
	}
	if clip.Baseline != nil {
		s.Baseline = clip.Baseline.Clone()
	}
	return s
}

// EventType represents the type of change to a clip's animation state.
type EventType string

const (
	EventKeyframeCreate EventType = "KEYFRAME_CREATE"
	EventKeyframeModify EventType = "KEYFRAME_MODIFY"
	EventKeyframeDelete EventType = "KEYFRAME_DELETE"
	EventBaselineModify EventType = "BASELINE_MODIFY"
	EventAnimationClear EventType = "ANIMATION_CLEAR"
	EventDocumentChange EventType = "DOCUMENT_CHANGE"
)

// Event represents a change to a clip's animation state.
// Frame is the clip-relative frame the change targeted, or -1 when the
// change is not frame-scoped (clear, baseline edits, document reloads).
type Event struct {
	Type      EventType
	ClipID    string
	Frame     int
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s %s@%d", e.Type, e.ClipID, e.Frame)
}
