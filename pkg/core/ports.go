package core

import "context"

// ClipProvider resolves timeline clips by ID. Adhering to this interface
// keeps the engine independent of how the host editor stores its
// timeline (in memory, database, project file).
type ClipProvider interface {
	// Clip returns the clip with the given ID, or an error wrapping
	// ErrClipNotFound.
	Clip(ctx context.Context, id string) (*Clip, error)
}

// TrackPoint is one sample on a renderer property track. Time is in the
// renderer's native unit, seconds.
type TrackPoint struct {
	Time  float64
	Value float64
}

// PropertyTrack carries every keyframe value of a single property.
type PropertyTrack struct {
	Property string
	Points   []TrackPoint
}

// AnimationDescription is the renderer-native form of a clip's
// animation: one track per animatable property, keyframe frames already
// converted to seconds. The renderer does its own interpolation from
// this data.
type AnimationDescription struct {
	ClipID  string
	Enabled bool
	Easing  string
	Tracks  []PropertyTrack
}

// PropsChange is a renderer-originated property edit (e.g. an
// interactive handle drag). Values arrive in renderer-native units:
// positions and sizes normalized to the canvas, volume in percent.
type PropsChange struct {
	ClipID   string
	Property string
	Value    float64
}

// Renderer is the external compositing subsystem this engine feeds.
// PushAnimation is asynchronous relative to the issuing command and must
// be awaited; SetProperty applies a live value immediately.
type Renderer interface {
	PushAnimation(ctx context.Context, clip *Clip, desc AnimationDescription) error
	SetProperty(clip *Clip, property string, value float64) error

	// OnPropsChange subscribes to renderer-originated edits for the
	// clip. The returned func cancels the subscription.
	OnPropsChange(clipID string, fn func(PropsChange)) (cancel func())
}

// Playhead moves the editor's playback position. Commands optionally
// seek to the affected frame after a successful execute or undo.
type Playhead interface {
	SeekTo(absFrame int)
}

// Notifier surfaces user-facing warnings (precondition violations),
// decoupled from the errors returned to calling code.
type Notifier interface {
	Warn(title, message string)
}
