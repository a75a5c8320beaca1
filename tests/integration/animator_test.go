package integration_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/keyline"
	"github.com/aretw0/keyline/pkg/adapters/memory"
	"github.com/aretw0/keyline/pkg/core"
	"github.com/aretw0/keyline/pkg/engine"
	"github.com/aretw0/keyline/pkg/history"
)

// setupAnimator wires an animator around one video clip spanning
// absolute frames 100 to 250.
func setupAnimator(t *testing.T) (*keyline.Animator, *memory.Renderer, *memory.Notifier, *core.Clip) {
	t.Helper()

	clips := memory.NewClipStore()
	renderer := memory.NewRenderer()
	notifier := &memory.Notifier{}

	baseline, err := core.DefaultProperties(core.KindVideo)
	require.NoError(t, err)
	clip := &core.Clip{
		ID:            "intro",
		Kind:          core.KindVideo,
		TimelineStart: 100,
		TimelineEnd:   250,
		Baseline:      baseline,
	}
	clips.Add(clip)

	anim, err := keyline.New(
		keyline.WithClipProvider(clips),
		keyline.WithRenderer(renderer),
		keyline.WithNotifier(notifier),
	)
	require.NoError(t, err)

	return anim, renderer, notifier, clip
}

func TestToggleLifecycle(t *testing.T) {
	anim, renderer, _, clip := setupAnimator(t)
	ctx := context.Background()

	// Toggle at the clip start creates a keyframe at relative 0.
	state, err := anim.Toggle(ctx, "intro", 100)
	require.NoError(t, err)
	assert.Equal(t, engine.StateOnKeyframe, state)
	require.NotNil(t, clip.Animation)
	assert.True(t, clip.Animation.Enabled)
	_, ok := clip.Animation.At(0)
	assert.True(t, ok, "keyframe at relative 0")

	// A frame between keyframes toggles to a new keyframe.
	state, err = anim.Toggle(ctx, "intro", 180)
	require.NoError(t, err)
	assert.Equal(t, engine.StateOnKeyframe, state)
	assert.Len(t, clip.Animation.Keyframes, 2)

	// Toggling an existing keyframe removes it.
	state, err = anim.Toggle(ctx, "intro", 180)
	require.NoError(t, err)
	assert.Equal(t, engine.StateBetween, state)
	assert.Len(t, clip.Animation.Keyframes, 1)

	// Every successful mutation re-pushed the animation to the renderer.
	assert.Len(t, renderer.Pushes(), 3)
	last, ok := renderer.LastPush()
	require.True(t, ok)
	assert.Equal(t, "intro", last.ClipID)
	assert.True(t, last.Enabled)
}

func TestToggleOutsideClipSpan(t *testing.T) {
	anim, _, notifier, clip := setupAnimator(t)
	ctx := context.Background()

	_, err := anim.Toggle(ctx, "intro", 400)
	assert.ErrorIs(t, err, core.ErrOutOfRange)
	assert.Nil(t, clip.Animation, "rejected toggle must not create animation state")
	require.Len(t, notifier.Warnings(), 1)

	// Boundary frames are inside the span, both inclusive.
	_, err = anim.Toggle(ctx, "intro", 250)
	assert.NoError(t, err)
}

func TestSetPropertyStateDependence(t *testing.T) {
	anim, renderer, _, clip := setupAnimator(t)
	ctx := context.Background()

	// No animation: the change lands on the baseline.
	require.NoError(t, anim.SetProperty(ctx, "intro", 150, core.PropOpacity, 0.9))
	v, _ := clip.Baseline.Value(core.PropOpacity)
	assert.Equal(t, 0.9, v)
	assert.Nil(t, clip.Animation)

	// On a keyframe: the keyframe is updated.
	_, err := anim.Toggle(ctx, "intro", 150)
	require.NoError(t, err)
	require.NoError(t, anim.SetProperty(ctx, "intro", 150, core.PropOpacity, 0.4))
	kf, ok := clip.Animation.At(50)
	require.True(t, ok)
	v, _ = kf.Properties.Value(core.PropOpacity)
	assert.Equal(t, 0.4, v)

	// Between keyframes: a new keyframe captures the change.
	require.NoError(t, anim.SetProperty(ctx, "intro", 180, core.PropOpacity, 0.5))
	kf, ok = clip.Animation.At(80)
	require.True(t, ok, "new keyframe at relative 80")
	v, _ = kf.Properties.Value(core.PropOpacity)
	assert.Equal(t, 0.5, v)

	// The live value reached the renderer after each change.
	applied, ok := renderer.Applied("intro", core.PropOpacity)
	require.True(t, ok)
	assert.Equal(t, 0.5, applied)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	anim, _, _, clip := setupAnimator(t)
	ctx := context.Background()

	_, err := anim.Toggle(ctx, "intro", 100)
	require.NoError(t, err)
	require.NoError(t, anim.SetProperty(ctx, "intro", 180, core.PropX, 42))
	require.Len(t, clip.Animation.Keyframes, 2)

	// Undo both edits in reverse order. The toggle's snapshot predates
	// any animation config, so the second undo restores Animation to nil.
	require.NoError(t, anim.Undo(ctx))
	require.NotNil(t, clip.Animation)
	assert.Len(t, clip.Animation.Keyframes, 1)
	require.NoError(t, anim.Undo(ctx))
	assert.Nil(t, clip.Animation)

	assert.ErrorIs(t, anim.Undo(ctx), history.ErrNothingToUndo)

	// Redo replays them.
	require.NoError(t, anim.Redo(ctx))
	require.NoError(t, anim.Redo(ctx))
	assert.Len(t, clip.Animation.Keyframes, 2)
	kf, ok := clip.Animation.At(80)
	require.True(t, ok)
	v, _ := kf.Properties.Value(core.PropX)
	assert.Equal(t, 42.0, v)
}

func TestClearAnimation(t *testing.T) {
	anim, _, _, clip := setupAnimator(t)
	ctx := context.Background()

	_, err := anim.Toggle(ctx, "intro", 100)
	require.NoError(t, err)
	_, err = anim.Toggle(ctx, "intro", 200)
	require.NoError(t, err)

	require.NoError(t, anim.Clear(ctx, "intro"))
	assert.Empty(t, clip.Animation.Keyframes)
	assert.False(t, clip.Animation.Enabled)

	// Undo brings the keyframes back.
	require.NoError(t, anim.Undo(ctx))
	assert.Len(t, clip.Animation.Keyframes, 2)
	assert.True(t, clip.Animation.Enabled)
}

func TestRescalePreservesRelativePositions(t *testing.T) {
	anim, _, _, clip := setupAnimator(t)
	ctx := context.Background()

	for _, abs := range []int{100, 175, 250} {
		_, err := anim.Toggle(ctx, "intro", abs)
		require.NoError(t, err)
	}

	// Halve the duration: 150 -> 75 frames.
	require.NoError(t, anim.RescaleClip(ctx, "intro", 150, 75))

	var positions []int
	for _, kf := range clip.Animation.Keyframes {
		positions = append(positions, kf.FramePosition)
	}
	assert.Equal(t, []int{0, 38, 75}, positions)
}

func TestRendererFailureSurfacesButKeepsEdit(t *testing.T) {
	anim, renderer, _, clip := setupAnimator(t)
	ctx := context.Background()

	renderer.PushErr = errors.New("renderer offline")

	_, err := anim.Toggle(ctx, "intro", 100)
	require.Error(t, err)
	var syncErr *core.SyncError
	assert.ErrorAs(t, err, &syncErr)

	// The document mutation is kept even though sync failed; the failed
	// command is excluded from history.
	require.NotNil(t, clip.Animation)
	assert.Len(t, clip.Animation.Keyframes, 1)
	assert.ErrorIs(t, anim.Undo(ctx), history.ErrNothingToUndo)
}

func TestInboundBindingWritesBaselineOnly(t *testing.T) {
	anim, renderer, _, clip := setupAnimator(t)
	ctx := context.Background()

	_, err := anim.Toggle(ctx, "intro", 100)
	require.NoError(t, err)

	cancel, err := anim.BindRenderer(ctx, "intro")
	require.NoError(t, err)
	defer cancel()

	// A drag arrives in renderer units: x normalized to the canvas.
	renderer.EmitPropsChange(core.PropsChange{ClipID: "intro", Property: core.PropX, Value: 0.5})

	v, _ := clip.Baseline.Value(core.PropX)
	assert.Equal(t, 960.0, v, "x denormalized against the 1920 canvas")

	// Keyframes are never touched by inbound edits.
	kf, ok := clip.Animation.At(0)
	require.True(t, ok)
	kv, _ := kf.Properties.Value(core.PropX)
	assert.NotEqual(t, 960.0, kv)
}
