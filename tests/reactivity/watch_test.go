package reactivity_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/keyline"
	"github.com/aretw0/keyline/pkg/adapters/docfile"
	"github.com/aretw0/keyline/pkg/adapters/memory"
	"github.com/aretw0/keyline/pkg/core"
)

// setupWatchTest wires an animator around two clips and returns it with
// a watch context bounded to the test.
func setupWatchTest(t *testing.T) (*keyline.Animator, context.Context, context.CancelFunc) {
	t.Helper()

	clips := memory.NewClipStore()
	for _, id := range []string{"scene-1/intro", "scene-2/credits"} {
		baseline, err := core.DefaultProperties(core.KindVideo)
		require.NoError(t, err)
		clips.Add(&core.Clip{
			ID:            id,
			Kind:          core.KindVideo,
			TimelineStart: 0,
			TimelineEnd:   300,
			Baseline:      baseline,
		})
	}

	anim, err := keyline.New(
		keyline.WithClipProvider(clips),
		keyline.WithRenderer(memory.NewRenderer()),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	return anim, ctx, cancel
}

func TestWatch_KeyframeEvents(t *testing.T) {
	anim, ctx, cancel := setupWatchTest(t)
	defer cancel()

	events, err := anim.Watch(ctx, "**")
	require.NoError(t, err)
	require.NotNil(t, events)

	_, err = anim.Toggle(ctx, "scene-1/intro", 120)
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, core.EventKeyframeCreate, event.Type)
		assert.Equal(t, "scene-1/intro", event.ClipID)
		assert.Equal(t, 120, event.Frame)
	case <-ctx.Done():
		t.Fatal("Timed out waiting for event")
	}
}

func TestWatch_PatternFiltersClips(t *testing.T) {
	anim, ctx, cancel := setupWatchTest(t)
	defer cancel()

	events, err := anim.Watch(ctx, "scene-2/*")
	require.NoError(t, err)

	_, err = anim.Toggle(ctx, "scene-1/intro", 10)
	require.NoError(t, err)
	_, err = anim.Toggle(ctx, "scene-2/credits", 20)
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, "scene-2/credits", event.ClipID, "scene-1 events must be filtered out")
	case <-ctx.Done():
		t.Fatal("Timed out waiting for event")
	}
}

func TestWatch_ChannelClosesOnCancel(t *testing.T) {
	anim, ctx, cancel := setupWatchTest(t)
	defer cancel()

	watchCtx, stopWatch := context.WithCancel(ctx)
	events, err := anim.Watch(watchCtx, "**")
	require.NoError(t, err)

	stopWatch()

	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-ctx.Done():
		t.Fatal("Timed out waiting for channel close")
	}
}

func TestWatch_DocumentFileEdits(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "intro.yaml")

	baseline, err := core.DefaultProperties(core.KindVideo)
	require.NoError(t, err)
	clip := &core.Clip{ID: "intro", Kind: core.KindVideo, TimelineEnd: 300, Baseline: baseline}
	require.NoError(t, docfile.Save(path, clip))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := make(chan core.Event, 8)
	watcher := docfile.NewWatcher(path, "intro", events, nil)
	require.NoError(t, watcher.Start(ctx))
	defer watcher.Stop(context.Background())

	// Wait a bit to ensure the watcher is ready (naive)
	time.Sleep(100 * time.Millisecond)

	// An external tool rewrites the document.
	clip.TimelineEnd = 150
	require.NoError(t, docfile.Save(path, clip))

	select {
	case event := <-events:
		assert.Equal(t, core.EventDocumentChange, event.Type)
		assert.Equal(t, "intro", event.ClipID)

		// The host reloads the document on change.
		reloaded, err := docfile.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 150, reloaded.TimelineEnd)
	case <-ctx.Done():
		t.Fatal("Timed out waiting for event")
	}
}

func TestWatch_DebouncedBurstYieldsSettledEvent(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "intro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clip:\n  id: intro\n"), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := make(chan core.Event, 8)
	watcher := docfile.NewWatcher(path, "intro", events, nil)
	require.NoError(t, watcher.Start(ctx))
	defer watcher.Stop(context.Background())

	time.Sleep(100 * time.Millisecond)

	// A burst of writes within the debounce window.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("clip:\n  id: intro\n"), 0644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-events:
	case <-ctx.Done():
		t.Fatal("Timed out waiting for event")
	}

	// The burst settles into far fewer events than writes.
	time.Sleep(200 * time.Millisecond)
	assert.Less(t, len(events), 4, "burst should be debounced")
}
