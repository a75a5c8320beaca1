package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/keyline/pkg/core"
)

func collectEvents(ch <-chan core.Event, max int, timeout time.Duration) []core.Event {
	var out []core.Event
	deadline := time.After(timeout)
	for len(out) < max {
		select {
		case e, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, e)
		case <-deadline:
			return out
		}
	}
	return out
}

func TestWatch(t *testing.T) {
	t.Run("Receives Matching Events", func(t *testing.T) {
		f := newFixture(t)
		clip := f.addVideoClip(t, "track1/clip-a", 0, 100)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch, err := f.engine.Watch(ctx, "track1/*")
		if err != nil {
			t.Fatal(err)
		}

		if _, err := f.engine.Toggle(ctx, clip, 10); err != nil {
			t.Fatal(err)
		}

		events := collectEvents(ch, 1, time.Second)
		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}
		if events[0].Type != core.EventKeyframeCreate || events[0].ClipID != "track1/clip-a" {
			t.Errorf("unexpected event %+v", events[0])
		}
	})

	t.Run("Pattern Filters Other Clips", func(t *testing.T) {
		f := newFixture(t)
		a := f.addVideoClip(t, "track1/clip-a", 0, 100)
		b := f.addVideoClip(t, "track2/clip-b", 0, 100)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch, err := f.engine.Watch(ctx, "track2/**")
		if err != nil {
			t.Fatal(err)
		}

		if _, err := f.engine.Toggle(ctx, a, 10); err != nil {
			t.Fatal(err)
		}
		if _, err := f.engine.Toggle(ctx, b, 10); err != nil {
			t.Fatal(err)
		}

		events := collectEvents(ch, 2, 200*time.Millisecond)
		if len(events) != 1 {
			t.Fatalf("expected 1 filtered event, got %d", len(events))
		}
		if events[0].ClipID != "track2/clip-b" {
			t.Errorf("wrong clip: %s", events[0].ClipID)
		}
	})

	t.Run("Slow Subscriber Never Blocks Engine", func(t *testing.T) {
		f := newFixture(t)
		clip := f.addVideoClip(t, "c1", 0, 1000)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Subscribe and never read.
		if _, err := f.engine.Watch(ctx, "**"); err != nil {
			t.Fatal(err)
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			for frame := 0; frame < 200; frame++ {
				if _, err := f.engine.Toggle(ctx, clip, frame); err != nil {
					t.Errorf("toggle: %v", err)
					return
				}
			}
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("publisher blocked on a lagging subscriber")
		}
	})

	t.Run("Channel Closes On Context Cancel", func(t *testing.T) {
		f := newFixture(t)
		ctx, cancel := context.WithCancel(context.Background())

		ch, err := f.engine.Watch(ctx, "**")
		if err != nil {
			t.Fatal(err)
		}
		cancel()

		select {
		case _, ok := <-ch:
			if ok {
				t.Error("expected closed channel, got event")
			}
		case <-time.After(time.Second):
			t.Fatal("channel did not close after cancel")
		}
	})
}
