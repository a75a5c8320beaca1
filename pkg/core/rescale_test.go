package core_test

import (
	"testing"

	"github.com/aretw0/keyline/pkg/core"
)

func configWith(t *testing.T, positions ...int) *core.AnimationConfig {
	t.Helper()
	props, _ := core.DefaultProperties(core.KindVideo)
	cfg := &core.AnimationConfig{Enabled: true}
	for _, pos := range positions {
		cfg.Insert(pos, props.Clone())
	}
	return cfg
}

func positions(cfg *core.AnimationConfig) []int {
	out := make([]int, len(cfg.Keyframes))
	for i, kf := range cfg.Keyframes {
		out[i] = kf.FramePosition
	}
	return out
}

func TestRescale(t *testing.T) {
	t.Run("Halving Duration", func(t *testing.T) {
		cfg := configWith(t, 0, 150)
		dropped := core.Rescale(cfg, 150, 75)
		if dropped != 0 {
			t.Errorf("expected no drops, got %d", dropped)
		}
		got := positions(cfg)
		if len(got) != 2 || got[0] != 0 || got[1] != 75 {
			t.Errorf("expected [0 75], got %v", got)
		}
		for _, pos := range got {
			if pos < 0 || pos > 75 {
				t.Errorf("position %d outside [0,75]", pos)
			}
		}
	})

	t.Run("OneFrame Delta Is NoOp", func(t *testing.T) {
		cfg := configWith(t, 0, 40, 99)
		core.Rescale(cfg, 100, 99)
		got := positions(cfg)
		if got[0] != 0 || got[1] != 40 || got[2] != 99 {
			t.Errorf("expected untouched positions, got %v", got)
		}
	})

	t.Run("Collapsing Positions Keeps Later Keyframe", func(t *testing.T) {
		props, _ := core.DefaultProperties(core.KindVideo)
		cfg := &core.AnimationConfig{Enabled: true}
		first := props.Clone()
		first.Apply(core.PropOpacity, 0.2)
		second := props.Clone()
		second.Apply(core.PropOpacity, 0.8)
		cfg.Insert(100, first)
		cfg.Insert(101, second)

		dropped := core.Rescale(cfg, 1000, 10)
		if dropped != 1 {
			t.Fatalf("expected 1 drop from collapse, got %d", dropped)
		}
		if len(cfg.Keyframes) != 1 {
			t.Fatalf("expected 1 keyframe, got %d", len(cfg.Keyframes))
		}
		if v, _ := cfg.Keyframes[0].Properties.Value(core.PropOpacity); v != 0.8 {
			t.Errorf("expected later keyframe to win, opacity=%v", v)
		}
	})

	t.Run("RoundTrip Within One Frame", func(t *testing.T) {
		original := []int{0, 37, 82, 150}
		cfg := configWith(t, original...)
		core.Rescale(cfg, 150, 90)
		core.Rescale(cfg, 90, 150)

		got := positions(cfg)
		if len(got) != len(original) {
			t.Fatalf("keyframe count changed: %v", got)
		}
		for i, pos := range got {
			diff := pos - original[i]
			if diff < -1 || diff > 1 {
				t.Errorf("position %d drifted to %d (>±1)", original[i], pos)
			}
		}
	})

	t.Run("Nil And Degenerate Inputs", func(t *testing.T) {
		if core.Rescale(nil, 10, 20) != 0 {
			t.Error("nil config should be a no-op")
		}
		cfg := configWith(t, 10)
		if core.Rescale(cfg, 0, 20) != 0 {
			t.Error("zero old duration should be a no-op")
		}
		if core.Rescale(cfg, 20, 0) != 0 {
			t.Error("zero new duration should be a no-op")
		}
	})
}
