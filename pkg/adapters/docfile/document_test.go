package docfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/keyline/pkg/core"
)

func testClip(t *testing.T) *core.Clip {
	t.Helper()
	baseline, err := core.DefaultProperties(core.KindVideo)
	if err != nil {
		t.Fatalf("DefaultProperties() error = %v", err)
	}
	baseline.Apply(core.PropX, 120)
	baseline.Apply(core.PropOpacity, 0.75)

	kf0, _ := core.DefaultProperties(core.KindVideo)
	kf1, _ := core.DefaultProperties(core.KindVideo)
	kf1.Apply(core.PropOpacity, 0)

	return &core.Clip{
		ID:            "intro",
		Kind:          core.KindVideo,
		TimelineStart: 100,
		TimelineEnd:   250,
		Baseline:      baseline,
		Animation: &core.AnimationConfig{
			Keyframes: []core.Keyframe{
				{FramePosition: 0, Properties: kf0},
				{FramePosition: 150, Properties: kf1},
			},
			Enabled: true,
			Easing:  "ease-in",
		},
	}
}

func TestRoundTrip(t *testing.T) {
	clip := testClip(t)

	data, err := Marshal(clip)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	// Property names are the persisted keys; zIndex stays camelCase.
	if !strings.Contains(string(data), "zIndex:") {
		t.Errorf("document should persist the zIndex key, got:\n%s", data)
	}

	got, err := Parse(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got.ID != clip.ID || got.Kind != clip.Kind {
		t.Errorf("identity mismatch: got %s/%s, want %s/%s", got.ID, got.Kind, clip.ID, clip.Kind)
	}
	if got.TimelineStart != 100 || got.TimelineEnd != 250 {
		t.Errorf("span mismatch: got [%d, %d]", got.TimelineStart, got.TimelineEnd)
	}
	if v, _ := got.Baseline.Value(core.PropX); v != 120 {
		t.Errorf("baseline x = %v, want 120", v)
	}
	if v, _ := got.Baseline.Value(core.PropOpacity); v != 0.75 {
		t.Errorf("baseline opacity = %v, want 0.75", v)
	}

	if got.Animation == nil {
		t.Fatal("animation lost in round trip")
	}
	if !got.Animation.Enabled || got.Animation.Easing != "ease-in" {
		t.Errorf("animation config mismatch: %+v", got.Animation)
	}
	if len(got.Animation.Keyframes) != 2 {
		t.Fatalf("keyframes = %d, want 2", len(got.Animation.Keyframes))
	}
	kf, ok := got.Animation.At(150)
	if !ok {
		t.Fatal("keyframe at 150 lost in round trip")
	}
	if v, _ := kf.Properties.Value(core.PropOpacity); v != 0 {
		t.Errorf("keyframe opacity = %v, want 0", v)
	}
}

func TestRoundTrip_NoAnimation(t *testing.T) {
	clip := testClip(t)
	clip.Animation = nil

	data, err := Marshal(clip)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "animation") {
		t.Errorf("document should omit the animation block, got:\n%s", data)
	}

	got, err := Parse(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Animation != nil {
		t.Errorf("Animation = %+v, want nil", got.Animation)
	}
}

func TestDecode_SortsKeyframes(t *testing.T) {
	doc := `
clip:
  id: clip-1
  kind: audio
  timeline_start: 0
  timeline_end: 90
animation:
  is_enabled: true
  keyframes:
    - frame_position: 60
      properties: {volume: 0.2}
    - frame_position: 0
      properties: {volume: 1}
`
	clip, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	kfs := clip.Animation.Keyframes
	if len(kfs) != 2 || kfs[0].FramePosition != 0 || kfs[1].FramePosition != 60 {
		t.Errorf("keyframes not sorted ascending: %+v", kfs)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown property for kind",
			doc: `
clip:
  id: clip-1
  kind: audio
  timeline_start: 0
  timeline_end: 90
  baseline: {opacity: 1}
`,
		},
		{
			name: "negative frame position",
			doc: `
clip:
  id: clip-1
  kind: video
  timeline_start: 0
  timeline_end: 90
animation:
  keyframes:
    - frame_position: -5
      properties: {}
`,
		},
		{
			name: "unknown kind",
			doc: `
clip:
  id: clip-1
  kind: hologram
  timeline_start: 0
  timeline_end: 90
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			if !errors.Is(err, core.ErrValidation) {
				t.Errorf("Parse() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intro.yaml")
	clip := testClip(t)

	if err := Save(path, clip); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.ID != "intro" || len(got.Animation.Keyframes) != 2 {
		t.Errorf("loaded clip mismatch: %+v", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}
