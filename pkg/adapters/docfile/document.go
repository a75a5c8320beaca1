// Package docfile reads and writes the persisted representation of a
// clip and its animation as a YAML document, and watches documents for
// external edits. Project persistence itself is owned by the host; this
// package only guarantees that the representation round-trips.
package docfile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/keyline/pkg/core"
)

// Document is the on-disk form of a clip with its animation.
type Document struct {
	Clip      ClipDocument       `yaml:"clip"`
	Animation *AnimationDocument `yaml:"animation,omitempty"`
}

// ClipDocument mirrors core.Clip.
type ClipDocument struct {
	ID            string             `yaml:"id"`
	Kind          string             `yaml:"kind"`
	TimelineStart int                `yaml:"timeline_start"`
	TimelineEnd   int                `yaml:"timeline_end"`
	Baseline      map[string]float64 `yaml:"baseline"`
}

// AnimationDocument mirrors core.AnimationConfig.
type AnimationDocument struct {
	Keyframes []KeyframeDocument `yaml:"keyframes"`
	IsEnabled bool               `yaml:"is_enabled"`
	Easing    string             `yaml:"easing,omitempty"`
}

// KeyframeDocument mirrors core.Keyframe.
type KeyframeDocument struct {
	FramePosition int                `yaml:"frame_position"`
	Properties    map[string]float64 `yaml:"properties"`
}

// Encode converts a clip into its document form.
func Encode(clip *core.Clip) *Document {
	doc := &Document{
		Clip: ClipDocument{
			ID:            clip.ID,
			Kind:          string(clip.Kind),
			TimelineStart: clip.TimelineStart,
			TimelineEnd:   clip.TimelineEnd,
			Baseline:      encodeProperties(clip.Baseline),
		},
	}
	if clip.Animation != nil {
		anim := &AnimationDocument{
			IsEnabled: clip.Animation.Enabled,
			Easing:    clip.Animation.Easing,
		}
		for _, kf := range clip.Animation.Keyframes {
			anim.Keyframes = append(anim.Keyframes, KeyframeDocument{
				FramePosition: kf.FramePosition,
				Properties:    encodeProperties(kf.Properties),
			})
		}
		doc.Animation = anim
	}
	return doc
}

// Decode converts a document back into a clip.
func Decode(doc *Document) (*core.Clip, error) {
	kind := core.MediaKind(doc.Clip.Kind)
	baseline, err := decodeProperties(kind, doc.Clip.Baseline)
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	clip := &core.Clip{
		ID:            doc.Clip.ID,
		Kind:          kind,
		TimelineStart: doc.Clip.TimelineStart,
		TimelineEnd:   doc.Clip.TimelineEnd,
		Baseline:      baseline,
	}
	if doc.Animation != nil {
		cfg := &core.AnimationConfig{
			Enabled: doc.Animation.IsEnabled,
			Easing:  doc.Animation.Easing,
		}
		for _, kd := range doc.Animation.Keyframes {
			if kd.FramePosition < 0 {
				return nil, fmt.Errorf("%w: negative frame position %d", core.ErrValidation, kd.FramePosition)
			}
			props, err := decodeProperties(kind, kd.Properties)
			if err != nil {
				return nil, fmt.Errorf("keyframe %d: %w", kd.FramePosition, err)
			}
			cfg.Insert(kd.FramePosition, props)
		}
		clip.Animation = cfg
	}
	return clip, nil
}

// Parse reads a YAML stream and decodes it into a clip.
func Parse(r io.Reader) (*core.Clip, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return Decode(&doc)
}

// Marshal serializes a clip to its YAML document form.
func Marshal(clip *core.Clip) ([]byte, error) {
	return yaml.Marshal(Encode(clip))
}

// Load reads a clip document from a file.
func Load(path string) (*core.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	clip, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return clip, nil
}

// Save writes a clip document to a file.
func Save(path string, clip *core.Clip) error {
	data, err := Marshal(clip)
	if err != nil {
		return fmt.Errorf("failed to serialize clip %s: %w", clip.ID, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func encodeProperties(props core.Properties) map[string]float64 {
	if props == nil {
		return nil
	}
	out := make(map[string]float64, len(props.Names()))
	for _, name := range props.Names() {
		if v, ok := props.Value(name); ok {
			out[name] = v
		}
	}
	return out
}

func decodeProperties(kind core.MediaKind, values map[string]float64) (core.Properties, error) {
	props, err := core.DefaultProperties(kind)
	if err != nil {
		return nil, err
	}
	for name, v := range values {
		if !props.Apply(name, v) {
			return nil, fmt.Errorf("%w: property %q does not exist on %q clips", core.ErrValidation, name, kind)
		}
	}
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return props, nil
}
