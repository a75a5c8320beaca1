package core

import "fmt"

// Animatable property names. Not every name applies to every kind;
// Apply reports whether the property exists on the receiver's set.
// The names double as the persisted and wire keys, so zIndex keeps the
// camelCase form external tooling expects.
const (
	PropX        = "x"
	PropY        = "y"
	PropWidth    = "width"
	PropHeight   = "height"
	PropRotation = "rotation"
	PropOpacity  = "opacity"
	PropZIndex   = "zIndex"
	PropVolume   = "volume"
)

// Properties is the tagged union of per-kind animatable property sets.
// Exactly one concrete implementation exists per media-kind family, and
// every read site switches exhaustively on the concrete type rather than
// probing optional fields.
type Properties interface {
	// Kind returns the media kind this set belongs to.
	Kind() MediaKind

	// Clone returns a deep, independent copy.
	Clone() Properties

	// Validate checks internal consistency (kind tag, value ranges).
	Validate() error

	// Value returns the named property, reporting whether the name
	// exists on this set.
	Value(name string) (float64, bool)

	// Apply sets the named property in place, reporting whether the
	// name exists on this set.
	Apply(name string, value float64) bool

	// Names lists the property names of this set in a stable order.
	Names() []string
}

// VisualProperties is the animatable set for image and text clips.
// Media distinguishes the two; use VideoProperties for video clips.
type VisualProperties struct {
	Media    MediaKind
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation float64
	Opacity  float64
	ZIndex   int
}

func (p *VisualProperties) Kind() MediaKind { return p.Media }

func (p *VisualProperties) Clone() Properties {
	c := *p
	return &c
}

func (p *VisualProperties) Validate() error {
	if p.Media != KindImage && p.Media != KindText {
		return fmt.Errorf("%w: visual properties tagged %q", ErrValidation, p.Media)
	}
	if p.Opacity < 0 || p.Opacity > 1 {
		return fmt.Errorf("%w: opacity %v outside [0,1]", ErrValidation, p.Opacity)
	}
	return nil
}

func (p *VisualProperties) Value(name string) (float64, bool) {
	switch name {
	case PropX:
		return p.X, true
	case PropY:
		return p.Y, true
	case PropWidth:
		return p.Width, true
	case PropHeight:
		return p.Height, true
	case PropRotation:
		return p.Rotation, true
	case PropOpacity:
		return p.Opacity, true
	case PropZIndex:
		return float64(p.ZIndex), true
	}
	return 0, false
}

func (p *VisualProperties) Apply(name string, value float64) bool {
	switch name {
	case PropX:
		p.X = value
	case PropY:
		p.Y = value
	case PropWidth:
		p.Width = value
	case PropHeight:
		p.Height = value
	case PropRotation:
		p.Rotation = value
	case PropOpacity:
		p.Opacity = value
	case PropZIndex:
		p.ZIndex = int(value)
	default:
		return false
	}
	return true
}

func (p *VisualProperties) Names() []string {
	return []string{PropX, PropY, PropWidth, PropHeight, PropRotation, PropOpacity, PropZIndex}
}

// VideoProperties is the animatable set for video clips: the visual set
// plus volume.
type VideoProperties struct {
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation float64
	Opacity  float64
	ZIndex   int
	Volume   float64
}

func (p *VideoProperties) Kind() MediaKind { return KindVideo }

func (p *VideoProperties) Clone() Properties {
	c := *p
	return &c
}

func (p *VideoProperties) Validate() error {
	if p.Opacity < 0 || p.Opacity > 1 {
		return fmt.Errorf("%w: opacity %v outside [0,1]", ErrValidation, p.Opacity)
	}
	if p.Volume < 0 || p.Volume > 1 {
		return fmt.Errorf("%w: volume %v outside [0,1]", ErrValidation, p.Volume)
	}
	return nil
}

func (p *VideoProperties) Value(name string) (float64, bool) {
	switch name {
	case PropX:
		return p.X, true
	case PropY:
		return p.Y, true
	case PropWidth:
		return p.Width, true
	case PropHeight:
		return p.Height, true
	case PropRotation:
		return p.Rotation, true
	case PropOpacity:
		return p.Opacity, true
	case PropZIndex:
		return float64(p.ZIndex), true
	case PropVolume:
		return p.Volume, true
	}
	return 0, false
}

func (p *VideoProperties) Apply(name string, value float64) bool {
	switch name {
	case PropX:
		p.X = value
	case PropY:
		p.Y = value
	case PropWidth:
		p.Width = value
	case PropHeight:
		p.Height = value
	case PropRotation:
		p.Rotation = value
	case PropOpacity:
		p.Opacity = value
	case PropZIndex:
		p.ZIndex = int(value)
	case PropVolume:
		p.Volume = value
	default:
		return false
	}
	return true
}

func (p *VideoProperties) Names() []string {
	return []string{PropX, PropY, PropWidth, PropHeight, PropRotation, PropOpacity, PropZIndex, PropVolume}
}

// AudioProperties is the animatable set for audio-only clips.
type AudioProperties struct {
	Volume float64
	ZIndex int
}

func (p *AudioProperties) Kind() MediaKind { return KindAudio }

func (p *AudioProperties) Clone() Properties {
	c := *p
	return &c
}

func (p *AudioProperties) Validate() error {
	if p.Volume < 0 || p.Volume > 1 {
		return fmt.Errorf("%w: volume %v outside [0,1]", ErrValidation, p.Volume)
	}
	return nil
}

func (p *AudioProperties) Value(name string) (float64, bool) {
	switch name {
	case PropVolume:
		return p.Volume, true
	case PropZIndex:
		return float64(p.ZIndex), true
	}
	return 0, false
}

func (p *AudioProperties) Apply(name string, value float64) bool {
	switch name {
	case PropVolume:
		p.Volume = value
	case PropZIndex:
		p.ZIndex = int(value)
	default:
		return false
	}
	return true
}

func (p *AudioProperties) Names() []string {
	return []string{PropVolume, PropZIndex}
}

// DefaultProperties returns a zero-positioned property set for the kind,
// suitable as an initial baseline. Opacity and volume default to 1.
func DefaultProperties(kind MediaKind) (Properties, error) {
	switch kind {
	case KindVideo:
		return &VideoProperties{Width: 1920, Height: 1080, Opacity: 1, Volume: 1}, nil
	case KindImage, KindText:
		return &VisualProperties{Media: kind, Width: 1920, Height: 1080, Opacity: 1}, nil
	case KindAudio:
		return &AudioProperties{Volume: 1}, nil
	}
	return nil, fmt.Errorf("%w: unknown media kind %q", ErrValidation, kind)
}

// ValidateFor checks that the property set is complete and well-formed
// for the given clip kind. Keyframe insertion goes through this before
// touching the store.
func ValidateFor(kind MediaKind, props Properties) error {
	if props == nil {
		return fmt.Errorf("%w: nil properties for kind %q", ErrValidation, kind)
	}
	if props.Kind() != kind {
		return fmt.Errorf("%w: %q properties on a %q clip", ErrValidation, props.Kind(), kind)
	}
	return props.Validate()
}
