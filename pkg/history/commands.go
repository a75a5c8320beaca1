package history

import (
	"context"

	"github.com/aretw0/keyline/pkg/core"
	"github.com/aretw0/keyline/pkg/engine"
)

// ToggleCommand flips the keyframe state at an absolute frame.
type ToggleCommand struct {
	base
	state engine.KeyframeState
}

// NewToggle builds a toggle command. seek moves the playhead to the
// target frame after a successful execute or undo.
func NewToggle(ctx context.Context, eng *engine.Engine, clipID string, absFrame int, seek bool) (*ToggleCommand, error) {
	b, err := newBase(ctx, eng, clipID, "toggle-keyframe")
	if err != nil {
		return nil, err
	}
	b.frame = absFrame
	b.seek = seek
	return &ToggleCommand{base: b}, nil
}

func (c *ToggleCommand) Execute(ctx context.Context) error {
	state, err := c.eng.Toggle(ctx, c.clip, c.frame)
	if err != nil {
		return err
	}
	c.state = state
	c.afterExecute()
	return nil
}

// State returns the keyframe state the toggle produced. Only valid
// after a successful Execute; reading it avoids a second state
// derivation outside the clip's guard.
func (c *ToggleCommand) State() engine.KeyframeState {
	return c.state
}

// SetPropertyCommand is the state-dependent property change.
type SetPropertyCommand struct {
	base
	property string
	value    float64
}

// NewSetProperty builds a property-change command.
func NewSetProperty(ctx context.Context, eng *engine.Engine, clipID string, absFrame int, property string, value float64, seek bool) (*SetPropertyCommand, error) {
	b, err := newBase(ctx, eng, clipID, "set-property")
	if err != nil {
		return nil, err
	}
	b.frame = absFrame
	b.seek = seek
	return &SetPropertyCommand{base: b, property: property, value: value}, nil
}

func (c *SetPropertyCommand) Execute(ctx context.Context) error {
	if err := c.eng.SetProperty(ctx, c.clip, c.frame, c.property, c.value); err != nil {
		return err
	}
	c.afterExecute()
	return nil
}

// ClearCommand removes every keyframe and disables the animation.
type ClearCommand struct {
	base
}

// NewClear builds a clear-all command.
func NewClear(ctx context.Context, eng *engine.Engine, clipID string) (*ClearCommand, error) {
	b, err := newBase(ctx, eng, clipID, "clear-animation")
	if err != nil {
		return nil, err
	}
	return &ClearCommand{base: b}, nil
}

func (c *ClearCommand) Execute(ctx context.Context) error {
	return c.eng.ClearAnimation(ctx, c.clip)
}

// CreateKeyframeCommand inserts a keyframe capturing live values.
type CreateKeyframeCommand struct {
	base
}

// NewCreateKeyframe builds an explicit keyframe creation command.
func NewCreateKeyframe(ctx context.Context, eng *engine.Engine, clipID string, absFrame int, seek bool) (*CreateKeyframeCommand, error) {
	b, err := newBase(ctx, eng, clipID, "create-keyframe")
	if err != nil {
		return nil, err
	}
	b.frame = absFrame
	b.seek = seek
	return &CreateKeyframeCommand{base: b}, nil
}

func (c *CreateKeyframeCommand) Execute(ctx context.Context) error {
	if err := c.eng.CreateKeyframe(ctx, c.clip, c.frame); err != nil {
		return err
	}
	c.afterExecute()
	return nil
}

// DeleteKeyframeCommand removes the keyframe at an exact frame.
type DeleteKeyframeCommand struct {
	base
}

// NewDeleteKeyframe builds an explicit keyframe deletion command.
func NewDeleteKeyframe(ctx context.Context, eng *engine.Engine, clipID string, absFrame int, seek bool) (*DeleteKeyframeCommand, error) {
	b, err := newBase(ctx, eng, clipID, "delete-keyframe")
	if err != nil {
		return nil, err
	}
	b.frame = absFrame
	b.seek = seek
	return &DeleteKeyframeCommand{base: b}, nil
}

func (c *DeleteKeyframeCommand) Execute(ctx context.Context) error {
	if err := c.eng.DeleteKeyframe(ctx, c.clip, c.frame); err != nil {
		return err
	}
	c.afterExecute()
	return nil
}

// UpdateKeyframeCommand replaces a keyframe's property snapshot.
type UpdateKeyframeCommand struct {
	base
	props core.Properties
}

// NewUpdateKeyframe builds a keyframe update command. The properties are
// cloned at construction so redo replays the original parameters even if
// the caller mutates its copy afterwards.
func NewUpdateKeyframe(ctx context.Context, eng *engine.Engine, clipID string, absFrame int, props core.Properties, seek bool) (*UpdateKeyframeCommand, error) {
	b, err := newBase(ctx, eng, clipID, "update-keyframe")
	if err != nil {
		return nil, err
	}
	b.frame = absFrame
	b.seek = seek
	if props != nil {
		props = props.Clone()
	}
	return &UpdateKeyframeCommand{base: b, props: props}, nil
}

func (c *UpdateKeyframeCommand) Execute(ctx context.Context) error {
	if err := c.eng.UpdateKeyframe(ctx, c.clip, c.frame, c.props); err != nil {
		return err
	}
	c.afterExecute()
	return nil
}
