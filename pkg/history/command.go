// Package history implements the transactional command layer: every
// mutating operation on a clip's animation is a Command that captures a
// deep snapshot before changing anything, and a History that serializes
// commands per clip and drives undo/redo.
package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aretw0/keyline/pkg/core"
	"github.com/aretw0/keyline/pkg/engine"
)

// Command is one undoable mutation of a single clip's animation state.
//
// Execute runs the precondition checks and applies the mutation through
// the engine; Undo restores the snapshot captured at construction and
// re-pushes it to the renderer. Redo is History re-running Execute from
// the original parameters, which reproduces the same end state
// deterministically.
type Command interface {
	ID() string
	Name() string
	ClipID() string
	Execute(ctx context.Context) error
	Undo(ctx context.Context) error
}

// base carries what every command shares: the resolved clip, the
// pre-mutation snapshot, and the optional playhead seek.
type base struct {
	id    string
	name  string
	eng   *engine.Engine
	clip  *core.Clip
	snap  *core.Snapshot
	seek  bool
	frame int // absolute target frame, for seeks
}

// newBase resolves the clip (absence is fatal: the command is never
// built) and captures the snapshot before any change.
func newBase(ctx context.Context, eng *engine.Engine, clipID, name string) (base, error) {
	clip, err := eng.ResolveClip(ctx, clipID)
	if err != nil {
		return base{}, fmt.Errorf("%s: %w", name, err)
	}
	return base{
		id:   uuid.NewString(),
		name: name,
		eng:  eng,
		clip: clip,
		snap: eng.CaptureSnapshot(clip),
	}, nil
}

func (b *base) ID() string     { return b.id }
func (b *base) Name() string   { return b.name }
func (b *base) ClipID() string { return b.clip.ID }

// Undo restores the captured snapshot verbatim. The snapshot survives
// the restore, so an undo/redo/undo cycle keeps working.
func (b *base) Undo(ctx context.Context) error {
	if err := b.eng.RestoreSnapshot(ctx, b.clip, b.snap); err != nil {
		return fmt.Errorf("%s: undo: %w", b.name, err)
	}
	if b.seek {
		b.eng.Playhead().SeekTo(b.frame)
	}
	return nil
}

// afterExecute runs the shared post-mutation step.
func (b *base) afterExecute() {
	if b.seek {
		b.eng.Playhead().SeekTo(b.frame)
	}
}
