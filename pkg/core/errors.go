package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrClipNotFound means a referenced clip does not exist. Fatal at
	// command construction; such a command never enters history.
	ErrClipNotFound = errors.New("clip not found")

	// ErrOutOfRange means a target frame lies outside the clip's
	// timeline span. Rejected before any mutation.
	ErrOutOfRange = errors.New("frame outside clip span")

	// ErrValidation means a property set is incomplete or malformed for
	// the clip's kind. Rejected before insertion.
	ErrValidation = errors.New("invalid properties")

	// ErrNoKeyframe means an operation required an exact keyframe at
	// the target frame and none exists.
	ErrNoKeyframe = errors.New("no keyframe at frame")
)

// SyncError wraps a renderer push or property application that failed
// after a successful in-memory mutation. The model is then "ahead of"
// the renderer; callers must treat this as a recoverable inconsistency
// and exclude the command from history.
type SyncError struct {
	Op  string // which bridge operation failed
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("renderer sync failed during %s: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }
