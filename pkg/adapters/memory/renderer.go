package memory

import (
	"context"
	"sync"

	"github.com/aretw0/keyline/pkg/core"
)

// Renderer is a recording core.Renderer. It remembers every pushed
// animation description and applied property, and can replay
// renderer-originated edits to its subscribers, which is how tests and
// the CLI exercise the inbound half of the sync bridge.
type Renderer struct {
	mu sync.Mutex

	// PushErr and SetErr, when non-nil, are returned by the respective
	// calls. Tests use them to simulate renderer failures.
	PushErr error
	SetErr  error

	pushes  []core.AnimationDescription
	applied map[string]map[string]float64 // clip ID -> property -> value
	subs    map[string]map[int]func(core.PropsChange)
	nextSub int
}

// NewRenderer creates an empty recording renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		applied: make(map[string]map[string]float64),
		subs:    make(map[string]map[int]func(core.PropsChange)),
	}
}

// PushAnimation implements core.Renderer.
func (r *Renderer) PushAnimation(ctx context.Context, clip *core.Clip, desc core.AnimationDescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.PushErr != nil {
		return r.PushErr
	}
	r.pushes = append(r.pushes, desc)
	return nil
}

// SetProperty implements core.Renderer.
func (r *Renderer) SetProperty(clip *core.Clip, property string, value float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SetErr != nil {
		return r.SetErr
	}
	props, ok := r.applied[clip.ID]
	if !ok {
		props = make(map[string]float64)
		r.applied[clip.ID] = props
	}
	props[property] = value
	return nil
}

// OnPropsChange implements core.Renderer.
func (r *Renderer) OnPropsChange(clipID string, fn func(core.PropsChange)) (cancel func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, ok := r.subs[clipID]
	if !ok {
		subs = make(map[int]func(core.PropsChange))
		r.subs[clipID] = subs
	}
	id := r.nextSub
	r.nextSub++
	subs[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs[clipID], id)
	}
}

// EmitPropsChange simulates a renderer-originated edit (e.g. a handle
// drag) and delivers it to the clip's subscribers synchronously.
func (r *Renderer) EmitPropsChange(chg core.PropsChange) {
	r.mu.Lock()
	fns := make([]func(core.PropsChange), 0, len(r.subs[chg.ClipID]))
	for _, fn := range r.subs[chg.ClipID] {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(chg)
	}
}

// Pushes returns a copy of the recorded animation descriptions.
func (r *Renderer) Pushes() []core.AnimationDescription {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.AnimationDescription, len(r.pushes))
	copy(out, r.pushes)
	return out
}

// LastPush returns the most recent description, if any.
func (r *Renderer) LastPush() (core.AnimationDescription, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pushes) == 0 {
		return core.AnimationDescription{}, false
	}
	return r.pushes[len(r.pushes)-1], true
}

// Applied returns the value most recently applied via SetProperty.
func (r *Renderer) Applied(clipID, property string) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.applied[clipID][property]
	return v, ok
}
