// Package lifecycle adapts keyline event streams to the lifecycle
// supervision framework: a Watch channel becomes a lifecycle.Source that
// a host supervisor can start and drain next to its other workers.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/keyline/pkg/core"
)

type eventSource struct {
	in  <-chan core.Event
	out chan lifecycle.Event
}

// NewSource wraps an animation event channel (engine Watch subscription
// or docfile watcher) as a lifecycle.Source. The source forwards every
// event until the context ends or the input channel closes, then closes
// its output.
func NewSource(in <-chan core.Event) lifecycle.Source {
	return &eventSource{in: in, out: make(chan lifecycle.Event)}
}

func (s *eventSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start spawns the forwarding goroutine through lifecycle.Go so the
// supervisor can track it during shutdown.
func (s *eventSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.pump)
	return nil
}

func (s *eventSource) pump(ctx context.Context) error {
	defer close(s.out)
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-s.in:
			if !ok {
				return nil
			}
			// core.Event satisfies lifecycle.Event through String.
			select {
			case s.out <- e:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
