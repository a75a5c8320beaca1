package platform

import (
	"log/slog"

	"github.com/aretw0/keyline/pkg/adapters/memory"
	"github.com/aretw0/keyline/pkg/engine"
	"github.com/aretw0/keyline/pkg/history"
)

// New wires an Engine and its History from the options. Collaborators
// not supplied default to the in-memory adapters, which makes a bare
// New() usable for tests and tooling.
func New(opts ...Option) (*engine.Engine, *history.History, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.clips == nil {
		o.clips = memory.NewClipStore()
	}
	if o.renderer == nil {
		o.renderer = memory.NewRenderer()
	}

	eng, err := engine.New(engine.Config{
		Clips:        o.clips,
		Renderer:     o.renderer,
		Playhead:     o.playhead,
		Notifier:     o.notifier,
		Logger:       o.logger,
		FrameRate:    o.frameRate,
		CanvasWidth:  o.canvasWidth,
		CanvasHeight: o.canvasHeight,
		EventBuffer:  o.eventBuffer,
	})
	if err != nil {
		return nil, nil, err
	}

	return eng, history.New(o.historyLimit, o.logger), nil
}
