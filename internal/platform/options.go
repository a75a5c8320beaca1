package platform

import (
	"log/slog"

	"github.com/aretw0/keyline/pkg/core"
)

// options holds the internal configuration for the keyline engine.
type options struct {
	clips        core.ClipProvider
	renderer     core.Renderer
	playhead     core.Playhead
	notifier     core.Notifier
	logger       *slog.Logger
	frameRate    float64
	canvasWidth  float64
	canvasHeight float64
	eventBuffer  int
	historyLimit int
}

// Option defines a functional option for configuring keyline.
type Option func(*options)

// defaultOptions returns the default configuration. Collaborators left
// nil are filled with in-memory implementations by the factory.
func defaultOptions() *options {
	return &options{
		frameRate:    30,
		canvasWidth:  1920,
		canvasHeight: 1080,
		eventBuffer:  100,
	}
}

// WithClipProvider injects the host's clip lookup.
func WithClipProvider(clips core.ClipProvider) Option {
	return func(o *options) {
		o.clips = clips
	}
}

// WithRenderer injects the compositing renderer the engine syncs with.
func WithRenderer(r core.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithPlayhead injects the playhead controller used for post-command
// seeks.
func WithPlayhead(p core.Playhead) Option {
	return func(o *options) {
		o.playhead = p
	}
}

// WithNotifier injects the sink for user-facing warnings.
func WithNotifier(n core.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithLogger sets the logger for the engine and history.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFrameRate sets the project frame rate used to convert keyframe
// positions into the renderer's time unit. Defaults to 30.
func WithFrameRate(fps float64) Option {
	return func(o *options) {
		o.frameRate = fps
	}
}

// WithCanvas sets the project canvas size used to translate between
// engine pixels and renderer-normalized coordinates. Defaults to
// 1920x1080.
func WithCanvas(width, height float64) Option {
	return func(o *options) {
		o.canvasWidth = width
		o.canvasHeight = height
	}
}

// WithEventBuffer sets the per-subscriber event buffer size. Zero means
// default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithHistoryLimit bounds the undo stack; oldest commands are evicted
// past the limit. Zero means unbounded.
func WithHistoryLimit(limit int) Option {
	return func(o *options) {
		o.historyLimit = limit
	}
}
