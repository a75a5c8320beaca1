package engine

import (
	"github.com/aretw0/introspection"
)

// EngineState exposes internal state for observability.
type EngineState struct {
	WatchSubscriptions int     `json:"watch_subscriptions"`
	FrameRate          float64 `json:"frame_rate"`
	CanvasWidth        float64 `json:"canvas_width"`
	CanvasHeight       float64 `json:"canvas_height"`
}

// State implements introspection.Introspectable.
func (e *Engine) State() any {
	return EngineState{
		WatchSubscriptions: e.broker.subscriberCount(),
		FrameRate:          e.bridge.frameRate,
		CanvasWidth:        e.bridge.canvasW,
		CanvasHeight:       e.bridge.canvasH,
	}
}

// ComponentType implements introspection.Component.
func (e *Engine) ComponentType() string {
	return "animation-engine"
}

var _ introspection.Introspectable = (*Engine)(nil)
var _ introspection.Component = (*Engine)(nil)
