package memory

import (
	"sync"
)

// Playhead is an in-process core.Playhead tracking the last seek.
type Playhead struct {
	mu  sync.Mutex
	pos int
	set bool
}

// SeekTo implements core.Playhead.
func (p *Playhead) SeekTo(absFrame int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = absFrame
	p.set = true
}

// Position returns the last sought frame and whether any seek happened.
func (p *Playhead) Position() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos, p.set
}

// Notifier collects user-facing warnings for inspection.
type Notifier struct {
	mu       sync.Mutex
	warnings []Warning
}

// Warning is one captured Warn call.
type Warning struct {
	Title   string
	Message string
}

// Warn implements core.Notifier.
func (n *Notifier) Warn(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, Warning{Title: title, Message: message})
}

// Warnings returns a copy of the captured warnings.
func (n *Notifier) Warnings() []Warning {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Warning, len(n.warnings))
	copy(out, n.warnings)
	return out
}
