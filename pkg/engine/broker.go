package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/keyline/pkg/core"
)

// broker fans animation events out to Watch subscribers. Delivery is
// decoupled from the publisher: every subscriber gets a buffered
// channel, and a subscriber that stops draining loses events instead of
// blocking the engine.
type broker struct {
	mu     sync.Mutex
	subs   map[int]*subscription
	nextID int
	buffer int
	logger *slog.Logger
}

type subscription struct {
	pattern string
	ch      chan core.Event
}

func newBroker(buffer int, logger *slog.Logger) *broker {
	if buffer <= 0 {
		buffer = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &broker{
		subs:   make(map[int]*subscription),
		buffer: buffer,
		logger: logger,
	}
}

// subscribe registers a clip-ID glob pattern (doublestar syntax). The
// channel closes when ctx is cancelled.
func (b *broker) subscribe(ctx context.Context, pattern string) <-chan core.Event {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	sub := &subscription{pattern: pattern, ch: make(chan core.Event, b.buffer)}
	b.subs[id] = sub
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
		close(sub.ch)
	}()

	return sub.ch
}

// publish delivers the event to every matching subscriber without ever
// blocking the caller.
func (b *broker) publish(e core.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		match, err := doublestar.Match(sub.pattern, e.ClipID)
		if err != nil {
			b.logger.Warn("invalid watch pattern", "pattern", sub.pattern, "error", err)
			continue
		}
		if !match {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			b.logger.Warn("watch subscriber lagging, event dropped", "pattern", sub.pattern, "event", e.String())
		}
	}
}

func (b *broker) subscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
