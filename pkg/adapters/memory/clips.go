// Package memory provides in-process implementations of the engine's
// collaborator ports: a clip store, a recording renderer, a playhead and
// a notifier. They back the CLI and the test suites, and serve as the
// reference for hosts wiring real implementations.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/keyline/pkg/core"
)

// ClipStore is a map-backed core.ClipProvider.
type ClipStore struct {
	mu    sync.RWMutex
	clips map[string]*core.Clip
}

// NewClipStore creates an empty store.
func NewClipStore() *ClipStore {
	return &ClipStore{clips: make(map[string]*core.Clip)}
}

// Add registers a clip, replacing any clip with the same ID.
func (s *ClipStore) Add(clip *core.Clip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clips[clip.ID] = clip
}

// Remove drops a clip from the store.
func (s *ClipStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clips, id)
}

// Clip implements core.ClipProvider.
func (s *ClipStore) Clip(ctx context.Context, id string) (*core.Clip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clip, ok := s.clips[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrClipNotFound, id)
	}
	return clip, nil
}

// IDs lists the stored clip IDs.
func (s *ClipStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.clips))
	for id := range s.clips {
		ids = append(ids, id)
	}
	return ids
}
