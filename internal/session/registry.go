package session

import (
	"sync"

	"github.com/eleven-am/stt-sidecar/internal/engine"
	"github.com/eleven-am/stt-sidecar/internal/shared"
)

// Registry maps session identifiers to their engine streams. Its lock guards
// only the map; it is deliberately separate from the decode lock so session
// bookkeeping never waits behind decode work for unrelated sessions.
type Registry struct {
	rec engine.Recognizer

	mu      sync.RWMutex
	streams map[string]engine.Stream
}

func NewRegistry(rec engine.Recognizer) *Registry {
	return &Registry{
		rec:     rec,
		streams: make(map[string]engine.Stream),
	}
}

// Create allocates a fresh identifier with a new engine stream. Identifiers
// are never reused: once removed, an id stays invalid forever.
func (r *Registry) Create() (string, error) {
	stream, err := r.rec.NewStream()
	if err != nil {
		return "", err
	}

	id := shared.NewID("sess_")
	r.mu.Lock()
	r.streams[id] = stream
	r.mu.Unlock()
	return id, nil
}

// Lookup returns the stream for id without removing it.
func (r *Registry) Lookup(id string) (engine.Stream, error) {
	r.mu.RLock()
	stream, ok := r.streams[id]
	r.mu.RUnlock()
	if !ok {
		return nil, shared.ErrNotFound
	}
	return stream, nil
}

// Remove atomically takes the stream out of the registry. Exactly one caller
// can win; a concurrent push racing an end observes either the full entry or
// ErrNotFound, never a torn state.
func (r *Registry) Remove(id string) (engine.Stream, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stream, ok := r.streams[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	delete(r.streams, id)
	return stream, nil
}

// Count returns the number of active sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.streams)
}
