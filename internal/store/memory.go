package store

import (
	"errors"
	"sync/atomic"

	"github.com/i474232898/japan-weather/internal/weather"
)

var (
	// ErrNotFound is returned before the first snapshot has been published.
	ErrNotFound = errors.New("no weather snapshot published yet")
)

// MemoryStore holds the single current snapshot. Publishing swaps the
// pointer, so readers see either the previous or the new snapshot, never a
// partially built one. Snapshots must not be mutated after Publish.
type MemoryStore struct {
	latest    atomic.Pointer[weather.Snapshot]
	published atomic.Uint64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Publish replaces the current snapshot. Nil is ignored.
func (s *MemoryStore) Publish(snapshot *weather.Snapshot) {
	if snapshot == nil {
		return
	}
	s.latest.Store(snapshot)
	s.published.Add(1)
}

// Latest returns the current snapshot.
func (s *MemoryStore) Latest() (*weather.Snapshot, error) {
	snap := s.latest.Load()
	if snap == nil {
		return nil, ErrNotFound
	}
	return snap, nil
}

// Generation counts successful publications.
func (s *MemoryStore) Generation() uint64 {
	return s.published.Load()
}
