package core

import (
	"sync"

	"github.com/segmentio/ksuid"
)

// MemoryStore is an in-memory Store[ID,Evt] guarded by a single RWMutex:
// one slice per stream in a single map, sequential version assignment on append.
type MemoryStore[ID comparable, Evt Message] struct {
	mu      sync.RWMutex
	streams map[ID][]Persisted[ID, Evt]
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore[ID comparable, Evt Message]() *MemoryStore[ID, Evt] {
	return &MemoryStore[ID, Evt]{streams: make(map[ID][]Persisted[ID, Evt])}
}

func (s *MemoryStore[ID, Evt]) Append(streamID ID, check Check, events []Evt) (int, error) {
	if len(events) == 0 {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return len(s.streams[streamID]), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.streams[streamID]
	currentVersion := len(current)

	if check.mustBe && currentVersion != check.version {
		return 0, ConflictError[ID]{StreamID: streamID, Expected: check.version, Actual: currentVersion}
	}

	next := make([]Persisted[ID, Evt], 0, len(current)+len(events))
	next = append(next, current...)
	for i, event := range events {
		next = append(next, Persisted[ID, Evt]{
			StreamID: streamID,
			Version:  currentVersion + i + 1,
			EventID:  ksuid.New().String(),
			Event:    event,
		})
	}
	s.streams[streamID] = next

	return currentVersion + len(events), nil
}

func (s *MemoryStore[ID, Evt]) Stream(streamID ID, sel VersionSelect) ([]Persisted[ID, Evt], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.streams[streamID]
	if sel.from == 0 {
		out := make([]Persisted[ID, Evt], len(stored))
		copy(out, stored)
		return out, nil
	}

	out := make([]Persisted[ID, Evt], 0, len(stored))
	for _, p := range stored {
		if p.Version >= sel.from {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore[ID, Evt]) StreamIDs() []ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]ID, 0, len(s.streams))
	for id, events := range s.streams {
		if len(events) > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
