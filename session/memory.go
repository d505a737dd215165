package session

import (
	"context"
	"sync"
)

// memoryStore is the default Store when no Redis is configured. State lives
// for the lifetime of the process only.
type memoryStore struct {
	mu       sync.Mutex
	flashes  map[string][]Flash
	formOpen map[string]bool
}

// NewMemoryStore returns an in-process Store.
func NewMemoryStore() Store {
	return &memoryStore{
		flashes:  make(map[string][]Flash),
		formOpen: make(map[string]bool),
	}
}

func (s *memoryStore) AddFlash(_ context.Context, sid string, f Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes[sid] = append(s.flashes[sid], f)
	return nil
}

func (s *memoryStore) ConsumeFlashes(_ context.Context, sid string) ([]Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flashes := s.flashes[sid]
	delete(s.flashes, sid)
	return flashes, nil
}

func (s *memoryStore) SetFormOpen(_ context.Context, sid string, open bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if open {
		s.formOpen[sid] = true
	} else {
		delete(s.formOpen, sid)
	}
	return nil
}

func (s *memoryStore) FormOpen(_ context.Context, sid string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formOpen[sid], nil
}
