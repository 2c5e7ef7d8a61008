package repository

import (
	"context"
	"sync"

	"chat-connector/internal/domain/entities"
)

// MemoryContextStore is the default, in-process store. Contexts are copied
// on the way in and out so callers never alias the stored slices.
type MemoryContextStore struct {
	mu    sync.RWMutex
	items map[string]entities.Context
}

func NewMemoryContextStore() *MemoryContextStore {
	return &MemoryContextStore{items: make(map[string]entities.Context)}
}

func (s *MemoryContextStore) Get(_ context.Context, userID string) (entities.Context, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.items[userID]
	if !ok {
		return entities.Context{}, false, nil
	}
	return cloneContext(entity), true, nil
}

func (s *MemoryContextStore) Put(_ context.Context, userID string, entity entities.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[userID] = cloneContext(entity)
	return nil
}

func (s *MemoryContextStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, userID)
	return nil
}

func cloneContext(c entities.Context) entities.Context {
	clone := c
	clone.History = append([]entities.Turn(nil), c.History...)
	clone.LastEntities = append([]entities.Entity(nil), c.LastEntities...)
	return clone
}
