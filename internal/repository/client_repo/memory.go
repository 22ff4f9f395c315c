package client_repo

import (
	"context"
	"sync"

	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
)

type memoryStore struct {
	mu    sync.RWMutex
	store map[string]map[string]string
}

// NewMemoryClientStore - хранилище в памяти процесса, когда redis не настроен
func NewMemoryClientStore() repository.ClientStore {
	return &memoryStore{
		store: make(map[string]map[string]string),
	}
}

func (s *memoryStore) Get(_ context.Context, clientID, key string) model.StorageResult[string] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.store[clientID][key]
	if !ok {
		return model.NotFound[string]()
	}
	return model.Found(val)
}

func (s *memoryStore) Set(_ context.Context, clientID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store[clientID] == nil {
		s.store[clientID] = make(map[string]string)
	}
	s.store[clientID][key] = value
	return nil
}
