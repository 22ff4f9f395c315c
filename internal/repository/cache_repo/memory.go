package cache_repo

import (
	"context"
	"sort"
	"sync"

	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
)

type memoryStorage struct {
	mtx     sync.RWMutex
	buckets map[string]*memoryBucket
}

// NewMemoryCacheStorage - бакеты в памяти процесса
func NewMemoryCacheStorage() repository.CacheStorage {
	return &memoryStorage{
		buckets: make(map[string]*memoryBucket),
	}
}

func (s *memoryStorage) Open(_ context.Context, name string) (repository.CacheBucket, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	b, ok := s.buckets[name]
	if !ok {
		b = &memoryBucket{name: name, entries: make(map[string]model.CachedResponse)}
		s.buckets[name] = b
	}
	return b, nil
}

func (s *memoryStorage) Keys(_ context.Context) ([]string, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	keys := make([]string, 0, len(s.buckets))
	for name := range s.buckets {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *memoryStorage) Delete(_ context.Context, name string) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	_, ok := s.buckets[name]
	delete(s.buckets, name)
	return ok, nil
}

type memoryBucket struct {
	mtx     sync.RWMutex
	name    string
	entries map[string]model.CachedResponse
}

func (b *memoryBucket) Name() string {
	return b.name
}

func (b *memoryBucket) Put(_ context.Context, key string, resp *model.CachedResponse) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.entries[key] = copyResponse(resp)
	return nil
}

func (b *memoryBucket) PutAll(_ context.Context, entries map[string]*model.CachedResponse) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	for key, resp := range entries {
		b.entries[key] = copyResponse(resp)
	}
	return nil
}

func (b *memoryBucket) Match(_ context.Context, key string) model.StorageResult[*model.CachedResponse] {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	resp, ok := b.entries[key]
	if !ok {
		return model.NotFound[*model.CachedResponse]()
	}
	out := copyResponse(&resp)
	return model.Found(&out)
}

func copyResponse(resp *model.CachedResponse) model.CachedResponse {
	out := *resp
	out.Header = resp.Header.Clone()
	out.Body = append([]byte(nil), resp.Body...)
	return out
}
