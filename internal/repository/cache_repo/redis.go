package cache_repo

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis/v8"

	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
)

const (
	bucketsKey   = "velvet:offline:buckets"
	bucketPrefix = "velvet:offline:bucket:"
)

type redisStorage struct {
	rdb *redis.Client
}

// NewRedisCacheStorage - бакеты хранятся хэшами velvet:offline:bucket:<name>,
// имена бакетов в множестве velvet:offline:buckets
func NewRedisCacheStorage(rdb *redis.Client) repository.CacheStorage {
	return &redisStorage{rdb: rdb}
}

func (s *redisStorage) Open(ctx context.Context, name string) (repository.CacheBucket, error) {
	if err := s.rdb.SAdd(ctx, bucketsKey, name).Err(); err != nil {
		return nil, err
	}
	return &redisBucket{rdb: s.rdb, name: name}, nil
}

func (s *redisStorage) Keys(ctx context.Context) ([]string, error) {
	return s.rdb.SMembers(ctx, bucketsKey).Result()
}

// Delete - удаляет бакет вместе с содержимым. false, если бакета не было
func (s *redisStorage) Delete(ctx context.Context, name string) (bool, error) {
	var removed *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.SRem(ctx, bucketsKey, name)
		pipe.Del(ctx, bucketPrefix+name)
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed.Val() > 0, nil
}

type redisBucket struct {
	rdb  *redis.Client
	name string
}

func (b *redisBucket) Name() string {
	return b.name
}

func (b *redisBucket) Put(ctx context.Context, key string, resp *model.CachedResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return b.rdb.HSet(ctx, bucketPrefix+b.name, key, raw).Err()
}

// PutAll - записывает все записи одной транзакцией
func (b *redisBucket) PutAll(ctx context.Context, entries map[string]*model.CachedResponse) error {
	values := make(map[string]interface{}, len(entries))
	for key, resp := range entries {
		raw, err := json.Marshal(resp)
		if err != nil {
			return err
		}
		values[key] = raw
	}
	if len(values) == 0 {
		return nil
	}

	_, err := b.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, bucketPrefix+b.name, values)
		return nil
	})
	return err
}

func (b *redisBucket) Match(ctx context.Context, key string) model.StorageResult[*model.CachedResponse] {
	raw, err := b.rdb.HGet(ctx, bucketPrefix+b.name, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.NotFound[*model.CachedResponse]()
		}
		return model.Failed[*model.CachedResponse](err)
	}

	var resp model.CachedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return model.Failed[*model.CachedResponse](err)
	}
	return model.Found(&resp)
}
