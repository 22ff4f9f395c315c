package client_repo

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"

	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
)

const keyPrefix = "velvet:client:"

type redisStore struct {
	rdb *redis.Client
}

// NewRedisClientStore - ключи клиента хранятся в хэше velvet:client:<id>
func NewRedisClientStore(rdb *redis.Client) repository.ClientStore {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Get(ctx context.Context, clientID, key string) model.StorageResult[string] {
	val, err := s.rdb.HGet(ctx, keyPrefix+clientID, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.NotFound[string]()
		}
		return model.Failed[string](err)
	}
	return model.Found(val)
}

func (s *redisStore) Set(ctx context.Context, clientID, key, value string) error {
	return s.rdb.HSet(ctx, keyPrefix+clientID, key, value).Err()
}
