package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"velvet_bite/internal/config"
)

const (
	redisAddrEnvName     = "REDIS_ADDR"
	redisPasswordEnvName = "REDIS_PASSWORD"
	redisDBEnvName       = "REDIS_DB"
)

// ErrRedisNotConfigured - REDIS_ADDR не задан, используется хранилище в памяти
var ErrRedisNotConfigured = errors.New("redis address not found")

type redisConfig struct {
	addr     string
	password string
	db       int
}

func NewRedisConfig() (config.RedisConfig, error) {
	addr := os.Getenv(redisAddrEnvName)
	if len(addr) == 0 {
		return nil, ErrRedisNotConfigured
	}

	db := 0
	if raw := os.Getenv(redisDBEnvName); len(raw) != 0 {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid redis db: %w", err)
		}
		db = parsed
	}

	return &redisConfig{
		addr:     addr,
		password: os.Getenv(redisPasswordEnvName),
		db:       db,
	}, nil
}

func (c *redisConfig) Address() string {
	return c.addr
}

func (c *redisConfig) Password() string {
	return c.password
}

func (c *redisConfig) DB() int {
	return c.db
}
