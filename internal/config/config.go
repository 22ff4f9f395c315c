package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type PromoConfig interface {
	Discounts() []int
	SpinDuration() time.Duration
	MinRounds() int
	MaxRounds() int
	JitterFraction() float64
	Colors() []string
}

type OfflineConfig interface {
	CacheVersion() string
	Manifest() []string
	MaxCacheableBytes() int64
	OriginURL() string
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
	MaxConns() int32
	ConnectTimeout() time.Duration
}

type RedisConfig interface {
	Address() string
	Password() string
	DB() int
}

type ClientTokenConfig interface {
	SecretKey() []byte
	TTL() time.Duration
}

type AdminConfig interface {
	User() string
	PasswordHash() string
}

type LogConfig interface {
	Level() string
	TracingEnabled() bool
	Pretty() bool
}
