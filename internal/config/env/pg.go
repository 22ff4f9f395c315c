package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"velvet_bite/internal/config"
)

const (
	pgDSNEnvName            = "PG_DSN"
	pgMaxConnsEnvName       = "PG_MAX_CONNS"
	pgConnectTimeoutEnvName = "PG_CONNECT_TIMEOUT"

	defaultPGMaxConns       = 10
	defaultPGConnectTimeout = 5 * time.Second
)

// ErrPGNotConfigured - PG_DSN не задан
var ErrPGNotConfigured = errors.New("pg dsn not found")

type pgConfig struct {
	dsn            string
	maxConns       int32
	connectTimeout time.Duration
}

// NewPGConfig - DSN и настройки пула для каталога и заказов
func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(pgDSNEnvName)
	if len(dsn) == 0 {
		return nil, ErrPGNotConfigured
	}

	cfg := &pgConfig{
		dsn:            dsn,
		maxConns:       defaultPGMaxConns,
		connectTimeout: defaultPGConnectTimeout,
	}

	if raw := os.Getenv(pgMaxConnsEnvName); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", pgMaxConnsEnvName, raw)
		}
		cfg.maxConns = int32(n)
	}

	if raw := os.Getenv(pgConnectTimeoutEnvName); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%s must be a positive duration, got %q", pgConnectTimeoutEnvName, raw)
		}
		cfg.connectTimeout = d
	}

	return cfg, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}

func (cfg *pgConfig) MaxConns() int32 {
	return cfg.maxConns
}

func (cfg *pgConfig) ConnectTimeout() time.Duration {
	return cfg.connectTimeout
}
