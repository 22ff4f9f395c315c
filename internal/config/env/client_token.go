package env

import (
	"fmt"
	"os"
	"time"

	"velvet_bite/internal/config"
)

const (
	clientTokenSecretEnvName = "CLIENT_TOKEN_SECRET"
	clientTokenTTLEnvName    = "CLIENT_TOKEN_TTL"

	// Клиент "помнит" колесо долго, как localStorage в браузере
	defaultClientTokenTTL = 365 * 24 * time.Hour
)

type clientTokenConfig struct {
	secretKey string
	ttl       time.Duration
}

func NewClientTokenConfig() (config.ClientTokenConfig, error) {
	secret := os.Getenv(clientTokenSecretEnvName)
	if len(secret) == 0 {
		return nil, fmt.Errorf("client token secret key not found")
	}

	ttl := defaultClientTokenTTL
	if raw := os.Getenv(clientTokenTTLEnvName); len(raw) != 0 {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid client token ttl: %w", err)
		}
		ttl = parsed
	}

	return &clientTokenConfig{
		secretKey: secret,
		ttl:       ttl,
	}, nil
}

func (c *clientTokenConfig) SecretKey() []byte {
	return []byte(c.secretKey)
}

func (c *clientTokenConfig) TTL() time.Duration {
	return c.ttl
}
