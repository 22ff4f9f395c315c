package env

import (
	"errors"
	"os"

	"velvet_bite/internal/config"
)

const (
	adminUserEnvName         = "ADMIN_USER"
	adminPasswordHashEnvName = "ADMIN_PASSWORD_HASH"
)

type adminConfig struct {
	user         string
	passwordHash string
}

// NewAdminConfig - учетные данные администратора для изменения меню.
// Пароль хранится только в виде bcrypt хэша
func NewAdminConfig() (config.AdminConfig, error) {
	user := os.Getenv(adminUserEnvName)
	hash := os.Getenv(adminPasswordHashEnvName)
	if len(user) == 0 || len(hash) == 0 {
		return nil, errors.New("admin credentials not found")
	}
	return &adminConfig{
		user:         user,
		passwordHash: hash,
	}, nil
}

func (c *adminConfig) User() string {
	return c.user
}

func (c *adminConfig) PasswordHash() string {
	return c.passwordHash
}
