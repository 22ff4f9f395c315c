package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// ClientClaims - содержимое подписанной cookie клиента. Subject = ID клиента
type ClientClaims struct {
	jwt.RegisteredClaims
}

// Theme - оформление сайта
type Theme string

const (
	ThemeLight   Theme = "light"
	ThemeNewYear Theme = "newyear"
)

// Valid - известная ли тема
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeNewYear
}

// Toggle - противоположная тема
func (t Theme) Toggle() Theme {
	if t == ThemeNewYear {
		return ThemeLight
	}
	return ThemeNewYear
}
