package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"velvet_bite/internal/model"
)

// GenerateClientToken - подписывает ID клиента для cookie
func GenerateClientToken(clientID string, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := model.ClientClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretKey)
}

// VerifyClientToken - проверяет подпись и срок, возвращает ID клиента
func VerifyClientToken(tokenStr string, secretKey []byte) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &model.ClientClaims{}, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, errors.New("unexpected token signing method")
		}

		return secretKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*model.ClientClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("invalid token claims")
	}

	return claims.Subject, nil
}
