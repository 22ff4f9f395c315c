package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"velvet_bite/internal/config"
	"velvet_bite/pkg/token"
)

// ClientCookieName Подписанная cookie с ID клиента
const ClientCookieName = "vb_client"

type clientIDKey struct{}

// WithClientID Кладет ID клиента в контекст
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDKey{}, clientID)
}

// ClientIDFromContext ID клиента, выставленный ClientIdentity
func ClientIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(clientIDKey{}).(string)
	return id, ok && id != ""
}

// ClientIdentity Достает ID клиента из cookie. Если cookie нет или подпись
// не сходится, выдает новый ID и ставит cookie
func ClientIdentity(cfg config.ClientTokenConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(ClientCookieName); err == nil {
				clientID, err := token.VerifyClientToken(c.Value, cfg.SecretKey())
				if err == nil {
					next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), clientID)))
					return
				}
				log.Debug().Err(err).Msg("client cookie rejected, issuing a new one")
			}

			clientID := uuid.NewString()
			signed, err := token.GenerateClientToken(clientID, cfg.SecretKey(), cfg.TTL())
			if err != nil {
				log.Error().Err(err).Msg("failed to sign client cookie")
			} else {
				setClientCookie(w, signed, int(cfg.TTL().Seconds()))
			}

			next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), clientID)))
		})
	}
}

// setClientCookie устанавливает cookie с ID клиента
func setClientCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}
