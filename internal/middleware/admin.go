package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog/log"

	"velvet_bite/internal/config"
	"velvet_bite/pkg/pass"
	"velvet_bite/pkg/resp"
)

// AdminOnly Basic auth для изменения каталога. Пароль сверяется с bcrypt хэшем
func AdminOnly(cfg config.AdminConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, password, ok := r.BasicAuth()
			if !ok ||
				subtle.ConstantTimeCompare([]byte(user), []byte(cfg.User())) != 1 ||
				!pass.VerifyPassword(cfg.PasswordHash(), password) {
				log.Warn().Str("remote", r.RemoteAddr).Str("path", r.URL.Path).Msg("admin auth failed")
				w.Header().Set("WWW-Authenticate", `Basic realm="velvet-bite-admin"`)
				resp.WriteError(w, http.StatusUnauthorized, "unauthorized", "admin credentials required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
