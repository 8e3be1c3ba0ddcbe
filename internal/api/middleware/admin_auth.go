package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-RoomAvailability/internal/api/handlers"
)

// HeaderAdminToken заголовок с токеном администратора
const HeaderAdminToken = "X-Admin-Token"

const (
	msgMissingAdminToken = "отсутствует заголовок X-Admin-Token"
	msgForbidden         = "доступ запрещен"
)

// AdminAuth пропускает только запросы с корректным X-Admin-Token
func AdminAuth(token string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(HeaderAdminToken)
			if provided == "" {
				logger.Warn("AdminAuth: missing admin token: method=%s, url=%s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingAdminToken)
				return
			}

			if token == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				logger.Warn("AdminAuth: invalid admin token: method=%s, url=%s", r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
