package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/m04kA/SMC-RoomAvailability/internal/api/handlers"
)

// Recover перехватывает панику в обработчике и отвечает 500
func Recover(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if re := recover(); re != nil {
					logger.Error("type: panic, method: %s, url: %s, error: %v\n%s", r.Method, r.URL.Path, re, debug.Stack())
					handlers.RespondInternalError(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
