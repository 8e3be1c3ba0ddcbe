package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-RoomAvailability/pkg/requestid"
)

// RequestID присваивает запросу идентификатор и пишет access log.
// Приоритет: заголовок клиента, trace id из контекста, новый uuid
func RequestID(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get(requestid.Header)
			if id == "" {
				id = traceID(r.Context())
			}
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(requestid.Header, id)
			ctx := requestid.NewContext(r.Context(), id)
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r.WithContext(ctx))

			logger.Info("type: access, request_id: %s, method: %s, url: %s, status: %d, userAgent: %s, latency: %s",
				id, r.Method, r.URL.Path, rec.status, r.Header.Get("User-Agent"), time.Since(start))
		})
	}
}

// traceID возвращает trace id, если запрос пришел с активным спаном
func traceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return sc.TraceID().String()
	}
	return ""
}
