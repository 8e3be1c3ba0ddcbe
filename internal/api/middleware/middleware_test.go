package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-RoomAvailability/internal/testfixtures"
	"github.com/m04kA/SMC-RoomAvailability/pkg/requestid"
)

type observation struct {
	method string
	route  string
	status int
}

type fakeMetrics struct {
	mu   sync.Mutex
	seen []observation
}

func (f *fakeMetrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, observation{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	collector := &fakeMetrics{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(collector))
	r.HandleFunc("/api/v1/capacity-overrides/{roomCode}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/capacity-overrides/STD", nil))

	require.Len(t, collector.seen, 1)
	assert.Equal(t, observation{
		method: http.MethodDelete,
		route:  "/api/v1/capacity-overrides/{roomCode}",
		status: http.StatusNoContent,
	}, collector.seen[0])
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	logger := testfixtures.NewLogger()
	var fromCtx string

	h := RequestID(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = requestid.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	requestID := w.Header().Get(requestid.Header)
	assert.NotEmpty(t, requestID)
	assert.Len(t, requestID, 36)
	assert.Equal(t, requestID, fromCtx)
	assert.True(t, logger.Contains("INFO", "status: 418"))
}

func TestRequestID_KeepsClientHeader(t *testing.T) {
	h := RequestID(testfixtures.NewLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestid.Header, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestid.Header))
}

func TestRequestID_UsesTraceID(t *testing.T) {
	tid, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    tid,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	var fromCtx string
	h := RequestID(testfixtures.NewLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = requestid.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/consulta", nil)
	req = req.WithContext(trace.ContextWithSpanContext(req.Context(), sc))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", w.Header().Get(requestid.Header))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fromCtx)
}

func TestRecover(t *testing.T) {
	logger := testfixtures.NewLogger()
	h := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/consulta", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, logger.Contains("ERROR", "boom"))
}

func TestAdminAuth(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		provided string
		status   int
	}{
		{name: "valid", token: "secret", provided: "secret", status: http.StatusOK},
		{name: "missing", token: "secret", provided: "", status: http.StatusUnauthorized},
		{name: "wrong", token: "secret", provided: "nope", status: http.StatusForbidden},
		{name: "not configured", token: "", provided: "anything", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AdminAuth(tt.token, testfixtures.NewLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/capacity-overrides", nil)
			if tt.provided != "" {
				req.Header.Set(HeaderAdminToken, tt.provided)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
