package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/shiptrack/internal/metrics"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Delete("/api/shipments/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", m.Handler())

	for _, target := range []string{"/api/shipments/7", "/api/shipments/8"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, target, nil))
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body,
		`shiptrack_http_requests_total{method="DELETE",route="/api/shipments/{id}",status="404"} 2`)
	assert.Contains(t, body,
		`shiptrack_http_requests_total{method="GET",route="/health",status="200"} 1`)
	assert.Contains(t, body, `shiptrack_http_request_duration_seconds_count{method="DELETE",route="/api/shipments/{id}"} 2`)
	assert.Contains(t, body, "go_goroutines")
}
