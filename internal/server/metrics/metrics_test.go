package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/checkins/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := m.Middleware(mux)

	for _, id := range []string{"a", "b", "c"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/checkins/"+id, nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	}

	got := testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "GET /api/v1/checkins/{id}", "404"))
	assert.Equal(t, 3.0, got)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.activeRequests))
}

func TestMiddleware_Unmatched(t *testing.T) {
	m := New()
	h := m.Middleware(http.NewServeMux())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestCounters(t *testing.T) {
	m := New()
	m.CheckinResult(ResultCreated)
	m.CheckinResult(ResultCreated)
	m.CheckinResult(ResultDuplicate)
	m.PhotoBytes(1024)
	m.MarkerCache(true)
	m.MarkerCache(false)
	m.MarkerCache(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.checkinsTotal.WithLabelValues(ResultCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkinsTotal.WithLabelValues(ResultDuplicate)))
	assert.Equal(t, 1024.0, testutil.ToFloat64(m.photoBytes))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.markerCacheLookup.WithLabelValues("miss")))
}

func TestHandler_Exposes(t *testing.T) {
	m := New()
	m.CheckinResult(ResultRejected)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `geocheckin_checkins_total{result="rejected"} 1`))
	assert.Contains(t, body, "go_goroutines")
}
