package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/middleware"
)

// observation is one call captured by fakeRecorder.
type observation struct {
	method, route string
	status        int
}

// fakeRecorder is a test double for middleware.RequestRecorder.
type fakeRecorder struct {
	got []observation
}

func (f *fakeRecorder) ObserveRequest(method, route string, status int, _ time.Duration) {
	f.got = append(f.got, observation{method: method, route: route, status: status})
}

// newMetricsRouter builds a chi router with the metrics middleware installed
// the same way main.go installs it.
func newMetricsRouter(rec middleware.RequestRecorder) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NewMetrics(rec))
	r.Get("/trips/{tripId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok")) // implicit 200
	})
	return r
}

// TestMetrics_UsesRoutePattern verifies that the route label is the chi
// pattern, not the concrete path with the trip ID in it.
func TestMetrics_UsesRoutePattern(t *testing.T) {
	rec := &fakeRecorder{}
	h := newMetricsRouter(rec)

	req := httptest.NewRequest(http.MethodGet, "/trips/5b8e7f43-5a0a-4a5e-9d4b-0f7c3f0a2e11", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, rec.got, 1)
	assert.Equal(t, observation{method: "GET", route: "/trips/{tripId}", status: http.StatusNotFound}, rec.got[0])
}

// TestMetrics_ImplicitOK verifies that a handler which only writes a body is
// recorded as 200.
func TestMetrics_ImplicitOK(t *testing.T) {
	rec := &fakeRecorder{}
	h := newMetricsRouter(rec)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Len(t, rec.got, 1)
	assert.Equal(t, http.StatusOK, rec.got[0].status)
}

// TestMetrics_UnmatchedRoute verifies that unknown paths share one label.
func TestMetrics_UnmatchedRoute(t *testing.T) {
	rec := &fakeRecorder{}
	h := newMetricsRouter(rec)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/123", nil))

	require.Len(t, rec.got, 1)
	assert.Equal(t, "unmatched", rec.got[0].route)
	assert.Equal(t, http.StatusNotFound, rec.got[0].status)
}
