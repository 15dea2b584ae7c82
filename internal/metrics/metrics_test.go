package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/metrics"
)

func TestCollector_ObserveRequest(t *testing.T) {
	c := metrics.NewCollector()

	c.ObserveRequest(http.MethodGet, "/trips/{tripId}/activities", http.StatusOK, 12*time.Millisecond)
	c.ObserveRequest(http.MethodGet, "/trips/{tripId}/activities", http.StatusOK, 3*time.Millisecond)
	c.ObserveRequest(http.MethodGet, "/trips/{tripId}/activities", http.StatusNotFound, time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/trips/{tripId}/activities", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/trips/{tripId}/activities", "404")), 0)
}

func TestCollector_ActivitiesOutOfRange(t *testing.T) {
	c := metrics.NewCollector()

	c.ActivitiesOutOfRange(3)
	c.ActivitiesOutOfRange(0) // no-op
	c.ActivitiesOutOfRange(-1)

	assert.InDelta(t, 3, testutil.ToFloat64(c.OutOfRange), 0)
}

func TestCollector_Handler_ExposesMetrics(t *testing.T) {
	c := metrics.NewCollector()
	c.ActivitiesOutOfRange(1)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "trip_planner_activities_out_of_range_total 1")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
