package spec_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/spec"
)

func TestHandler_ServesDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	spec.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("ETag"))
	assert.Equal(t, spec.OpenAPI, rec.Body.Bytes())
	assert.Contains(t, rec.Body.String(), "operationId: ListActivitiesByDay")
}

func TestHandler_NotModified(t *testing.T) {
	first := httptest.NewRecorder()
	spec.Handler().ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	req.Header.Set("If-None-Match", etag)
	rec := httptest.NewRecorder()
	spec.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}
